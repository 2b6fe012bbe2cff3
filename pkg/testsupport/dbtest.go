// Package testsupport holds helpers shared across package tests.
package testsupport

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared in-memory SQLite database. Each name maps
// to its own database, keeping test packages isolated from each other.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
}
