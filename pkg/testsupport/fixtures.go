package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFixture reads a raw fixture file, typically from a package testdata dir.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden reads a JSON golden file and unmarshals it into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("golden %s: %w", path, err)
	}
	return nil
}
