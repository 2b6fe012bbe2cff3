package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestFilesystemProviderRequiresRoot(t *testing.T) {
	if _, err := NewFilesystemProvider("  "); !errors.Is(err, ErrRootRequired) {
		t.Fatalf("expected ErrRootRequired, got %v", err)
	}
}

func TestFilesystemProviderEnsureDir(t *testing.T) {
	root := t.TempDir()
	provider, err := NewFilesystemProvider(root)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Exec(context.Background(), "generator.ensure_dir", "blog/my-post"); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "blog", "my-post"))
	if err != nil {
		t.Fatalf("stat created dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected a directory")
	}
}

func TestFilesystemProviderWrite(t *testing.T) {
	root := t.TempDir()
	provider, err := NewFilesystemProvider(root)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	body := "<html>hello</html>"
	result, err := provider.Exec(context.Background(), "generator.write",
		"blog/my-post/index.html",
		strings.NewReader(body),
		int64(len(body)),
		"page",
		"text/html; charset=utf-8",
		"abc123",
		map[string]string{"route": "/blog/my-post/"},
	)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		t.Fatalf("rows affected: %v", err)
	}
	if affected != int64(len(body)) {
		t.Fatalf("expected %d bytes reported, got %d", len(body), affected)
	}

	written, err := os.ReadFile(filepath.Join(root, "blog", "my-post", "index.html"))
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(written) != body {
		t.Fatalf("unexpected file content: %q", written)
	}
}

func TestFilesystemProviderWriteRequiresReader(t *testing.T) {
	provider, err := NewFilesystemProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Exec(context.Background(), "generator.write", "index.html"); err == nil {
		t.Fatal("expected error for missing content reader")
	}
}

func TestFilesystemProviderRemove(t *testing.T) {
	root := t.TempDir()
	provider, err := NewFilesystemProvider(root)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	target := filepath.Join(root, "out", "index.html")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("seed dir: %v", err)
	}
	if err := os.WriteFile(target, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := provider.Exec(context.Background(), "generator.remove", "out"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "out")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected directory removed, got %v", err)
	}
}

func TestFilesystemProviderRejectsEscapingPaths(t *testing.T) {
	provider, err := NewFilesystemProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Exec(context.Background(), "generator.ensure_dir", "../outside"); !errors.Is(err, ErrPathEscapes) {
		t.Fatalf("expected ErrPathEscapes, got %v", err)
	}
}

func TestFilesystemProviderUnknownOp(t *testing.T) {
	provider, err := NewFilesystemProvider(t.TempDir())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Exec(context.Background(), "generator.copy", "a", "b"); !errors.Is(err, ErrUnknownOp) {
		t.Fatalf("expected ErrUnknownOp, got %v", err)
	}
}

func TestFilesystemProviderTransaction(t *testing.T) {
	root := t.TempDir()
	provider, err := NewFilesystemProvider(root)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	err = provider.Transaction(context.Background(), func(tx interfaces.Transaction) error {
		if _, err := tx.Exec(context.Background(), "generator.ensure_dir", "tx"); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "tx")); err != nil {
		t.Fatalf("expected transactional write applied: %v", err)
	}
}

func TestNoOpProviderDiscardsOperations(t *testing.T) {
	provider := NewNoOpProvider()

	result, err := provider.Exec(context.Background(), "generator.write", "index.html")
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}

	err = provider.Transaction(context.Background(), func(tx interfaces.Transaction) error {
		return tx.Commit()
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}
