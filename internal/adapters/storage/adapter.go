package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	opEnsureDir = "generator.ensure_dir"
	opWrite     = "generator.write"
	opRemove    = "generator.remove"
)

var (
	ErrRootRequired = errors.New("storage: root directory is required")
	ErrUnknownOp    = errors.New("storage: unknown operation")
	ErrPathEscapes  = errors.New("storage: path escapes storage root")
)

// FilesystemProvider materializes generator artifacts on disk. Operation
// identifiers select the action; relative paths are resolved against the
// provider root and may not escape it.
type FilesystemProvider struct {
	root string
	mu   sync.Mutex
}

func NewFilesystemProvider(root string) (interfaces.StorageProvider, error) {
	cleaned := strings.TrimSpace(root)
	if cleaned == "" {
		return nil, ErrRootRequired
	}
	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	return &FilesystemProvider{root: abs}, nil
}

// Root returns the absolute directory artifacts are written under.
func (p *FilesystemProvider) Root() string {
	return p.root
}

func (p *FilesystemProvider) Query(context.Context, string, ...any) (interfaces.Rows, error) {
	return nil, errors.New("storage: filesystem provider does not support queries")
}

func (p *FilesystemProvider) Exec(ctx context.Context, op string, args ...any) (interfaces.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch op {
	case opEnsureDir:
		return p.execEnsureDir(args)
	case opWrite:
		return p.execWrite(args)
	case opRemove:
		return p.execRemove(args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
}

func (p *FilesystemProvider) Transaction(ctx context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	return fn(&fsTx{provider: p, ctx: ctx})
}

func (p *FilesystemProvider) execEnsureDir(args []any) (interfaces.Result, error) {
	path, err := p.resolve(stringArg(args, 0))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure dir %s: %w", path, err)
	}
	return opResult{}, nil
}

func (p *FilesystemProvider) execWrite(args []any) (interfaces.Result, error) {
	path, err := p.resolve(stringArg(args, 0))
	if err != nil {
		return nil, err
	}

	content, ok := reader(args, 1)
	if !ok {
		return nil, errors.New("storage: write requires a content reader")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure parent for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", path, err)
	}

	written, err := io.Copy(file, content)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("storage: write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("storage: close %s: %w", path, err)
	}
	return opResult{affected: written}, nil
}

func (p *FilesystemProvider) execRemove(args []any) (interfaces.Result, error) {
	path, err := p.resolve(stringArg(args, 0))
	if err != nil {
		return nil, err
	}
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("storage: remove %s: %w", path, err)
	}
	return opResult{}, nil
}

// resolve anchors a relative artifact path under the provider root and
// rejects anything that would climb out of it. Absolute paths pass through
// untouched so callers can target directories outside the root explicitly.
func (p *FilesystemProvider) resolve(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", errors.New("storage: path is required")
	}
	native := filepath.FromSlash(cleaned)
	if filepath.IsAbs(native) {
		return filepath.Clean(native), nil
	}
	joined := filepath.Join(p.root, native)
	rel, err := filepath.Rel(p.root, joined)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, raw)
	}
	return joined, nil
}

func stringArg(args []any, index int) string {
	if index >= len(args) {
		return ""
	}
	value, _ := args[index].(string)
	return value
}

func reader(args []any, index int) (io.Reader, bool) {
	if index >= len(args) {
		return nil, false
	}
	value, ok := args[index].(io.Reader)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// fsTx satisfies the transaction surface for filesystem writes. Operations
// apply immediately; Commit and Rollback are acknowledgements only.
type fsTx struct {
	provider *FilesystemProvider
	ctx      context.Context
}

func (t *fsTx) Query(ctx context.Context, op string, args ...any) (interfaces.Rows, error) {
	return t.provider.Query(ctx, op, args...)
}

func (t *fsTx) Exec(ctx context.Context, op string, args ...any) (interfaces.Result, error) {
	return t.provider.Exec(ctx, op, args...)
}

func (t *fsTx) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return errors.New("storage: nested transactions not supported")
}

func (t *fsTx) Commit() error { return nil }

func (t *fsTx) Rollback() error { return nil }

type opResult struct {
	affected int64
}

func (r opResult) RowsAffected() (int64, error) { return r.affected, nil }

func (r opResult) LastInsertId() (int64, error) { return 0, nil }

// NoOpProvider satisfies the storage surface while discarding every
// operation. Useful for dry runs and tests that only observe planning.
type NoOpProvider struct{}

func NewNoOpProvider() interfaces.StorageProvider {
	return &NoOpProvider{}
}

func (*NoOpProvider) Query(context.Context, string, ...any) (interfaces.Rows, error) {
	return nil, nil
}

func (*NoOpProvider) Exec(context.Context, string, ...any) (interfaces.Result, error) {
	return opResult{}, nil
}

func (*NoOpProvider) Transaction(_ context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	return fn(&noopTx{})
}

type noopTx struct{}

func (noopTx) Query(context.Context, string, ...any) (interfaces.Rows, error) {
	return nil, nil
}

func (noopTx) Exec(context.Context, string, ...any) (interfaces.Result, error) {
	return opResult{}, nil
}

func (noopTx) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return nil
}

func (noopTx) Commit() error { return nil }

func (noopTx) Rollback() error { return nil }
