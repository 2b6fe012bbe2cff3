package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the Markdown service discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// LoadOptions provide per-call overrides for discovery and parsing.
type LoadOptions struct {
	Pattern   string
	Recursive *bool
	Parser    interfaces.ParseOptions
}

// Service loads and renders filesystem-backed markdown documents.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
}

// NewService constructs a Markdown service using an underlying loader. When
// parser is nil, a Goldmark parser with the provided default options is created.
// The base path does not have to exist yet; the loader reports a descriptive
// error when documents are first read.
func NewService(cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath == "" {
		basePath = "."
	}
	return NewServiceWithFS(cfg, parser, os.DirFS(basePath)), nil
}

// NewServiceWithFS constructs the service over an explicit filesystem. Tests
// use this to run against fstest.MapFS without touching disk.
func NewServiceWithFS(cfg Config, parser interfaces.MarkdownParser, filesystem fs.FS) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
	}
}

// Parser exposes the configured markdown parser.
func (s *Service) Parser() interfaces.MarkdownParser {
	return s.parser
}

// Load reads a single Markdown document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every Markdown document within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML using the configured parser.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}
