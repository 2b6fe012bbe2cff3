package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser over the goldmark
// engine. The default engine is built once at construction; per-call options
// get a fresh engine. Both are safe for concurrent use.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	engine   goldmark.Markdown
}

// NewGoldmarkParser constructs a parser for blog documents. With zero-value
// options the engine runs GFM, linkify and task lists with raw HTML allowed,
// which matches how post bodies are written.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engine:   buildEngine(defaults),
	}
}

// Parse renders markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.convert(p.engine, markdown)
}

// ParseWithOptions renders markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return p.convert(buildEngine(opts), markdown)
}

func (p *GoldmarkParser) convert(engine goldmark.Markdown, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func buildEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	options := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}

	var render []renderer.Option
	if opts.HardWraps {
		render = append(render, html.WithHardWraps())
	}
	// Sanitize and SafeMode both mean "never emit raw HTML".
	if !opts.SafeMode && !opts.Sanitize {
		render = append(render, html.WithUnsafe())
	}
	if len(render) > 0 {
		options = append(options, goldmark.WithRendererOptions(render...))
	}

	if exts := resolveExtensions(opts.Extensions); len(exts) > 0 {
		options = append(options, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(options...)
}

var knownExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// resolveExtensions maps configured names onto goldmark extenders. Unknown
// names are skipped rather than rejected so configs stay portable.
func resolveExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}

	extenders := make([]goldmark.Extender, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if ext, ok := knownExtensions[key]; ok {
			extenders = append(extenders, ext)
		}
	}
	return extenders
}
