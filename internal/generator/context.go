package generator

import (
	"time"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// SiteMetadata carries site-wide values into every template.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	Metadata    map[string]any
}

// PageRenderingContext is the per-page payload handed to the renderer.
type PageRenderingContext struct {
	Node    *content.Node
	Route   string
	Context interfaces.PageContext
}

// BuildMetadata describes the build run itself.
type BuildMetadata struct {
	GeneratedAt time.Time
	DryRun      bool
}

// TemplateContext is the full rendering payload: site, page, and build data.
type TemplateContext struct {
	Site  SiteMetadata
	Page  PageRenderingContext
	Build BuildMetadata
}

// RenderedPage captures one rendered artifact before it is persisted.
type RenderedPage struct {
	Route    string
	Output   string
	Template string
	Content  string
	Checksum string
	Node     *content.Node
}
