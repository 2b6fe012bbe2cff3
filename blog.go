package blog

import (
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/planner"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ContentService exports the content service contract for consumers of the blog package.
type ContentService = content.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// MarkdownService exports the markdown loading service.
type MarkdownService = markdown.Service

// Importer exports the markdown-to-content sync helper.
type Importer = markdown.Importer

// Planner exports the page planner.
type Planner = planner.Planner

// PlanEntry exports a planned page entry.
type PlanEntry = planner.Entry

// Node exports the content node model.
type Node = content.Node

// NodeKind exports the node kind enumeration.
type NodeKind = content.NodeKind

// PageRegistry exports the page registration contract.
type PageRegistry = interfaces.PageRegistry

// CreatePageRequest exports the page creation payload.
type CreatePageRequest = interfaces.CreatePageRequest

// PageContext exports the per-page template context.
type PageContext = interfaces.PageContext

// PageNeighbor exports the adjacent-post reference.
type PageNeighbor = interfaces.PageNeighbor

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the configured content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Generator returns the configured static site generator.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Markdown returns the configured markdown loading service.
func (m *Module) Markdown() *MarkdownService {
	return m.container.MarkdownService()
}

// Sync returns the configured markdown importer.
func (m *Module) Sync() *Importer {
	return m.container.Importer()
}

// Pages returns the configured page planner.
func (m *Module) Pages() *Planner {
	return m.container.Planner()
}

// Registry returns the configured page registry.
func (m *Module) Registry() PageRegistry {
	return m.container.PageRegistry()
}

// Close releases container-owned resources.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
