package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/planner"
	"github.com/goliatone/go-blog/internal/util"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRendererRequired = errors.New("generator: template renderer is required")
	errContentRequired  = errors.New("generator: content service is required")
	errTemplateRequired = errors.New("generator: template is required for rendering")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Plan(ctx context.Context) ([]planner.Entry, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	// Template names the template planned pages render with when the node's
	// front matter does not choose one.
	Template        string
	IncludeDrafts   bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeed    bool
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt int
	Artifacts  int
	Routes     []string
	Rendered   []RenderedPage
	Duration   time.Duration
	DryRun     bool
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Content  content.Service
	Planner  *planner.Planner
	Registry interfaces.PageRegistry
	Renderer interfaces.TemplateRenderer
	Storage  interfaces.StorageProvider
	Logger   interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Planner == nil {
		deps.Planner = planner.New(planner.Config{Template: cfg.Template})
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

type disabledService struct{}

// Build runs the full pipeline: query nodes, plan pages, register routes,
// render, and persist artifacts. The pass is all-or-nothing up to the write
// phase: any planning or rendering failure aborts before a single artifact
// reaches storage.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if s.deps.Content == nil {
		return nil, errContentRequired
	}

	start := s.now()
	generatedAt := start.UTC()

	nodes, err := s.loadNodes(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.deps.Planner.Plan(nodes)
	if err != nil {
		return nil, err
	}

	if s.deps.Registry != nil {
		if err := s.deps.Planner.Apply(ctx, s.deps.Registry, entries); err != nil {
			return nil, err
		}
	}

	byID := make(map[string]*content.Node, len(nodes))
	for _, node := range nodes {
		byID[node.ID.String()] = node
	}

	siteMeta := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     strings.TrimRight(s.cfg.BaseURL, "/"),
		Metadata:    map[string]any{},
	}
	baseDir := normalizeOutputDir(s.cfg.OutputDir)

	rendered := make([]RenderedPage, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := s.renderEntry(siteMeta, generatedAt, opts, entry, byID[entry.NodeID.String()], baseDir)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, page)
	}

	result := &BuildResult{
		PagesBuilt: len(rendered),
		Rendered:   rendered,
		Routes:     make([]string, 0, len(rendered)),
		DryRun:     opts.DryRun,
	}
	for _, page := range rendered {
		result.Routes = append(result.Routes, page.Route)
	}

	if opts.DryRun {
		result.Duration = time.Since(start)
		return result, nil
	}

	writer := newArtifactWriter(s.deps.Storage)
	if err := s.persist(ctx, writer, siteMeta, generatedAt, baseDir, rendered, result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	s.deps.Logger.Info("site build complete",
		"pages", result.PagesBuilt,
		"artifacts", result.Artifacts,
		"duration", result.Duration,
	)
	return result, nil
}

// Plan computes the page plan without rendering or registering anything.
func (s *service) Plan(ctx context.Context) ([]planner.Entry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.deps.Content == nil {
		return nil, errContentRequired
	}
	nodes, err := s.loadNodes(ctx)
	if err != nil {
		return nil, err
	}
	return s.deps.Planner.Plan(nodes)
}

// Clean removes the configured output directory.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	writer := newArtifactWriter(s.deps.Storage)
	return writer.Remove(ctx, normalizeOutputDir(s.cfg.OutputDir))
}

func (s *service) loadNodes(ctx context.Context) ([]*content.Node, error) {
	nodes, err := s.deps.Content.Query(ctx, content.Query{
		Kind:      content.NodeKindMarkdown,
		SortBy:    content.SortByDate,
		Direction: content.SortDescending,
	})
	if err != nil {
		return nil, fmt.Errorf("generator: load nodes: %w", err)
	}
	if s.cfg.IncludeDrafts {
		return nodes, nil
	}
	published := nodes[:0]
	for _, node := range nodes {
		if node.Draft {
			continue
		}
		published = append(published, node)
	}
	return published, nil
}

func (s *service) renderEntry(
	siteMeta SiteMetadata,
	generatedAt time.Time,
	opts BuildOptions,
	entry planner.Entry,
	node *content.Node,
	baseDir string,
) (RenderedPage, error) {
	if node == nil {
		return RenderedPage{}, fmt.Errorf("generator: plan entry %s references unknown node %s", entry.Path, entry.NodeID)
	}

	templateName := util.FirstNonEmpty(
		strings.TrimSpace(node.Template),
		strings.TrimSpace(entry.Template),
		strings.TrimSpace(s.cfg.Template),
	)
	if templateName == "" {
		return RenderedPage{}, fmt.Errorf("generator: page %s: %w", entry.Path, errTemplateRequired)
	}

	templateCtx := TemplateContext{
		Site: siteMeta,
		Page: PageRenderingContext{
			Node:    node,
			Route:   entry.Path,
			Context: entry.Context,
		},
		Build: BuildMetadata{
			GeneratedAt: generatedAt,
			DryRun:      opts.DryRun,
		},
	}

	output, err := s.deps.Renderer.RenderTemplate(templateName, templateCtx)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("generator: render %s with %s: %w", entry.Path, templateName, err)
	}

	return RenderedPage{
		Route:    entry.Path,
		Output:   joinOutputPath(baseDir, buildOutputPath(entry.Path)),
		Template: templateName,
		Content:  output,
		Checksum: computeHashFromString(output),
		Node:     node,
	}, nil
}

func (s *service) persist(
	ctx context.Context,
	writer artifactWriter,
	siteMeta SiteMetadata,
	generatedAt time.Time,
	baseDir string,
	rendered []RenderedPage,
	result *BuildResult,
) error {
	dirCache := map[string]struct{}{}
	if baseDir != "" {
		if err := ensureDir(ctx, writer, dirCache, baseDir); err != nil {
			return err
		}
	}

	for _, page := range rendered {
		if err := ensureDir(ctx, writer, dirCache, parentDir(page.Output)); err != nil {
			return err
		}
		if err := writer.WriteFile(ctx, writeFileRequest{
			Path:        page.Output,
			Content:     strings.NewReader(page.Content),
			Size:        int64(len(page.Content)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    page.Checksum,
			Metadata: map[string]string{
				"route":    page.Route,
				"template": page.Template,
			},
		}); err != nil {
			return fmt.Errorf("generator: write %s: %w", page.Output, err)
		}
		result.Artifacts++
	}

	if s.cfg.GenerateSitemap {
		sitemap := buildSitemap(siteMeta.BaseURL, rendered, generatedAt)
		if err := s.writeArtifact(ctx, writer, dirCache, joinOutputPath(baseDir, "sitemap.xml"), sitemap, categorySitemap, "application/xml"); err != nil {
			return err
		}
		result.Artifacts++
	}

	if s.cfg.GenerateRobots {
		robots := buildRobots(siteMeta.BaseURL, s.cfg.GenerateSitemap)
		if err := s.writeArtifact(ctx, writer, dirCache, joinOutputPath(baseDir, "robots.txt"), robots, categoryRobots, "text/plain"); err != nil {
			return err
		}
		result.Artifacts++
	}

	if s.cfg.GenerateFeed {
		items := buildFeedItems(siteMeta, rendered, generatedAt)
		if len(items) > 0 {
			feed := buildRSSFeed(siteMeta, items, generatedAt)
			if err := s.writeArtifact(ctx, writer, dirCache, joinOutputPath(baseDir, "feed.xml"), feed, categoryFeed, "application/rss+xml"); err != nil {
				return err
			}
			result.Artifacts++
		}
	}

	return nil
}

func (s *service) writeArtifact(
	ctx context.Context,
	writer artifactWriter,
	dirCache map[string]struct{},
	outputPath string,
	body string,
	category writeCategory,
	contentType string,
) error {
	if err := ensureDir(ctx, writer, dirCache, parentDir(outputPath)); err != nil {
		return err
	}
	if err := writer.WriteFile(ctx, writeFileRequest{
		Path:        outputPath,
		Content:     strings.NewReader(body),
		Size:        int64(len(body)),
		Category:    category,
		ContentType: contentType,
		Checksum:    computeHashFromString(body),
	}); err != nil {
		return fmt.Errorf("generator: write %s: %w", outputPath, err)
	}
	return nil
}

func parentDir(outputPath string) string {
	idx := strings.LastIndex(outputPath, "/")
	if idx <= 0 {
		return ""
	}
	return outputPath[:idx]
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.Trim(dir, " ")
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Plan(context.Context) ([]planner.Entry, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
