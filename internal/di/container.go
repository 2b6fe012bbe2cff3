package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/adapters/noop"
	"github.com/goliatone/go-blog/internal/adapters/storage"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/planner"
	"github.com/goliatone/go-blog/internal/registry"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Container wires module dependencies. Defaults favour in-memory bindings so
// the module works without external services; hosts swap in real adapters
// through options.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	template       interfaces.TemplateRenderer
	storage        interfaces.StorageProvider
	pageRegistry   interfaces.PageRegistry

	bunDB  *bun.DB
	ownsDB bool

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	nodeRepo       content.NodeRepository
	memoryNodeRepo *content.MemoryNodeRepository

	parser            interfaces.MarkdownParser
	frontMatterSchema map[string]any

	contentSvc   content.Service
	markdownSvc  *markdown.Service
	importer     *markdown.Importer
	plannerSvc   *planner.Planner
	generatorSvc generator.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithTemplateRenderer overrides the default template renderer.
func WithTemplateRenderer(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = tr
	}
}

// WithStorage overrides the default storage provider.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		c.storage = sp
	}
}

// WithPageRegistry overrides the default in-memory page registry.
func WithPageRegistry(reg interfaces.PageRegistry) Option {
	return func(c *Container) {
		c.pageRegistry = reg
	}
}

// WithCache overrides the repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB injects an existing bun database handle. The container will not
// close injected handles.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithNodeRepository overrides the default node repository binding.
func WithNodeRepository(repo content.NodeRepository) Option {
	return func(c *Container) {
		c.nodeRepo = repo
		c.memoryNodeRepo = nil
	}
}

// WithMarkdownParser overrides the default goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithFrontMatterSchema enforces a JSON schema over ingested front matter.
func WithFrontMatterSchema(schema map[string]any) Option {
	return func(c *Container) {
		c.frontMatterSchema = schema
	}
}

// WithContentService overrides the default content service binding.
func WithContentService(svc content.Service) Option {
	return func(c *Container) {
		c.contentSvc = svc
	}
}

// WithGeneratorService overrides the default generator service binding.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memoryNodeRepo := content.NewMemoryNodeRepository()

	c := &Container{
		Config:         cfg,
		template:       noop.Template(),
		pageRegistry:   registry.NewMemoryRegistry(),
		cacheTTL:       cacheTTL,
		nodeRepo:       memoryNodeRepo,
		memoryNodeRepo: memoryNodeRepo,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	c.configureRepositories()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch normalized := normalizeProvider(logCfg.Provider); normalized {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure gologger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureDatabase() error {
	if c.bunDB != nil {
		return nil
	}
	if normalizeProvider(c.Config.Storage.Driver) != "sqlite" {
		return nil
	}

	sqldb, err := sql.Open("sqlite3", c.Config.Storage.DSN)
	if err != nil {
		return fmt.Errorf("di: open sqlite database: %w", err)
	}

	c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	c.ownsDB = true

	// The container opened this handle, so it also owns the schema.
	if _, err := c.bunDB.NewCreateTable().
		Model((*content.Node)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		return fmt.Errorf("di: create nodes table: %w", err)
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	if c.memoryNodeRepo == nil {
		// An explicit repository binding wins over the database handle.
		return
	}

	c.nodeRepo = content.NewBunNodeRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.memoryNodeRepo = nil
}

func (c *Container) configureStorage() error {
	if c.storage != nil {
		return nil
	}

	if !c.Config.Generator.Enabled {
		c.storage = storage.NewNoOpProvider()
		return nil
	}

	provider, err := storage.NewFilesystemProvider(".")
	if err != nil {
		return fmt.Errorf("di: configure filesystem storage: %w", err)
	}
	c.storage = provider
	return nil
}

func (c *Container) configureServices() error {
	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(c.parseOptions())
	}

	if c.contentSvc == nil {
		c.contentSvc = content.NewService(
			c.nodeRepo,
			content.WithLogger(logging.ContentLogger(c.loggerProvider)),
		)
	}

	if c.markdownSvc == nil {
		svc, err := markdown.NewService(markdown.Config{
			BasePath:  c.Config.Content.Dir,
			Pattern:   c.Config.Content.Pattern,
			Recursive: c.Config.Content.Recursive,
			Parser:    c.parseOptions(),
		}, c.parser)
		if err != nil {
			return fmt.Errorf("di: configure markdown service: %w", err)
		}
		c.markdownSvc = svc
	}

	if c.importer == nil {
		if err := validation.ValidateSchema(c.frontMatterSchema); err != nil {
			return fmt.Errorf("di: configure front matter schema: %w", err)
		}
		c.importer = markdown.NewImporter(markdown.ImporterConfig{
			Content: c.contentSvc,
			Parser:  c.parser,
			Logger:  logging.MarkdownLogger(c.loggerProvider),
			Schema:  c.frontMatterSchema,
		})
	}

	if c.plannerSvc == nil {
		c.plannerSvc = planner.New(planner.Config{
			PostLimit: c.Config.Planner.PostLimit,
			Template:  c.Config.Planner.Template,
		}, planner.WithLogger(logging.PlannerLogger(c.loggerProvider)))
	}

	if c.generatorSvc == nil {
		if !c.Config.Generator.Enabled {
			c.generatorSvc = generator.NewDisabledService()
			return nil
		}
		c.generatorSvc = generator.NewService(generator.Config{
			OutputDir:       c.Config.Generator.OutputDir,
			BaseURL:         c.Config.Site.BaseURL,
			SiteTitle:       c.Config.Site.Title,
			SiteDescription: c.Config.Site.Description,
			Template:        c.Config.Generator.Template,
			IncludeDrafts:   c.Config.Generator.IncludeDrafts,
			GenerateSitemap: c.Config.Generator.GenerateSitemap,
			GenerateRobots:  c.Config.Generator.GenerateRobots,
			GenerateFeed:    c.Config.Generator.GenerateFeed,
		}, generator.Dependencies{
			Content:  c.contentSvc,
			Planner:  c.plannerSvc,
			Registry: c.pageRegistry,
			Renderer: c.template,
			Storage:  c.storage,
			Logger:   logging.GeneratorLogger(c.loggerProvider),
		})
	}
	return nil
}

func (c *Container) parseOptions() interfaces.ParseOptions {
	parserCfg := c.Config.Content.Parser
	return interfaces.ParseOptions{
		Extensions: parserCfg.Extensions,
		Sanitize:   parserCfg.Sanitize,
		HardWraps:  parserCfg.HardWraps,
		SafeMode:   parserCfg.SafeMode,
	}
}

// Close releases resources owned by the container, such as database handles
// it opened itself. Injected handles remain untouched.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	db := c.bunDB
	c.bunDB = nil
	c.ownsDB = false
	return db.Close()
}

// LoggerProvider exposes the configured logger provider; nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// TemplateRenderer exposes the configured template renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

// StorageProvider exposes the configured storage implementation.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// PageRegistry exposes the configured page registry.
func (c *Container) PageRegistry() interfaces.PageRegistry {
	return c.pageRegistry
}

// BunDB exposes the database handle; nil when running on the memory repository.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// NodeRepository exposes the configured node repository.
func (c *Container) NodeRepository() content.NodeRepository {
	return c.nodeRepo
}

// MarkdownParser exposes the configured markdown parser.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.parser
}

// ContentService returns the configured content service.
func (c *Container) ContentService() content.Service {
	return c.contentSvc
}

// MarkdownService returns the configured markdown loading service.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// Importer returns the configured document importer.
func (c *Container) Importer() *markdown.Importer {
	return c.importer
}

// Planner returns the configured page planner.
func (c *Container) Planner() *planner.Planner {
	return c.plannerSvc
}

// GeneratorService returns the configured generator service.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

func normalizeProvider(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
