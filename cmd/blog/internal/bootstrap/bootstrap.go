package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures configuration for blog CLI bootstraps.
type Options struct {
	ContentDir      string
	Pattern         string
	Recursive       bool
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	Template        string
	PostLimit       int
	IncludeDrafts   bool
	Sitemap         bool
	Robots          bool
	Feed            bool
	StorageDriver   string
	StorageDSN      string
	LoggerProvider  interfaces.LoggerProvider
}

// Module wraps the blog module together with the logger used by CLI handlers.
type Module struct {
	Module *blog.Module
	Logger interfaces.Logger
}

// BuildModule constructs a blog module configured for static build operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()
	cfg.Features.Content = true
	cfg.Features.Generator = true
	cfg.Generator.Enabled = true

	cfg.Content.Dir = strings.TrimSpace(opts.ContentDir)
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Content.Pattern = trimmed
	}
	cfg.Content.Recursive = opts.Recursive

	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	cfg.Site.BaseURL = strings.TrimSpace(opts.BaseURL)
	if trimmed := strings.TrimSpace(opts.SiteTitle); trimmed != "" {
		cfg.Site.Title = trimmed
	}
	cfg.Site.Description = strings.TrimSpace(opts.SiteDescription)
	if trimmed := strings.TrimSpace(opts.Template); trimmed != "" {
		cfg.Planner.Template = trimmed
		cfg.Generator.Template = trimmed
	}
	if opts.PostLimit > 0 {
		cfg.Planner.PostLimit = opts.PostLimit
	}
	cfg.Generator.IncludeDrafts = opts.IncludeDrafts
	// Sitemap and feed entries carry absolute links, so both stay off until
	// the caller supplies a base URL.
	hasBaseURL := cfg.Site.BaseURL != ""
	cfg.Generator.GenerateSitemap = opts.Sitemap && hasBaseURL
	cfg.Generator.GenerateRobots = opts.Robots
	cfg.Generator.GenerateFeed = opts.Feed && hasBaseURL

	if trimmed := strings.TrimSpace(opts.StorageDriver); trimmed != "" {
		cfg.Storage.Driver = trimmed
		cfg.Storage.DSN = strings.TrimSpace(opts.StorageDSN)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	logger := logging.GeneratorLogger(module.Container().LoggerProvider())

	return &Module{
		Module: module,
		Logger: logger,
	}, nil
}
