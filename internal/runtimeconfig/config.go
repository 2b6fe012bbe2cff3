package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrSiteBaseURLRequired = errors.New("blog config: site base URL is required when sitemap or feed generation is enabled")
var ErrContentDirRequired = errors.New("blog config: content directory is required when content ingestion is enabled")
var ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required when generator is enabled")
var ErrPlannerPostLimitInvalid = errors.New("blog config: planner post limit must be zero or positive")
var ErrStorageDriverUnknown = errors.New("blog config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("blog config: storage DSN is required for the sqlite driver")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Site      SiteConfig
	Content   ContentConfig
	Planner   PlannerConfig
	Cache     CacheConfig
	Storage   StorageConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
	Features  Features
	Commands  CommandsConfig
}

// SiteConfig carries site-wide metadata surfaced in templates and feeds.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
}

// ContentConfig captures filesystem and parser behaviour for content ingestion.
type ContentConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
	Parser    ParserConfig
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// PlannerConfig controls post-list page planning.
type PlannerConfig struct {
	PostLimit int
	Template  string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// StorageConfig selects the node repository backend.
type StorageConfig struct {
	Driver string
	DSN    string
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	Template        string
	IncludeDrafts   bool
	CleanBuild      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeed    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Content   bool
	Generator bool
	Commands  bool
	Logger    bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
}

// DefaultConfig returns opinionated defaults for a filesystem-backed blog.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Site: SiteConfig{
			Title: "Blog",
		},
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Planner: PlannerConfig{
			PostLimit: 1000,
			Template:  "post",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Generator: GeneratorConfig{
			OutputDir:       "public",
			Template:        "post",
			CleanBuild:      true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeed:    true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Content:   true,
			Generator: true,
		},
		Commands: CommandsConfig{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.Content {
		if strings.TrimSpace(cfg.Content.Dir) == "" {
			return ErrContentDirRequired
		}
	}
	if cfg.Planner.PostLimit < 0 {
		return ErrPlannerPostLimitInvalid
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		if (cfg.Generator.GenerateSitemap || cfg.Generator.GenerateFeed) && strings.TrimSpace(cfg.Site.BaseURL) == "" {
			return ErrSiteBaseURLRequired
		}
	}
	switch driver := normalizeToken(cfg.Storage.Driver); driver {
	case "", "memory":
	case "sqlite":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Features.Logger {
		provider := normalizeToken(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
