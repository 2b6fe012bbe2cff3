package sitecmd

import (
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the site command handlers produced by RegisterSiteCommands.
type HandlerSet struct {
	Sync  *SyncContentHandler
	Build *BuildSiteHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	syncHandlerOpts  []commands.HandlerOption[SyncContentCommand]
	buildHandlerOpts []commands.HandlerOption[BuildSiteCommand]
}

// WithSyncHandlerOptions forwards options to the SyncContentHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncContentCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithBuildHandlerOptions forwards options to the BuildSiteHandler constructor.
func WithBuildHandlerOptions(opts ...commands.HandlerOption[BuildSiteCommand]) Option {
	return func(cfg *options) {
		cfg.buildHandlerOpts = append(cfg.buildHandlerOpts, opts...)
	}
}

// RegisterSiteCommands builds site command handlers and registers them with
// the provided registry. A HandlerSet containing the constructed handlers is
// returned so callers can wire additional integrations as needed.
func RegisterSiteCommands(reg CommandRegistry, loader DocumentLoader, syncer DocumentSyncer, builder generator.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if loader == nil || syncer == nil {
		return nil, errors.New("site command registration: content loader and syncer are required")
	}
	if builder == nil {
		return nil, errors.New("site command registration: generator service is required")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "site")

	syncHandler := NewSyncContentHandler(loader, syncer, logger, gates, cfg.syncHandlerOpts...)
	buildHandler := NewBuildSiteHandler(builder, logger, gates, cfg.buildHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(syncHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(buildHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Sync:  syncHandler,
		Build: buildHandler,
	}, nil
}
