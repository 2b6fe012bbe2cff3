package sitecmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	syncOperation  = "site.sync_content"
	buildOperation = "site.build"
)

var (
	// ErrContentFeatureDisabled is returned when the content feature flag is disabled at runtime.
	ErrContentFeatureDisabled = errors.New("site command: content feature disabled")
	// ErrGeneratorFeatureDisabled is returned when the generator feature flag is disabled at runtime.
	ErrGeneratorFeatureDisabled = errors.New("site command: generator feature disabled")
)

var (
	_ command.Commander[SyncContentCommand] = (*SyncContentHandler)(nil)
	_ command.Commander[BuildSiteCommand]   = (*BuildSiteHandler)(nil)
)

// DocumentLoader walks a directory for markdown documents.
type DocumentLoader interface {
	LoadDirectory(ctx context.Context, dir string, opts markdown.LoadOptions) ([]*interfaces.Document, error)
}

// DocumentSyncer reconciles loaded documents against the content store.
type DocumentSyncer interface {
	SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts markdown.SyncOptions) (*markdown.SyncResult, error)
}

// SyncContentHandler orchestrates directory sync runs via the shared command handler foundation.
type SyncContentHandler struct {
	inner *commands.Handler[SyncContentCommand]
}

// NewSyncContentHandler creates a handler bound to the supplied loader and syncer.
func NewSyncContentHandler(loader DocumentLoader, syncer DocumentSyncer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncContentCommand]) *SyncContentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncContentCommand) error {
		if !gates.contentEnabled() {
			return ErrContentFeatureDisabled
		}

		docs, err := loader.LoadDirectory(ctx, msg.Directory, markdown.LoadOptions{})
		if err != nil {
			return err
		}

		result, err := syncer.SyncDocuments(ctx, docs, markdown.SyncOptions{
			Kind:           content.NodeKind(msg.Kind),
			DeleteOrphaned: msg.DeleteOrphaned,
			DryRun:         msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": result.Created,
				"updated_count": result.Updated,
				"skipped_count": result.Skipped,
				"deleted_count": result.Deleted,
				"dry_run":       msg.DryRun,
			}).Info("site.command.sync_content.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncContentCommand]{
		commands.WithLogger[SyncContentCommand](baseLogger),
		commands.WithOperation[SyncContentCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncContentCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Kind != "" {
				fields["kind"] = msg.Kind
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncContentCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncContentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncContentCommand].
func (h *SyncContentHandler) Execute(ctx context.Context, msg SyncContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildSiteHandler orchestrates static build runs via the shared command handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler creates a handler bound to the supplied generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if !gates.generatorEnabled() {
			return ErrGeneratorFeatureDisabled
		}

		result, err := service.Build(ctx, generator.BuildOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"pages_built": result.PagesBuilt,
				"artifacts":   result.Artifacts,
				"duration_ms": result.Duration.Milliseconds(),
				"dry_run":     result.DryRun,
			}).Info("site.command.build.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
