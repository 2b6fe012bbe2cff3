package sitecmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/planner"
	"github.com/goliatone/go-blog/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type fakeLoader struct {
	docs []*interfaces.Document
	err  error

	dir string
}

func (f *fakeLoader) LoadDirectory(_ context.Context, dir string, _ markdown.LoadOptions) ([]*interfaces.Document, error) {
	f.dir = dir
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

type fakeSyncer struct {
	result *markdown.SyncResult
	err    error

	calls int
	opts  markdown.SyncOptions
}

func (f *fakeSyncer) SyncDocuments(_ context.Context, _ []*interfaces.Document, opts markdown.SyncOptions) (*markdown.SyncResult, error) {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeBuilder struct {
	result *generator.BuildResult
	err    error

	calls int
	opts  generator.BuildOptions
}

func (f *fakeBuilder) Build(_ context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	f.calls++
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeBuilder) Plan(context.Context) ([]planner.Entry, error) { return nil, nil }

func (f *fakeBuilder) Clean(context.Context) error { return nil }

func TestSyncContentHandlerExecutes(t *testing.T) {
	loader := &fakeLoader{docs: []*interfaces.Document{{FilePath: "blog/a/index.md"}}}
	syncer := &fakeSyncer{result: &markdown.SyncResult{Created: 1}}

	handler := NewSyncContentHandler(loader, syncer, nil, FeatureGates{})

	cmd := SyncContentCommand{Directory: "content", DeleteOrphaned: true, DryRun: true}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if loader.dir != "content" {
		t.Fatalf("expected loader called with %q, got %q", "content", loader.dir)
	}
	if syncer.calls != 1 {
		t.Fatalf("expected one sync call, got %d", syncer.calls)
	}
	if !syncer.opts.DeleteOrphaned || !syncer.opts.DryRun {
		t.Fatalf("expected options forwarded, got %+v", syncer.opts)
	}
}

func TestSyncContentHandlerValidatesDirectory(t *testing.T) {
	loader := &fakeLoader{}
	syncer := &fakeSyncer{}

	handler := NewSyncContentHandler(loader, syncer, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncContentCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if syncer.calls != 0 {
		t.Fatal("expected syncer untouched when validation fails")
	}
}

func TestSyncContentHandlerHonoursFeatureGate(t *testing.T) {
	loader := &fakeLoader{}
	syncer := &fakeSyncer{}

	handler := NewSyncContentHandler(loader, syncer, nil, FeatureGates{
		ContentEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), SyncContentCommand{Directory: "content"})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrContentFeatureDisabled) {
		t.Fatalf("expected ErrContentFeatureDisabled, got %v", err)
	}
	if syncer.calls != 0 {
		t.Fatal("expected syncer untouched when feature is disabled")
	}
}

func TestSyncContentHandlerPropagatesLoaderError(t *testing.T) {
	loader := &fakeLoader{err: errors.New("walk failed")}
	syncer := &fakeSyncer{}

	handler := NewSyncContentHandler(loader, syncer, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncContentCommand{Directory: "content"})
	if err == nil {
		t.Fatal("expected loader error")
	}
	if syncer.calls != 0 {
		t.Fatal("expected syncer untouched when loading fails")
	}
}

func TestBuildSiteHandlerExecutes(t *testing.T) {
	builder := &fakeBuilder{result: &generator.BuildResult{PagesBuilt: 3, Artifacts: 5}}

	handler := NewBuildSiteHandler(builder, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), BuildSiteCommand{DryRun: true}); err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if builder.calls != 1 {
		t.Fatalf("expected one build call, got %d", builder.calls)
	}
	if !builder.opts.DryRun {
		t.Fatal("expected dry run forwarded to builder")
	}
}

func TestBuildSiteHandlerHonoursFeatureGate(t *testing.T) {
	builder := &fakeBuilder{}

	handler := NewBuildSiteHandler(builder, nil, FeatureGates{
		GeneratorEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrGeneratorFeatureDisabled) {
		t.Fatalf("expected ErrGeneratorFeatureDisabled, got %v", err)
	}
	if builder.calls != 0 {
		t.Fatal("expected builder untouched when feature is disabled")
	}
}

func TestRegisterSiteCommandsRequiresDependencies(t *testing.T) {
	if _, err := RegisterSiteCommands(nil, nil, nil, &fakeBuilder{}, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when loader and syncer are missing")
	}
	if _, err := RegisterSiteCommands(nil, &fakeLoader{}, &fakeSyncer{}, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when generator service is missing")
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterSiteCommandsRegistersHandlers(t *testing.T) {
	reg := &recordingRegistry{}

	set, err := RegisterSiteCommands(reg, &fakeLoader{}, &fakeSyncer{}, &fakeBuilder{}, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterSiteCommands() returned error: %v", err)
	}

	if set == nil || set.Sync == nil || set.Build == nil {
		t.Fatal("expected a fully populated handler set")
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected two registered handlers, got %d", len(reg.handlers))
	}
}
