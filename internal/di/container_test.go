package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/adapters/storage"
	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func TestNewContainerDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = false

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	if c.ContentService() == nil {
		t.Fatal("expected content service")
	}
	if c.MarkdownService() == nil {
		t.Fatal("expected markdown service")
	}
	if c.Importer() == nil {
		t.Fatal("expected importer")
	}
	if c.Planner() == nil {
		t.Fatal("expected planner")
	}
	if c.NodeRepository() == nil {
		t.Fatal("expected node repository")
	}
	if c.BunDB() != nil {
		t.Fatal("expected no database handle for the memory driver")
	}
	if c.PageRegistry() == nil {
		t.Fatal("expected page registry")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Planner.PostLimit = -1

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrPlannerPostLimitInvalid) {
		t.Fatalf("expected ErrPlannerPostLimitInvalid, got %v", err)
	}
}

func TestNewContainerDisabledGenerator(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = false

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	_, err = c.GeneratorService().Build(context.Background(), generator.BuildOptions{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestNewContainerEnabledGeneratorUsesFilesystemStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = true
	cfg.Site.BaseURL = "https://example.com"

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	if _, ok := c.StorageProvider().(*storage.FilesystemProvider); !ok {
		t.Fatalf("expected filesystem storage provider, got %T", c.StorageProvider())
	}
	if c.GeneratorService() == nil {
		t.Fatal("expected generator service")
	}
}

func TestNewContainerStorageOverride(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = true
	cfg.Site.BaseURL = "https://example.com"

	noop := storage.NewNoOpProvider()
	c, err := di.NewContainer(cfg, di.WithStorage(noop))
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	if c.StorageProvider() != noop {
		t.Fatal("expected injected storage provider to win")
	}
}

func TestNewContainerNodeRepositoryOverride(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = false

	repo := content.NewMemoryNodeRepository()
	c, err := di.NewContainer(cfg, di.WithNodeRepository(repo))
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	if c.NodeRepository() != content.NodeRepository(repo) {
		t.Fatal("expected injected node repository to win")
	}
}

func TestNewContainerSqliteDriverOpensDatabase(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = false
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.DSN = "file::memory:?cache=shared"

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	if c.BunDB() == nil {
		t.Fatal("expected a bun database handle for the sqlite driver")
	}
	if _, ok := c.NodeRepository().(*content.BunNodeRepository); !ok {
		t.Fatalf("expected bun node repository, got %T", c.NodeRepository())
	}
}

func TestNewContainerSqliteDriverCreatesSchema(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = false
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.DSN = "file:di_schema?mode=memory&cache=shared&_fk=1"

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	svc := c.ContentService()

	node, err := svc.Create(ctx, content.CreateNodeRequest{
		Kind: content.NodeKindMarkdown,
		Path: "blog/first-post/index.md",
	})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	got, err := svc.GetByPath(ctx, "blog/first-post/index.md")
	if err != nil {
		t.Fatalf("GetByPath() returned error: %v", err)
	}
	if got.ID != node.ID {
		t.Fatalf("GetByPath() returned node %s, want %s", got.ID, node.ID)
	}

	nodes, err := svc.Query(ctx, content.Query{})
	if err != nil {
		t.Fatalf("Query() returned error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected one stored node, got %d", len(nodes))
	}
}

func TestNewContainerEndToEndSyncAndPlan(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.Enabled = false

	c, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() returned error: %v", err)
	}
	defer c.Close()

	svc := c.ContentService()
	if _, err := svc.Create(context.Background(), content.CreateNodeRequest{
		Kind: content.NodeKindMarkdown,
		Path: "blog/first-post/index.md",
	}); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	nodes, err := svc.Query(context.Background(), content.Query{})
	if err != nil {
		t.Fatalf("Query() returned error: %v", err)
	}

	entries, err := c.Planner().Plan(nodes)
	if err != nil {
		t.Fatalf("Plan() returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one planned entry, got %d", len(entries))
	}
	if entries[0].Context.Slug != "/blog/first-post/" {
		t.Fatalf("unexpected slug: %q", entries[0].Context.Slug)
	}
}
