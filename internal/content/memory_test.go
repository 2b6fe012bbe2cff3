package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

func seedNode(t *testing.T, repo *MemoryNodeRepository, path string, date time.Time) *Node {
	t.Helper()
	created, err := repo.Create(context.Background(), &Node{
		Kind:        NodeKindMarkdown,
		Path:        path,
		PublishedAt: &date,
		FrontMatter: interfaces.FrontMatter{Date: date},
	})
	if err != nil {
		t.Fatalf("seed %s: %v", path, err)
	}
	return created
}

func TestMemoryRepositoryCreateAndLookup(t *testing.T) {
	repo := NewMemoryNodeRepository()
	created := seedNode(t, repo, "blog/first/index.md", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	byID, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Path != created.Path {
		t.Fatalf("unexpected path %q", byID.Path)
	}

	byPath, err := repo.GetByPath(context.Background(), created.Path)
	if err != nil {
		t.Fatalf("get by path: %v", err)
	}
	if byPath.ID != created.ID {
		t.Fatalf("unexpected id %s", byPath.ID)
	}
}

func TestMemoryRepositoryDuplicatePath(t *testing.T) {
	repo := NewMemoryNodeRepository()
	seedNode(t, repo, "blog/dup/index.md", time.Now())

	_, err := repo.Create(context.Background(), &Node{Kind: NodeKindMarkdown, Path: "blog/dup/index.md"})
	if !errors.Is(err, ErrNodeExists) {
		t.Fatalf("expected ErrNodeExists, got %v", err)
	}
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := NewMemoryNodeRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}

	_, err = repo.GetByPath(context.Background(), "missing.md")
	if !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestMemoryRepositoryCloneIsolation(t *testing.T) {
	repo := NewMemoryNodeRepository()
	created := seedNode(t, repo, "blog/iso/index.md", time.Now())

	created.Path = "mutated.md"
	if created.Fields == nil {
		created.Fields = map[string]any{}
	}
	created.Fields["slug"] = "/mutated/"

	stored, err := repo.GetByPath(context.Background(), "blog/iso/index.md")
	if err != nil {
		t.Fatalf("lookup after caller mutation: %v", err)
	}
	if _, ok := stored.Fields["slug"]; ok {
		t.Fatal("caller mutation leaked into the repository")
	}
}

func TestMemoryRepositoryListSortsAndLimits(t *testing.T) {
	repo := NewMemoryNodeRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedNode(t, repo, "blog/a/index.md", base)
	seedNode(t, repo, "blog/b/index.md", base.AddDate(0, 1, 0))
	seedNode(t, repo, "blog/c/index.md", base.AddDate(0, 2, 0))

	nodes, err := repo.List(context.Background(), Query{
		Kind:      NodeKindMarkdown,
		SortBy:    SortByDate,
		Direction: SortDescending,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].Path != "blog/c/index.md" || nodes[1].Path != "blog/b/index.md" {
		t.Fatalf("unexpected order: %s, %s", nodes[0].Path, nodes[1].Path)
	}
}

func TestMemoryRepositoryListFiltersKind(t *testing.T) {
	repo := NewMemoryNodeRepository()
	seedNode(t, repo, "blog/post/index.md", time.Now())
	if _, err := repo.Create(context.Background(), &Node{Kind: NodeKindAsset, Path: "images/logo.png"}); err != nil {
		t.Fatalf("create asset: %v", err)
	}

	nodes, err := repo.List(context.Background(), Query{Kind: NodeKindMarkdown})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Kind != NodeKindMarkdown {
		t.Fatalf("expected only markdown nodes, got %d", len(nodes))
	}
}

func TestMemoryRepositorySetField(t *testing.T) {
	repo := NewMemoryNodeRepository()
	created := seedNode(t, repo, "blog/fields/index.md", time.Now())

	updated, err := repo.SetField(context.Background(), created.ID, DerivedFieldSlug, "/blog/fields/")
	if err != nil {
		t.Fatalf("set field: %v", err)
	}
	if route, ok := updated.Slug(); !ok || route != "/blog/fields/" {
		t.Fatalf("unexpected slug %q", route)
	}

	if _, err := repo.SetField(context.Background(), created.ID, "", "x"); !errors.Is(err, ErrFieldKeyRequired) {
		t.Fatalf("expected ErrFieldKeyRequired, got %v", err)
	}
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := NewMemoryNodeRepository()
	created := seedNode(t, repo, "blog/gone/index.md", time.Now())

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByPath(context.Background(), created.Path); !IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(context.Background(), created.ID); !IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
