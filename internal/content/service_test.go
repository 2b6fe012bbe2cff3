package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func newTestService(opts ...ServiceOption) Service {
	return NewService(NewMemoryNodeRepository(), opts...)
}

func TestServiceCreateDerivesSlugOnce(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), CreateNodeRequest{
		Kind: NodeKindMarkdown,
		Path: "blog/extending-promise/index.md",
		FrontMatter: interfaces.FrontMatter{
			Title: "Extending Promise",
			Date:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Body: "# Extending Promise",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	route, ok := created.Slug()
	if !ok {
		t.Fatal("expected slug to be derived at ingestion")
	}
	if route != "/blog/extending-promise/" {
		t.Fatalf("unexpected slug %q", route)
	}
	if created.Title != "Extending Promise" {
		t.Fatalf("expected title denormalized, got %q", created.Title)
	}
	if created.Date().IsZero() {
		t.Fatal("expected publication date denormalized")
	}
}

func TestServiceCreateSkipsUnrecognizedKind(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), CreateNodeRequest{
		Kind: NodeKindAsset,
		Path: "images/logo.png",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, ok := created.Slug(); ok {
		t.Fatal("expected no slug on unrecognized kind")
	}
	if len(created.Fields) != 0 {
		t.Fatalf("expected node untouched by derivation, got fields %v", created.Fields)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Create(context.Background(), CreateNodeRequest{Kind: NodeKindMarkdown}); !errors.Is(err, ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateNodeRequest{Path: "blog/a.md"}); !errors.Is(err, ErrKindRequired) {
		t.Fatalf("expected ErrKindRequired, got %v", err)
	}
}

func TestServiceCreateRejectsDuplicatePath(t *testing.T) {
	svc := newTestService()

	req := CreateNodeRequest{Kind: NodeKindMarkdown, Path: "blog/dup/index.md"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrNodeExists) {
		t.Fatalf("expected ErrNodeExists, got %v", err)
	}
}

func TestServiceDeterministicIDs(t *testing.T) {
	first := newTestService()
	second := newTestService()

	req := CreateNodeRequest{Kind: NodeKindMarkdown, Path: "blog/stable/index.md"}

	a, err := first.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := second.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.ID != b.ID {
		t.Fatalf("expected deterministic ids, got %s and %s", a.ID, b.ID)
	}
}

func TestServiceSetDerivedFieldSlugImmutable(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), CreateNodeRequest{
		Kind: NodeKindMarkdown,
		Path: "blog/locked/index.md",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetDerivedField(context.Background(), created.ID, DerivedFieldSlug, "/evil/"); !errors.Is(err, ErrSlugImmutable) {
		t.Fatalf("expected ErrSlugImmutable, got %v", err)
	}

	node, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if route, _ := node.Slug(); route != "/blog/locked/" {
		t.Fatalf("slug changed after rejected write: %q", route)
	}
}

func TestServiceSetDerivedFieldOtherKeys(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), CreateNodeRequest{
		Kind: NodeKindMarkdown,
		Path: "blog/extras/index.md",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetDerivedField(context.Background(), created.ID, "readingTime", 7)
	if err != nil {
		t.Fatalf("set field: %v", err)
	}
	if updated.Fields["readingTime"] != 7 {
		t.Fatalf("expected field stored, got %v", updated.Fields)
	}
	if route, ok := updated.Slug(); !ok || route != "/blog/extras/" {
		t.Fatalf("slug disturbed by unrelated field write: %q", route)
	}
}

func TestServiceUpdatePreservesDerivedFields(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), CreateNodeRequest{
		Kind:        NodeKindMarkdown,
		Path:        "blog/evolving/index.md",
		FrontMatter: interfaces.FrontMatter{Title: "v1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), UpdateNodeRequest{
		ID:          created.ID,
		FrontMatter: interfaces.FrontMatter{Title: "v2"},
		Body:        "updated",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "v2" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if route, ok := updated.Slug(); !ok || route != "/blog/evolving/" {
		t.Fatalf("expected slug preserved across update, got %q", route)
	}
}

func TestServiceQueryOrdersByDate(t *testing.T) {
	svc := newTestService()

	dates := map[string]time.Time{
		"blog/a/index.md": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"blog/b/index.md": time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		"blog/c/index.md": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	for path, date := range dates {
		if _, err := svc.Create(context.Background(), CreateNodeRequest{
			Kind:        NodeKindMarkdown,
			Path:        path,
			FrontMatter: interfaces.FrontMatter{Date: date},
		}); err != nil {
			t.Fatalf("create %s: %v", path, err)
		}
	}

	nodes, err := svc.Query(context.Background(), Query{
		Kind:      NodeKindMarkdown,
		SortBy:    SortByDate,
		Direction: SortDescending,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[0].Path != "blog/c/index.md" || nodes[2].Path != "blog/a/index.md" {
		t.Fatalf("unexpected order: %s, %s, %s", nodes[0].Path, nodes[1].Path, nodes[2].Path)
	}
}
