package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestMemoryRegistryCreatePage(t *testing.T) {
	reg := NewMemoryRegistry()

	err := reg.CreatePage(context.Background(), interfaces.CreatePageRequest{
		Path:     "/blog/first/",
		Template: "post",
		Context:  interfaces.PageContext{Slug: "/blog/first/"},
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	if reg.Len() != 1 {
		t.Fatalf("expected 1 page, got %d", reg.Len())
	}

	page, ok := reg.Get("/blog/first/")
	if !ok {
		t.Fatal("expected page to be retrievable by route")
	}
	if page.Template != "post" {
		t.Fatalf("unexpected template %q", page.Template)
	}
}

func TestMemoryRegistryRejectsEmptyPath(t *testing.T) {
	reg := NewMemoryRegistry()

	err := reg.CreatePage(context.Background(), interfaces.CreatePageRequest{Path: "  "})
	if !errors.Is(err, ErrPathRequired) {
		t.Fatalf("expected ErrPathRequired, got %v", err)
	}
}

func TestMemoryRegistryRejectsDuplicateRoute(t *testing.T) {
	reg := NewMemoryRegistry()

	req := interfaces.CreatePageRequest{Path: "/blog/dup/"}
	if err := reg.CreatePage(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := reg.CreatePage(context.Background(), req)
	var dup *DuplicateRouteError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateRouteError, got %v", err)
	}
	if dup.Path != "/blog/dup/" {
		t.Fatalf("unexpected duplicate path %q", dup.Path)
	}
	if reg.Len() != 1 {
		t.Fatalf("duplicate registration changed page count: %d", reg.Len())
	}
}

func TestMemoryRegistryPreservesOrder(t *testing.T) {
	reg := NewMemoryRegistry()
	routes := []string{"/c/", "/a/", "/b/"}

	for _, route := range routes {
		if err := reg.CreatePage(context.Background(), interfaces.CreatePageRequest{Path: route}); err != nil {
			t.Fatalf("create %s: %v", route, err)
		}
	}

	pages := reg.Pages()
	for i, route := range routes {
		if pages[i].Path != route {
			t.Fatalf("expected %q at position %d, got %q", route, i, pages[i].Path)
		}
	}
}

func TestMemoryRegistryReset(t *testing.T) {
	reg := NewMemoryRegistry()
	if err := reg.CreatePage(context.Background(), interfaces.CreatePageRequest{Path: "/x/"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	reg.Reset()

	if reg.Len() != 0 {
		t.Fatalf("expected empty registry after reset, got %d", reg.Len())
	}
	if err := reg.CreatePage(context.Background(), interfaces.CreatePageRequest{Path: "/x/"}); err != nil {
		t.Fatalf("create after reset: %v", err)
	}
}
