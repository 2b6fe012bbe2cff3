package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var ErrPathRequired = errors.New("registry: page path is required")

// DuplicateRouteError indicates two pages tried to claim the same route.
type DuplicateRouteError struct {
	Path string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("registry: route %q is already registered", e.Path)
}

// MemoryRegistry collects page registrations in process memory. It preserves
// registration order and rejects duplicate routes.
type MemoryRegistry struct {
	mu    sync.RWMutex
	pages []interfaces.CreatePageRequest
	index map[string]int
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		index: map[string]int{},
	}
}

// CreatePage registers a page under its route.
func (r *MemoryRegistry) CreatePage(ctx context.Context, req interfaces.CreatePageRequest) error {
	if strings.TrimSpace(req.Path) == "" {
		return ErrPathRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[req.Path]; exists {
		return &DuplicateRouteError{Path: req.Path}
	}

	r.index[req.Path] = len(r.pages)
	r.pages = append(r.pages, req)
	return nil
}

// Pages returns registrations in the order they were created.
func (r *MemoryRegistry) Pages() []interfaces.CreatePageRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]interfaces.CreatePageRequest(nil), r.pages...)
}

// Get returns the registration for a route.
func (r *MemoryRegistry) Get(path string) (interfaces.CreatePageRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[path]
	if !ok {
		return interfaces.CreatePageRequest{}, false
	}
	return r.pages[i], true
}

// Len reports how many pages have been registered.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}

// Reset discards every registration.
func (r *MemoryRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = nil
	r.index = map[string]int{}
}
