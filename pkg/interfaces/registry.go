package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PageRegistry accepts page-creation commands emitted by the planner. Entries
// are independent of each other, so implementations are free to apply them in
// any order even though the planner issues them sequentially.
type PageRegistry interface {
	CreatePage(ctx context.Context, req CreatePageRequest) error
}

// CreatePageRequest describes a single routable page to materialise.
type CreatePageRequest struct {
	// Path is the page route, taken verbatim from the node's derived slug.
	Path string
	// Template identifies the renderer for the page. The value is opaque to
	// the planning pipeline.
	Template string
	// Context carries the data the template needs beyond the node itself.
	Context PageContext
}

// PageContext bundles the per-page template inputs.
type PageContext struct {
	Slug string
	// Previous points at the next-older post, Next at the next-newer one.
	// Both are nil at the corresponding end of the timeline.
	Previous *PageNeighbor
	Next     *PageNeighbor
}

// PageNeighbor is a lightweight reference to an adjacent post.
type PageNeighbor struct {
	ID    uuid.UUID
	Slug  string
	Title string
	Date  time.Time
}
