package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultPostLimit caps how many post pages a single plan produces when the
// host does not configure its own limit.
const DefaultPostLimit = 1000

var (
	ErrRegistryRequired = errors.New("planner: page registry is required")
	ErrMissingSlug      = errors.New("planner: node is missing derived slug")
)

// MissingFieldError indicates a node reached the planner without a derived
// field the plan depends on. The plan aborts before any page is registered.
type MissingFieldError struct {
	NodeID uuid.UUID
	Path   string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("planner: node %s (%s) is missing derived field %q", e.NodeID, e.Path, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingSlug
}

// Config tunes how plans are produced.
type Config struct {
	// PostLimit caps the number of pages per plan; zero means DefaultPostLimit.
	PostLimit int
	// Template names the template every planned page renders with.
	Template string
}

// Entry is one planned page: the route to register and the context its
// template receives.
type Entry struct {
	NodeID   uuid.UUID
	Path     string
	Template string
	Context  interfaces.PageContext
}

// Planner turns an ordered node collection into page registrations. Entries
// are chained positionally: each page points at the entry after it (older)
// and the entry before it (newer).
type Planner struct {
	cfg    Config
	logger interfaces.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger attaches a logger to the planner.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a planner.
func New(cfg Config, opts ...Option) *Planner {
	if cfg.PostLimit <= 0 {
		cfg.PostLimit = DefaultPostLimit
	}
	p := &Planner{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan maps nodes to page entries, preserving the input order. Callers pass
// nodes sorted newest first; entry i links to entry i+1 as its previous
// (older) neighbor and entry i-1 as its next (newer) neighbor. Collections
// beyond the post limit are truncated to the first PostLimit nodes before
// linking, so the last retained entry has no previous neighbor.
//
// Every node must carry a derived slug; the first node without one aborts
// the whole plan and nothing is produced.
func (p *Planner) Plan(nodes []*content.Node) ([]Entry, error) {
	if len(nodes) == 0 {
		return []Entry{}, nil
	}

	if len(nodes) > p.cfg.PostLimit {
		p.logger.Debug("truncating plan to post limit", "nodes", len(nodes), "limit", p.cfg.PostLimit)
		nodes = nodes[:p.cfg.PostLimit]
	}

	routes := make([]string, len(nodes))
	for i, node := range nodes {
		route, ok := node.Slug()
		if !ok {
			return nil, &MissingFieldError{
				NodeID: node.ID,
				Path:   node.Path,
				Field:  content.DerivedFieldSlug,
			}
		}
		routes[i] = route
	}

	entries := make([]Entry, len(nodes))
	for i, node := range nodes {
		ctx := interfaces.PageContext{Slug: routes[i]}
		if i+1 < len(nodes) {
			ctx.Previous = neighbor(nodes[i+1], routes[i+1])
		}
		if i > 0 {
			ctx.Next = neighbor(nodes[i-1], routes[i-1])
		}
		entries[i] = Entry{
			NodeID:   node.ID,
			Path:     routes[i],
			Template: p.cfg.Template,
			Context:  ctx,
		}
	}

	return entries, nil
}

// Apply registers every planned entry, in plan order. The first registry
// failure aborts the pass; entries registered before the failure stand, the
// rest are never attempted.
func (p *Planner) Apply(ctx context.Context, registry interfaces.PageRegistry, entries []Entry) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if registry == nil {
		return ErrRegistryRequired
	}

	for _, entry := range entries {
		if err := registry.CreatePage(ctx, interfaces.CreatePageRequest{
			Path:     entry.Path,
			Template: entry.Template,
			Context:  entry.Context,
		}); err != nil {
			return fmt.Errorf("planner: register page %s: %w", entry.Path, err)
		}
	}

	p.logger.Info("registered pages", "count", len(entries))
	return nil
}

// Run plans the nodes and applies the result in one step.
func (p *Planner) Run(ctx context.Context, registry interfaces.PageRegistry, nodes []*content.Node) ([]Entry, error) {
	entries, err := p.Plan(nodes)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(ctx, registry, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func neighbor(node *content.Node, route string) *interfaces.PageNeighbor {
	return &interfaces.PageNeighbor{
		ID:    node.ID,
		Slug:  route,
		Title: node.Title,
		Date:  node.Date(),
	}
}
