package content

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes source node use-cases: ingestion, lookup, and derived
// field management.
type Service interface {
	Create(ctx context.Context, req CreateNodeRequest) (*Node, error)
	Update(ctx context.Context, req UpdateNodeRequest) (*Node, error)
	Get(ctx context.Context, id uuid.UUID) (*Node, error)
	GetByPath(ctx context.Context, path string) (*Node, error)
	Query(ctx context.Context, query Query) ([]*Node, error)
	SetDerivedField(ctx context.Context, id uuid.UUID, key string, value any) (*Node, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateNodeRequest captures the information required to ingest a node.
// Title, publication date, draft flag and template come from the front
// matter and are denormalized onto the record for querying.
type CreateNodeRequest struct {
	Kind         NodeKind
	Path         string
	FrontMatter  interfaces.FrontMatter
	Body         string
	BodyHTML     string
	Checksum     string
	LastModified time.Time
}

// UpdateNodeRequest carries replacement source data for an existing node.
// Derived fields are never part of an update; they survive untouched.
type UpdateNodeRequest struct {
	ID           uuid.UUID
	FrontMatter  interfaces.FrontMatter
	Body         string
	BodyHTML     string
	Checksum     string
	LastModified time.Time
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces node identifiers from source paths.
type IDGenerator func(path string) uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithDeriver overrides the slug deriver used at ingestion.
func WithDeriver(deriver *SlugDeriver) ServiceOption {
	return func(s *service) {
		if deriver != nil {
			s.deriver = deriver
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// service implements Service.
type service struct {
	nodes   NodeRepository
	deriver *SlugDeriver
	now     func() time.Time
	id      IDGenerator
	logger  interfaces.Logger
}

// NewService constructs a content service backed by the given repository.
func NewService(nodes NodeRepository, opts ...ServiceOption) Service {
	s := &service{
		nodes:   nodes,
		deriver: NewSlugDeriver(),
		now:     time.Now,
		id:      identity.NodeUUID,
		logger:  logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create ingests a node. When the node's kind is recognized, the route slug
// is derived from its source location and attached before the record is
// persisted; unrecognized kinds are stored without derived fields.
func (s *service) Create(ctx context.Context, req CreateNodeRequest) (*Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	path := strings.TrimSpace(req.Path)
	if path == "" {
		return nil, ErrPathRequired
	}
	if strings.TrimSpace(string(req.Kind)) == "" {
		return nil, ErrKindRequired
	}

	if existing, err := s.nodes.GetByPath(ctx, path); err == nil && existing != nil {
		return nil, ErrNodeExists
	} else if err != nil && !IsNotFound(err) {
		return nil, err
	}

	now := s.now().UTC()
	record := &Node{
		ID:           s.id(path),
		Kind:         req.Kind,
		Path:         path,
		FrontMatter:  req.FrontMatter,
		Body:         req.Body,
		BodyHTML:     req.BodyHTML,
		Checksum:     req.Checksum,
		LastModified: req.LastModified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	denormalize(record, req.FrontMatter)

	if s.deriver.Recognizes(record.Kind) {
		route, err := s.deriver.Derive(record)
		if err != nil {
			return nil, err
		}
		record.Fields = map[string]any{DerivedFieldSlug: route}
		s.logger.Debug("derived slug", "path", record.Path, "slug", route)
	}

	created, err := s.nodes.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateNodeRequest) (*Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req.ID == uuid.Nil {
		return nil, &NodeNotFoundError{}
	}

	existing, err := s.nodes.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	record := cloneNode(existing)
	record.FrontMatter = req.FrontMatter
	record.Body = req.Body
	record.BodyHTML = req.BodyHTML
	record.Checksum = req.Checksum
	record.LastModified = req.LastModified
	denormalize(record, req.FrontMatter)

	return s.nodes.Update(ctx, record)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.nodes.GetByID(ctx, id)
}

func (s *service) GetByPath(ctx context.Context, path string) (*Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.nodes.GetByPath(ctx, path)
}

func (s *service) Query(ctx context.Context, query Query) ([]*Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.nodes.List(ctx, query)
}

// SetDerivedField writes a derived field on a node. The slug field is write
// once: after ingestion has stamped it, further writes are rejected.
func (s *service) SetDerivedField(ctx context.Context, id uuid.UUID, key string, value any) (*Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrFieldKeyRequired
	}

	if key == DerivedFieldSlug {
		existing, err := s.nodes.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, ok := existing.Slug(); ok {
			return nil, ErrSlugImmutable
		}
	}

	return s.nodes.SetField(ctx, id, key, value)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.nodes.Delete(ctx, id)
}

func denormalize(record *Node, fm interfaces.FrontMatter) {
	record.Title = fm.Title
	record.Draft = fm.Draft
	record.Template = fm.Template
	if fm.Date.IsZero() {
		record.PublishedAt = nil
		return
	}
	ts := fm.Date.UTC()
	record.PublishedAt = &ts
}
