package content

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryNodeRepository keeps nodes in process memory. It backs tests and
// hosts that run without a database.
type MemoryNodeRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Node
	byPath map[string]uuid.UUID
}

func NewMemoryNodeRepository() *MemoryNodeRepository {
	return &MemoryNodeRepository{
		byID:   map[uuid.UUID]*Node{},
		byPath: map[string]uuid.UUID{},
	}
}

func (r *MemoryNodeRepository) Create(ctx context.Context, record *Node) (*Node, error) {
	if record == nil || strings.TrimSpace(record.Path) == "" {
		return nil, ErrPathRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byPath[record.Path]; exists {
		return nil, ErrNodeExists
	}

	stored := cloneNode(record)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}

	r.byID[stored.ID] = stored
	r.byPath[stored.Path] = stored.ID
	return cloneNode(stored), nil
}

func (r *MemoryNodeRepository) Update(ctx context.Context, record *Node) (*Node, error) {
	if record == nil {
		return nil, ErrPathRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[record.ID]
	if !ok {
		return nil, &NodeNotFoundError{Key: record.ID.String()}
	}

	stored := cloneNode(record)
	stored.CreatedAt = existing.CreatedAt
	stored.Fields = existing.Fields
	stored.UpdatedAt = time.Now().UTC()

	if existing.Path != stored.Path {
		delete(r.byPath, existing.Path)
	}
	r.byID[stored.ID] = stored
	r.byPath[stored.Path] = stored.ID
	return cloneNode(stored), nil
}

func (r *MemoryNodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NodeNotFoundError{Key: id.String()}
	}
	return cloneNode(record), nil
}

func (r *MemoryNodeRepository) GetByPath(ctx context.Context, path string) (*Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPath[path]
	if !ok {
		return nil, &NodeNotFoundError{Key: path}
	}
	return cloneNode(r.byID[id]), nil
}

func (r *MemoryNodeRepository) List(ctx context.Context, query Query) ([]*Node, error) {
	r.mu.RLock()
	records := make([]*Node, 0, len(r.byID))
	for _, record := range r.byID {
		if query.Kind != "" && record.Kind != query.Kind {
			continue
		}
		records = append(records, cloneNode(record))
	}
	r.mu.RUnlock()

	sortNodes(records, query.SortBy, query.Direction)

	if query.Limit > 0 && len(records) > query.Limit {
		records = records[:query.Limit]
	}
	return records, nil
}

// SetField stores a derived field on the node without touching source data.
func (r *MemoryNodeRepository) SetField(ctx context.Context, id uuid.UUID, key string, value any) (*Node, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrFieldKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NodeNotFoundError{Key: id.String()}
	}
	if record.Fields == nil {
		record.Fields = map[string]any{}
	}
	record.Fields[key] = value
	record.UpdatedAt = time.Now().UTC()
	return cloneNode(record), nil
}

func (r *MemoryNodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byID[id]
	if !ok {
		return &NodeNotFoundError{Key: id.String()}
	}
	delete(r.byPath, record.Path)
	delete(r.byID, id)
	return nil
}

func sortNodes(records []*Node, field SortField, direction SortDirection) {
	sort.SliceStable(records, func(i, j int) bool {
		var less bool
		switch field {
		case SortByPath:
			less = records[i].Path < records[j].Path
		default:
			di, dj := records[i].Date(), records[j].Date()
			if di.Equal(dj) {
				// stable tiebreak so identical dates keep a fixed order
				less = records[i].Path < records[j].Path
				if direction == SortDescending {
					less = !less
				}
			} else {
				less = di.Before(dj)
			}
		}
		if direction == SortDescending {
			return !less
		}
		return less
	})
}
