package content

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NodeRepository persists source nodes and their derived fields.
type NodeRepository interface {
	Create(ctx context.Context, record *Node) (*Node, error)
	Update(ctx context.Context, record *Node) (*Node, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Node, error)
	GetByPath(ctx context.Context, path string) (*Node, error)
	List(ctx context.Context, query Query) ([]*Node, error)
	SetField(ctx context.Context, id uuid.UUID, key string, value any) (*Node, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewNodeRepository returns the raw bun-backed repository for nodes.
func NewNodeRepository(db *bun.DB) repository.Repository[*Node] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Node]{
		NewRecord: func() *Node { return &Node{} },
		GetID: func(n *Node) uuid.UUID {
			return n.ID
		},
		SetID: func(n *Node, id uuid.UUID) {
			n.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(n *Node) string {
			return n.Path
		},
	})
}
