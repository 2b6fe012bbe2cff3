package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunNodeRepository is the bun-backed NodeRepository.
type BunNodeRepository struct {
	db   *bun.DB
	repo repository.Repository[*Node]
}

func NewBunNodeRepository(db *bun.DB) *BunNodeRepository {
	return NewBunNodeRepositoryWithCache(db, nil, nil)
}

// NewBunNodeRepositoryWithCache constructs a NodeRepository backed by bun with optional caching.
func NewBunNodeRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunNodeRepository {
	base := NewNodeRepository(db)
	return &BunNodeRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunNodeRepository) Create(ctx context.Context, record *Node) (*Node, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "node", record.Path)
	}
	return created, nil
}

func (r *BunNodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Node, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "node", id.String())
	}
	return result, nil
}

func (r *BunNodeRepository) GetByPath(ctx context.Context, path string) (*Node, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.path = ?", path)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "node", path)
	}
	if len(records) == 0 {
		return nil, &NodeNotFoundError{Key: path}
	}
	return records[0], nil
}

func (r *BunNodeRepository) List(ctx context.Context, query Query) ([]*Node, error) {
	criteria := []repository.SelectCriteria{}

	if kind := strings.TrimSpace(string(query.Kind)); kind != "" {
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.kind = ?", kind)
		}))
	}

	order := orderExpression(query.SortBy, query.Direction)
	criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr(order)
	}))

	if query.Limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(query.Limit, 0))
	}

	records, _, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, mapRepositoryError(err, "node", string(query.Kind))
	}
	return records, nil
}

func (r *BunNodeRepository) Update(ctx context.Context, record *Node) (*Node, error) {
	record.UpdatedAt = time.Now().UTC()
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"published_at",
			"draft",
			"template",
			"frontmatter",
			"body",
			"body_html",
			"checksum",
			"last_modified",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "node", record.ID.String())
	}
	return updated, nil
}

// SetField stores a derived field on the node. Fields live in a JSON column,
// so the write goes through read-modify-update on that column alone.
func (r *BunNodeRepository) SetField(ctx context.Context, id uuid.UUID, key string, value any) (*Node, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Fields == nil {
		record.Fields = map[string]any{}
	}
	record.Fields[key] = value
	record.UpdatedAt = time.Now().UTC()

	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("fields", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "node", id.String())
	}
	return updated, nil
}

func (r *BunNodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("node repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Node)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("node delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NodeNotFoundError{Key: id.String()}
	}
	return nil
}

func orderExpression(field SortField, direction SortDirection) string {
	column := "published_at"
	if field == SortByPath {
		column = "path"
	}
	dir := "DESC"
	if direction == SortAscending {
		dir = "ASC"
	}
	return fmt.Sprintf("?TableAlias.%s %s", column, dir)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NodeNotFoundError{
			Key: key,
		}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
