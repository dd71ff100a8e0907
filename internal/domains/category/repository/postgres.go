package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/pkg/cache"
)

// postgresRepository implements category.Repository.
// Uses pgxpool for PostgreSQL and Redis for read-through caching.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) category.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	categoryCacheKeyPrefix = "category:"
	cacheTTL               = 15 * time.Minute
)

const categoryColumns = "id, name, description, is_active, created_at, updated_at, deleted_at"

func scanCategory(row pgx.Row) (*category.Category, error) {
	var c category.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	query := `
        INSERT INTO categories (id, name, description, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + categoryColumns

	created, err := scanCategory(r.pool.QueryRow(ctx, query, c.ID, c.Name, c.Description, c.IsActive))
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

// GetByID returns a live (non-deleted) category, cache first.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	cacheKey := categoryCacheKeyPrefix + id.String()

	var cached category.Category
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND deleted_at IS NULL`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, c, cacheTTL)

	return c, nil
}

// GetByIDWithTrashed also finds soft-deleted rows, for restore.
func (r *postgresRepository) GetByIDWithTrashed(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return c, nil
}

func (r *postgresRepository) List(ctx context.Context, filter category.ListFilter) ([]category.Category, int64, error) {
	where := []string{filter.DeletedClause("c")}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("c.name ILIKE $%d", len(args)))
	}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where = append(where, fmt.Sprintf("c.is_active = $%d", len(args)))
	}

	if len(filter.Genres) > 0 {
		args = append(args, filter.Genres)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM category_genre cg WHERE cg.category_id = c.id AND cg.genre_id = ANY($%d))",
			len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM categories c WHERE " + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	args = append(args, filter.PerPage, filter.Offset())
	query := fmt.Sprintf(
		"SELECT %s FROM categories c WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		qualify(categoryColumns, "c"), whereClause, qualifyOrder(filter.OrderBy(), "c"), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}

	return categories, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, c *category.Category) (*category.Category, error) {
	query := `
        UPDATE categories
        SET name = $2, description = $3, is_active = $4, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING ` + categoryColumns

	updated, err := scanCategory(r.pool.QueryRow(ctx, query, c.ID, c.Name, c.Description, c.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	r.invalidateCache(ctx, c.ID)

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `
        UPDATE categories
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = ANY($1) AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to soft delete categories: %w", err)
	}

	for _, id := range ids {
		r.invalidateCache(ctx, id)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE categories
        SET deleted_at = NULL, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NOT NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to restore category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *postgresRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM categories WHERE id = ANY($1) AND deleted_at IS NULL`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check category ids: %w", err)
	}
	defer rows.Close()

	var existing []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing = append(existing, id)
	}

	return existing, rows.Err()
}

// invalidateCache drops the per-id read-through entry after a write so
// the next GetByID sees the new row state.
func (r *postgresRepository) invalidateCache(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, categoryCacheKeyPrefix+id.String())
}

// qualify prefixes each column of a comma-separated list with a table
// alias.
func qualify(columns, alias string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

func qualifyOrder(orderBy, alias string) string {
	return alias + "." + orderBy
}
