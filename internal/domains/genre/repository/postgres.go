package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/domains/genre"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) genre.Repository {
	return &postgresRepository{pool: pool}
}

const genreColumns = "id, name, description, is_active, created_at, updated_at, deleted_at"

func scanGenre(row pgx.Row) (*genre.Genre, error) {
	var g genre.Genre
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.IsActive,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, g *genre.Genre) error {
	query := `
        INSERT INTO genres (id, name, description, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query, g.ID, g.Name, g.Description, g.IsActive).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, g *genre.Genre) error {
	query := `
        UPDATE genres
        SET name = $2, description = $3, is_active = $4, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING updated_at`

	err := tx.QueryRow(ctx, query, g.ID, g.Name, g.Description, g.IsActive).Scan(&g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return genre.ErrGenreNotFound
		}
		return fmt.Errorf("failed to update genre: %w", err)
	}
	return nil
}

// SyncCategoriesWithTx computes the delta between the current and the
// desired category set, deleting removed rows and inserting added ones.
// Unchanged rows are left alone.
func (r *postgresRepository) SyncCategoriesWithTx(ctx context.Context, tx pgx.Tx, genreID uuid.UUID, categoryIDs []uuid.UUID) error {
	rows, err := tx.Query(ctx, `SELECT category_id FROM category_genre WHERE genre_id = $1`, genreID)
	if err != nil {
		return fmt.Errorf("failed to load current categories: %w", err)
	}

	current := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	desired := map[uuid.UUID]bool{}
	var toInsert []uuid.UUID
	for _, id := range categoryIDs {
		desired[id] = true
		if !current[id] {
			toInsert = append(toInsert, id)
		}
	}

	var toDelete []uuid.UUID
	for id := range current {
		if !desired[id] {
			toDelete = append(toDelete, id)
		}
	}

	if len(toDelete) > 0 {
		_, err := tx.Exec(ctx,
			`DELETE FROM category_genre WHERE genre_id = $1 AND category_id = ANY($2)`,
			genreID, toDelete)
		if err != nil {
			return fmt.Errorf("failed to detach categories: %w", err)
		}
	}

	for _, id := range toInsert {
		_, err := tx.Exec(ctx,
			`INSERT INTO category_genre (genre_id, category_id) VALUES ($1, $2)`,
			genreID, id)
		if err != nil {
			return fmt.Errorf("failed to attach category %s: %w", id, err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	query := `SELECT ` + genreColumns + ` FROM genres WHERE id = $1 AND deleted_at IS NULL`

	g, err := scanGenre(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}

	if err := r.loadCategories(ctx, []*genre.Genre{g}); err != nil {
		return nil, err
	}

	return g, nil
}

func (r *postgresRepository) List(ctx context.Context, filter genre.ListFilter) ([]genre.Genre, int64, error) {
	where := []string{filter.DeletedClause("g")}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("g.name ILIKE $%d", len(args)))
	}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where = append(where, fmt.Sprintf("g.is_active = $%d", len(args)))
	}

	// The categories filter matches attached category ids OR names,
	// mirroring the admin UI's mixed autocomplete values.
	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		where = append(where, fmt.Sprintf(
			`EXISTS (
                SELECT 1 FROM category_genre cg
                JOIN categories c ON c.id = cg.category_id
                WHERE cg.genre_id = g.id
                  AND (c.id::text = ANY($%d) OR c.name = ANY($%d))
            )`, len(args), len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM genres g WHERE " + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count genres: %w", err)
	}

	args = append(args, filter.PerPage, filter.Offset())
	query := fmt.Sprintf(
		"SELECT %s FROM genres g WHERE %s ORDER BY g.%s LIMIT $%d OFFSET $%d",
		qualifyGenreColumns(), whereClause, filter.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := []genre.Genre{}
	var refs []*genre.Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range genres {
		refs = append(refs, &genres[i])
	}
	if err := r.loadCategories(ctx, refs); err != nil {
		return nil, 0, err
	}

	return genres, total, nil
}

// loadCategories eager-loads the category association for a batch of
// genres with a single query.
func (r *postgresRepository) loadCategories(ctx context.Context, genres []*genre.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(genres))
	byID := make(map[uuid.UUID]*genre.Genre, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
		byID[g.ID] = g
		g.Categories = []category.Category{}
	}

	query := `
        SELECT cg.genre_id, c.id, c.name, c.description, c.is_active, c.created_at, c.updated_at, c.deleted_at
        FROM category_genre cg
        JOIN categories c ON c.id = cg.category_id
        WHERE cg.genre_id = ANY($1) AND c.deleted_at IS NULL
        ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load genre categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var genreID uuid.UUID
		var c category.Category
		err := rows.Scan(&genreID, &c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
		if err != nil {
			return err
		}
		if g, ok := byID[genreID]; ok {
			g.Categories = append(g.Categories, c)
		}
	}

	return rows.Err()
}

func (r *postgresRepository) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `
        UPDATE genres
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = ANY($1) AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to soft delete genres: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE genres
        SET deleted_at = NULL, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NOT NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to restore genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return genre.ErrGenreNotFound
	}

	return nil
}

func (r *postgresRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM genres WHERE id = ANY($1) AND deleted_at IS NULL`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check genre ids: %w", err)
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

func (r *postgresRepository) CategoryIDsByGenre(ctx context.Context, genreIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(genreIDs))
	if len(genreIDs) == 0 {
		return result, nil
	}
	for _, id := range genreIDs {
		result[id] = nil
	}

	query := `
        SELECT cg.genre_id, cg.category_id
        FROM category_genre cg
        JOIN categories c ON c.id = cg.category_id
        WHERE cg.genre_id = ANY($1) AND c.deleted_at IS NULL`

	rows, err := r.pool.Query(ctx, query, genreIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load genre category ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var genreID, categoryID uuid.UUID
		if err := rows.Scan(&genreID, &categoryID); err != nil {
			return nil, err
		}
		result[genreID] = append(result[genreID], categoryID)
	}

	return result, rows.Err()
}

func qualifyGenreColumns() string {
	parts := strings.Split(genreColumns, ", ")
	for i, p := range parts {
		parts[i] = "g." + p
	}
	return strings.Join(parts, ", ")
}
