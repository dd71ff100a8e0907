package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"videocatalog-backend/internal/domains/castmember"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) castmember.Repository {
	return &postgresRepository{pool: pool}
}

const memberColumns = "id, name, type, created_at, updated_at, deleted_at"

func scanMember(row pgx.Row) (*castmember.CastMember, error) {
	var m castmember.CastMember
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Type,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *castmember.CastMember) (*castmember.CastMember, error) {
	query := `
        INSERT INTO cast_members (id, name, type)
        VALUES ($1, $2, $3)
        RETURNING ` + memberColumns

	created, err := scanMember(r.pool.QueryRow(ctx, query, m.ID, m.Name, m.Type))
	if err != nil {
		return nil, fmt.Errorf("failed to create cast member: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*castmember.CastMember, error) {
	query := `SELECT ` + memberColumns + ` FROM cast_members WHERE id = $1 AND deleted_at IS NULL`

	m, err := scanMember(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, castmember.ErrCastMemberNotFound
		}
		return nil, fmt.Errorf("failed to get cast member by id: %w", err)
	}

	return m, nil
}

func (r *postgresRepository) List(ctx context.Context, filter castmember.ListFilter) ([]castmember.CastMember, int64, error) {
	where := []string{filter.DeletedClause("")}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM cast_members WHERE " + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cast members: %w", err)
	}

	args = append(args, filter.PerPage, filter.Offset())
	query := fmt.Sprintf(
		"SELECT %s FROM cast_members WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		memberColumns, whereClause, filter.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cast members: %w", err)
	}
	defer rows.Close()

	members := []castmember.CastMember{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan cast member: %w", err)
		}
		members = append(members, *m)
	}

	return members, total, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, m *castmember.CastMember) (*castmember.CastMember, error) {
	query := `
        UPDATE cast_members
        SET name = $2, type = $3, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING ` + memberColumns

	updated, err := scanMember(r.pool.QueryRow(ctx, query, m.ID, m.Name, m.Type))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, castmember.ErrCastMemberNotFound
		}
		return nil, fmt.Errorf("failed to update cast member: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `
        UPDATE cast_members
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = ANY($1) AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to soft delete cast members: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE cast_members
        SET deleted_at = NULL, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NOT NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to restore cast member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return castmember.ErrCastMemberNotFound
	}

	return nil
}

func (r *postgresRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM cast_members WHERE id = ANY($1) AND deleted_at IS NULL`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check cast member ids: %w", err)
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
