package genre

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository is the genre persistence gateway. Write methods take an
// explicit transaction so the service controls the atomic unit:
// base row plus relation sync commit or roll back together.
type Repository interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, g *Genre) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, g *Genre) error

	// SyncCategoriesWithTx replaces the genre's category set with
	// exactly the given ids, writing only the delta.
	SyncCategoriesWithTx(ctx context.Context, tx pgx.Tx, genreID uuid.UUID, categoryIDs []uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	List(ctx context.Context, filter ListFilter) ([]Genre, int64, error)
	SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) error
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// CategoryIDsByGenre returns the live category ids attached to each
	// of the given genres. Used by the video write service to enforce
	// genre/category consistency.
	CategoryIDsByGenre(ctx context.Context, genreIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}
