package video

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository is the video persistence gateway. Writes take an explicit
// transaction: the base row and the three relation syncs form one
// atomic unit owned by the service.
type Repository interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, v *Video) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, v *Video) error

	SyncCategoriesWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error
	SyncGenresWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error
	SyncCastMembersWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)
	List(ctx context.Context, filter ListFilter) ([]Video, int64, error)
	SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) error
}
