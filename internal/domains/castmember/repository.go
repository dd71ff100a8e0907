package castmember

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *CastMember) (*CastMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CastMember, error)
	List(ctx context.Context, filter ListFilter) ([]CastMember, int64, error)
	Update(ctx context.Context, m *CastMember) (*CastMember, error)
	SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) error
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
