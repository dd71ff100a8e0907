package castmember

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateCastMemberRequest) (*CastMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CastMember, error)
	List(ctx context.Context, filter ListFilter) ([]CastMember, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCastMemberRequest) (*CastMember, error)
	Delete(ctx context.Context, ids []uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}
