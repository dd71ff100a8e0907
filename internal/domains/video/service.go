package video

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateVideoRequest) (*Video, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)
	List(ctx context.Context, filter ListFilter) ([]Video, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateVideoRequest) (*Video, error)
	Delete(ctx context.Context, ids []uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}
