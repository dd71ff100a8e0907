package genre

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req *CreateGenreRequest) (*Genre, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	List(ctx context.Context, filter ListFilter) ([]Genre, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateGenreRequest) (*Genre, error)
	Delete(ctx context.Context, ids []uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}
