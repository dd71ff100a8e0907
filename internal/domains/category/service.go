package category

import (
	"context"

	"github.com/google/uuid"
)

// Service is the category business-logic boundary consumed by handlers.
type Service interface {
	Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, filter ListFilter) ([]Category, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, ids []uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}
