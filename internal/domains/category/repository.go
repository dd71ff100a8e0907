package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the category persistence gateway. The data model stays
// free of persistence behavior; everything DB-shaped lives behind this
// interface.
type Repository interface {
	Create(ctx context.Context, c *Category) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByIDWithTrashed(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, filter ListFilter) ([]Category, int64, error)
	Update(ctx context.Context, c *Category) (*Category, error)
	SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) error

	// ExistingIDs returns which of the given ids reference live
	// (non-deleted) categories. Used for relation integrity checks by
	// the genre and video write services.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
