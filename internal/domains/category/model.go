package category

import (
	"time"

	"github.com/google/uuid"

	"videocatalog-backend/internal/shared/listing"
)

// Category is a catalog classification attached to genres and videos.
// Soft-deletable: DeletedAt set means the row is hidden from default
// queries but restorable.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// SortableColumns is the allow-list for list ordering.
var SortableColumns = []string{"name", "is_active", "created_at"}

// ListFilter is the category listing request.
type ListFilter struct {
	listing.Params
	IsActive *bool
	// Genres restricts to categories attached to any of these genre ids.
	Genres []uuid.UUID
}
