package genre

import (
	"time"

	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/shared/listing"
)

// Genre groups videos and must always reference at least one live
// category. Categories are eager-loaded on reads.
type Genre struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	IsActive    bool                `json:"is_active"`
	Categories  []category.Category `json:"categories"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   *time.Time          `json:"deleted_at,omitempty"`
}

var SortableColumns = []string{"name", "is_active", "created_at"}

type ListFilter struct {
	listing.Params
	IsActive *bool
	// Categories narrows to genres attached to any of the given
	// category ids or category names (mixed list).
	Categories []string
}
