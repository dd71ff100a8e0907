package castmember

import (
	"time"

	"github.com/google/uuid"

	"videocatalog-backend/internal/shared/listing"
)

// MemberType distinguishes directors from actors.
type MemberType int

const (
	TypeDirector MemberType = 1
	TypeActor    MemberType = 2
)

func (t MemberType) Valid() bool {
	return t == TypeDirector || t == TypeActor
}

type CastMember struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Type      MemberType `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

var SortableColumns = []string{"name", "type", "created_at"}

type ListFilter struct {
	listing.Params
	// Type narrows to directors or actors; nil means both.
	Type *MemberType
}
