package video

import (
	"time"

	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/castmember"
	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/domains/genre"
	"videocatalog-backend/internal/shared/listing"
)

// Rating is the content-rating classification.
type Rating string

const (
	RatingFree Rating = "L"
	Rating10   Rating = "10"
	Rating12   Rating = "12"
	Rating14   Rating = "14"
	Rating16   Rating = "16"
	Rating18   Rating = "18"
)

var RatingList = []Rating{RatingFree, Rating10, Rating12, Rating14, Rating16, Rating18}

func (r Rating) Valid() bool {
	for _, v := range RatingList {
		if r == v {
			return true
		}
	}
	return false
}

// File field names accepted on the video form. The columns store only
// the generated file name; bytes live in the blob store under
// videos/{id}/{name}.
const (
	FieldThumbFile   = "thumb_file"
	FieldBannerFile  = "banner_file"
	FieldTrailerFile = "trailer_file"
	FieldVideoFile   = "video_file"
)

var FileFields = []string{FieldThumbFile, FieldBannerFile, FieldTrailerFile, FieldVideoFile}

type Video struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	YearLaunched int       `json:"year_launched"`
	Opened       bool      `json:"opened"`
	Rating       Rating    `json:"rating"`
	Duration     int       `json:"duration"`

	ThumbFile   *string `json:"thumb_file"`
	BannerFile  *string `json:"banner_file"`
	TrailerFile *string `json:"trailer_file"`
	VideoFile   *string `json:"video_file"`

	Categories  []category.Category     `json:"categories"`
	Genres      []genre.Genre           `json:"genres"`
	CastMembers []castmember.CastMember `json:"cast_members"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// UploadDir is the blob-store prefix owning this video's files.
func (v *Video) UploadDir() string {
	return "videos/" + v.ID.String()
}

// FileName returns the stored name for a file field, nil when unset.
func (v *Video) FileName(field string) *string {
	switch field {
	case FieldThumbFile:
		return v.ThumbFile
	case FieldBannerFile:
		return v.BannerFile
	case FieldTrailerFile:
		return v.TrailerFile
	case FieldVideoFile:
		return v.VideoFile
	}
	return nil
}

// SetFileName stores a generated name on the matching column.
func (v *Video) SetFileName(field, name string) {
	switch field {
	case FieldThumbFile:
		v.ThumbFile = &name
	case FieldBannerFile:
		v.BannerFile = &name
	case FieldTrailerFile:
		v.TrailerFile = &name
	case FieldVideoFile:
		v.VideoFile = &name
	}
}

var SortableColumns = []string{"title", "year_launched", "created_at"}

type ListFilter struct {
	listing.Params
	Categories []uuid.UUID
	Genres     []uuid.UUID
}
