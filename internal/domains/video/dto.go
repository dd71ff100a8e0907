package video

import (
	"mime/multipart"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"videocatalog-backend/internal/shared/upload"
)

// VideoAttributes is the common attribute bag of create and update.
// Scalars and relation-id lists bind from JSON or multipart form;
// files come only from multipart.
type VideoAttributes struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	YearLaunched int         `json:"year_launched"`
	Opened       *bool       `json:"opened"`
	Rating       Rating      `json:"rating"`
	Duration     int         `json:"duration"`
	CategoriesID []uuid.UUID `json:"categories_id"`
	GenresID     []uuid.UUID `json:"genres_id"`
	CastMembers  []uuid.UUID `json:"cast_members_id"`

	ThumbFile   *multipart.FileHeader `json:"-"`
	BannerFile  *multipart.FileHeader `json:"-"`
	TrailerFile *multipart.FileHeader `json:"-"`
	VideoFile   *multipart.FileHeader `json:"-"`
}

func (r VideoAttributes) Validate() error {
	ratings := make([]interface{}, len(RatingList))
	for i, v := range RatingList {
		ratings[i] = v
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255).Error("title must be at most 255 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.YearLaunched,
			validation.Required.Error("year_launched is required"),
			validation.Min(1).Error("year_launched must be at least 1"),
		),
		validation.Field(&r.Duration,
			validation.Required.Error("duration is required"),
			validation.Min(1).Error("duration must be at least 1"),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.In(ratings...).Error("rating must be one of L, 10, 12, 14, 16, 18"),
		),
		validation.Field(&r.CategoriesID,
			validation.Required.Error("categories_id is required"),
		),
		validation.Field(&r.GenresID,
			validation.Required.Error("genres_id is required"),
		),
		validation.Field(&r.CastMembers,
			validation.Required.Error("cast_members_id is required"),
		),
	)
}

// FileUploads lists the supplied file parts in column order.
func (r VideoAttributes) FileUploads() []upload.FileField {
	return []upload.FileField{
		{Field: FieldThumbFile, Header: r.ThumbFile},
		{Field: FieldBannerFile, Header: r.BannerFile},
		{Field: FieldTrailerFile, Header: r.TrailerFile},
		{Field: FieldVideoFile, Header: r.VideoFile},
	}
}

type CreateVideoRequest struct {
	VideoAttributes
}

type UpdateVideoRequest struct {
	VideoAttributes
}
