package genre

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateGenreRequest struct {
	Name         string      `json:"name" binding:"required"`
	Description  *string     `json:"description"`
	IsActive     *bool       `json:"is_active"`
	CategoriesID []uuid.UUID `json:"categories_id" binding:"required"`
}

func (r CreateGenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255).Error("name must be at most 255 characters"),
		),
		validation.Field(&r.CategoriesID,
			validation.Required.Error("categories_id is required"),
		),
	)
}

type UpdateGenreRequest struct {
	Name         string      `json:"name" binding:"required"`
	Description  *string     `json:"description"`
	IsActive     *bool       `json:"is_active"`
	CategoriesID []uuid.UUID `json:"categories_id" binding:"required"`
}

func (r UpdateGenreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255).Error("name must be at most 255 characters"),
		),
		validation.Field(&r.CategoriesID,
			validation.Required.Error("categories_id is required"),
		),
	)
}
