package castmember

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCastMemberRequest struct {
	Name string     `json:"name" binding:"required"`
	Type MemberType `json:"type" binding:"required"`
}

func (r CreateCastMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255).Error("name must be at most 255 characters"),
		),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.In(TypeDirector, TypeActor).Error("type must be 1 (director) or 2 (actor)"),
		),
	)
}

type UpdateCastMemberRequest struct {
	Name string     `json:"name" binding:"required"`
	Type MemberType `json:"type" binding:"required"`
}

func (r UpdateCastMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255).Error("name must be at most 255 characters"),
		),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.In(TypeDirector, TypeActor).Error("type must be 1 (director) or 2 (actor)"),
		),
	)
}
