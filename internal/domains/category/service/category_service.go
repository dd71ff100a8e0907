package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/category"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := &category.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	if id == uuid.Nil {
		return nil, category.ErrCategoryNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context, filter category.ListFilter) ([]category.Category, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *category.UpdateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	return s.repo.Update(ctx, existing)
}

func (s *categoryService) Delete(ctx context.Context, ids []uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, ids)
	if err != nil {
		return err
	}
	if affected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (s *categoryService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
