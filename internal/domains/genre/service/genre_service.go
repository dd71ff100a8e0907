package service

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/domains/genre"
	"videocatalog-backend/pkg/database"
)

// genreService orchestrates genre writes: base row plus the category
// relation set as one transactional unit.
type genreService struct {
	repo         genre.Repository
	categoryRepo category.Repository
	tx           database.TxRunner
}

func NewGenreService(repo genre.Repository, categoryRepo category.Repository, tx database.TxRunner) genre.Service {
	return &genreService{
		repo:         repo,
		categoryRepo: categoryRepo,
		tx:           tx,
	}
}

// validateCategoryIDs rejects ids referencing missing or soft-deleted
// categories, surfacing a field-keyed validation error instead of a
// generic failure.
func (s *genreService) validateCategoryIDs(ctx context.Context, ids []uuid.UUID) error {
	existing, err := s.categoryRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check category ids: %w", err)
	}

	found := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}

	if len(missing) > 0 {
		return validation.Errors{
			"categories_id": fmt.Errorf("invalid category ids: %s", strings.Join(missing, ", ")),
		}
	}

	return nil
}

func (s *genreService) Create(ctx context.Context, req *genre.CreateGenreRequest) (*genre.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.validateCategoryIDs(ctx, req.CategoriesID); err != nil {
		return nil, err
	}

	g := &genre.Genre{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}

	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.repo.CreateWithTx(ctx, tx, g); err != nil {
			return err
		}
		return s.repo.SyncCategoriesWithTx(ctx, tx, g.ID, req.CategoriesID)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, g.ID)
}

func (s *genreService) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	if id == uuid.Nil {
		return nil, genre.ErrGenreNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) List(ctx context.Context, filter genre.ListFilter) ([]genre.Genre, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *genreService) Update(ctx context.Context, id uuid.UUID, req *genre.UpdateGenreRequest) (*genre.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateCategoryIDs(ctx, req.CategoriesID); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.repo.UpdateWithTx(ctx, tx, existing); err != nil {
			return err
		}
		return s.repo.SyncCategoriesWithTx(ctx, tx, existing.ID, req.CategoriesID)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, existing.ID)
}

func (s *genreService) Delete(ctx context.Context, ids []uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, ids)
	if err != nil {
		return err
	}
	if affected == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}

func (s *genreService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
