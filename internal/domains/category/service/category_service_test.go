package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocatalog-backend/internal/domains/category"
)

type fakeCategoryRepo struct {
	category.Repository

	created *category.Category
	fetched *category.Category

	deletedIDs     []uuid.UUID
	deleteAffected int64
	restoredID     uuid.UUID
	restoreErr     error
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	r.created = c
	return c, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	if r.fetched != nil {
		return r.fetched, nil
	}
	return nil, category.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	r.deletedIDs = ids
	return r.deleteAffected, nil
}

func (r *fakeCategoryRepo) Restore(ctx context.Context, id uuid.UUID) error {
	r.restoredID = id
	return r.restoreErr
}

func TestCategoryCreateDefaultsActive(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewCategoryService(repo)

	created, err := svc.Create(context.Background(), &category.CreateCategoryRequest{Name: "test"})
	require.NoError(t, err)

	assert.True(t, created.IsActive)
	assert.Nil(t, created.Description)

	inactive := false
	desc := "d"
	created, err = svc.Create(context.Background(), &category.CreateCategoryRequest{
		Name:        "test",
		Description: &desc,
		IsActive:    &inactive,
	})
	require.NoError(t, err)
	assert.False(t, created.IsActive)
	require.NotNil(t, created.Description)
	assert.Equal(t, "d", *created.Description)
}

func TestCategoryDeletePassesAllIDs(t *testing.T) {
	repo := &fakeCategoryRepo{deleteAffected: 2}
	svc := NewCategoryService(repo)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	require.NoError(t, svc.Delete(context.Background(), ids))
	assert.Equal(t, ids, repo.deletedIDs)
}

func TestCategoryDeleteNothingAffectedIsNotFound(t *testing.T) {
	repo := &fakeCategoryRepo{deleteAffected: 0}
	svc := NewCategoryService(repo)

	err := svc.Delete(context.Background(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestCategoryRestore(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewCategoryService(repo)

	id := uuid.New()
	require.NoError(t, svc.Restore(context.Background(), id))
	assert.Equal(t, id, repo.restoredID)

	repo.restoreErr = category.ErrCategoryNotFound
	assert.ErrorIs(t, svc.Restore(context.Background(), uuid.New()), category.ErrCategoryNotFound)
}
