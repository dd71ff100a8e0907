package service

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/domains/genre"
	"videocatalog-backend/pkg/database"
)

// fakeTxRunner invokes the transaction body with a nil tx. When the
// body fails, the failure is returned as a rollback would.
type fakeTxRunner struct {
	calls int
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	r.calls++
	return fn(nil)
}

type fakeCategoryRepo struct {
	category.Repository
	existing []uuid.UUID
	err      error
}

func (r *fakeCategoryRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.existing, r.err
}

type fakeGenreRepo struct {
	genre.Repository

	created    *genre.Genre
	syncedIDs  []uuid.UUID
	syncErr    error
	createErr  error
	fetched    *genre.Genre
	fetchCalls int

	deletedIDs     []uuid.UUID
	deleteAffected int64
	restoredID     uuid.UUID
	restoreErr     error
}

func (r *fakeGenreRepo) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	r.deletedIDs = ids
	return r.deleteAffected, nil
}

func (r *fakeGenreRepo) Restore(ctx context.Context, id uuid.UUID) error {
	r.restoredID = id
	return r.restoreErr
}

func (r *fakeGenreRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, g *genre.Genre) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = g
	return nil
}

func (r *fakeGenreRepo) UpdateWithTx(ctx context.Context, tx pgx.Tx, g *genre.Genre) error {
	r.created = g
	return nil
}

func (r *fakeGenreRepo) SyncCategoriesWithTx(ctx context.Context, tx pgx.Tx, genreID uuid.UUID, ids []uuid.UUID) error {
	if r.syncErr != nil {
		return r.syncErr
	}
	r.syncedIDs = ids
	return nil
}

func (r *fakeGenreRepo) GetByID(ctx context.Context, id uuid.UUID) (*genre.Genre, error) {
	r.fetchCalls++
	if r.fetched != nil {
		return r.fetched, nil
	}
	return &genre.Genre{ID: id}, nil
}

func TestGenreCreateWithValidCategories(t *testing.T) {
	catID := uuid.New()
	repo := &fakeGenreRepo{}
	catRepo := &fakeCategoryRepo{existing: []uuid.UUID{catID}}
	tx := &fakeTxRunner{}

	svc := NewGenreService(repo, catRepo, tx)

	created, err := svc.Create(context.Background(), &genre.CreateGenreRequest{
		Name:         "Western",
		CategoriesID: []uuid.UUID{catID},
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	require.NotNil(t, repo.created)
	assert.Equal(t, "Western", repo.created.Name)
	assert.True(t, repo.created.IsActive)
	assert.Equal(t, []uuid.UUID{catID}, repo.syncedIDs)
	assert.Equal(t, 1, tx.calls)
}

func TestGenreCreatePersistsDescription(t *testing.T) {
	catID := uuid.New()
	repo := &fakeGenreRepo{}
	catRepo := &fakeCategoryRepo{existing: []uuid.UUID{catID}}

	svc := NewGenreService(repo, catRepo, &fakeTxRunner{})

	desc := "long form stories"
	_, err := svc.Create(context.Background(), &genre.CreateGenreRequest{
		Name:         "Drama",
		Description:  &desc,
		CategoriesID: []uuid.UUID{catID},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	require.NotNil(t, repo.created.Description)
	assert.Equal(t, desc, *repo.created.Description)
}

func TestGenreUpdateReplacesDescription(t *testing.T) {
	catID := uuid.New()
	oldDesc := "old"
	existing := &genre.Genre{ID: uuid.New(), Name: "Drama", Description: &oldDesc, IsActive: true}

	repo := &fakeGenreRepo{fetched: existing}
	catRepo := &fakeCategoryRepo{existing: []uuid.UUID{catID}}

	svc := NewGenreService(repo, catRepo, &fakeTxRunner{})

	// Omitting description on update clears it.
	_, err := svc.Update(context.Background(), existing.ID, &genre.UpdateGenreRequest{
		Name:         "Drama",
		CategoriesID: []uuid.UUID{catID},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Nil(t, repo.created.Description)
}

func TestGenreCreateRejectsUnknownCategories(t *testing.T) {
	missing := uuid.New()
	repo := &fakeGenreRepo{}
	catRepo := &fakeCategoryRepo{existing: nil}
	tx := &fakeTxRunner{}

	svc := NewGenreService(repo, catRepo, tx)

	created, err := svc.Create(context.Background(), &genre.CreateGenreRequest{
		Name:         "Western",
		CategoriesID: []uuid.UUID{missing},
	})
	require.Error(t, err)
	assert.Nil(t, created)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "categories_id")
	assert.Contains(t, verrs["categories_id"].Error(), missing.String())

	// Nothing may be persisted when the relation check fails.
	assert.Nil(t, repo.created)
	assert.Equal(t, 0, tx.calls)
}

func TestGenreCreateRollsBackOnSyncFailure(t *testing.T) {
	catID := uuid.New()
	repo := &fakeGenreRepo{syncErr: errors.New("sync failed")}
	catRepo := &fakeCategoryRepo{existing: []uuid.UUID{catID}}
	tx := &fakeTxRunner{}

	svc := NewGenreService(repo, catRepo, tx)

	created, err := svc.Create(context.Background(), &genre.CreateGenreRequest{
		Name:         "Western",
		CategoriesID: []uuid.UUID{catID},
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.Equal(t, 0, repo.fetchCalls)
}

func TestGenreCreateRequiresCategories(t *testing.T) {
	svc := NewGenreService(&fakeGenreRepo{}, &fakeCategoryRepo{}, &fakeTxRunner{})

	_, err := svc.Create(context.Background(), &genre.CreateGenreRequest{Name: "Western"})
	require.Error(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "categories_id")
}

func TestGenreUpdateSyncsNewCategorySet(t *testing.T) {
	oldCat, newCat := uuid.New(), uuid.New()
	existing := &genre.Genre{ID: uuid.New(), Name: "Old", IsActive: true}

	repo := &fakeGenreRepo{fetched: existing}
	catRepo := &fakeCategoryRepo{existing: []uuid.UUID{oldCat, newCat}}
	tx := &fakeTxRunner{}

	svc := NewGenreService(repo, catRepo, tx)

	updated, err := svc.Update(context.Background(), existing.ID, &genre.UpdateGenreRequest{
		Name:         "New",
		CategoriesID: []uuid.UUID{newCat},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, []uuid.UUID{newCat}, repo.syncedIDs)
	assert.Equal(t, 1, tx.calls)
}

func TestGenreDeletePassesAllIDs(t *testing.T) {
	repo := &fakeGenreRepo{deleteAffected: 2}
	svc := NewGenreService(repo, &fakeCategoryRepo{}, &fakeTxRunner{})

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	require.NoError(t, svc.Delete(context.Background(), ids))
	assert.Equal(t, ids, repo.deletedIDs)
}

func TestGenreDeleteNothingAffectedIsNotFound(t *testing.T) {
	repo := &fakeGenreRepo{deleteAffected: 0}
	svc := NewGenreService(repo, &fakeCategoryRepo{}, &fakeTxRunner{})

	err := svc.Delete(context.Background(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)
}

func TestGenreRestore(t *testing.T) {
	repo := &fakeGenreRepo{}
	svc := NewGenreService(repo, &fakeCategoryRepo{}, &fakeTxRunner{})

	id := uuid.New()
	require.NoError(t, svc.Restore(context.Background(), id))
	assert.Equal(t, id, repo.restoredID)

	repo.restoreErr = genre.ErrGenreNotFound
	assert.ErrorIs(t, svc.Restore(context.Background(), uuid.New()), genre.ErrGenreNotFound)
}

func TestGenreGetByIDNilUUID(t *testing.T) {
	svc := NewGenreService(&fakeGenreRepo{}, &fakeCategoryRepo{}, &fakeTxRunner{})

	_, err := svc.GetByID(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)
}
