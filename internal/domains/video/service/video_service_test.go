package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocatalog-backend/internal/domains/castmember"
	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/domains/genre"
	"videocatalog-backend/internal/domains/video"
	"videocatalog-backend/internal/domains/video/job"
	"videocatalog-backend/internal/shared/upload"
	"videocatalog-backend/pkg/database"
)

type fakeTxRunner struct {
	calls int
	err   error
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return fn(nil)
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]bool{}}
}

func (s *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = true
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

func (s *fakeStore) URL(key string) string { return "http://store.local/" + key }

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

type fakeCategoryRepo struct {
	category.Repository
	existing []uuid.UUID
}

func (r *fakeCategoryRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.existing, nil
}

type fakeGenreRepo struct {
	genre.Repository
	existing []uuid.UUID
	byGenre  map[uuid.UUID][]uuid.UUID
}

func (r *fakeGenreRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.existing, nil
}

func (r *fakeGenreRepo) CategoryIDsByGenre(ctx context.Context, genreIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	return r.byGenre, nil
}

type fakeCastMemberRepo struct {
	castmember.Repository
	existing []uuid.UUID
}

func (r *fakeCastMemberRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return r.existing, nil
}

type fakeVideoRepo struct {
	video.Repository

	created     *video.Video
	updated     *video.Video
	fetched     *video.Video
	categoryIDs []uuid.UUID
	genreIDs    []uuid.UUID
	memberIDs   []uuid.UUID

	deletedIDs     []uuid.UUID
	deleteAffected int64
	restoredID     uuid.UUID
	restoreErr     error
}

func (r *fakeVideoRepo) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	r.deletedIDs = ids
	return r.deleteAffected, nil
}

func (r *fakeVideoRepo) Restore(ctx context.Context, id uuid.UUID) error {
	r.restoredID = id
	return r.restoreErr
}

func (r *fakeVideoRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, v *video.Video) error {
	r.created = v
	return nil
}

func (r *fakeVideoRepo) UpdateWithTx(ctx context.Context, tx pgx.Tx, v *video.Video) error {
	r.updated = v
	return nil
}

func (r *fakeVideoRepo) SyncCategoriesWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error {
	r.categoryIDs = ids
	return nil
}

func (r *fakeVideoRepo) SyncGenresWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error {
	r.genreIDs = ids
	return nil
}

func (r *fakeVideoRepo) SyncCastMembersWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error {
	r.memberIDs = ids
	return nil
}

func (r *fakeVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	if r.fetched != nil {
		return r.fetched, nil
	}
	return &video.Video{ID: id}, nil
}

type fixture struct {
	catID    uuid.UUID
	genreID  uuid.UUID
	memberID uuid.UUID

	repo    *fakeVideoRepo
	cats    *fakeCategoryRepo
	genres  *fakeGenreRepo
	members *fakeCastMemberRepo
	tx      *fakeTxRunner
	store   *fakeStore
	jobs    *fakeEnqueuer

	svc video.Service
}

func newFixture() *fixture {
	f := &fixture{
		catID:    uuid.New(),
		genreID:  uuid.New(),
		memberID: uuid.New(),
		repo:     &fakeVideoRepo{},
		tx:       &fakeTxRunner{},
		store:    newFakeStore(),
		jobs:     &fakeEnqueuer{},
	}
	f.cats = &fakeCategoryRepo{existing: []uuid.UUID{f.catID}}
	f.genres = &fakeGenreRepo{
		existing: []uuid.UUID{f.genreID},
		byGenre:  map[uuid.UUID][]uuid.UUID{f.genreID: {f.catID}},
	}
	f.members = &fakeCastMemberRepo{existing: []uuid.UUID{f.memberID}}

	f.svc = NewVideoService(f.repo, f.cats, f.genres, f.members, f.tx, upload.NewManager(f.store), f.jobs)
	return f
}

func (f *fixture) validRequest() *video.CreateVideoRequest {
	return &video.CreateVideoRequest{
		VideoAttributes: video.VideoAttributes{
			Title:        "The Searchers",
			Description:  "A western",
			YearLaunched: 1956,
			Rating:       video.Rating14,
			Duration:     119,
			CategoriesID: []uuid.UUID{f.catID},
			GenresID:     []uuid.UUID{f.genreID},
			CastMembers:  []uuid.UUID{f.memberID},
		},
	}
}

func makeFileHeader(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.Len(t, form.File[field], 1)
	return form.File[field][0]
}

func TestVideoCreateSyncsAllRelations(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), f.validRequest())
	require.NoError(t, err)
	require.NotNil(t, created)

	require.NotNil(t, f.repo.created)
	assert.Equal(t, []uuid.UUID{f.catID}, f.repo.categoryIDs)
	assert.Equal(t, []uuid.UUID{f.genreID}, f.repo.genreIDs)
	assert.Equal(t, []uuid.UUID{f.memberID}, f.repo.memberIDs)
	assert.Equal(t, 1, f.tx.calls)
}

func TestVideoCreateRejectsUnknownCategory(t *testing.T) {
	f := newFixture()
	f.cats.existing = nil

	created, err := f.svc.Create(context.Background(), f.validRequest())
	require.Error(t, err)
	assert.Nil(t, created)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "categories_id")

	assert.Nil(t, f.repo.created)
	assert.Equal(t, 0, f.tx.calls)
}

func TestVideoCreateRejectsGenreWithoutSelectedCategory(t *testing.T) {
	f := newFixture()
	// The genre exists but is linked to a category the request does not select.
	f.genres.byGenre = map[uuid.UUID][]uuid.UUID{f.genreID: {uuid.New()}}

	created, err := f.svc.Create(context.Background(), f.validRequest())
	require.Error(t, err)
	assert.Nil(t, created)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "genres_id")
	assert.Equal(t, 0, f.tx.calls)
}

func TestVideoCreateStoresFilesAndRecordsNames(t *testing.T) {
	f := newFixture()

	req := f.validRequest()
	req.ThumbFile = makeFileHeader(t, "thumb_file", "thumb.jpg", "img")

	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, f.repo.created)
	require.NotNil(t, f.repo.created.ThumbFile)
	assert.True(t, strings.HasSuffix(*f.repo.created.ThumbFile, ".jpg"))
	assert.Equal(t, 1, f.store.count())
}

func TestVideoCreateRemovesFilesWhenTransactionFails(t *testing.T) {
	f := newFixture()
	f.tx.err = errors.New("deadlock detected")

	req := f.validRequest()
	req.ThumbFile = makeFileHeader(t, "thumb_file", "thumb.jpg", "img")
	req.BannerFile = makeFileHeader(t, "banner_file", "banner.png", "img")

	created, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, created)

	// Compensating deletes must leave no orphaned blobs behind.
	assert.Equal(t, 0, f.store.count())
}

func TestVideoUpdateEnqueuesPurgeForReplacedFiles(t *testing.T) {
	f := newFixture()

	oldName := "oldthumb.jpg"
	existing := &video.Video{
		ID:           uuid.New(),
		Title:        "Old",
		Description:  "old",
		YearLaunched: 1950,
		Rating:       video.RatingFree,
		Duration:     90,
		ThumbFile:    &oldName,
	}
	f.repo.fetched = existing

	req := &video.UpdateVideoRequest{VideoAttributes: f.validRequest().VideoAttributes}
	req.ThumbFile = makeFileHeader(t, "thumb_file", "new.jpg", "img")

	_, err := f.svc.Update(context.Background(), existing.ID, req)
	require.NoError(t, err)

	require.Len(t, f.jobs.tasks, 1)
	assert.Equal(t, job.TypePurgeFiles, f.jobs.tasks[0].Type())

	var payload job.PurgeFilesPayload
	require.NoError(t, json.Unmarshal(f.jobs.tasks[0].Payload(), &payload))
	assert.Equal(t, existing.UploadDir(), payload.Dir)
	assert.Equal(t, []string{oldName}, payload.Names)
}

func TestVideoUpdateWithoutNewFilesEnqueuesNothing(t *testing.T) {
	f := newFixture()
	f.repo.fetched = &video.Video{ID: uuid.New()}

	req := &video.UpdateVideoRequest{VideoAttributes: f.validRequest().VideoAttributes}

	_, err := f.svc.Update(context.Background(), req.CategoriesID[0], req)
	require.NoError(t, err)

	assert.Empty(t, f.jobs.tasks)
	assert.Equal(t, 0, f.store.count())
}

func TestVideoDeletePassesAllIDs(t *testing.T) {
	f := newFixture()
	f.repo.deleteAffected = 3

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	require.NoError(t, f.svc.Delete(context.Background(), ids))
	assert.Equal(t, ids, f.repo.deletedIDs)
}

func TestVideoDeleteNothingAffectedIsNotFound(t *testing.T) {
	f := newFixture()
	f.repo.deleteAffected = 0

	err := f.svc.Delete(context.Background(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, video.ErrVideoNotFound)
}

func TestVideoRestore(t *testing.T) {
	f := newFixture()

	id := uuid.New()
	require.NoError(t, f.svc.Restore(context.Background(), id))
	assert.Equal(t, id, f.repo.restoredID)

	f.repo.restoreErr = video.ErrVideoNotFound
	assert.ErrorIs(t, f.svc.Restore(context.Background(), uuid.New()), video.ErrVideoNotFound)
}

func TestVideoGetByIDNilUUID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, video.ErrVideoNotFound)
}
