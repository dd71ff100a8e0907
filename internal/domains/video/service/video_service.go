package service

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"videocatalog-backend/internal/domains/castmember"
	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/domains/genre"
	"videocatalog-backend/internal/domains/video"
	"videocatalog-backend/internal/domains/video/job"
	"videocatalog-backend/internal/shared/upload"
	"videocatalog-backend/pkg/database"
)

// videoService orchestrates the widest write in the system: the video
// row, three relation sets and up to four uploaded files, all succeeding
// or failing as one unit. Files are written to the blob store before the
// transaction and compensated on failure; files replaced by an update
// are purged asynchronously after commit.
type videoService struct {
	repo           video.Repository
	categoryRepo   category.Repository
	genreRepo      genre.Repository
	castMemberRepo castmember.Repository
	tx             database.TxRunner
	files          *upload.Manager
	jobs           job.Enqueuer
}

func NewVideoService(
	repo video.Repository,
	categoryRepo category.Repository,
	genreRepo genre.Repository,
	castMemberRepo castmember.Repository,
	tx database.TxRunner,
	files *upload.Manager,
	jobs job.Enqueuer,
) video.Service {
	return &videoService{
		repo:           repo,
		categoryRepo:   categoryRepo,
		genreRepo:      genreRepo,
		castMemberRepo: castMemberRepo,
		tx:             tx,
		files:          files,
		jobs:           jobs,
	}
}

type existingIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

func checkIDs(ctx context.Context, field string, ids []uuid.UUID, lookup existingIDsFunc) error {
	existing, err := lookup(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", field, err)
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
			field: fmt.Errorf("invalid ids: %s", strings.Join(missing, ", ")),
		}
	}

	return nil
}

// validateRelations confirms every referenced entity exists and that
// each selected genre is linked to at least one selected category.
func (s *videoService) validateRelations(ctx context.Context, attrs *video.VideoAttributes) error {
	if err := checkIDs(ctx, "categories_id", attrs.CategoriesID, s.categoryRepo.ExistingIDs); err != nil {
		return err
	}
	if err := checkIDs(ctx, "genres_id", attrs.GenresID, s.genreRepo.ExistingIDs); err != nil {
		return err
	}
	if err := checkIDs(ctx, "cast_members_id", attrs.CastMembers, s.castMemberRepo.ExistingIDs); err != nil {
		return err
	}

	byGenre, err := s.genreRepo.CategoryIDsByGenre(ctx, attrs.GenresID)
	if err != nil {
		return fmt.Errorf("failed to load genre categories: %w", err)
	}

	selected := make(map[uuid.UUID]bool, len(attrs.CategoriesID))
	for _, id := range attrs.CategoriesID {
		selected[id] = true
	}

	var unlinked []string
	for _, genreID := range attrs.GenresID {
		linked := false
		for _, catID := range byGenre[genreID] {
			if selected[catID] {
				linked = true
				break
			}
		}
		if !linked {
			unlinked = append(unlinked, genreID.String())
		}
	}

	if len(unlinked) > 0 {
		return validation.Errors{
			"genres_id": fmt.Errorf("genres not linked to any selected category: %s", strings.Join(unlinked, ", ")),
		}
	}

	return nil
}

func (s *videoService) Create(ctx context.Context, req *video.CreateVideoRequest) (*video.Video, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateRelations(ctx, &req.VideoAttributes); err != nil {
		return nil, err
	}

	v := &video.Video{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		YearLaunched: req.YearLaunched,
		Rating:       req.Rating,
		Duration:     req.Duration,
	}
	if req.Opened != nil {
		v.Opened = *req.Opened
	}

	dir := v.UploadDir()
	stored, err := s.files.StoreAll(ctx, dir, req.FileUploads())
	if err != nil {
		return nil, fmt.Errorf("failed to store video files: %w", err)
	}
	for _, f := range stored {
		v.SetFileName(f.Field, f.Name)
	}

	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.repo.CreateWithTx(ctx, tx, v); err != nil {
			return err
		}
		if err := s.repo.SyncCategoriesWithTx(ctx, tx, v.ID, req.CategoriesID); err != nil {
			return err
		}
		if err := s.repo.SyncGenresWithTx(ctx, tx, v.ID, req.GenresID); err != nil {
			return err
		}
		return s.repo.SyncCastMembersWithTx(ctx, tx, v.ID, req.CastMembers)
	})
	if err != nil {
		s.files.Rollback(ctx, dir, stored)
		return nil, err
	}

	return s.repo.GetByID(ctx, v.ID)
}

func (s *videoService) GetByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	if id == uuid.Nil {
		return nil, video.ErrVideoNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *videoService) List(ctx context.Context, filter video.ListFilter) ([]video.Video, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *videoService) Update(ctx context.Context, id uuid.UUID, req *video.UpdateVideoRequest) (*video.Video, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateRelations(ctx, &req.VideoAttributes); err != nil {
		return nil, err
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.YearLaunched = req.YearLaunched
	existing.Rating = req.Rating
	existing.Duration = req.Duration
	if req.Opened != nil {
		existing.Opened = *req.Opened
	}

	dir := existing.UploadDir()
	stored, err := s.files.StoreAll(ctx, dir, req.FileUploads())
	if err != nil {
		return nil, fmt.Errorf("failed to store video files: %w", err)
	}

	var replaced []string
	for _, f := range stored {
		if old := existing.FileName(f.Field); old != nil {
			replaced = append(replaced, *old)
		}
		existing.SetFileName(f.Field, f.Name)
	}

	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.repo.UpdateWithTx(ctx, tx, existing); err != nil {
			return err
		}
		if err := s.repo.SyncCategoriesWithTx(ctx, tx, existing.ID, req.CategoriesID); err != nil {
			return err
		}
		if err := s.repo.SyncGenresWithTx(ctx, tx, existing.ID, req.GenresID); err != nil {
			return err
		}
		return s.repo.SyncCastMembersWithTx(ctx, tx, existing.ID, req.CastMembers)
	})
	if err != nil {
		s.files.Rollback(ctx, dir, stored)
		return nil, err
	}

	s.enqueuePurge(dir, replaced)

	return s.repo.GetByID(ctx, existing.ID)
}

func (s *videoService) Delete(ctx context.Context, ids []uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, ids)
	if err != nil {
		return err
	}
	if affected == 0 {
		return video.ErrVideoNotFound
	}
	return nil
}

func (s *videoService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}

// enqueuePurge schedules deletion of replaced files after the row has
// committed. Failure to enqueue only leaks blobs, so it is logged and
// the request still succeeds.
func (s *videoService) enqueuePurge(dir string, names []string) {
	if len(names) == 0 {
		return
	}

	task, err := job.NewPurgeFilesTask(dir, names)
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("Failed to build purge task")
		return
	}

	if _, err := s.jobs.Enqueue(task); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("Failed to enqueue purge task")
	}
}
