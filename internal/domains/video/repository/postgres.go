package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"videocatalog-backend/internal/domains/castmember"
	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/domains/genre"
	"videocatalog-backend/internal/domains/video"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) video.Repository {
	return &postgresRepository{pool: pool}
}

const videoColumns = "id, title, description, year_launched, opened, rating, duration, " +
	"thumb_file, banner_file, trailer_file, video_file, created_at, updated_at, deleted_at"

func scanVideo(row pgx.Row) (*video.Video, error) {
	var v video.Video
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.YearLaunched,
		&v.Opened,
		&v.Rating,
		&v.Duration,
		&v.ThumbFile,
		&v.BannerFile,
		&v.TrailerFile,
		&v.VideoFile,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, v *video.Video) error {
	query := `
        INSERT INTO videos (id, title, description, year_launched, opened, rating, duration,
                            thumb_file, banner_file, trailer_file, video_file)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		v.ID, v.Title, v.Description, v.YearLaunched, v.Opened, v.Rating, v.Duration,
		v.ThumbFile, v.BannerFile, v.TrailerFile, v.VideoFile,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, v *video.Video) error {
	query := `
        UPDATE videos
        SET title = $2, description = $3, year_launched = $4, opened = $5, rating = $6,
            duration = $7, thumb_file = $8, banner_file = $9, trailer_file = $10,
            video_file = $11, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING updated_at`

	err := tx.QueryRow(ctx, query,
		v.ID, v.Title, v.Description, v.YearLaunched, v.Opened, v.Rating, v.Duration,
		v.ThumbFile, v.BannerFile, v.TrailerFile, v.VideoFile,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return video.ErrVideoNotFound
		}
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

// syncRelation diffs the current and desired related-id sets on a join
// table and writes only the delta.
func syncRelation(ctx context.Context, tx pgx.Tx, table, relatedCol string, videoID uuid.UUID, ids []uuid.UUID) error {
	rows, err := tx.Query(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE video_id = $1", relatedCol, table), videoID)
	if err != nil {
		return fmt.Errorf("failed to load current %s: %w", table, err)
	}

	current := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	desired := map[uuid.UUID]bool{}
	var toInsert []uuid.UUID
	for _, id := range ids {
		desired[id] = true
		if !current[id] {
			toInsert = append(toInsert, id)
		}
	}

	var toDelete []uuid.UUID
	for id := range current {
		if !desired[id] {
			toDelete = append(toDelete, id)
		}
	}

	if len(toDelete) > 0 {
		_, err := tx.Exec(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE video_id = $1 AND %s = ANY($2)", table, relatedCol),
			videoID, toDelete)
		if err != nil {
			return fmt.Errorf("failed to detach from %s: %w", table, err)
		}
	}

	for _, id := range toInsert {
		_, err := tx.Exec(ctx,
			fmt.Sprintf("INSERT INTO %s (video_id, %s) VALUES ($1, $2)", table, relatedCol),
			videoID, id)
		if err != nil {
			return fmt.Errorf("failed to attach %s to %s: %w", id, table, err)
		}
	}

	return nil
}

func (r *postgresRepository) SyncCategoriesWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error {
	return syncRelation(ctx, tx, "category_video", "category_id", videoID, ids)
}

func (r *postgresRepository) SyncGenresWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error {
	return syncRelation(ctx, tx, "genre_video", "genre_id", videoID, ids)
}

func (r *postgresRepository) SyncCastMembersWithTx(ctx context.Context, tx pgx.Tx, videoID uuid.UUID, ids []uuid.UUID) error {
	return syncRelation(ctx, tx, "cast_member_video", "cast_member_id", videoID, ids)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1 AND deleted_at IS NULL`

	v, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, video.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}

	if err := r.loadRelations(ctx, []*video.Video{v}); err != nil {
		return nil, err
	}

	return v, nil
}

func (r *postgresRepository) List(ctx context.Context, filter video.ListFilter) ([]video.Video, int64, error) {
	where := []string{filter.DeletedClause("v")}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("v.title ILIKE $%d", len(args)))
	}

	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM category_video cv WHERE cv.video_id = v.id AND cv.category_id = ANY($%d))",
			len(args)))
	}

	if len(filter.Genres) > 0 {
		args = append(args, filter.Genres)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM genre_video gv WHERE gv.video_id = v.id AND gv.genre_id = ANY($%d))",
			len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM videos v WHERE " + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	args = append(args, filter.PerPage, filter.Offset())
	query := fmt.Sprintf(
		"SELECT %s FROM videos v WHERE %s ORDER BY v.%s LIMIT $%d OFFSET $%d",
		qualifyVideoColumns(), whereClause, filter.OrderBy(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := []video.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*video.Video, 0, len(videos))
	for i := range videos {
		refs = append(refs, &videos[i])
	}
	if err := r.loadRelations(ctx, refs); err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// loadRelations eager-loads the three associations for a batch of
// videos, one query per relation.
func (r *postgresRepository) loadRelations(ctx context.Context, videos []*video.Video) error {
	if len(videos) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(videos))
	byID := make(map[uuid.UUID]*video.Video, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
		byID[v.ID] = v
		v.Categories = []category.Category{}
		v.Genres = []genre.Genre{}
		v.CastMembers = []castmember.CastMember{}
	}

	catQuery := `
        SELECT cv.video_id, c.id, c.name, c.description, c.is_active, c.created_at, c.updated_at, c.deleted_at
        FROM category_video cv
        JOIN categories c ON c.id = cv.category_id
        WHERE cv.video_id = ANY($1) AND c.deleted_at IS NULL
        ORDER BY c.name`

	rows, err := r.pool.Query(ctx, catQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to load video categories: %w", err)
	}
	for rows.Next() {
		var videoID uuid.UUID
		var c category.Category
		if err := rows.Scan(&videoID, &c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			rows.Close()
			return err
		}
		if v, ok := byID[videoID]; ok {
			v.Categories = append(v.Categories, c)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	genreQuery := `
        SELECT gv.video_id, g.id, g.name, g.description, g.is_active, g.created_at, g.updated_at, g.deleted_at
        FROM genre_video gv
        JOIN genres g ON g.id = gv.genre_id
        WHERE gv.video_id = ANY($1) AND g.deleted_at IS NULL
        ORDER BY g.name`

	rows, err = r.pool.Query(ctx, genreQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to load video genres: %w", err)
	}
	for rows.Next() {
		var videoID uuid.UUID
		var g genre.Genre
		if err := rows.Scan(&videoID, &g.ID, &g.Name, &g.Description, &g.IsActive, &g.CreatedAt, &g.UpdatedAt, &g.DeletedAt); err != nil {
			rows.Close()
			return err
		}
		g.Categories = []category.Category{}
		if v, ok := byID[videoID]; ok {
			v.Genres = append(v.Genres, g)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	memberQuery := `
        SELECT mv.video_id, m.id, m.name, m.type, m.created_at, m.updated_at, m.deleted_at
        FROM cast_member_video mv
        JOIN cast_members m ON m.id = mv.cast_member_id
        WHERE mv.video_id = ANY($1) AND m.deleted_at IS NULL
        ORDER BY m.name`

	rows, err = r.pool.Query(ctx, memberQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to load video cast members: %w", err)
	}
	for rows.Next() {
		var videoID uuid.UUID
		var m castmember.CastMember
		if err := rows.Scan(&videoID, &m.ID, &m.Name, &m.Type, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt); err != nil {
			rows.Close()
			return err
		}
		if v, ok := byID[videoID]; ok {
			v.CastMembers = append(v.CastMembers, m)
		}
	}
	rows.Close()

	return rows.Err()
}

func (r *postgresRepository) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	query := `
        UPDATE videos
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = ANY($1) AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to soft delete videos: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *postgresRepository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE videos
        SET deleted_at = NULL, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NOT NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to restore video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return video.ErrVideoNotFound
	}

	return nil
}

func qualifyVideoColumns() string {
	parts := strings.Split(videoColumns, ", ")
	for i, p := range parts {
		parts[i] = "v." + p
	}
	return strings.Join(parts, ", ")
}
