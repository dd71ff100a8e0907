package container

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"videocatalog-backend/internal/config"
	"videocatalog-backend/internal/domains/castmember"
	castmemberRepo "videocatalog-backend/internal/domains/castmember/repository"
	castmemberService "videocatalog-backend/internal/domains/castmember/service"
	"videocatalog-backend/internal/domains/category"
	categoryRepo "videocatalog-backend/internal/domains/category/repository"
	categoryService "videocatalog-backend/internal/domains/category/service"
	"videocatalog-backend/internal/domains/genre"
	genreRepo "videocatalog-backend/internal/domains/genre/repository"
	genreService "videocatalog-backend/internal/domains/genre/service"
	"videocatalog-backend/internal/domains/video"
	videoRepo "videocatalog-backend/internal/domains/video/repository"
	videoService "videocatalog-backend/internal/domains/video/service"
	infraCache "videocatalog-backend/internal/infrastructure/cache"
	infraDB "videocatalog-backend/internal/infrastructure/database"
	"videocatalog-backend/internal/infrastructure/storage"
	"videocatalog-backend/internal/shared/upload"
	"videocatalog-backend/pkg/database"
)

// Container wires configuration, infrastructure, repositories and
// services together and owns their shutdown order.
type Container struct {
	Config  *config.Config
	DB      *infraDB.PostgresDB
	Cache   *infraCache.RedisCache
	Storage *storage.MinIOStorage
	Asynq   *asynq.Client

	Files *upload.Manager

	CategoryRepository   category.Repository
	GenreRepository      genre.Repository
	CastMemberRepository castmember.Repository
	VideoRepository      video.Repository

	CategoryService   category.Service
	GenreService      genre.Service
	CastMemberService castmember.Service
	VideoService      video.Service
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db, err := infraDB.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		db.Close()
		redisCache.Close()
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	files := upload.NewManager(minioStorage)
	txRunner := database.NewPoolTxRunner(db.Pool)

	categories := categoryRepo.NewPostgresRepository(db.Pool, redisCache)
	genres := genreRepo.NewPostgresRepository(db.Pool)
	castMembers := castmemberRepo.NewPostgresRepository(db.Pool)
	videos := videoRepo.NewPostgresRepository(db.Pool)

	c := &Container{
		Config:  cfg,
		DB:      db,
		Cache:   redisCache,
		Storage: minioStorage,
		Asynq:   asynqClient,
		Files:   files,

		CategoryRepository:   categories,
		GenreRepository:      genres,
		CastMemberRepository: castMembers,
		VideoRepository:      videos,

		CategoryService:   categoryService.NewCategoryService(categories),
		GenreService:      genreService.NewGenreService(genres, categories, txRunner),
		CastMemberService: castmemberService.NewCastMemberService(castMembers),
		VideoService:      videoService.NewVideoService(videos, categories, genres, castMembers, txRunner, files, asynqClient),
	}

	return c, nil
}

// Cleanup releases external connections in reverse dependency order.
func (c *Container) Cleanup() {
	if c.Asynq != nil {
		if err := c.Asynq.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close asynq client")
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
