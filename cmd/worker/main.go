package main

import (
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"videocatalog-backend/internal/config"
	"videocatalog-backend/internal/domains/video/job"
	"videocatalog-backend/internal/infrastructure/storage"
	"videocatalog-backend/internal/shared/upload"
	"videocatalog-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init storage")
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(job.TypePurgeFiles, job.NewPurgeFilesHandler(upload.NewManager(minioStorage)))

	log.Info().
		Int("concurrency", cfg.Worker.Concurrency).
		Msg("Starting worker")

	// Run blocks until SIGINT/SIGTERM and drains in-flight tasks.
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("Worker failed")
	}
}
