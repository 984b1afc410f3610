// Command gallery-mirror copies gallery images hosted on third-party sites
// into the configured storage and generates their thumbnails.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/config"
	"github.com/petgroom/petgroom-api/internal/domain/gallery"
	"github.com/petgroom/petgroom-api/internal/pkg/database"
	"github.com/petgroom/petgroom-api/internal/pkg/imaging"
	"github.com/petgroom/petgroom-api/internal/pkg/logger"
	"github.com/petgroom/petgroom-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logCloser := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})
	defer logCloser.Close()

	log.Info().Msg("Starting gallery-mirror")

	if cfg.StorageDriver == config.StorageMemory {
		log.Fatal().Msg("gallery-mirror needs a shared STORAGE_DRIVER (postgres or sqlite)")
	}

	db, err := database.Open(cfg.StorageDriver, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	store, err := storage.New(ctx, storage.Config{
		Driver:       cfg.UploadDriver,
		LocalDir:     cfg.UploadDir,
		LocalBaseURL: cfg.UploadBaseURL,
		S3Endpoint:   cfg.S3Endpoint,
		S3Region:     cfg.S3Region,
		S3Bucket:     cfg.S3Bucket,
		S3AccessKey:  cfg.S3AccessKey,
		S3SecretKey:  cfg.S3SecretKey,
		S3PublicURL:  cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create gallery storage")
	}

	mirror := gallery.NewMirror(gallery.NewRepository(db), store, imaging.NewProcessor(imaging.DefaultConfig()))

	// Optional: Redis pub/sub wake-up (polling still runs)
	wake := make(chan struct{}, 1)
	if rdb != nil {
		go gallery.SubscribeWakeups(ctx, rdb, wake)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()
	}()

	// first pass right away
	wake <- struct{}{}
	mirror.Run(ctx, cfg.MirrorInterval, wake)
}
