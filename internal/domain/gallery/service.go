package gallery

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/pkg/imaging"
	"github.com/petgroom/petgroom-api/internal/pkg/storage"
)

// Service handles gallery business logic
type Service struct {
	repo      Repository
	storage   storage.Storage
	processor *imaging.Processor
	rdb       *redis.Client
}

// NewService creates gallery service. store may be nil, which disables uploads.
func NewService(repo Repository, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{repo: repo, storage: store, processor: processor}
}

// NotifyMirror makes Create wake the mirror worker through Redis
func (s *Service) NotifyMirror(rdb *redis.Client) {
	s.rdb = rdb
}

// List returns every image, newest first
func (s *Service) List(ctx context.Context) ([]*Image, error) {
	return s.repo.List(ctx)
}

// Create adds an image hosted elsewhere
func (s *Service) Create(ctx context.Context, req *CreateImageRequest) (*Image, error) {
	img := &Image{
		ID:          uuid.New(),
		URL:         strings.TrimSpace(req.URL),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}

	if s.rdb != nil && img.IsRemote() {
		if err := s.rdb.Publish(ctx, MirrorChannel, img.ID.String()).Err(); err != nil {
			log.Warn().Err(err).Msg("Failed to wake gallery mirror")
		}
	}
	return img, nil
}

// Upload validates, resizes and stores an image file with its thumbnail
func (s *Service) Upload(ctx context.Context, file io.Reader, description string) (*Image, error) {
	if s.storage == nil {
		return nil, ErrUploadsDisabled
	}

	buf, _, err := storage.ValidateAndBuffer(file)
	if err != nil {
		return nil, err
	}

	processed, err := s.processor.Process(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	id := uuid.New()
	origKey, thumbKey := imaging.GeneratePaths(id, processed.Extension)

	if err := s.storage.Put(ctx, origKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	if err := s.storage.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		s.removeObjects(ctx, origKey)
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	img := &Image{
		ID:           id,
		URL:          s.storage.GetURL(origKey),
		ThumbnailURL: sql.NullString{String: s.storage.GetURL(thumbKey), Valid: true},
		StorageKey:   sql.NullString{String: origKey, Valid: true},
		Description:  strings.TrimSpace(description),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		s.removeObjects(ctx, origKey, thumbKey)
		return nil, err
	}

	log.Info().
		Str("image_id", id.String()).
		Int("width", processed.Width).
		Int("height", processed.Height).
		Msg("Gallery image uploaded")

	return img, nil
}

// Delete removes the image and any files it owns
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrImageNotFound
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrImageNotFound
	}

	if img.StorageKey.Valid && s.storage != nil {
		s.removeObjects(ctx, img.StorageKey.String, thumbnailKey(img.StorageKey.String))
	}
	return nil
}

// SeedDefaults fills an empty gallery with the default pictures
func (s *Service) SeedDefaults(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// spaced timestamps keep the seed order stable in newest-first listings
	base := time.Now()
	for i, def := range defaultImages {
		img := &Image{
			ID:          uuid.New(),
			URL:         def.URL,
			Description: def.Description,
			CreatedAt:   base.Add(-time.Duration(i) * time.Second),
		}
		if err := s.repo.Create(ctx, img); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(defaultImages)).Msg("Gallery seeded with default images")
	return nil
}

func (s *Service) removeObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove gallery file")
		}
	}
}

// thumbnailKey mirrors imaging.GeneratePaths: gallery/<id>.png -> gallery/<id>_thumb.png
func thumbnailKey(key string) string {
	dot := strings.LastIndex(key, ".")
	if dot < 0 {
		return key + "_thumb"
	}
	return key[:dot] + "_thumb" + key[dot:]
}
