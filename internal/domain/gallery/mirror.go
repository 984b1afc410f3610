package gallery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/pkg/imaging"
	"github.com/petgroom/petgroom-api/internal/pkg/storage"
)

// MirrorChannel is the Redis channel that wakes the mirror worker early
const MirrorChannel = "gallery:created"

const (
	defaultMirrorAttempts = 3
	downloadTimeout       = 30 * time.Second
)

// Mirror copies images hosted on third-party sites into our own storage and
// gives them thumbnails, so the gallery keeps working when those links rot.
type Mirror struct {
	repo        Repository
	storage     storage.Storage
	processor   *imaging.Processor
	client      *http.Client
	maxAttempts int
}

// NewMirror creates a mirror worker
func NewMirror(repo Repository, store storage.Storage, processor *imaging.Processor) *Mirror {
	return &Mirror{
		repo:        repo,
		storage:     store,
		processor:   processor,
		client:      &http.Client{Timeout: downloadTimeout},
		maxAttempts: defaultMirrorAttempts,
	}
}

// Run polls for remote images until ctx is done. wake triggers an immediate poll.
func (m *Mirror) Run(ctx context.Context, interval time.Duration, wake <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Gallery mirror stopped")
			return
		case <-wake:
		case <-ticker.C:
		}

		// drain the backlog before sleeping again
		for {
			done, err := m.MirrorNext(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Gallery mirror failed")
			}
			if done || ctx.Err() != nil {
				break
			}
		}
	}
}

// MirrorNext mirrors one image. done is true when nothing was left to do.
func (m *Mirror) MirrorNext(ctx context.Context) (done bool, err error) {
	img, err := m.repo.ClaimRemote(ctx, m.maxAttempts)
	if err != nil {
		return true, err
	}
	if img == nil {
		return true, nil
	}

	start := time.Now()
	if err := m.mirror(ctx, img); err != nil {
		log.Warn().
			Err(err).
			Str("image_id", img.ID.String()).
			Int("attempt", img.MirrorAttempts).
			Msg("Could not mirror gallery image")
		return false, nil
	}

	log.Info().
		Str("image_id", img.ID.String()).
		Dur("took", time.Since(start)).
		Msg("Gallery image mirrored")
	return false, nil
}

func (m *Mirror) mirror(ctx context.Context, img *Image) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download: unexpected status %d", resp.StatusCode)
	}

	buf, _, err := storage.ValidateAndBuffer(io.LimitReader(resp.Body, storage.MaxImageSize+1))
	if err != nil {
		return err
	}

	processed, err := m.processor.Process(buf)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}

	origKey, thumbKey := imaging.GeneratePaths(img.ID, processed.Extension)
	if err := m.storage.Put(ctx, origKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	if err := m.storage.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		_ = m.storage.Delete(ctx, origKey)
		return fmt.Errorf("store thumbnail: %w", err)
	}

	return m.repo.MarkMirrored(ctx, img.ID, m.storage.GetURL(origKey), m.storage.GetURL(thumbKey), origKey)
}

// SubscribeWakeups forwards MirrorChannel messages to wake without blocking
func SubscribeWakeups(ctx context.Context, rdb *redis.Client, wake chan<- struct{}) {
	sub := rdb.Subscribe(ctx, MirrorChannel)
	defer func() { _ = sub.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Channel():
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
