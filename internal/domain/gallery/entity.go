package gallery

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Image is one picture of the storefront gallery
type Image struct {
	ID           uuid.UUID      `db:"id"`
	URL          string         `db:"url"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	StorageKey   sql.NullString `db:"storage_key"` // set once the file lives in our storage
	Description  string         `db:"description"`
	// failed attempts at copying a remote image into our storage
	MirrorAttempts int       `db:"mirror_attempts"`
	CreatedAt      time.Time `db:"created_at"`
}

// IsRemote reports whether the image is still served from a third-party host
func (img *Image) IsRemote() bool {
	return !img.StorageKey.Valid && (hasPrefixFold(img.URL, "http://") || hasPrefixFold(img.URL, "https://"))
}
