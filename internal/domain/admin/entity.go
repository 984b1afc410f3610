package admin

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser can sign in to the admin panel
type AdminUser struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
