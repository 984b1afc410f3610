package contact

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Contact is a message left through the storefront contact form
type Contact struct {
	ID         uuid.UUID      `db:"id"`
	Name       string         `db:"name"`
	Email      string         `db:"email"`
	Phone      sql.NullString `db:"phone"`
	Message    string         `db:"message"`
	Newsletter bool           `db:"newsletter"`
	CreatedAt  time.Time      `db:"created_at"`
}
