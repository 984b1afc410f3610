package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/petgroom/petgroom-api/internal/pkg/database"
)

// Repository is the booking store. It never checks slot availability.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	List(ctx context.Context) ([]*Booking, error)
	ListByDate(ctx context.Context, date string) ([]*Booking, error)
	ListBetween(ctx context.Context, from, to string) ([]*Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

var bookingColumns = []string{"id", "name", "phone", "service", "date", "time", "created_at"}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewRepository creates the SQL booking store for PostgreSQL or SQLite
func NewRepository(db *sqlx.DB) Repository {
	var format sq.PlaceholderFormat = sq.Question
	if db.DriverName() == database.DriverPostgres {
		format = sq.Dollar
	}
	return &repository{db: db, sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query, args, err := r.sb.Insert("bookings").
		Columns(bookingColumns...).
		Values(b.ID, b.Name, b.Phone, b.Service, b.Date, b.Time, b.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]*Booking, error) {
	return r.selectBookings(ctx, r.baseSelect())
}

func (r *repository) ListByDate(ctx context.Context, date string) ([]*Booking, error) {
	return r.selectBookings(ctx, r.baseSelect().Where(sq.Eq{"date": date}))
}

// ListBetween returns bookings with from <= date <= to; empty bounds are open
func (r *repository) ListBetween(ctx context.Context, from, to string) ([]*Booking, error) {
	q := r.baseSelect()
	if from != "" {
		q = q.Where(sq.GtOrEq{"date": from})
	}
	if to != "" {
		q = q.Where(sq.LtOrEq{"date": to})
	}
	return r.selectBookings(ctx, q)
}

// GetByID returns nil, nil when the booking does not exist
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query, args, err := r.sb.Select(bookingColumns...).From("bookings").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking: %w", err)
	}

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := r.sb.Delete("bookings").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete booking: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	return rows > 0, nil
}

func (r *repository) baseSelect() sq.SelectBuilder {
	return r.sb.Select(bookingColumns...).From("bookings").OrderBy("created_at DESC", "id")
}

func (r *repository) selectBookings(ctx context.Context, q sq.SelectBuilder) ([]*Booking, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select bookings: %w", err)
	}

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	return bookings, nil
}
