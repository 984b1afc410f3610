package booking

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petgroom/petgroom-api/internal/pkg/database"
)

func newMockRepo(t *testing.T, driver string) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, driver)), mock
}

func TestSQLRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t, "postgres")
	b := &Booking{
		ID:        uuid.New(),
		Name:      "Ana",
		Phone:     "11999990000",
		Service:   ServiceBanho,
		Date:      "2024-06-10",
		Time:      "10:00",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings (id,name,phone,service,date,time,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)")).
		WithArgs(b.ID, b.Name, b.Phone, b.Service, b.Date, b.Time, b.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepositoryListByDateUsesDialectPlaceholders(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "name", "phone", "service", "date", "time", "created_at"}

	for driver, placeholder := range map[string]string{"postgres": "$1", "sqlite": "?"} {
		t.Run(driver, func(t *testing.T) {
			repo, mock := newMockRepo(t, driver)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, phone, service, date, time, created_at FROM bookings WHERE date = " + placeholder + " ORDER BY created_at DESC, id")).
				WithArgs("2024-06-10").
				WillReturnRows(sqlmock.NewRows(columns).
					AddRow(id.String(), "Ana", "11999990000", "banho", "2024-06-10", "10:00", created))

			list, err := repo.ListByDate(context.Background(), "2024-06-10")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, id, list[0].ID)
			assert.Equal(t, ServiceBanho, list[0].Service)
			assert.Equal(t, "10:00", list[0].Time)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLRepositoryListEmptyIsNotNil(t *testing.T) {
	repo, mock := newMockRepo(t, "postgres")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, phone, service, date, time, created_at FROM bookings ORDER BY created_at DESC, id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "service", "date", "time", "created_at"}))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSQLRepositoryListBetween(t *testing.T) {
	repo, mock := newMockRepo(t, "postgres")
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE date >= $1 AND date <= $2 ORDER BY created_at DESC, id")).
		WithArgs("2024-06-01", "2024-06-30").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "service", "date", "time", "created_at"}))

	_, err := repo.ListBetween(context.Background(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepositoryDelete(t *testing.T) {
	repo, mock := newMockRepo(t, "postgres")
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepositoryGetByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t, "postgres")
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestSQLRepositoryOnSQLite(t *testing.T) {
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "petshop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, database.EnsureSchema(ctx, db))
	repo := NewRepository(db)

	base := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	older := &Booking{ID: uuid.New(), Name: "Ana", Phone: "11999990000", Service: ServiceBanho,
		Date: "2024-06-10", Time: "11:00", CreatedAt: base}
	newer := &Booking{ID: uuid.New(), Name: "Bia", Phone: "11988880000", Service: ServiceTosa,
		Date: "2024-06-11", Time: "09:00", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, ServiceTosa, list[0].Service)

	onDay, err := repo.ListByDate(ctx, "2024-06-10")
	require.NoError(t, err)
	require.Len(t, onDay, 1)

	slots := Availability("2024-06-10", onDay)
	for _, s := range slots {
		assert.Equal(t, s.Time != "11:00", s.Available, s.Time)
	}

	ok, err := repo.Delete(ctx, older.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, older.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
