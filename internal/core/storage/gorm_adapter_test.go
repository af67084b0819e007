package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	store := NewGormStore(gdb)
	store.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { db.Close() })
	return store, mock
}

func TestGormStore_Get(t *testing.T) {
	store, mock := newMockGormStore(t)

	rows := sqlmock.NewRows([]string{"key", "value", "expires_at", "updated_at"}).
		AddRow("order_management", []byte(`[]`), nil, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "kv_entries" WHERE key = \$1`).WillReturnRows(rows)

	got, err := store.Get(context.Background(), "order_management")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_GetNotFound(t *testing.T) {
	store, mock := newMockGormStore(t)

	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "expires_at", "updated_at"}))

	_, err := store.Get(context.Background(), "checkout_data")
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_GetExpired(t *testing.T) {
	store, mock := newMockGormStore(t)

	expired := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"key", "value", "expires_at", "updated_at"}).
		AddRow("checkout_data", []byte(`{}`), expired, expired)
	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).WillReturnRows(rows)

	_, err := store.Get(context.Background(), "checkout_data")
	assert.True(t, IsNotFound(err))
}

func TestGormStore_GetError(t *testing.T) {
	store, mock := newMockGormStore(t)

	mock.ExpectQuery(`SELECT \* FROM "kv_entries"`).WillReturnError(errors.New("connection reset"))

	_, err := store.Get(context.Background(), "purchase_history")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, IsNotFound(err))
}

func TestGormStore_Set(t *testing.T) {
	store, mock := newMockGormStore(t)

	mock.ExpectExec(`INSERT INTO "kv_entries" .* ON CONFLICT \("key"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Set(context.Background(), "shopping_cart", []byte(`[]`), time.Hour)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SetError(t *testing.T) {
	store, mock := newMockGormStore(t)

	mock.ExpectExec(`INSERT INTO "kv_entries"`).WillReturnError(errors.New("disk full"))

	err := store.Set(context.Background(), "shopping_cart", []byte(`[]`), 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGormStore_Delete(t *testing.T) {
	store, mock := newMockGormStore(t)

	mock.ExpectExec(`DELETE FROM "kv_entries" WHERE key = \$1`).
		WithArgs("checkout_data").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), "checkout_data"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
