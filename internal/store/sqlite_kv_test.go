package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/passgate/internal/logger"
)

func newMockSQLiteStore(t *testing.T) (*sqliteStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	fixed := time.UnixMilli(1_700_000_000_000)
	return &sqliteStore{
		db:     &DB{DB: db, logger: l},
		logger: l,
		now:    func() time.Time { return fixed },
	}, mock
}

func TestSQLiteStore_Get(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_entries WHERE key = \?`).
		WithArgs("secure:a").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("payload"))

	v, err := s.Get(context.Background(), "secure:a")
	require.NoError(t, err)
	assert.Equal(t, "payload", v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Get_NotFound(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_entries`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSQLiteStore_Get_QueryError(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(`SELECT value FROM kv_entries`).
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSQLiteStore_Set_Upserts(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectExec(`INSERT INTO kv_entries \(key,value,updated_at\) VALUES \(\?,\?,\?\) ON CONFLICT\(key\) DO UPDATE`).
		WithArgs("k", "v", int64(1_700_000_000_000)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Set(context.Background(), "k", "v"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Set_FullIsQuota(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectExec(`INSERT INTO kv_entries`).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrFull})

	err := s.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.True(t, IsQuotaExceeded(err))
}

func TestSQLiteStore_Keys_Prefix(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(`SELECT key FROM kv_entries WHERE substr\(key, 1, \?\) = \?`).
		WithArgs(7, "secure:").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("secure:a").AddRow("secure:b"))

	keys, err := s.Keys(context.Background(), "secure:")
	require.NoError(t, err)
	assert.Equal(t, []string{"secure:a", "secure:b"}, keys)
}

func TestSQLiteStore_Keys_ScanError(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectQuery(`SELECT key FROM kv_entries`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("a").RowError(0, errors.New("boom")))

	_, err := s.Keys(context.Background(), "")
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestSQLiteStore_DeleteAndClear(t *testing.T) {
	s, mock := newMockSQLiteStore(t)

	mock.ExpectExec(`DELETE FROM kv_entries WHERE key = \?`).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM kv_entries`).
		WillReturnError(errors.New("locked"))

	require.NoError(t, s.Delete(context.Background(), "k"))
	assert.ErrorIs(t, s.Clear(context.Background()), ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}
