package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japaniel/visionary/pkg/symbols"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	s := NewStore(sqlx.NewDb(conn, "sqlite3"))
	s.resetDelay = time.Millisecond
	return s, mock
}

func TestResetSymbolsRetriesWhenLocked(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM symbols").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO symbols").
		WithArgs(0, "Lion", "Authority", "Animals", `["Revelation 5:5"]`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	n, err := s.ResetSymbols(context.Background(), []symbols.Entry{
		{Symbol: "Lion", Meaning: "Authority", Category: "Animals", References: []string{"Revelation 5:5"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetSymbolsDoesNotRetryOtherErrors(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM symbols").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err := s.ResetSymbols(context.Background(), []symbols.Entry{{Symbol: "Lion"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetSymbolsGivesUpAfterAttempts(t *testing.T) {
	s, mock := newMockStore(t)
	s.resetAttempts = 2

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))
	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	_, err := s.ResetSymbols(context.Background(), nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachInterpretationSurfacesWriteFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE visions SET interpretation").
		WithArgs("text", "v1").
		WillReturnError(errors.New("disk full"))

	err := s.AttachInterpretation(context.Background(), "v1", "text")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInterpretationSet)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountSymbolsWithMock(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM symbols`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(51))

	n, err := s.CountSymbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 51, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsBusyErr(t *testing.T) {
	assert.False(t, isBusyErr(nil))
	assert.True(t, isBusyErr(errors.New("database is locked")))
	assert.True(t, isBusyErr(errors.New("SQLITE_BUSY: busy")))
	assert.False(t, isBusyErr(errors.New("UNIQUE constraint failed")))
}
