package repository_test

import (
	"context"
	"errors"
	"testing"

	"hbnb/internal/domain"
	"hbnb/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*repository.GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return repository.NewGormStore(gdb), mock
}

func TestStoreFailuresBecomePersistenceErrors(t *testing.T) {
	s, mock := newMockStore(t)
	cause := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnError(cause)

	u, err := s.Users().Get(context.Background(), "id-1")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomicBeginFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := s.Atomic(context.Background(), func(repository.Store) error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPing().WillReturnError(errors.New("unreachable"))

	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}
