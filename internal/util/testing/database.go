package test_utils

import (
	"testing"

	"taskboard/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// NewMockDb replaces the process database with a sqlmock backed gorm
// connection. Statements run outside transactions.
func NewMockDb(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDb, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDb}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	require.NoError(t, err)

	storage.SetDbForTests(gormDb)

	t.Cleanup(func() {
		_ = sqlDb.Close()
	})

	return mock
}
