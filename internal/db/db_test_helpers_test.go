package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "lunara.db")
	database, err := OpenSQLite(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { closeTestDB(t, database) })
	return database, path
}

func closeTestDB(t *testing.T, database *gorm.DB) {
	t.Helper()
	sqlDB, err := database.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)
	return value
}

func intRef(value int) *int {
	return &value
}
