// Package dbtest opens throwaway sqlite databases for repository and usecase tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"testing"

	"farmmall/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 一時ファイルのDB（コネクション1本なのでTxは直列になる）
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "farmmall.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=off", path)

	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}
