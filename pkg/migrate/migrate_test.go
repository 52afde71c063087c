package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/angelmondragon/jewelcatalog/pkg/config"
	"github.com/angelmondragon/jewelcatalog/pkg/db"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLiteClient(t *testing.T, name string) *db.Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db.NewFromGorm(conn, config.StoreDriverSQLite)
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateFS(FS(), DefaultDir))
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{
			name: "bad filename",
			fs:   fstest.MapFS{"m/create.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")}},
		},
		{
			name: "missing down",
			fs:   fstest.MapFS{"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n")}},
		},
		{
			name: "duplicate version",
			fs: fstest.MapFS{
				"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
				"m/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
			},
		},
		{
			name: "empty",
			fs:   fstest.MapFS{"m/readme.txt": {Data: []byte("x")}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateFS(tt.fs, "m"))
		})
	}
}

func TestMaybeRunCreatesKVTable(t *testing.T) {
	client := newSQLiteClient(t, "autorun")
	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev, AutoMigrate: true}}

	require.NoError(t, MaybeRun(context.Background(), cfg, logger.Nop(), client))
	assert.True(t, client.DB().Migrator().HasTable("kv_entries"))

	sqlDB, err := client.SQLDB()
	require.NoError(t, err)
	version, err := CurrentVersion(sqlDB, client.Dialect())
	require.NoError(t, err)
	assert.Equal(t, int64(20260101000000), version)

	// re-running is a no-op
	require.NoError(t, MaybeRun(context.Background(), cfg, logger.Nop(), client))
}

func TestMaybeRunDisabled(t *testing.T) {
	client := newSQLiteClient(t, "autorun_disabled")
	cfg := &config.Config{App: config.AppConfig{AutoMigrate: false}}

	require.NoError(t, MaybeRun(context.Background(), cfg, logger.Nop(), client))
	assert.False(t, client.DB().Migrator().HasTable("kv_entries"))
}

func TestMigrateToVersionRoundTrip(t *testing.T) {
	client := newSQLiteClient(t, "to_version")
	sqlDB, err := client.SQLDB()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, MigrateToVersion(ctx, sqlDB, client.Dialect(), "20260101000000"))
	assert.True(t, client.DB().Migrator().HasTable("kv_entries"))

	require.NoError(t, MigrateToVersion(ctx, sqlDB, client.Dialect(), "0"))
	assert.False(t, client.DB().Migrator().HasTable("kv_entries"))

	assert.Error(t, MigrateToVersion(ctx, sqlDB, client.Dialect(), "latest"))
}
