package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/jewelcatalog/internal/categories"
	"github.com/angelmondragon/jewelcatalog/internal/jewellery"
	"github.com/angelmondragon/jewelcatalog/pkg/config"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver, dsn string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev, AutoMigrate: true},
		Store:   config.StoreConfig{Driver: driver},
		DB:      config.DBConfig{DSN: dsn, MaxOpenConns: 1},
		Catalog: config.CatalogConfig{DefaultCategoryName: "Archive", CategorySort: config.CategorySortLocale},
		Backup:  config.BackupConfig{Concurrency: 2},
	}
}

func TestOpenStoreSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "catalog.db")
	cfg := testConfig(config.StoreDriverSQLite, dsn)

	store, err := OpenStore(ctx, cfg, logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverSQLite, store.Backend)
	require.NoError(t, kv.Ping(ctx, store))

	svc, err := NewCatalog(store, cfg.Catalog, logger.Nop())
	require.NoError(t, err)
	item, err := svc.SaveJewelleryItem(ctx, jewellery.Draft{Image: "x", Name: "Ring"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenStore(ctx, cfg, logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer reopened.Close()

	svc, err = NewCatalog(reopened, cfg.Catalog, logger.Nop())
	require.NoError(t, err)
	items, err := svc.GetJewelleryItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	next, err := svc.SaveJewelleryItem(ctx, jewellery.Draft{Image: "x", Name: "Band"})
	require.NoError(t, err)
	assert.Equal(t, "002", next.ImgID)
}

func TestOpenStoreMemory(t *testing.T) {
	store, err := OpenStore(context.Background(), testConfig(config.StoreDriverMemory, ""), logger.Nop(), nil)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), testConfig("bolt", ""), logger.Nop(), nil)
	assert.Error(t, err)
}

func TestNewExporterWritesToConfiguredDir(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StoreDriverMemory, "")
	cfg.Backup.Dir = t.TempDir()

	store, err := OpenStore(ctx, cfg, logger.Nop(), nil)
	require.NoError(t, err)
	svc, err := NewCatalog(store, cfg.Catalog, logger.Nop())
	require.NoError(t, err)

	_, err = svc.SaveCategory(ctx, categories.Draft{Name: "Rings", Icon: "data:text/plain;base64,aGk="})
	require.NoError(t, err)

	exp, err := NewExporter(svc, cfg.Backup, logger.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	report, err := exp.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DownloadedCount)

	_, err = os.Stat(filepath.Join(cfg.Backup.Dir, "category_Rings.jpg"))
	assert.NoError(t, err)
}
