// Package bootstrap wires the configured store, repositories and services together
// for the cmd entrypoints.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/jewelcatalog/internal/backup"
	"github.com/angelmondragon/jewelcatalog/internal/catalog"
	"github.com/angelmondragon/jewelcatalog/internal/categories"
	"github.com/angelmondragon/jewelcatalog/internal/jewellery"
	"github.com/angelmondragon/jewelcatalog/internal/repo"
	"github.com/angelmondragon/jewelcatalog/internal/sequence"
	"github.com/angelmondragon/jewelcatalog/internal/wishlist"
	"github.com/angelmondragon/jewelcatalog/pkg/config"
	"github.com/angelmondragon/jewelcatalog/pkg/db"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
	"github.com/angelmondragon/jewelcatalog/pkg/metrics"
	"github.com/angelmondragon/jewelcatalog/pkg/migrate"
	"github.com/angelmondragon/jewelcatalog/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// Store is the instrumented key-value store selected by configuration.
type Store struct {
	*kv.Instrumented
	Backend string
	closers []io.Closer
}

// Close releases the backend connections.
func (s *Store) Close() error {
	var errs error
	for _, c := range s.closers {
		errs = multierr.Append(errs, c.Close())
	}
	return errs
}

// OpenStore connects the backend named by cfg.Store.Driver, applying SQL
// migrations when enabled.
func OpenStore(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer) (*Store, error) {
	driver := cfg.Store.Driver
	var (
		inner   kv.Store
		closers []io.Closer
	)

	switch driver {
	case config.StoreDriverMemory:
		inner = kv.NewMemory()

	case config.StoreDriverSQLite, config.StoreDriverPostgres:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("run migrations: %w", err), client.Close())
		}
		inner = db.NewKVStore(client.DB())
		closers = append(closers, client)

	case config.StoreDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		inner = client
		closers = append(closers, client)

	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	return &Store{
		Instrumented: kv.NewInstrumented(inner, driver, metrics.NewStoreMetrics(reg)),
		Backend:      driver,
		closers:      closers,
	}, nil
}

// NewCatalog builds the catalog service over store. All repositories share one
// lock registry.
func NewCatalog(store kv.Store, cfg config.CatalogConfig, logg *logger.Logger) (catalog.Service, error) {
	base := repo.NewBase(store, repo.NewLocks(), logg)
	return catalog.NewService(catalog.ServiceParams{
		JewelleryRepo: jewellery.NewRepository(base, sequence.NewGenerator(base), cfg.DefaultCategoryName),
		CategoryRepo:  categories.NewRepository(base, cfg.DefaultCategoryName, categories.ComparatorFor(cfg.CategorySort)),
		WishlistRepo:  wishlist.NewRepository(base),
		Logger:        logg,
	})
}

// NewExporter builds the image exporter writing into cfg.Dir.
func NewExporter(source backup.Source, cfg config.BackupConfig, logg *logger.Logger, reg prometheus.Registerer) (*backup.Exporter, error) {
	return backup.NewExporter(backup.ExporterParams{
		Source:      source,
		Sink:        backup.NewDirSink(cfg.Dir),
		Concurrency: cfg.Concurrency,
		Metrics:     metrics.NewBackupMetrics(reg),
		Logger:      logg,
	})
}
