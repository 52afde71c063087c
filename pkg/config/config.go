package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "JEWELCATALOG"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv            = "JEWELCATALOG_APP_ENV"
	EnvPort              = "JEWELCATALOG_APP_PORT"
	EnvLogLevel          = "JEWELCATALOG_LOG_LEVEL"
	EnvAutoMigrate       = "JEWELCATALOG_AUTO_MIGRATE"
	EnvStoreDriver       = "JEWELCATALOG_STORE_DRIVER"
	EnvDBDSN             = "JEWELCATALOG_DB_DSN"
	EnvRedisURL          = "JEWELCATALOG_REDIS_URL"
	EnvRedisAddr         = "JEWELCATALOG_REDIS_ADDR"
	EnvRedisNamespace    = "JEWELCATALOG_REDIS_NAMESPACE"
	EnvDefaultCategory   = "JEWELCATALOG_DEFAULT_CATEGORY"
	EnvCategorySort      = "JEWELCATALOG_CATEGORY_SORT"
	EnvBackupDir         = "JEWELCATALOG_BACKUP_DIR"
	EnvBackupConcurrency = "JEWELCATALOG_BACKUP_CONCURRENCY"
)

// Store drivers accepted by JEWELCATALOG_STORE_DRIVER.
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Category comparators accepted by JEWELCATALOG_CATEGORY_SORT.
const (
	CategorySortLocale  = "locale"
	CategorySortOrdinal = "ordinal"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	DB      DBConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Backup  BackupConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JEWELCATALOG_APP_ENV" default:"dev"`
	Port         string `envconfig:"JEWELCATALOG_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"JEWELCATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JEWELCATALOG_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"JEWELCATALOG_AUTO_MIGRATE" default:"true"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	Driver string `envconfig:"JEWELCATALOG_STORE_DRIVER" default:"sqlite"`
}

// IsSQL reports whether the configured driver keeps collections in the kv_entries table.
func (s StoreConfig) IsSQL() bool {
	switch strings.ToLower(s.Driver) {
	case StoreDriverSQLite, StoreDriverPostgres:
		return true
	}
	return false
}

type DBConfig struct {
	DSN string `envconfig:"JEWELCATALOG_DB_DSN" default:"jewelcatalog.db"`

	MaxOpenConns    int           `envconfig:"JEWELCATALOG_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"JEWELCATALOG_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"JEWELCATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JEWELCATALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JEWELCATALOG_REDIS_URL"`
	Address      string        `envconfig:"JEWELCATALOG_REDIS_ADDR"`
	Password     string        `envconfig:"JEWELCATALOG_REDIS_PASSWORD"`
	DB           int           `envconfig:"JEWELCATALOG_REDIS_DB" default:"0"`
	Namespace    string        `envconfig:"JEWELCATALOG_REDIS_NAMESPACE"`
	PoolSize     int           `envconfig:"JEWELCATALOG_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"JEWELCATALOG_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"JEWELCATALOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JEWELCATALOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JEWELCATALOG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	DefaultCategoryName string `envconfig:"JEWELCATALOG_DEFAULT_CATEGORY" default:"Archive"`
	CategorySort        string `envconfig:"JEWELCATALOG_CATEGORY_SORT" default:"locale"`
}

type BackupConfig struct {
	Dir         string `envconfig:"JEWELCATALOG_BACKUP_DIR" default:"backup"`
	Concurrency int    `envconfig:"JEWELCATALOG_BACKUP_CONCURRENCY" default:"4"`
}

func (c *Config) validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverPostgres:
	case StoreDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s or %s is required for the redis store driver", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreDriver, c.Store.Driver)
	}

	if c.Store.IsSQL() && strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("%s is required for the %s store driver", EnvDBDSN, c.Store.Driver)
	}

	c.Catalog.DefaultCategoryName = strings.TrimSpace(c.Catalog.DefaultCategoryName)
	if c.Catalog.DefaultCategoryName == "" {
		return fmt.Errorf("%s must not be blank", EnvDefaultCategory)
	}

	c.Catalog.CategorySort = strings.ToLower(strings.TrimSpace(c.Catalog.CategorySort))
	switch c.Catalog.CategorySort {
	case CategorySortLocale, CategorySortOrdinal:
	default:
		return fmt.Errorf("unsupported %s %q", EnvCategorySort, c.Catalog.CategorySort)
	}

	if c.Backup.Concurrency <= 0 {
		c.Backup.Concurrency = 1
	}
	return nil
}
