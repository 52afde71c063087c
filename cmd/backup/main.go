package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/jewelcatalog/internal/bootstrap"
	"github.com/angelmondragon/jewelcatalog/pkg/config"
	"github.com/angelmondragon/jewelcatalog/pkg/instance"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "backup"})

	_ = godotenv.Load()

	dir := flag.String("dir", "", "output directory (overrides "+config.EnvBackupDir+")")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.Backup.Dir = *dir
	}

	logg = logger.New(logger.Options{
		ServiceName: "backup",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"store":    cfg.Store.Driver,
		"dir":      cfg.Backup.Dir,
		"instance": instance.GetID(),
	})

	reg := prometheus.NewRegistry()
	store, err := bootstrap.OpenStore(ctx, cfg, logg, reg)
	if err != nil {
		logg.Error(ctx, "failed to open store", err)
		os.Exit(1)
	}
	defer store.Close()

	catalogService, err := bootstrap.NewCatalog(store, cfg.Catalog, logg)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	exporter, err := bootstrap.NewExporter(catalogService, cfg.Backup, logg, reg)
	if err != nil {
		logg.Error(ctx, "failed to create backup exporter", err)
		os.Exit(1)
	}

	report, err := exporter.Export(ctx)
	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))
	if err != nil {
		logg.Error(ctx, "backup interrupted", err)
		store.Close()
		os.Exit(1)
	}
	if failures := report.Err(); failures != nil {
		logg.WarnErr(ctx, "backup finished with failures", failures)
	}
}
