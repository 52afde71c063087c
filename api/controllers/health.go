package controllers

import (
	"net/http"

	"github.com/angelmondragon/jewelcatalog/api/responses"
	"github.com/angelmondragon/jewelcatalog/pkg/config"
	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

const envHeader = "X-JewelCatalog-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the configured store answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, store kv.Store, backend string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeStorageUnavailable, "store not configured"))
			return
		}
		if err := kv.Ping(ctx, store); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "store ping failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "store": backend})
	}
}
