package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/jewelcatalog/api/responses"
	"github.com/angelmondragon/jewelcatalog/internal/backup"
	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

type BackupRunner interface {
	Export(ctx context.Context) (backup.Report, error)
}

// BackupRun exports every image in the catalog. Per-record failures are part
// of the report, so a partial export still answers 200.
func BackupRun(runner BackupRunner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if runner == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "backup exporter unavailable"))
			return
		}

		report, err := runner.Export(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
