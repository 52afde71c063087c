package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/jewelcatalog/api/controllers"
	"github.com/angelmondragon/jewelcatalog/api/middleware"
	"github.com/angelmondragon/jewelcatalog/internal/catalog"
	"github.com/angelmondragon/jewelcatalog/pkg/config"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store kv.Store,
	backend string,
	catalogService catalog.Service,
	backupRunner controllers.BackupRunner,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store, backend))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/jewellery", func(r chi.Router) {
			r.Get("/", controllers.JewelleryList(catalogService, logg))
			r.Post("/", controllers.JewelleryCreate(catalogService, logg))
			r.Get("/by-image/{imgId}", controllers.JewelleryByImageID(catalogService, logg))
			r.Patch("/{id}", controllers.JewelleryUpdate(catalogService, logg))
			r.Delete("/{id}", controllers.JewelleryDelete(catalogService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(catalogService, logg))
			r.Post("/", controllers.CategoryCreate(catalogService, logg))
			r.Get("/{name}/jewellery", controllers.CategoryJewellery(catalogService, logg))
			r.Patch("/{id}", controllers.CategoryUpdate(catalogService, logg))
			r.Delete("/{id}", controllers.CategoryDelete(catalogService, logg))
		})

		r.Route("/wishlists", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(catalogService, logg))
			r.Post("/", controllers.WishlistCreate(catalogService, logg))
			r.Post("/build", controllers.WishlistBuild(catalogService, logg))
			r.Delete("/{id}", controllers.WishlistDelete(catalogService, logg))
		})

		r.Post("/backup", controllers.BackupRun(backupRunner, logg))
	})

	return r
}
