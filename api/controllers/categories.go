package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/jewelcatalog/api/responses"
	"github.com/angelmondragon/jewelcatalog/api/validators"
	"github.com/angelmondragon/jewelcatalog/internal/catalog"
	"github.com/angelmondragon/jewelcatalog/internal/categories"
	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
	Icon string `json:"icon" validate:"required,max=2048"`
}

// CategoryList serves three views of the same collection: ?custom=true
// omits the default category, ?counts=true attaches item counts.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		custom, err := validators.ParseQueryBool(r, "custom", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		counts, err := validators.ParseQueryBool(r, "counts", false)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if custom && counts {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "custom and counts cannot be combined"))
			return
		}

		var data any
		switch {
		case counts:
			data, err = svc.GetCategoriesWithCounts(ctx)
		case custom:
			data, err = svc.GetCustomCategories(ctx)
		default:
			data, err = svc.GetAllCategories(ctx)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, data)
	}
}

func CategoryCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var req createCategoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := svc.SaveCategory(ctx, categories.Draft{Name: req.Name, Icon: req.Icon})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func CategoryJewellery(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		name, err := pathParam(r, "name")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := svc.GetJewelleryByCategory(ctx, name)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func CategoryUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var patch categories.Patch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UpdateCategory(ctx, chi.URLParam(r, "id"), patch); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func CategoryDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if err := svc.DeleteCategory(ctx, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
