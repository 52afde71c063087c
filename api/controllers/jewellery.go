package controllers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/jewelcatalog/api/responses"
	"github.com/angelmondragon/jewelcatalog/api/validators"
	"github.com/angelmondragon/jewelcatalog/internal/catalog"
	"github.com/angelmondragon/jewelcatalog/internal/jewellery"
	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

type createJewelleryRequest struct {
	Image      string   `json:"image" validate:"required"`
	Name       string   `json:"name" validate:"required,notblank,max=200"`
	Categories []string `json:"categories" validate:"omitempty,dive,max=100"`
	Metal      *string  `json:"metal" validate:"omitempty,max=100"`
	Weight     *string  `json:"weight" validate:"omitempty,max=100"`
	Carat      *string  `json:"carat" validate:"omitempty,max=100"`
}

func (req createJewelleryRequest) draft() jewellery.Draft {
	return jewellery.Draft{
		Image:      req.Image,
		Name:       req.Name,
		Categories: req.Categories,
		Metal:      req.Metal,
		Weight:     req.Weight,
		Carat:      req.Carat,
	}
}

// JewelleryList returns every item newest first, or only the items filed
// under ?category= when it is present.
func JewelleryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var (
			items []jewellery.Item
			err   error
		)
		if category := r.URL.Query().Get("category"); category != "" {
			items, err = svc.GetJewelleryByCategory(ctx, category)
		} else {
			items, err = svc.GetJewelleryItems(ctx)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func JewelleryCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var req createJewelleryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.SaveJewelleryItem(ctx, req.draft())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func JewelleryByImageID(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		item, err := svc.FindJewelleryByImageID(ctx, chi.URLParam(r, "imgId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func JewelleryUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var patch jewellery.Patch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UpdateJewelleryItem(ctx, chi.URLParam(r, "id"), patch); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func JewelleryDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if err := svc.DeleteJewelleryItem(ctx, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// pathParam returns a decoded route parameter. chi matches on RawPath when the
// request carries one (e.g. an escaped "/" in a category name), and only then is
// the parameter still escaped.
func pathParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw, nil
	}
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid path parameter").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
