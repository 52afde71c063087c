package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/jewelcatalog/api/responses"
	"github.com/angelmondragon/jewelcatalog/api/validators"
	"github.com/angelmondragon/jewelcatalog/internal/catalog"
	"github.com/angelmondragon/jewelcatalog/internal/wishlist"
	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
)

type createWishlistRequest struct {
	CustomerName string              `json:"customerName" validate:"required,notblank,max=200"`
	Categories   []string            `json:"categories"`
	JewelleryIDs string              `json:"jewelleryIds"`
	Images       []wishlist.Snapshot `json:"images" validate:"omitempty,dive"`
}

type buildWishlistRequest struct {
	CustomerName string   `json:"customerName" validate:"required,notblank,max=200"`
	ItemIDs      []string `json:"itemIds" validate:"required,min=1,dive,required"`
}

func WishlistList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		lists, err := svc.GetWishlists(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, lists)
	}
}

// WishlistCreate stores a wishlist exactly as the caller assembled it.
func WishlistCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var req createWishlistRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.SaveWishlist(ctx, wishlist.Draft{
			CustomerName: req.CustomerName,
			Categories:   req.Categories,
			JewelleryIDs: req.JewelleryIDs,
			Images:       req.Images,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, list)
	}
}

// WishlistBuild snapshots the referenced items into a new wishlist.
func WishlistBuild(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var req buildWishlistRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.BuildWishlist(ctx, req.CustomerName, req.ItemIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, list)
	}
}

func WishlistDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if err := svc.DeleteWishlist(ctx, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
