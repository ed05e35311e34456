package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/craftpress/printshop-backend/api/responses"
	"github.com/craftpress/printshop-backend/api/validators"
	"github.com/craftpress/printshop-backend/internal/catalog"
	"github.com/craftpress/printshop-backend/pkg/logger"
)

// CategoryTree returns the active category hierarchy.
func CategoryTree(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tree, err := svc.CategoryTree(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": tree})
	}
}

// GetCategory returns a single category.
func GetCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParsePathUUID(chi.URLParam(r, "categoryID"), "categoryID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := svc.GetCategory(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CreateCategory adds a taxonomy node; the slug and level are derived.
func CreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload catalog.CreateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := svc.CreateCategory(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// UpdateCategory applies a partial update to a category.
func UpdateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParsePathUUID(chi.URLParam(r, "categoryID"), "categoryID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload catalog.UpdateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(ctx, id, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// DeleteCategory removes an empty category.
func DeleteCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := validators.ParsePathUUID(chi.URLParam(r, "categoryID"), "categoryID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteCategory(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"message": "category deleted"})
	}
}
