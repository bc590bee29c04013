package controllers

import (
	"net/http"

	"github.com/angelmondragon/pos-analytics/api/responses"
	"github.com/angelmondragon/pos-analytics/api/validators"
	"github.com/angelmondragon/pos-analytics/internal/catalog"
	"github.com/angelmondragon/pos-analytics/pkg/logger"
)

// Metadata returns active stores, channels and categories in one payload.
func Metadata(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Metadata(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ListStores(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly, err := validators.ParseQueryBool(r, "active_only", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		stores, err := svc.ListStores(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stores)
	}
}

func ListChannels(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channels, err := svc.ListChannels(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, channels)
	}
}

func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// ListProducts accepts category_id and limit (1..maxLimit, default 100).
func ListProducts(svc catalog.Service, logg *logger.Logger, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseOptionalInt64(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, maxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := svc.ListProducts(r.Context(), catalog.ProductQuery{CategoryID: categoryID, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
