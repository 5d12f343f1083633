// Package router sets up all HTTP routes and middleware chains for the
// back-office API. Every data route is gated by a capability check keyed
// by (role, resource, action); the reorder endpoint shares the items
// update capability.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backoffice/internal/handlers"
	"backoffice/internal/middleware"
	"backoffice/internal/store"
)

// Resource names used in the permission matrix.
const (
	resourceStatCategories = "stat_categories"
	resourceItems          = "stat_category_items"
	resourceLanguages      = "languages"
	resourceTranslations   = "translations"
	resourceUsers          = "users"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, users *store.UserStore, perms *store.PermissionStore) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. Identity loads before
	// the logger so access lines carry the acting user.
	r.Use(middleware.Recoverer)
	r.Use(middleware.LoadIdentity(users))
	r.Use(middleware.Logger)
	r.Use(middleware.NewMetrics().Collect)

	// Health check and metrics, no auth.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/stat-categories", func(r chi.Router) {
			r.With(gate(perms, resourceStatCategories, middleware.ActionView)).Get("/", api.CategoriesList)
			r.With(gate(perms, resourceStatCategories, middleware.ActionCreate)).Post("/", api.CategoryCreate)
			r.With(gate(perms, resourceStatCategories, middleware.ActionView)).Get("/{id}", api.CategoryShow)
			r.With(gate(perms, resourceStatCategories, middleware.ActionUpdate)).Put("/{id}", api.CategoryUpdate)
			r.With(gate(perms, resourceStatCategories, middleware.ActionUpdate)).Patch("/{id}", api.CategoryUpdate)
			r.With(gate(perms, resourceStatCategories, middleware.ActionDelete)).Delete("/{id}", api.CategoryDelete)
		})

		r.Route("/stat-category-items", func(r chi.Router) {
			r.With(gate(perms, resourceItems, middleware.ActionView)).Get("/", api.ItemsList)
			r.With(gate(perms, resourceItems, middleware.ActionView)).Get("/tree", api.ItemsTree)
			r.With(gate(perms, resourceItems, middleware.ActionCreate)).Post("/", api.ItemCreate)
			// Reorder only mutates sort keys, so it rides the update capability.
			r.With(gate(perms, resourceItems, middleware.ActionUpdate)).Post("/reorder", api.ItemsReorder)
			r.With(gate(perms, resourceItems, middleware.ActionView)).Get("/{id}", api.ItemShow)
			r.With(gate(perms, resourceItems, middleware.ActionUpdate)).Put("/{id}", api.ItemUpdate)
			r.With(gate(perms, resourceItems, middleware.ActionUpdate)).Patch("/{id}", api.ItemUpdate)
			r.With(gate(perms, resourceItems, middleware.ActionDelete)).Delete("/{id}", api.ItemDelete)
		})

		r.Route("/languages", func(r chi.Router) {
			r.With(gate(perms, resourceLanguages, middleware.ActionView)).Get("/", api.LanguagesList)
			r.With(gate(perms, resourceLanguages, middleware.ActionCreate)).Post("/", api.LanguageCreate)
			r.With(gate(perms, resourceLanguages, middleware.ActionView)).Get("/{id}", api.LanguageShow)
			r.With(gate(perms, resourceLanguages, middleware.ActionUpdate)).Put("/{id}", api.LanguageUpdate)
			r.With(gate(perms, resourceLanguages, middleware.ActionUpdate)).Post("/{id}/default", api.LanguageSetDefault)
			r.With(gate(perms, resourceLanguages, middleware.ActionDelete)).Delete("/{id}", api.LanguageDelete)
		})

		r.Route("/translations", func(r chi.Router) {
			r.With(gate(perms, resourceTranslations, middleware.ActionView)).Get("/", api.TranslationsList)
			r.With(gate(perms, resourceTranslations, middleware.ActionView)).Get("/group", api.TranslationsGroup)
			r.With(gate(perms, resourceTranslations, middleware.ActionView)).Get("/export", api.TranslationsExport)
			r.With(gate(perms, resourceTranslations, middleware.ActionUpdate)).Put("/", api.TranslationUpsert)
			r.With(gate(perms, resourceTranslations, middleware.ActionUpdate)).Post("/import", api.TranslationsImport)
			r.With(gate(perms, resourceTranslations, middleware.ActionDelete)).Delete("/{id}", api.TranslationDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(gate(perms, resourceUsers, middleware.ActionView)).Get("/", api.UsersList)
			r.With(gate(perms, resourceUsers, middleware.ActionCreate)).Post("/", api.UserCreate)
		})
	})

	return r
}

// gate builds the capability middleware for one (resource, action) pair.
func gate(perms *store.PermissionStore, resource, action string) func(http.Handler) http.Handler {
	return middleware.RequireCapability(perms, resource, action)
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
