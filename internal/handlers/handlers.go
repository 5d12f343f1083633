// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the back-office API.
// Handlers are grouped on the API struct and receive their dependencies
// through it. Validation failures and conflicts come back from the stores
// as models.FieldError and are rendered as field-keyed error documents.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"backoffice/internal/cache"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

// API groups all back-office JSON handlers and their dependencies.
// i18nCache may be nil when Valkey is not configured.
type API struct {
	categories   *store.StatCategoryStore
	items        *store.StatCategoryItemStore
	languages    *store.LanguageStore
	translations *store.TranslationStore
	users        *store.UserStore
	i18nCache    *cache.TranslationCache
}

// NewAPI creates the API handler group with the given dependencies.
func NewAPI(
	categories *store.StatCategoryStore,
	items *store.StatCategoryItemStore,
	languages *store.LanguageStore,
	translations *store.TranslationStore,
	users *store.UserStore,
	i18nCache *cache.TranslationCache,
) *API {
	return &API{
		categories:   categories,
		items:        items,
		languages:    languages,
		translations: translations,
		users:        users,
		i18nCache:    i18nCache,
	}
}

// writeJSON renders v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeMessage renders a flat {"message": ...} document.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeFieldError renders a field-keyed error document. State conflicts
// (delete blocked, default language) get 409; everything else is a 422
// validation outcome.
func writeFieldError(w http.ResponseWriter, ferr *models.FieldError) {
	status := http.StatusUnprocessableEntity
	switch ferr.Code {
	case models.ErrCodeHasChildren, models.ErrCodeHasItems,
		models.ErrCodeIsDefault, models.ErrCodeHasTranslations:
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]any{
		"errors": map[string][]*models.FieldError{
			ferr.Field: {ferr},
		},
	})
}

// writeStoreError routes a store failure to the right response: field
// errors become validation/conflict documents, anything else is a 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if ferr, ok := models.AsFieldError(err); ok {
		writeFieldError(w, ferr)
		return
	}
	slog.Error("store operation failed", "error", err)
	writeMessage(w, http.StatusInternalServerError, "Internal server error.")
}

// uuidParam parses the {id} route parameter. Writes a 400 and returns
// false on malformed input.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID.")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst. Writes a 400 and
// returns false on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed JSON body.")
		return false
	}
	return true
}

// intQuery reads an integer query parameter, falling back on absent or
// non-numeric values. Range clamping is the store's concern.
func intQuery(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
