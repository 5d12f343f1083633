// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"backoffice/internal/models"
)

// maxImportBody caps translation import payloads at 4 MiB.
const maxImportBody = 4 << 20

// languageIDQuery parses the required language_id query parameter and
// verifies the language exists.
func (a *API) languageIDQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.URL.Query().Get("language_id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid language_id.")
		return uuid.Nil, false
	}
	language, err := a.languages.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return uuid.Nil, false
	}
	if language == nil {
		writeMessage(w, http.StatusNotFound, "Language not found.")
		return uuid.Nil, false
	}
	return id, true
}

// TranslationsList returns a language's translations, optionally filtered
// to one group.
func (a *API) TranslationsList(w http.ResponseWriter, r *http.Request) {
	languageID, ok := a.languageIDQuery(w, r)
	if !ok {
		return
	}

	translations, err := a.translations.List(languageID, r.URL.Query().Get("group"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if translations == nil {
		translations = []models.Translation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": translations})
}

// TranslationsGroup returns one group as a key→value map. This is the hot
// lookup path and is served from Valkey when possible.
func (a *API) TranslationsGroup(w http.ResponseWriter, r *http.Request) {
	languageID, ok := a.languageIDQuery(w, r)
	if !ok {
		return
	}
	group := r.URL.Query().Get("group")
	if group == "" {
		writeMessage(w, http.StatusBadRequest, "Missing group.")
		return
	}

	if cached, hit := a.i18nCache.GetGroup(r.Context(), languageID, group); hit {
		writeJSON(w, http.StatusOK, map[string]any{"data": cached})
		return
	}

	m, err := a.translations.Group(languageID, group)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	a.i18nCache.SetGroup(r.Context(), languageID, group, m)
	writeJSON(w, http.StatusOK, map[string]any{"data": m})
}

// translationRequest is the wire shape for a single translation upsert.
type translationRequest struct {
	LanguageID string `json:"language_id"`
	Group      string `json:"group"`
	Key        string `json:"key"`
	Value      string `json:"value"`
}

// TranslationUpsert creates or updates one translation.
func (a *API) TranslationUpsert(w http.ResponseWriter, r *http.Request) {
	var req translationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	languageID, err := uuid.Parse(req.LanguageID)
	if err != nil {
		writeFieldError(w, models.NewFieldError("language_id", models.ErrCodeInvalid, "Language must be a valid ID."))
		return
	}
	language, err := a.languages.FindByID(languageID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if language == nil {
		writeFieldError(w, models.NewFieldError("language_id", models.ErrCodeInvalid, "The selected language does not exist."))
		return
	}

	t, err := a.translations.Upsert(languageID, req.Group, req.Key, req.Value)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	a.i18nCache.InvalidateLanguage(r.Context(), languageID)
	writeJSON(w, http.StatusOK, map[string]any{"data": t})
}

// TranslationDelete removes one translation.
func (a *API) TranslationDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	t, err := a.translations.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if t == nil {
		writeMessage(w, http.StatusNotFound, "Translation not found.")
		return
	}

	if err := a.translations.Delete(id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		writeStoreError(w, err)
		return
	}

	a.i18nCache.InvalidateLanguage(r.Context(), t.LanguageID)
	writeMessage(w, http.StatusOK, "Translation deleted.")
}

// TranslationsExport streams a language's full catalog as JSON or YAML,
// shaped group→key→value.
func (a *API) TranslationsExport(w http.ResponseWriter, r *http.Request) {
	languageID, ok := a.languageIDQuery(w, r)
	if !ok {
		return
	}

	payload, err := a.translations.Export(languageID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		if err := yaml.NewEncoder(w).Encode(payload); err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to encode export.")
		}
	case "", "json":
		writeJSON(w, http.StatusOK, payload)
	default:
		writeMessage(w, http.StatusBadRequest, "Unsupported format.")
	}
}

// TranslationsImport bulk-upserts a group→key→value payload for one
// language in a single transaction. Existing keys are overwritten, keys
// absent from the payload are kept.
func (a *API) TranslationsImport(w http.ResponseWriter, r *http.Request) {
	languageID, ok := a.languageIDQuery(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read body.")
		return
	}

	var payload map[string]map[string]string
	switch r.URL.Query().Get("format") {
	case "yaml":
		err = yaml.Unmarshal(body, &payload)
	case "", "json":
		err = json.Unmarshal(body, &payload)
	default:
		writeMessage(w, http.StatusBadRequest, "Unsupported format.")
		return
	}
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed import payload.")
		return
	}

	count, err := a.translations.Import(languageID, payload)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	a.i18nCache.InvalidateLanguage(r.Context(), languageID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Translations imported.",
		"imported": count,
	})
}
