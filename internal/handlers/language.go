// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"backoffice/internal/models"
	"backoffice/internal/store"
)

// languageRequest is the wire shape for language create/update.
type languageRequest struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// LanguagesList returns all languages, default first.
func (a *API) LanguagesList(w http.ResponseWriter, r *http.Request) {
	languages, err := a.languages.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if languages == nil {
		languages = []models.Language{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": languages})
}

// LanguageCreate handles language creation.
func (a *API) LanguageCreate(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := a.languages.Create(&store.LanguageInput{Code: req.Code, Label: req.Label})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": created})
}

// LanguageShow returns a single language.
func (a *API) LanguageShow(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	language, err := a.languages.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if language == nil {
		writeMessage(w, http.StatusNotFound, "Language not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": language})
}

// LanguageUpdate handles language updates.
func (a *API) LanguageUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req languageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := a.languages.Update(id, &store.LanguageInput{Code: req.Code, Label: req.Label})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if updated == nil {
		writeMessage(w, http.StatusNotFound, "Language not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": updated})
}

// LanguageSetDefault makes a language the default one. The previous
// default is cleared in the same transaction.
func (a *API) LanguageSetDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := a.languages.SetDefault(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "Language not found.")
			return
		}
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Default language updated.")
}

// LanguageDelete handles language deletion. The default language and
// languages with translations are refused.
func (a *API) LanguageDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := a.languages.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "Language not found.")
			return
		}
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Language deleted.")
}
