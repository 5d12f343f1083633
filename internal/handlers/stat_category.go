// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

// statCategoryRequest is the wire shape for category create/update.
type statCategoryRequest struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Status string `json:"status"`
}

func (req *statCategoryRequest) toInput() *store.StatCategoryInput {
	return &store.StatCategoryInput{
		Name:   req.Name,
		Label:  req.Label,
		Color:  req.Color,
		Status: models.Status(req.Status),
	}
}

// CategoriesList returns all categories with item counts.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if categories == nil {
		categories = []models.StatCategory{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": categories})
}

// CategoryCreate handles category creation.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req statCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	actor := middleware.IdentityFromCtx(r.Context())
	created, err := a.categories.Create(req.toInput(), actor.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": created})
}

// CategoryShow returns a single category.
func (a *API) CategoryShow(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	category, err := a.categories.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if category == nil {
		writeMessage(w, http.StatusNotFound, "Category not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": category})
}

// CategoryUpdate handles category updates.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req statCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := a.categories.Update(id, req.toInput())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if updated == nil {
		writeMessage(w, http.StatusNotFound, "Category not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": updated})
}

// CategoryDelete handles category deletion. Categories with items are
// refused.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := a.categories.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Category deleted.")
}
