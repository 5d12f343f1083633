// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"backoffice/internal/middleware"
	"backoffice/internal/models"
	"backoffice/internal/store"
)

// statCategoryItemRequest is the wire shape for item create/update.
// ParentID stays a raw string until normalizeParentID has dealt with the
// legacy "null" sentinel some clients still send.
type statCategoryItemRequest struct {
	CategoryID string  `json:"category_id"`
	ParentID   *string `json:"parent_id"`
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Color      *string `json:"color"`
	Status     string  `json:"status"`
	Order      *int    `json:"order"`
}

// normalizeParentID maps the sentinel values meaning "no parent" (JSON
// null, the empty string, and the literal string "null" (a quirk of the
// old form-serialization boundary, kept for client compatibility) to
// absence before validation sees the value.
func normalizeParentID(raw *string) (*uuid.UUID, *models.FieldError) {
	if raw == nil || *raw == "" || *raw == "null" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, models.NewFieldError("parent_id", models.ErrCodeInvalid, "Parent must be a valid item ID.")
	}
	return &id, nil
}

// toInput converts the wire shape into a store input, normalizing the
// parent sentinel and parsing the category reference.
func (req *statCategoryItemRequest) toInput() (*store.StatCategoryItemInput, *models.FieldError) {
	if req.CategoryID == "" {
		return nil, models.NewFieldError("category_id", models.ErrCodeRequired, "Category is required.")
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, models.NewFieldError("category_id", models.ErrCodeInvalid, "Category must be a valid ID.")
	}

	parentID, ferr := normalizeParentID(req.ParentID)
	if ferr != nil {
		return nil, ferr
	}

	return &store.StatCategoryItemInput{
		CategoryID: categoryID,
		ParentID:   parentID,
		Name:       req.Name,
		Label:      req.Label,
		Color:      req.Color,
		Status:     models.Status(req.Status),
		SortOrder:  req.Order,
	}, nil
}

// ItemsList returns one page of items, optionally filtered by category.
func (a *API) ItemsList(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid category_id.")
			return
		}
		categoryID = &id
	}

	page := intQuery(r, "page", 1)
	pageSize := intQuery(r, "page_size", 0)

	items, total, err := a.items.List(categoryID, page, pageSize)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if items == nil {
		items = []models.StatCategoryItem{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]int{
			"page":  page,
			"total": total,
		},
	})
}

// ItemsTree returns one category's items assembled into a forest.
func (a *API) ItemsTree(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(r.URL.Query().Get("category_id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid category_id.")
		return
	}

	tree, err := a.items.Tree(categoryID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": tree})
}

// ItemCreate handles item creation.
func (a *API) ItemCreate(w http.ResponseWriter, r *http.Request) {
	var req statCategoryItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, ferr := req.toInput()
	if ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context())
	created, err := a.items.Create(input, actor.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": created})
}

// ItemShow returns a single item with its relations.
func (a *API) ItemShow(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	item, err := a.items.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if item == nil {
		writeMessage(w, http.StatusNotFound, "Item not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": item})
}

// ItemUpdate handles item updates.
func (a *API) ItemUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req statCategoryItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, ferr := req.toInput()
	if ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	updated, err := a.items.Update(id, input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if updated == nil {
		writeMessage(w, http.StatusNotFound, "Item not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": updated})
}

// ItemDelete handles item deletion. Items with children are refused.
func (a *API) ItemDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := a.items.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item deleted.")
}

// reorderRequest is the wire shape for the reorder endpoint.
type reorderRequest struct {
	Items []store.ReorderPair `json:"items"`
}

// ItemsReorder applies a batch of (item, order) assignments.
func (a *API) ItemsReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeMessage(w, http.StatusBadRequest, "No items to reorder.")
		return
	}

	if err := a.items.Reorder(req.Items); err != nil {
		writeStoreError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Items reordered.")
}
