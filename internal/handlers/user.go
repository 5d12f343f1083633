// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"backoffice/internal/middleware"
	"backoffice/internal/models"
)

// userRequest is the wire shape for user creation.
type userRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// UsersList returns all users. Password hashes and API tokens never
// serialize.
func (a *API) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": users})
}

// UserCreate handles user creation. The generated API token is returned
// exactly once, in this response.
func (a *API) UserCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	displayName := strings.TrimSpace(req.DisplayName)
	role := models.Role(req.Role)

	var ferr *models.FieldError
	switch {
	case email == "":
		ferr = models.NewFieldError("email", models.ErrCodeRequired, "Email is required.")
	case displayName == "":
		ferr = models.NewFieldError("display_name", models.ErrCodeRequired, "Display name is required.")
	case len(req.Password) < 8:
		ferr = models.NewFieldError("password", models.ErrCodeInvalid, "Password must be at least 8 characters.")
	case !models.ValidRole(role):
		ferr = models.NewFieldError("role", models.ErrCodeInvalid, "Invalid role.")
	}
	if ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	existing, err := a.users.FindByEmail(email)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing != nil {
		writeFieldError(w, models.NewFieldError("email", models.ErrCodeNameConflict, "A user with this email already exists."))
		return
	}

	created, err := a.users.Create(email, req.Password, displayName, role)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context())
	slog.Info("user created", "admin", actor.Email, "new_user", email, "role", role)

	writeJSON(w, http.StatusCreated, map[string]any{
		"data":      created,
		"api_token": created.APIToken,
	})
}
