// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"backoffice/internal/models"
)

// PermissionStore answers capability questions keyed by
// (role, resource, action) against the role_permissions table.
type PermissionStore struct {
	db *sql.DB
}

// NewPermissionStore returns a new PermissionStore.
func NewPermissionStore(db *sql.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

// Allows reports whether the role holds the (resource, action) capability.
func (s *PermissionStore) Allows(role models.Role, resource, action string) (bool, error) {
	var allowed bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM role_permissions
			WHERE role = $1 AND resource = $2 AND action = $3
		)
	`, role, resource, action).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}
	return allowed, nil
}

// ListByRole returns every capability a role holds, as resource→actions.
func (s *PermissionStore) ListByRole(role models.Role) (map[string][]string, error) {
	rows, err := s.db.Query(`
		SELECT resource, action FROM role_permissions
		WHERE role = $1
		ORDER BY resource, action
	`, role)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var resource, action string
		if err := rows.Scan(&resource, &action); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		out[resource] = append(out[resource], action)
	}
	return out, rows.Err()
}
