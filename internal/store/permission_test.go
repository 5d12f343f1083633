// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"backoffice/internal/models"
)

func TestPermissionAllows(t *testing.T) {
	db := testDB(t)
	s := NewPermissionStore(db)

	// Grant directly; the seeder owns the real matrix.
	_, err := db.Exec(`
		INSERT INTO role_permissions (role, resource, action)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, models.RoleViewer, "perm_test_resource", "view")
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM role_permissions WHERE resource = 'perm_test_resource'`)
	})

	ok, err := s.Allows(models.RoleViewer, "perm_test_resource", "view")
	if err != nil {
		t.Fatalf("Allows: %v", err)
	}
	if !ok {
		t.Error("expected granted capability to allow")
	}

	denied, err := s.Allows(models.RoleViewer, "perm_test_resource", "delete")
	if err != nil {
		t.Fatalf("Allows (denied): %v", err)
	}
	if denied {
		t.Error("expected missing capability to deny")
	}
}
