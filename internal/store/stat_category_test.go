// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"backoffice/internal/models"
)

func TestCategoryCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewStatCategoryStore(db)

	user := testUser(t, db, "category-create@store-test.local")
	t.Cleanup(func() { cleanCategories(t, db, "category-test-create") })

	in := StatCategoryInput{
		Name:   "  category-test-create  ",
		Label:  "Create Test",
		Color:  "#00ff00",
		Status: models.StatusActive,
	}
	created, err := s.Create(&in, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "category-test-create" {
		t.Errorf("name: got %q, want trimmed", created.Name)
	}
	if created.CreatedBy != user.ID {
		t.Errorf("created_by: got %s, want %s", created.CreatedBy, user.ID)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Label != "Create Test" {
		t.Errorf("found: %+v", found)
	}

	// Not found case.
	missing, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown category")
	}
}

func TestCategoryNameConflict(t *testing.T) {
	db := testDB(t)
	s := NewStatCategoryStore(db)

	user := testUser(t, db, "category-conflict@store-test.local")
	t.Cleanup(func() { cleanCategories(t, db, "category-test-conflict", "category-test-conflict-2") })

	in := StatCategoryInput{Name: "category-test-conflict", Label: "First", Status: models.StatusActive}
	if _, err := s.Create(&in, user.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := StatCategoryInput{Name: "category-test-conflict", Label: "Second", Status: models.StatusActive}
	_, err := s.Create(&dup, user.ID)
	if got := fieldCode(err); got != models.ErrCodeNameConflict {
		t.Errorf("duplicate: got %q, want %q", got, models.ErrCodeNameConflict)
	}

	// Renaming onto a taken name is rejected too.
	second := StatCategoryInput{Name: "category-test-conflict-2", Label: "Second", Status: models.StatusActive}
	other, err := s.Create(&second, user.ID)
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	rename := StatCategoryInput{Name: "category-test-conflict", Label: "Second", Status: models.StatusActive}
	_, err = s.Update(other.ID, &rename)
	if got := fieldCode(err); got != models.ErrCodeNameConflict {
		t.Errorf("rename onto taken name: got %q, want %q", got, models.ErrCodeNameConflict)
	}

	// Keeping its own name on update is fine.
	keep := StatCategoryInput{Name: "category-test-conflict-2", Label: "Renamed Label", Status: models.StatusInactive}
	updated, err := s.Update(other.ID, &keep)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Label != "Renamed Label" || updated.Status != models.StatusInactive {
		t.Errorf("updated: %+v", updated)
	}
}

func TestCategoryDeleteBlockedByItems(t *testing.T) {
	db := testDB(t)
	s := NewStatCategoryStore(db)
	items := NewStatCategoryItemStore(db)

	user := testUser(t, db, "category-delete@store-test.local")
	cat := testCategory(t, db, "category-test-delete")

	in := itemInput(cat.ID, "Blocker")
	it, err := items.Create(&in, user.ID)
	if err != nil {
		t.Fatalf("Create item: %v", err)
	}

	err = s.Delete(cat.ID)
	if got := fieldCode(err); got != models.ErrCodeHasItems {
		t.Errorf("delete with items: got %q, want %q", got, models.ErrCodeHasItems)
	}

	if err := items.Delete(it.ID); err != nil {
		t.Fatalf("Delete item: %v", err)
	}
	if err := s.Delete(cat.ID); err != nil {
		t.Fatalf("Delete category: %v", err)
	}
}

func TestCategoryListItemCounts(t *testing.T) {
	db := testDB(t)
	s := NewStatCategoryStore(db)
	items := NewStatCategoryItemStore(db)

	user := testUser(t, db, "category-count@store-test.local")
	cat := testCategory(t, db, "category-test-count")

	for _, name := range []string{"A", "B"} {
		in := itemInput(cat.ID, name)
		if _, err := items.Create(&in, user.ID); err != nil {
			t.Fatalf("Create item %s: %v", name, err)
		}
	}

	all, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, c := range all {
		if c.ID == cat.ID {
			if c.ItemCount != 2 {
				t.Errorf("item count: got %d, want 2", c.ItemCount)
			}
			return
		}
	}
	t.Error("created category missing from List")
}
