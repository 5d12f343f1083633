// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"backoffice/internal/models"
)

// flatItem builds a bare item for tree assembly tests. AssembleTree only
// looks at ID, ParentID and input order.
func flatItem(id uuid.UUID, parentID *uuid.UUID, name string) models.StatCategoryItem {
	return models.StatCategoryItem{ID: id, ParentID: parentID, Name: name}
}

func TestAssembleTreeNesting(t *testing.T) {
	root := uuid.New()
	childA := uuid.New()
	childB := uuid.New()
	grand := uuid.New()

	forest := AssembleTree([]models.StatCategoryItem{
		flatItem(root, nil, "root"),
		flatItem(childA, &root, "child-a"),
		flatItem(childB, &root, "child-b"),
		flatItem(grand, &childA, "grandchild"),
	})

	if len(forest) != 1 {
		t.Fatalf("roots: got %d, want 1", len(forest))
	}
	r := forest[0]
	if r.Name != "root" {
		t.Errorf("root name: got %q", r.Name)
	}
	if len(r.Children) != 2 {
		t.Fatalf("root children: got %d, want 2", len(r.Children))
	}
	if r.Children[0].Name != "child-a" || r.Children[1].Name != "child-b" {
		t.Errorf("sibling order: got %q, %q", r.Children[0].Name, r.Children[1].Name)
	}
	if len(r.Children[0].Children) != 1 || r.Children[0].Children[0].Name != "grandchild" {
		t.Errorf("grandchild not nested under child-a: %+v", r.Children[0].Children)
	}
	if len(r.Children[1].Children) != 0 {
		t.Errorf("child-b should be a leaf, got %d children", len(r.Children[1].Children))
	}
}

func TestAssembleTreePreservesRootOrder(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	forest := AssembleTree([]models.StatCategoryItem{
		flatItem(b, nil, "second"),
		flatItem(a, nil, "first"),
		flatItem(c, nil, "third"),
	})

	if len(forest) != 3 {
		t.Fatalf("roots: got %d, want 3", len(forest))
	}
	want := []string{"second", "first", "third"}
	for i, w := range want {
		if forest[i].Name != w {
			t.Errorf("root %d: got %q, want %q", i, forest[i].Name, w)
		}
	}
}

func TestAssembleTreeDropsOrphans(t *testing.T) {
	root := uuid.New()
	missing := uuid.New()
	orphan := uuid.New()
	orphanChild := uuid.New()

	forest := AssembleTree([]models.StatCategoryItem{
		flatItem(root, nil, "root"),
		flatItem(orphan, &missing, "orphan"),
		flatItem(orphanChild, &orphan, "orphan-child"),
	})

	// The orphan is dropped; its own child survives only through the
	// orphan, which is absent from the forest, so it is dropped too.
	if len(forest) != 1 {
		t.Fatalf("roots: got %d, want 1", len(forest))
	}
	if forest[0].Name != "root" || len(forest[0].Children) != 0 {
		t.Errorf("unexpected forest: %+v", forest)
	}
}

func TestAssembleTreeAllOrphansYieldsEmptyForest(t *testing.T) {
	missing := uuid.New()
	forest := AssembleTree([]models.StatCategoryItem{
		flatItem(uuid.New(), &missing, "a"),
		flatItem(uuid.New(), &missing, "b"),
	})
	if forest == nil {
		t.Fatal("expected empty non-nil forest")
	}
	if len(forest) != 0 {
		t.Errorf("got %d roots, want 0", len(forest))
	}
}

func TestAssembleTreeEmptyInput(t *testing.T) {
	forest := AssembleTree(nil)
	if forest == nil {
		t.Fatal("expected empty non-nil forest")
	}
	if len(forest) != 0 {
		t.Errorf("got %d roots, want 0", len(forest))
	}
}

func TestAssembleTreeDoesNotModifyInput(t *testing.T) {
	root := uuid.New()
	child := uuid.New()
	flat := []models.StatCategoryItem{
		flatItem(root, nil, "root"),
		flatItem(child, &root, "child"),
	}

	AssembleTree(flat)

	if flat[0].Children != nil {
		t.Error("input root grew children")
	}
	if flat[1].ParentID == nil || *flat[1].ParentID != root {
		t.Error("input child parent changed")
	}
}
