// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"testing"

	"github.com/google/uuid"

	"backoffice/internal/models"
)

func TestNormalizeParentID(t *testing.T) {
	str := func(s string) *string { return &s }

	// All three "no parent" spellings collapse to absence.
	for name, raw := range map[string]*string{
		"json null":    nil,
		"empty string": str(""),
		"literal null": str("null"),
	} {
		t.Run(name, func(t *testing.T) {
			id, ferr := normalizeParentID(raw)
			if ferr != nil {
				t.Fatalf("unexpected error: %v", ferr)
			}
			if id != nil {
				t.Errorf("got %v, want nil", id)
			}
		})
	}

	want := uuid.New()
	id, ferr := normalizeParentID(str(want.String()))
	if ferr != nil {
		t.Fatalf("valid uuid: %v", ferr)
	}
	if id == nil || *id != want {
		t.Errorf("got %v, want %s", id, want)
	}

	_, ferr = normalizeParentID(str("not-a-uuid"))
	if ferr == nil || ferr.Code != models.ErrCodeInvalid {
		t.Errorf("garbage input: got %v, want INVALID", ferr)
	}
}

func TestItemRequestToInput(t *testing.T) {
	categoryID := uuid.New()
	order := 3

	req := statCategoryItemRequest{
		CategoryID: categoryID.String(),
		ParentID:   nil,
		Name:       "Assault",
		Label:      "Assault offenses",
		Status:     "active",
		Order:      &order,
	}
	in, ferr := req.toInput()
	if ferr != nil {
		t.Fatalf("toInput: %v", ferr)
	}
	if in.CategoryID != categoryID {
		t.Errorf("category: got %s", in.CategoryID)
	}
	if in.ParentID != nil {
		t.Error("expected nil parent")
	}
	if in.SortOrder == nil || *in.SortOrder != 3 {
		t.Errorf("order: got %v", in.SortOrder)
	}

	// Missing and malformed category references fail before any store call.
	req.CategoryID = ""
	if _, ferr := req.toInput(); ferr == nil || ferr.Code != models.ErrCodeRequired {
		t.Errorf("missing category: got %v", ferr)
	}
	req.CategoryID = "garbage"
	if _, ferr := req.toInput(); ferr == nil || ferr.Code != models.ErrCodeInvalid {
		t.Errorf("malformed category: got %v", ferr)
	}
}
