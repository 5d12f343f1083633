// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"backoffice/internal/models"
)

func TestWriteFieldErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{models.ErrCodeRequired, 422},
		{models.ErrCodeNameConflict, 422},
		{models.ErrCodeCycleDetected, 422},
		{models.ErrCodeHasChildren, 409},
		{models.ErrCodeHasItems, 409},
		{models.ErrCodeIsDefault, 409},
		{models.ErrCodeHasTranslations, 409},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeFieldError(rec, models.NewFieldError("name", tc.code, "boom"))
			if rec.Code != tc.want {
				t.Errorf("status: got %d, want %d", rec.Code, tc.want)
			}

			var doc struct {
				Errors map[string][]models.FieldError `json:"errors"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(doc.Errors["name"]) != 1 || doc.Errors["name"][0].Code != tc.code {
				t.Errorf("body: %+v", doc.Errors)
			}
		})
	}
}

func TestWriteStoreErrorWrapsFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeStoreError(rec, models.NewFieldError("parent_id", models.ErrCodeParentNotFound, "missing"))
	if rec.Code != 422 {
		t.Errorf("field error status: got %d, want 422", rec.Code)
	}

	rec = httptest.NewRecorder()
	writeStoreError(rec, errors.New("connection reset"))
	if rec.Code != 500 {
		t.Errorf("plain error status: got %d, want 500", rec.Code)
	}
}
