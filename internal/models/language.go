// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Language is a supported UI language. Exactly one language carries the
// default flag at any time; the store enforces that transactionally.
type Language struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"` // BCP 47-ish machine key, e.g. "en", "pt-BR"
	Label     string    `json:"label"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Translation is a single translated string, addressed by
// (language, group, key). Groups partition keys by UI area.
type Translation struct {
	ID         uuid.UUID `json:"id"`
	LanguageID uuid.UUID `json:"language_id"`
	Group      string    `json:"group"`
	Key        string    `json:"key"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
