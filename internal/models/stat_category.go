// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StatCategory is a named grouping for statistic items, e.g. "Casualties"
// or "Arrests". Its name is a machine key and unique across the system;
// the label is what gets displayed.
type StatCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
	Status    Status    `json:"status"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Creator   *User `json:"creator,omitempty"`
	ItemCount int   `json:"item_count"`
}
