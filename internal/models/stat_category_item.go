// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StatCategoryItem is a leaf or branch entry within a StatCategory,
// optionally nested under a parent item of the same category. Items whose
// Color is empty inherit the category color in presentation.
type StatCategoryItem struct {
	ID         uuid.UUID  `json:"id"`
	CategoryID uuid.UUID  `json:"category_id"`
	ParentID   *uuid.UUID `json:"parent_id"`
	Name       string     `json:"name"`
	Label      string     `json:"label"`
	Color      *string    `json:"color"`
	Status     Status     `json:"status"`
	SortOrder  int        `json:"sort_order"`
	CreatedBy  uuid.UUID  `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods. Parent and Children are
	// one level deep, never recursive on read paths.
	Category *StatCategory      `json:"category,omitempty"`
	Creator  *User              `json:"creator,omitempty"`
	Parent   *StatCategoryItem  `json:"parent,omitempty"`
	Children []StatCategoryItem `json:"children,omitempty"`
}
