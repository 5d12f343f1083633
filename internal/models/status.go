// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Status is the active/inactive flag carried by categories and items.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidStatus returns true for a known status value.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive
}
