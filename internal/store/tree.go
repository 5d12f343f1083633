// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"github.com/google/uuid"

	"backoffice/internal/models"
)

// AssembleTree converts a flat list of items into a forest of root items,
// each recursively populated with its children. Items whose parent is not
// present in the input are dropped silently: the function may operate on
// a filtered subset, so a missing parent is a tolerance, not an error.
// Input order is preserved among roots and among siblings. Pure function;
// the input slice is not modified.
func AssembleTree(items []models.StatCategoryItem) []models.StatCategoryItem {
	byID := make(map[uuid.UUID]models.StatCategoryItem, len(items))
	for _, it := range items {
		clone := it
		clone.Children = nil
		byID[it.ID] = clone
	}

	var rootIDs []uuid.UUID
	childIDs := make(map[uuid.UUID][]uuid.UUID)
	for _, it := range items {
		if it.ParentID == nil {
			rootIDs = append(rootIDs, it.ID)
			continue
		}
		if _, ok := byID[*it.ParentID]; !ok {
			continue
		}
		childIDs[*it.ParentID] = append(childIDs[*it.ParentID], it.ID)
	}

	var build func(id uuid.UUID) models.StatCategoryItem
	build = func(id uuid.UUID) models.StatCategoryItem {
		node := byID[id]
		for _, cid := range childIDs[id] {
			node.Children = append(node.Children, build(cid))
		}
		return node
	}

	forest := make([]models.StatCategoryItem, 0, len(rootIDs))
	for _, id := range rootIDs {
		forest = append(forest, build(id))
	}
	return forest
}
