// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// relations.go loads the shallow relations of stat category items:
// owning category, creator, direct parent, and direct children. One level
// of eager loading only, never recursive.
package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"backoffice/internal/models"
)

// loadRelations annotates items in place with Category, Creator, Parent
// and Children. Children are ordered by sort_order then id.
func (s *StatCategoryItemStore) loadRelations(items []models.StatCategoryItem) error {
	if len(items) == 0 {
		return nil
	}

	itemIDs := make([]uuid.UUID, 0, len(items))
	categorySet := make(map[uuid.UUID]bool)
	creatorSet := make(map[uuid.UUID]bool)
	parentSet := make(map[uuid.UUID]bool)
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
		categorySet[it.CategoryID] = true
		creatorSet[it.CreatedBy] = true
		if it.ParentID != nil {
			parentSet[*it.ParentID] = true
		}
	}

	categories, err := s.fetchCategories(keys(categorySet))
	if err != nil {
		return err
	}
	creators, err := s.fetchUsers(keys(creatorSet))
	if err != nil {
		return err
	}
	parents, err := s.fetchItems(sq.Eq{"id": keys(parentSet)})
	if err != nil {
		return err
	}
	children, err := s.fetchItems(sq.Eq{"parent_id": itemIDs})
	if err != nil {
		return err
	}

	parentByID := make(map[uuid.UUID]models.StatCategoryItem, len(parents))
	for _, p := range parents {
		parentByID[p.ID] = p
	}
	childrenByParent := make(map[uuid.UUID][]models.StatCategoryItem)
	for _, c := range children {
		childrenByParent[*c.ParentID] = append(childrenByParent[*c.ParentID], c)
	}

	for i := range items {
		it := &items[i]
		if cat, ok := categories[it.CategoryID]; ok {
			c := cat
			it.Category = &c
		}
		if u, ok := creators[it.CreatedBy]; ok {
			cu := u
			it.Creator = &cu
		}
		if it.ParentID != nil {
			if p, ok := parentByID[*it.ParentID]; ok {
				pc := p
				it.Parent = &pc
			}
		}
		it.Children = childrenByParent[it.ID]
	}
	return nil
}

// fetchItems returns items matching the given squirrel predicate, ordered
// for display.
func (s *StatCategoryItemStore) fetchItems(pred sq.Eq) ([]models.StatCategoryItem, error) {
	// An empty IN list would match nothing anyway; skip the round trip.
	for _, v := range pred {
		if ids, ok := v.([]uuid.UUID); ok && len(ids) == 0 {
			return nil, nil
		}
	}

	query, args, err := sq.Select(
		"id", "category_id", "parent_id", "name", "label", "color",
		"status", "sort_order", "created_by", "created_at", "updated_at",
	).
		From("stat_category_items").
		Where(pred).
		OrderBy("sort_order ASC", "id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	defer rows.Close()

	var items []models.StatCategoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan related item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// fetchCategories returns the categories with the given ids keyed by id.
func (s *StatCategoryItemStore) fetchCategories(ids []uuid.UUID) (map[uuid.UUID]models.StatCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sq.Select(
		"id", "name", "label", "color", "status", "created_by", "created_at", "updated_at",
	).
		From("stat_categories").
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]models.StatCategory, len(ids))
	for rows.Next() {
		var c models.StatCategory
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Label, &c.Color, &c.Status,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan related category: %w", err)
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

// fetchUsers returns the users with the given ids keyed by id.
func (s *StatCategoryItemStore) fetchUsers(ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sq.Select(
		"id", "email", "display_name", "role", "created_at", "updated_at",
	).
		From("users").
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]models.User, len(ids))
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan related user: %w", err)
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}

// keys returns the keys of a uuid set as a slice.
func keys(set map[uuid.UUID]bool) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
