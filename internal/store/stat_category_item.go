// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"backoffice/internal/models"
)

// Field limits for stat category item input.
const (
	maxItemNameLen  = 50
	maxItemLabelLen = 100
	maxItemColorLen = 20
)

// List pagination bounds.
const (
	defaultPageSize = 50
	maxPageSize     = 200
)

const itemColumns = `id, category_id, parent_id, name, label, color, status, sort_order, created_by, created_at, updated_at`

// StatCategoryItemStore mediates all reads and writes of stat category
// items. It enforces the hierarchy invariants: per-category name
// uniqueness, parent/category consistency, no self-parenting or ancestor
// cycles, and deletion blocked while children exist. The unique index on
// (category_id, name) is the concurrency guarantee; the checks here exist
// to produce field-scoped errors.
type StatCategoryItemStore struct {
	db *sql.DB
}

// NewStatCategoryItemStore returns a new StatCategoryItemStore.
func NewStatCategoryItemStore(db *sql.DB) *StatCategoryItemStore {
	return &StatCategoryItemStore{db: db}
}

// StatCategoryItemInput carries validated-to-be input for create and update.
// SortOrder nil means "assign one past the category's current maximum".
type StatCategoryItemInput struct {
	CategoryID uuid.UUID
	ParentID   *uuid.UUID
	Name       string
	Label      string
	Color      *string
	Status     models.Status
	SortOrder  *int
}

// validateFields runs the field-level checks shared by create and update.
// First violation wins.
func (in *StatCategoryItemInput) validateFields() *models.FieldError {
	if in.CategoryID == uuid.Nil {
		return models.NewFieldError("category_id", models.ErrCodeRequired, "Category is required.")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.NewFieldError("name", models.ErrCodeRequired, "Name is required.")
	}
	if utf8.RuneCountInString(name) > maxItemNameLen {
		return models.NewFieldError("name", models.ErrCodeTooLong, "Name is too long (max 50 characters).")
	}
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return models.NewFieldError("label", models.ErrCodeRequired, "Label is required.")
	}
	if utf8.RuneCountInString(label) > maxItemLabelLen {
		return models.NewFieldError("label", models.ErrCodeTooLong, "Label is too long (max 100 characters).")
	}
	if in.Color != nil && utf8.RuneCountInString(*in.Color) > maxItemColorLen {
		return models.NewFieldError("color", models.ErrCodeTooLong, "Color is too long (max 20 characters).")
	}
	if !models.ValidStatus(in.Status) {
		return models.NewFieldError("status", models.ErrCodeInvalid, "Status must be active or inactive.")
	}
	if in.SortOrder != nil && *in.SortOrder < 0 {
		return models.NewFieldError("order", models.ErrCodeInvalid, "Order must be a non-negative integer.")
	}
	in.Name = name
	in.Label = label
	return nil
}

// scanItem scans a row into a StatCategoryItem struct.
func scanItem(scanner interface{ Scan(...any) error }) (*models.StatCategoryItem, error) {
	var it models.StatCategoryItem
	err := scanner.Scan(
		&it.ID, &it.CategoryID, &it.ParentID, &it.Name, &it.Label, &it.Color,
		&it.Status, &it.SortOrder, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// List returns one page of items ordered by sort_order then id, optionally
// filtered to a single category, with category, creator, parent and direct
// children loaded one level deep. The second return value is the total
// number of items matching the filter.
func (s *StatCategoryItemStore) List(categoryID *uuid.UUID, page, pageSize int) ([]models.StatCategoryItem, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	builder := sq.Select(strings.Split(itemColumns, ", ")...).
		From("stat_category_items").
		OrderBy("sort_order ASC", "id ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(sq.Dollar)
	countBuilder := sq.Select("COUNT(*)").
		From("stat_category_items").
		PlaceholderFormat(sq.Dollar)

	if categoryID != nil {
		builder = builder.Where(sq.Eq{"category_id": *categoryID})
		countBuilder = countBuilder.Where(sq.Eq{"category_id": *categoryID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []models.StatCategoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := s.db.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	if err := s.loadRelations(items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByCategory returns every item of one category ordered for display,
// without relations. Used to feed AssembleTree.
func (s *StatCategoryItemStore) ListByCategory(categoryID uuid.UUID) ([]models.StatCategoryItem, error) {
	rows, err := s.db.Query(`
		SELECT `+itemColumns+`
		FROM stat_category_items
		WHERE category_id = $1
		ORDER BY sort_order ASC, id ASC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	defer rows.Close()

	var items []models.StatCategoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// Tree returns one category's items assembled into a forest.
func (s *StatCategoryItemStore) Tree(categoryID uuid.UUID) ([]models.StatCategoryItem, error) {
	flat, err := s.ListByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	return AssembleTree(flat), nil
}

// FindByID retrieves an item by ID with relations loaded. Returns nil if
// not found.
func (s *StatCategoryItemStore) FindByID(id uuid.UUID) (*models.StatCategoryItem, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM stat_category_items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by id: %w", err)
	}

	items := []models.StatCategoryItem{*it}
	if err := s.loadRelations(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Create validates and inserts a new item owned by createdBy. When the
// input omits an order, the item is placed one past the category's current
// maximum (0 for an empty category).
func (s *StatCategoryItemStore) Create(in *StatCategoryItemInput, createdBy uuid.UUID) (*models.StatCategoryItem, error) {
	if ferr := in.validateFields(); ferr != nil {
		return nil, ferr
	}
	if err := s.checkCategoryExists(in.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(in.CategoryID, in.Name, nil); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if err := s.checkParent(*in.ParentID, in.CategoryID); err != nil {
			return nil, err
		}
	}

	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	} else {
		next, err := s.nextSortOrder(in.CategoryID)
		if err != nil {
			return nil, err
		}
		sortOrder = next
	}

	row := s.db.QueryRow(`
		INSERT INTO stat_category_items (category_id, parent_id, name, label, color, status, sort_order, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+itemColumns,
		in.CategoryID, in.ParentID, in.Name, in.Label, in.Color, in.Status, sortOrder, createdBy,
	)
	created, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	items := []models.StatCategoryItem{*created}
	if err := s.loadRelations(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update validates and applies new field values to an existing item.
// Returns nil, nil when the item does not exist. A category change is
// cascaded to every descendant in the same transaction so children can
// never end up in a different category than their parent.
func (s *StatCategoryItemStore) Update(id uuid.UUID, in *StatCategoryItemInput) (*models.StatCategoryItem, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM stat_category_items WHERE id = $1`, id)
	current, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item for update: %w", err)
	}

	if ferr := in.validateFields(); ferr != nil {
		return nil, ferr
	}
	if err := s.checkCategoryExists(in.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(in.CategoryID, in.Name, &id); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, models.NewFieldError("parent_id", models.ErrCodeSelfParent, "An item cannot be its own parent.")
		}
		if err := s.checkParent(*in.ParentID, in.CategoryID); err != nil {
			return nil, err
		}
		cycle, err := s.wouldCycle(id, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, models.NewFieldError("parent_id", models.ErrCodeCycleDetected, "The chosen parent is a descendant of this item.")
		}
	}

	sortOrder := current.SortOrder
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin update tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE stat_category_items SET
			category_id = $1, parent_id = $2, name = $3, label = $4,
			color = $5, status = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
	`, in.CategoryID, in.ParentID, in.Name, in.Label, in.Color, in.Status, sortOrder, id)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if in.CategoryID != current.CategoryID {
		// Moving the item to another category moves its whole subtree.
		_, err = tx.Exec(`
			WITH RECURSIVE descendants AS (
				SELECT id FROM stat_category_items WHERE parent_id = $1
				UNION ALL
				SELECT i.id FROM stat_category_items i
				JOIN descendants d ON i.parent_id = d.id
			)
			UPDATE stat_category_items
			SET category_id = $2, updated_at = NOW()
			WHERE id IN (SELECT id FROM descendants)
		`, id, in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("cascade category change: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update tx: %w", err)
	}

	return s.FindByID(id)
}

// Delete hard-deletes an item. Items with children cannot be deleted; the
// call is a no-op and returns a HAS_CHILDREN field error.
func (s *StatCategoryItemStore) Delete(id uuid.UUID) error {
	var children int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM stat_category_items WHERE parent_id = $1`, id).Scan(&children)
	if err != nil {
		return fmt.Errorf("count children: %w", err)
	}
	if children > 0 {
		return models.NewFieldError("id", models.ErrCodeHasChildren, "This item has child items and cannot be deleted.")
	}

	_, err = s.db.Exec(`DELETE FROM stat_category_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ReorderPair is a single (item, new order) assignment in a reorder request.
type ReorderPair struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"order"`
}

// Reorder applies each order assignment as an independent point update.
// Duplicate and gapped order values are permitted; sort_order is a sort
// key, not an identity. A pair naming an unknown item fails the call.
func (s *StatCategoryItemStore) Reorder(pairs []ReorderPair) error {
	for _, p := range pairs {
		if p.SortOrder < 0 {
			return models.NewFieldError("order", models.ErrCodeInvalid, "Order must be a non-negative integer.")
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin reorder tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE stat_category_items SET sort_order = $1, updated_at = $2
		WHERE id = $3`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, p := range pairs {
		res, err := stmt.Exec(p.SortOrder, now, p.ID)
		if err != nil {
			return fmt.Errorf("reorder item %s: %w", p.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reorder item %s: %w", p.ID, err)
		}
		if affected == 0 {
			return models.NewFieldError("id", models.ErrCodeItemNotFound, fmt.Sprintf("Item %s does not exist.", p.ID))
		}
	}

	return tx.Commit()
}

// checkCategoryExists verifies the owning category is present.
func (s *StatCategoryItemStore) checkCategoryExists(categoryID uuid.UUID) error {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM stat_categories WHERE id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return models.NewFieldError("category_id", models.ErrCodeCategoryNotFound, "The selected category does not exist.")
	}
	return nil
}

// checkNameUnique enforces per-category name uniqueness. excludeID skips
// the item being updated.
func (s *StatCategoryItemStore) checkNameUnique(categoryID uuid.UUID, name string, excludeID *uuid.UUID) error {
	var exists bool
	var err error
	if excludeID == nil {
		err = s.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM stat_category_items WHERE category_id = $1 AND name = $2)
		`, categoryID, name).Scan(&exists)
	} else {
		err = s.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM stat_category_items WHERE category_id = $1 AND name = $2 AND id <> $3)
		`, categoryID, name, *excludeID).Scan(&exists)
	}
	if err != nil {
		return fmt.Errorf("check name uniqueness: %w", err)
	}
	if exists {
		return models.NewFieldError("name", models.ErrCodeNameConflict, "An item with this name already exists in the category.")
	}
	return nil
}

// checkParent verifies the referenced parent exists and belongs to the
// same category as the item being written.
func (s *StatCategoryItemStore) checkParent(parentID, categoryID uuid.UUID) error {
	var parentCategoryID uuid.UUID
	err := s.db.QueryRow(`SELECT category_id FROM stat_category_items WHERE id = $1`, parentID).Scan(&parentCategoryID)
	if err == sql.ErrNoRows {
		return models.NewFieldError("parent_id", models.ErrCodeParentNotFound, "The selected parent item does not exist.")
	}
	if err != nil {
		return fmt.Errorf("check parent: %w", err)
	}
	if parentCategoryID != categoryID {
		return models.NewFieldError("parent_id", models.ErrCodeParentCategoryMismatch, "The parent item belongs to a different category.")
	}
	return nil
}

// wouldCycle walks the ancestor chain from the proposed parent upward and
// reports whether it reaches the item being written. The visited set stops
// the walk on pre-existing corrupt chains instead of looping.
func (s *StatCategoryItemStore) wouldCycle(itemID, parentID uuid.UUID) (bool, error) {
	visited := make(map[uuid.UUID]bool)
	cur := &parentID
	for cur != nil {
		if *cur == itemID {
			return true, nil
		}
		if visited[*cur] {
			return false, nil
		}
		visited[*cur] = true

		var next *uuid.UUID
		err := s.db.QueryRow(`SELECT parent_id FROM stat_category_items WHERE id = $1`, *cur).Scan(&next)
		if err == sql.ErrNoRows {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("walk ancestors: %w", err)
		}
		cur = next
	}
	return false, nil
}

// nextSortOrder returns one past the maximum order within a category, or 0
// for an empty category.
func (s *StatCategoryItemStore) nextSortOrder(categoryID uuid.UUID) (int, error) {
	var next int
	err := s.db.QueryRow(`
		SELECT COALESCE(MAX(sort_order) + 1, 0) FROM stat_category_items WHERE category_id = $1
	`, categoryID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sort order: %w", err)
	}
	return next, nil
}
