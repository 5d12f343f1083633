// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"backoffice/internal/models"
)

const (
	maxCategoryNameLen  = 50
	maxCategoryLabelLen = 100
	maxCategoryColorLen = 20
)

const categoryColumns = `id, name, label, color, status, created_by, created_at, updated_at`

// StatCategoryStore manages stat categories in the database.
type StatCategoryStore struct {
	db *sql.DB
}

// NewStatCategoryStore returns a new StatCategoryStore.
func NewStatCategoryStore(db *sql.DB) *StatCategoryStore {
	return &StatCategoryStore{db: db}
}

// StatCategoryInput carries create/update input for a category.
type StatCategoryInput struct {
	Name   string
	Label  string
	Color  string
	Status models.Status
}

// validateFields runs field-level checks. First violation wins.
func (in *StatCategoryInput) validateFields() *models.FieldError {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.NewFieldError("name", models.ErrCodeRequired, "Name is required.")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return models.NewFieldError("name", models.ErrCodeTooLong, "Name is too long (max 50 characters).")
	}
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return models.NewFieldError("label", models.ErrCodeRequired, "Label is required.")
	}
	if utf8.RuneCountInString(label) > maxCategoryLabelLen {
		return models.NewFieldError("label", models.ErrCodeTooLong, "Label is too long (max 100 characters).")
	}
	if utf8.RuneCountInString(in.Color) > maxCategoryColorLen {
		return models.NewFieldError("color", models.ErrCodeTooLong, "Color is too long (max 20 characters).")
	}
	if !models.ValidStatus(in.Status) {
		return models.NewFieldError("status", models.ErrCodeInvalid, "Status must be active or inactive.")
	}
	in.Name = name
	in.Label = label
	return nil
}

// scanCategory scans a row into a StatCategory struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.StatCategory, error) {
	var c models.StatCategory
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Label, &c.Color, &c.Status,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name, with item counts.
func (s *StatCategoryStore) List() ([]models.StatCategory, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.label, c.color, c.status, c.created_by,
		       c.created_at, c.updated_at,
		       COUNT(i.id) AS item_count
		FROM stat_categories c
		LEFT JOIN stat_category_items i ON i.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.StatCategory
	for rows.Next() {
		var c models.StatCategory
		err := rows.Scan(
			&c.ID, &c.Name, &c.Label, &c.Color, &c.Status,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&c.ItemCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *StatCategoryStore) FindByID(id uuid.UUID) (*models.StatCategory, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM stat_categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create validates and inserts a new category owned by createdBy.
func (s *StatCategoryStore) Create(in *StatCategoryInput, createdBy uuid.UUID) (*models.StatCategory, error) {
	if ferr := in.validateFields(); ferr != nil {
		return nil, ferr
	}
	if err := s.checkNameUnique(in.Name, nil); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO stat_categories (name, label, color, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		in.Name, in.Label, in.Color, in.Status, createdBy,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Update validates and applies new field values. Returns nil, nil when the
// category does not exist.
func (s *StatCategoryStore) Update(id uuid.UUID, in *StatCategoryInput) (*models.StatCategory, error) {
	existing, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if ferr := in.validateFields(); ferr != nil {
		return nil, ferr
	}
	if err := s.checkNameUnique(in.Name, &id); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		UPDATE stat_categories SET
			name = $1, label = $2, color = $3, status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+categoryColumns,
		in.Name, in.Label, in.Color, in.Status, id,
	)
	updated, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category. Categories still referenced by items cannot
// be deleted.
func (s *StatCategoryStore) Delete(id uuid.UUID) error {
	var items int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM stat_category_items WHERE category_id = $1`, id).Scan(&items)
	if err != nil {
		return fmt.Errorf("count category items: %w", err)
	}
	if items > 0 {
		return models.NewFieldError("id", models.ErrCodeHasItems, "This category still has items and cannot be deleted.")
	}

	_, err = s.db.Exec(`DELETE FROM stat_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// checkNameUnique enforces global category name uniqueness.
func (s *StatCategoryStore) checkNameUnique(name string, excludeID *uuid.UUID) error {
	var exists bool
	var err error
	if excludeID == nil {
		err = s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM stat_categories WHERE name = $1)`, name).Scan(&exists)
	} else {
		err = s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM stat_categories WHERE name = $1 AND id <> $2)`, name, *excludeID).Scan(&exists)
	}
	if err != nil {
		return fmt.Errorf("check category name uniqueness: %w", err)
	}
	if exists {
		return models.NewFieldError("name", models.ErrCodeNameConflict, "A category with this name already exists.")
	}
	return nil
}
