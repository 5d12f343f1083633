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
	maxLanguageCodeLen  = 20
	maxLanguageLabelLen = 100
)

const languageColumns = `id, code, label, is_default, created_at, updated_at`

// LanguageStore manages languages in the database.
type LanguageStore struct {
	db *sql.DB
}

// NewLanguageStore returns a new LanguageStore.
func NewLanguageStore(db *sql.DB) *LanguageStore {
	return &LanguageStore{db: db}
}

// LanguageInput carries create/update input for a language.
type LanguageInput struct {
	Code  string
	Label string
}

func (in *LanguageInput) validateFields() *models.FieldError {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return models.NewFieldError("code", models.ErrCodeRequired, "Code is required.")
	}
	if utf8.RuneCountInString(code) > maxLanguageCodeLen {
		return models.NewFieldError("code", models.ErrCodeTooLong, "Code is too long (max 20 characters).")
	}
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return models.NewFieldError("label", models.ErrCodeRequired, "Label is required.")
	}
	if utf8.RuneCountInString(label) > maxLanguageLabelLen {
		return models.NewFieldError("label", models.ErrCodeTooLong, "Label is too long (max 100 characters).")
	}
	in.Code = code
	in.Label = label
	return nil
}

// scanLanguage scans a row into a Language struct.
func scanLanguage(scanner interface{ Scan(...any) error }) (*models.Language, error) {
	var l models.Language
	err := scanner.Scan(&l.ID, &l.Code, &l.Label, &l.IsDefault, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all languages, default first, then by code.
func (s *LanguageStore) List() ([]models.Language, error) {
	rows, err := s.db.Query(`
		SELECT ` + languageColumns + ` FROM languages
		ORDER BY is_default DESC, code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	defer rows.Close()

	var languages []models.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		languages = append(languages, *l)
	}
	return languages, rows.Err()
}

// FindByID retrieves a language by ID. Returns nil if not found.
func (s *LanguageStore) FindByID(id uuid.UUID) (*models.Language, error) {
	row := s.db.QueryRow(`SELECT `+languageColumns+` FROM languages WHERE id = $1`, id)
	l, err := scanLanguage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find language by id: %w", err)
	}
	return l, nil
}

// Create validates and inserts a new language. The first language ever
// created becomes the default automatically.
func (s *LanguageStore) Create(in *LanguageInput) (*models.Language, error) {
	if ferr := in.validateFields(); ferr != nil {
		return nil, ferr
	}
	if err := s.checkCodeUnique(in.Code, nil); err != nil {
		return nil, err
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM languages`).Scan(&count); err != nil {
		return nil, fmt.Errorf("count languages: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO languages (code, label, is_default)
		VALUES ($1, $2, $3)
		RETURNING `+languageColumns,
		in.Code, in.Label, count == 0,
	)
	created, err := scanLanguage(row)
	if err != nil {
		return nil, fmt.Errorf("create language: %w", err)
	}
	return created, nil
}

// Update validates and applies new field values. Returns nil, nil when the
// language does not exist.
func (s *LanguageStore) Update(id uuid.UUID, in *LanguageInput) (*models.Language, error) {
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
	if err := s.checkCodeUnique(in.Code, &id); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		UPDATE languages SET code = $1, label = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+languageColumns,
		in.Code, in.Label, id,
	)
	updated, err := scanLanguage(row)
	if err != nil {
		return nil, fmt.Errorf("update language: %w", err)
	}
	return updated, nil
}

// SetDefault makes one language the default. The old default is cleared in
// the same transaction as the new one is set, so at no point do zero or two
// defaults exist.
func (s *LanguageStore) SetDefault(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin set default tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE languages SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set default language: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set default language: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	_, err = tx.Exec(`UPDATE languages SET is_default = FALSE, updated_at = NOW() WHERE id <> $1 AND is_default`, id)
	if err != nil {
		return fmt.Errorf("clear previous default: %w", err)
	}

	return tx.Commit()
}

// Delete removes a language. The default language and languages that still
// own translations cannot be deleted.
func (s *LanguageStore) Delete(id uuid.UUID) error {
	l, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if l == nil {
		return sql.ErrNoRows
	}
	if l.IsDefault {
		return models.NewFieldError("id", models.ErrCodeIsDefault, "The default language cannot be deleted.")
	}

	var translations int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM translations WHERE language_id = $1`, id).Scan(&translations); err != nil {
		return fmt.Errorf("count language translations: %w", err)
	}
	if translations > 0 {
		return models.NewFieldError("id", models.ErrCodeHasTranslations, "This language still has translations and cannot be deleted.")
	}

	_, err = s.db.Exec(`DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete language: %w", err)
	}
	return nil
}

// checkCodeUnique enforces global language code uniqueness.
func (s *LanguageStore) checkCodeUnique(code string, excludeID *uuid.UUID) error {
	var exists bool
	var err error
	if excludeID == nil {
		err = s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM languages WHERE code = $1)`, code).Scan(&exists)
	} else {
		err = s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM languages WHERE code = $1 AND id <> $2)`, code, *excludeID).Scan(&exists)
	}
	if err != nil {
		return fmt.Errorf("check language code uniqueness: %w", err)
	}
	if exists {
		return models.NewFieldError("code", models.ErrCodeNameConflict, "A language with this code already exists.")
	}
	return nil
}
