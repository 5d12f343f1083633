// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/models"
)

const translationColumns = `id, language_id, "group", key, value, created_at, updated_at`

// TranslationStore manages translated strings, addressed by
// (language, group, key).
type TranslationStore struct {
	db *sql.DB
}

// NewTranslationStore returns a new TranslationStore.
func NewTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db}
}

// scanTranslation scans a row into a Translation struct.
func scanTranslation(scanner interface{ Scan(...any) error }) (*models.Translation, error) {
	var t models.Translation
	err := scanner.Scan(&t.ID, &t.LanguageID, &t.Group, &t.Key, &t.Value, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns a language's translations, optionally filtered to one group,
// ordered by group then key.
func (s *TranslationStore) List(languageID uuid.UUID, group string) ([]models.Translation, error) {
	var rows *sql.Rows
	var err error
	if group == "" {
		rows, err = s.db.Query(`
			SELECT `+translationColumns+` FROM translations
			WHERE language_id = $1
			ORDER BY "group", key
		`, languageID)
	} else {
		rows, err = s.db.Query(`
			SELECT `+translationColumns+` FROM translations
			WHERE language_id = $1 AND "group" = $2
			ORDER BY key
		`, languageID, group)
	}
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var translations []models.Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, *t)
	}
	return translations, rows.Err()
}

// Group returns one group of a language's translations as a key→value map.
func (s *TranslationStore) Group(languageID uuid.UUID, group string) (map[string]string, error) {
	rows, err := s.db.Query(`
		SELECT key, value FROM translations
		WHERE language_id = $1 AND "group" = $2
	`, languageID, group)
	if err != nil {
		return nil, fmt.Errorf("load translation group: %w", err)
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan translation pair: %w", err)
		}
		m[k] = v
	}
	return m, rows.Err()
}

// FindByID retrieves a translation by ID. Returns nil if not found.
func (s *TranslationStore) FindByID(id uuid.UUID) (*models.Translation, error) {
	row := s.db.QueryRow(`SELECT `+translationColumns+` FROM translations WHERE id = $1`, id)
	t, err := scanTranslation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find translation by id: %w", err)
	}
	return t, nil
}

// Upsert creates or updates a single translation.
func (s *TranslationStore) Upsert(languageID uuid.UUID, group, key, value string) (*models.Translation, error) {
	if group == "" {
		return nil, models.NewFieldError("group", models.ErrCodeRequired, "Group is required.")
	}
	if key == "" {
		return nil, models.NewFieldError("key", models.ErrCodeRequired, "Key is required.")
	}

	row := s.db.QueryRow(`
		INSERT INTO translations (language_id, "group", key, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (language_id, "group", key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING `+translationColumns,
		languageID, group, key, value,
	)
	t, err := scanTranslation(row)
	if err != nil {
		return nil, fmt.Errorf("upsert translation: %w", err)
	}
	return t, nil
}

// Delete removes a translation by ID. Returns sql.ErrNoRows when absent.
func (s *TranslationStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM translations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Export returns every translation of a language as group→key→value.
func (s *TranslationStore) Export(languageID uuid.UUID) (map[string]map[string]string, error) {
	rows, err := s.db.Query(`
		SELECT "group", key, value FROM translations
		WHERE language_id = $1
		ORDER BY "group", key
	`, languageID)
	if err != nil {
		return nil, fmt.Errorf("export translations: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]string)
	for rows.Next() {
		var g, k, v string
		if err := rows.Scan(&g, &k, &v); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		if out[g] == nil {
			out[g] = make(map[string]string)
		}
		out[g][k] = v
	}
	return out, rows.Err()
}

// Import upserts a whole group→key→value payload in a single transaction.
// Existing keys are overwritten, keys absent from the payload are kept.
// Returns the number of upserted pairs.
func (s *TranslationStore) Import(languageID uuid.UUID, payload map[string]map[string]string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO translations (language_id, "group", key, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (language_id, "group", key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	count := 0
	for group, pairs := range payload {
		if group == "" {
			return 0, models.NewFieldError("group", models.ErrCodeRequired, "Group names cannot be empty.")
		}
		for key, value := range pairs {
			if key == "" {
				return 0, models.NewFieldError("key", models.ErrCodeRequired, "Keys cannot be empty.")
			}
			if _, err := stmt.Exec(languageID, group, key, value, now); err != nil {
				return 0, fmt.Errorf("import %s.%s: %w", group, key, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import tx: %w", err)
	}
	return count, nil
}
