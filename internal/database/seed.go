package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// defaultPermissions is the capability matrix seeded for a fresh database.
// Admin gets every action; editors manage reference data but cannot delete
// or touch users; viewers only read.
var defaultPermissions = map[string]map[string][]string{
	"admin": {
		"stat_categories":     {"view", "create", "update", "delete"},
		"stat_category_items": {"view", "create", "update", "delete"},
		"languages":           {"view", "create", "update", "delete"},
		"translations":        {"view", "update", "delete"},
		"users":               {"view", "create"},
	},
	"editor": {
		"stat_categories":     {"view", "create", "update"},
		"stat_category_items": {"view", "create", "update"},
		"languages":           {"view"},
		"translations":        {"view", "update"},
	},
	"viewer": {
		"stat_categories":     {"view"},
		"stat_category_items": {"view"},
		"languages":           {"view"},
		"translations":        {"view"},
	},
}

// Seed populates the database with initial development data: the permission
// matrix, a default admin user, and a default language. Safe to run more
// than once: it skips anything that already exists.
func Seed(db *sql.DB) error {
	if err := seedPermissions(db); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}

		token := uuid.NewString()
		_, err = db.Exec(`
			INSERT INTO users (email, password_hash, display_name, role, api_token)
			VALUES ($1, $2, $3, $4, $5)
		`, "admin@backoffice.local", string(hash), "Admin", "admin", token)
		if err != nil {
			return fmt.Errorf("seed insert admin: %w", err)
		}

		slog.Info("database seeded with default admin user",
			"email", "admin@backoffice.local",
			"api_token", token,
		)
	}

	// Ensure a default language exists so translations have a home.
	var langCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM languages").Scan(&langCount); err != nil {
		return fmt.Errorf("seed check languages: %w", err)
	}
	if langCount == 0 {
		_, err := db.Exec(`
			INSERT INTO languages (code, label, is_default)
			VALUES ('en', 'English', TRUE)
		`)
		if err != nil {
			return fmt.Errorf("seed insert language: %w", err)
		}
		slog.Info("database seeded with default language", "code", "en")
	}

	return nil
}

// seedPermissions upserts the default capability matrix.
func seedPermissions(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed permissions begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO role_permissions (role, resource, action)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`)
	if err != nil {
		return fmt.Errorf("seed permissions prepare: %w", err)
	}
	defer stmt.Close()

	for role, resources := range defaultPermissions {
		for resource, actions := range resources {
			for _, action := range actions {
				if _, err := stmt.Exec(role, resource, action); err != nil {
					return fmt.Errorf("seed permission %s/%s/%s: %w", role, resource, action, err)
				}
			}
		}
	}

	return tx.Commit()
}
