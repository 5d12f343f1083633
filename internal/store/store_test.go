// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"backoffice/internal/database"
	"backoffice/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "backoffice")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "backoffice")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose's package-global embedded FS so later goose callers
	// aren't pinned to this package's migrations.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanCategories removes test categories (and their items, which cascade
// nothing; items must be cleaned first) by name. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM stat_category_items WHERE category_id IN (SELECT id FROM stat_categories WHERE name = $1)", name)
		db.Exec("DELETE FROM stat_categories WHERE name = $1", name)
	}
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanLanguages removes test languages (and their translations) by code.
// Call in t.Cleanup().
func cleanLanguages(t *testing.T, db *sql.DB, codes ...string) {
	t.Helper()
	for _, code := range codes {
		db.Exec(`DELETE FROM translations WHERE language_id IN (SELECT id FROM languages WHERE code = $1)`, code)
		db.Exec("DELETE FROM languages WHERE code = $1", code)
	}
}

// testCategory creates a throwaway category owned by its own throwaway
// user, and registers cleanup for both.
func testCategory(t *testing.T, db *sql.DB, name string) *models.StatCategory {
	t.Helper()

	owner := testUser(t, db, name+"-owner@store-test.local")
	// Registered after the owner's cleanup so the category goes first.
	t.Cleanup(func() { cleanCategories(t, db, name) })
	in := StatCategoryInput{Name: name, Label: name + " label", Status: models.StatusActive}
	c, err := NewStatCategoryStore(db).Create(&in, owner.ID)
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

// testUser creates a throwaway admin user and registers cleanup.
func testUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := NewUserStore(db).Create(email, "testpass123", "Store Test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create user %q: %v", email, err)
	}
	return u
}

// itemInput builds a minimal valid input for the given category.
func itemInput(categoryID uuid.UUID, name string) StatCategoryItemInput {
	return StatCategoryItemInput{
		CategoryID: categoryID,
		Name:       name,
		Label:      name + " label",
		Status:     models.StatusActive,
	}
}

// fieldCode extracts the code from a *models.FieldError, or "" when err is
// not one.
func fieldCode(err error) string {
	if ferr, ok := models.AsFieldError(err); ok {
		return ferr.Code
	}
	return ""
}
