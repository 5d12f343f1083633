// database_test.go exercises the connection pool setup against a live
// PostgreSQL instance; tests are skipped when none is reachable.
package database

import (
	"os"
	"testing"
)

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

func TestConnectConfiguresPool(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != maxOpenConns {
		t.Errorf("max open connections: got %d, want %d", got, maxOpenConns)
	}
}
