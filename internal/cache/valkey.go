// Package cache provides Valkey (Redis-compatible) client initialization
// and the translation-group cache used by the translations API.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// valkeyClientName shows up in CLIENT LIST, which matters because the
	// back office shares its Valkey instance with other consumers.
	valkeyClientName = "backoffice"

	// valkeyPingTimeout bounds the startup connectivity check. The caller
	// treats a failure as "run without caching", so fail fast.
	valkeyPingTimeout = 5 * time.Second
)

// ConnectValkey creates a Valkey client and verifies the connection with a
// ping. The translation cache is this client's only consumer.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		Password:   password,
		DB:         0,
		ClientName: valkeyClientName,
	})

	ctx, cancel := context.WithTimeout(context.Background(), valkeyPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}
