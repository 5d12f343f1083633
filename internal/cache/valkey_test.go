// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"testing"
	"time"
)

func TestConnectValkeyFailsFastWhenUnreachable(t *testing.T) {
	start := time.Now()
	client, err := ConnectValkey("127.0.0.1", "1", "")
	if err == nil {
		client.Close()
		t.Fatal("expected an error for an unreachable server")
	}
	// The startup probe is bounded; the caller falls back to uncached
	// lookups, so it must not hang.
	if elapsed := time.Since(start); elapsed > valkeyPingTimeout+time.Second {
		t.Errorf("ping took %s, want at most ~%s", elapsed, valkeyPingTimeout)
	}
}
