// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// translations.go provides a Valkey-backed cache for translation groups.
// Group lookups are the hot read path of the translations API; each
// (language, group) pair is cached as a JSON-encoded key→value map and
// invalidated whenever any translation in that language changes.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// translationKeyPrefix is the Valkey key prefix for cached groups.
	translationKeyPrefix = "i18n:"

	// DefaultTranslationTTL is how long a group stays cached.
	DefaultTranslationTTL = 10 * time.Minute
)

// TranslationCache manages translation-group caching in Valkey.
// A nil *TranslationCache is valid and degrades to always-miss, so the
// application keeps working when Valkey is not configured.
type TranslationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTranslationCache creates a translation cache backed by the given client.
func NewTranslationCache(client *redis.Client, ttl time.Duration) *TranslationCache {
	if ttl == 0 {
		ttl = DefaultTranslationTTL
	}
	return &TranslationCache{client: client, ttl: ttl}
}

// groupKey builds the Valkey key for a (language, group) pair.
func groupKey(languageID uuid.UUID, group string) string {
	return translationKeyPrefix + languageID.String() + ":" + group
}

// GetGroup retrieves a cached group map. Returns nil, false on miss.
func (tc *TranslationCache) GetGroup(ctx context.Context, languageID uuid.UUID, group string) (map[string]string, bool) {
	if tc == nil {
		return nil, false
	}
	val, err := tc.client.Get(ctx, groupKey(languageID, group)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("translation cache get error", "group", group, "error", err)
		return nil, false
	}

	var m map[string]string
	if err := json.Unmarshal(val, &m); err != nil {
		slog.Warn("translation cache decode error", "group", group, "error", err)
		return nil, false
	}
	return m, true
}

// SetGroup stores a group map with the configured TTL.
func (tc *TranslationCache) SetGroup(ctx context.Context, languageID uuid.UUID, group string, m map[string]string) {
	if tc == nil {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := tc.client.Set(ctx, groupKey(languageID, group), data, tc.ttl).Err(); err != nil {
		slog.Warn("translation cache set error", "group", group, "error", err)
	}
}

// InvalidateLanguage removes every cached group for a language. Used after
// writes, since imports can touch many groups at once.
func (tc *TranslationCache) InvalidateLanguage(ctx context.Context, languageID uuid.UUID) {
	if tc == nil {
		return
	}
	pattern := translationKeyPrefix + languageID.String() + ":*"
	var cursor uint64
	for {
		keys, nextCursor, err := tc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("translation cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := tc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("translation cache bulk delete error", "error", err)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}
