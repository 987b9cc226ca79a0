// Copyright (c) 2026 Tale of Talents. All rights reserved.
// Author: dev@taleoftalents.app

package locale

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/taleoftalents/tot-api/internal/platform/constants"
)

// RedisPreferenceStore implements [PreferenceStore] using Redis.
//
// Preferences have no TTL: a language choice holds until the account
// switches again.
type RedisPreferenceStore struct {
	client *redis.Client
}

// NewPreferenceStore creates a new Redis-backed [PreferenceStore].
func NewPreferenceStore(client *redis.Client) *RedisPreferenceStore {
	return &RedisPreferenceStore{client: client}
}

// Set stores an account's preferred locale code.
func (store *RedisPreferenceStore) Set(context context.Context, accountID, code string) error {
	key := constants.RedisPrefixLocalePref + accountID
	if err := store.client.Set(context, key, code, 0).Err(); err != nil {
		return fmt.Errorf("redis_locale_pref_set_failed: %w", err)
	}
	return nil
}

// Get returns an account's preferred locale code, "" when absent.
func (store *RedisPreferenceStore) Get(context context.Context, accountID string) (string, error) {
	key := constants.RedisPrefixLocalePref + accountID
	code, err := store.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_locale_pref_get_failed: %w", err)
	}
	return code, nil
}
