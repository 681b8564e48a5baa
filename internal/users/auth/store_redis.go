// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/passage/internal/platform/apperr"
	"github.com/taibuivan/passage/internal/platform/constants"
)

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
//
// # Key Layout
//   - auth:reset_token:<hash> : JSON encoded [ResetToken]
//   - auth:reset_user:<userID> : hash of the user's current token
//
// Both keys live for the token lifetime plus the retention window, after which
// Redis drops them on its own.
type RedisResetTokenRepository struct {
	client redis.UniversalClient
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client redis.UniversalClient) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// maxWatchRetries bounds how often an optimistic transaction is retried.
const maxWatchRetries = 10

func tokenKey(tokenHash string) string { return constants.RedisPrefixResetToken + tokenHash }

func userKey(userID string) string { return constants.RedisPrefixResetUser + userID }

/*
Save stores a reset token and makes it the user's only active token.

Parameters:
  - context: context.Context
  - token: *ResetToken
  - retention: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Save(context context.Context, token *ResetToken, retention time.Duration) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("redis_reset_token_encode_failed: %w", err)
	}

	ttl := token.ExpiresAt.Sub(token.CreatedAt) + retention
	if ttl <= 0 {
		return fmt.Errorf("redis_reset_token_save_failed: non-positive ttl %s", ttl)
	}

	index := userKey(token.UserID)
	replace := func(tx *redis.Tx) error {
		previousHash, err := tx.Get(context, index).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			if previousHash != "" && previousHash != token.TokenHash {
				pipe.Del(context, tokenKey(previousHash))
			}
			pipe.Set(context, tokenKey(token.TokenHash), payload, ttl)
			pipe.Set(context, index, token.TokenHash, ttl)
			return nil
		})
		return err
	}

	if err := repository.watch(context, replace, index); err != nil {
		return fmt.Errorf("redis_reset_token_save_failed: %w", err)
	}

	return nil
}

/*
FindByHash retrieves the reset token stored under the given hash.

Description: Returns apperr.NotFound if the token was never issued, was
replaced, was used, or has aged out of the retention window.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *ResetToken: Stored record
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) FindByHash(context context.Context, tokenHash string) (*ResetToken, error) {
	payload, err := repository.client.Get(context, tokenKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Reset token not found")
		}
		return nil, fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	token := &ResetToken{}
	if err := json.Unmarshal(payload, token); err != nil {
		return nil, fmt.Errorf("redis_reset_token_decode_failed: %w", err)
	}

	return token, nil
}

/*
Delete claims a token for use by removing it.

Description: Only one caller can remove a given key, so concurrent redemptions
of the same token see apperr.NotFound on all but one. The user's index entry
is cleared when it still points at this token.

Parameters:
  - context: context.Context
  - token: *ResetToken

Returns:
  - error: apperr.NotFound when the token is already gone, or deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, token *ResetToken) error {
	removed, err := repository.client.Del(context, tokenKey(token.TokenHash)).Result()
	if err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	if removed == 0 {
		return apperr.NotFound("Reset token not found")
	}

	index := userKey(token.UserID)
	clearIndex := func(tx *redis.Tx) error {
		currentHash, err := tx.Get(context, index).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		if currentHash != token.TokenHash {
			return nil
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Del(context, index)
			return nil
		})
		return err
	}

	if err := repository.watch(context, clearIndex, index); err != nil {
		return fmt.Errorf("redis_reset_token_clear_index_failed: %w", err)
	}

	return nil
}

// watch runs fn in an optimistic transaction on keys, retrying while another
// client modifies them first.
func (repository *RedisResetTokenRepository) watch(context context.Context, fn func(*redis.Tx) error, keys ...string) error {
	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := repository.client.Watch(context, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}
