// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kritikadev/kritika/internal/platform/constants"
)

// RedisAttemptLimiter implements [AttemptLimiter] with a per-username
// counter in Redis.
type RedisAttemptLimiter struct {
	client *redis.Client
}

// NewRedisAttemptLimiter creates a new Redis-backed AttemptLimiter.
func NewRedisAttemptLimiter(client *redis.Client) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client}
}

/*
Allow records one exchange attempt and reports whether the caller is still
within the window budget.

Description: INCR creates the key at 1; the expiry is attached on that first
attempt so the window slides from the first failure, not the last.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - bool: true while the attempt budget is not exhausted
  - error: Connectivity errors
*/
func (limiter *RedisAttemptLimiter) Allow(context context.Context, username string) (bool, error) {
	key := constants.RedisPrefixTokenAttempts + username

	count, err := limiter.client.Incr(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_token_attempts_incr_failed: %w", err)
	}

	if count == 1 {
		if err := limiter.client.Expire(context, key, constants.TokenExchangeAttemptWindow).Err(); err != nil {
			return false, fmt.Errorf("redis_token_attempts_expire_failed: %w", err)
		}
	}

	return count <= constants.TokenExchangeAttemptLimit, nil
}

/*
Reset clears the attempt counter after a successful exchange.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Deletion failures
*/
func (limiter *RedisAttemptLimiter) Reset(context context.Context, username string) error {
	key := constants.RedisPrefixTokenAttempts + username

	if err := limiter.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_token_attempts_del_failed: %w", err)
	}

	return nil
}
