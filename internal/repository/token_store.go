package repository

import (
	"context"
	"time"
)

// TokenStore abstracts ephemeral key-value state, used for single-use
// password reset tokens.
// Implementations: Redis (production) or in-memory (local dev / single-instance).
type TokenStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
