// Package kv defines the get/set-by-key persistence surface used for shopper
// session state, plus the namespaced key layout shared by every backend.
package kv

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

const (
	keyNamespace      = "flow"
	cartPrefix        = "cart"
	wishlistPrefix    = "wishlist"
	idempotencyPrefix = "idempotency"
	rateLimitPrefix   = "rate_limit"
)

// Store is the minimal key/value contract for cart and wishlist snapshots.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Counter backs fixed-window rate limiting.
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// IdempotencyStore exposes the operations used by the idempotency middleware:
// SetNX reserves a key, Set replaces the reservation with the final response
// and Del releases it when the response must stay retryable.
type IdempotencyStore interface {
	Store
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
}

func CartKey(sessionID string) string {
	return BuildKey(cartPrefix, sessionID)
}

func WishlistKey(sessionID string) string {
	return BuildKey(wishlistPrefix, sessionID)
}

func IdempotencyKey(scope, id string) string {
	return BuildKey(idempotencyPrefix, scope, id)
}

func RateLimitKey(scope string) string {
	return BuildKey(rateLimitPrefix, scope)
}

// BuildKey joins non-empty parts under the service namespace with colons.
func BuildKey(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clean = append(clean, part)
	}
	return strings.Join(clean, ":")
}
