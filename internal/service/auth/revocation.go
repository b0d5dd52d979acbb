package auth

import (
	"context"
	"time"
)

// TokenRevoker tracks revoked token IDs so that logout takes effect before
// the token's natural expiry. Implementations only need to retain an entry
// for the token's remaining lifetime.
type TokenRevoker interface {
	// Revoke marks the token ID as revoked for the given duration.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
