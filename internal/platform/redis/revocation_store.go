package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/openshelf/libra-api/internal/service/auth"
)

// revokedKeyPrefix namespaces revocation entries within the Redis keyspace.
const revokedKeyPrefix = "revoked_token:"

// RevocationStore implements auth.TokenRevoker on top of Redis. Entries
// expire with the token they shadow, so the set never grows beyond the
// number of tokens still in flight.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a RevocationStore using the given client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	if client == nil {
		panic("client cannot be nil")
	}
	return &RevocationStore{client: client}
}

// Ensure RevocationStore implements auth.TokenRevoker interface
var _ auth.TokenRevoker = (*RevocationStore)(nil)

// Revoke implements auth.TokenRevoker.Revoke
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to track.
		return nil
	}

	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements auth.TokenRevoker.IsRevoked
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
