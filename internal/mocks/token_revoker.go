package mocks

import (
	"context"
	"sync"
	"time"
)

// MockTokenRevoker implements auth.TokenRevoker for testing. The default
// implementation tracks revoked token IDs in memory.
type MockTokenRevoker struct {
	RevokeFn    func(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevokedFn func(ctx context.Context, tokenID string) (bool, error)

	mu      sync.Mutex
	Revoked map[string]bool
	Err     error
}

// NewMockTokenRevoker creates a mock revoker with an empty revocation set.
func NewMockTokenRevoker() *MockTokenRevoker {
	return &MockTokenRevoker{Revoked: make(map[string]bool)}
}

// Revoke implements the auth.TokenRevoker interface
func (m *MockTokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, tokenID, ttl)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Revoked[tokenID] = true
	return nil
}

// IsRevoked implements the auth.TokenRevoker interface
func (m *MockTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.IsRevokedFn != nil {
		return m.IsRevokedFn(ctx, tokenID)
	}
	if m.Err != nil {
		return false, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Revoked[tokenID], nil
}
