package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/cache"
)

const revokedTokenKeyPrefix = "blacklist:access_token:"

// TokenStoreInterface defines the interface for token revocation.
type TokenStoreInterface interface {
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked access token ids in Redis until they would have expired.
// Without Redis it keeps them in process memory.
type TokenStore struct {
	cache *cache.Client

	mu      sync.Mutex
	revoked map[string]time.Time
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache, revoked: make(map[string]time.Time)}
}

// BlacklistAccessToken revokes a token id for ttl. Already expired tokens are skipped.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if s.cache.Enabled() {
		if err := s.cache.Put(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl); err != nil {
			return fmt.Errorf("revoke token %s: %w", tokenID, err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, until := range s.revoked {
		if now.After(until) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

// IsAccessTokenBlacklisted checks if an access token is revoked.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	if s.cache.Enabled() {
		data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
		if err != nil {
			return false, nil // Not blacklisted if error (fail safe)
		}
		return data != nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}
