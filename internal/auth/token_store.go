package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"tripcraft/internal/cache"
)

const (
	upstreamTokenKeyPrefix = "upstream_token:"
	// tokenExpirySkew drops cached tokens this long before the upstream expires them.
	tokenExpirySkew = time.Minute
)

// TokenStoreInterface defines storage for upstream OAuth2 access tokens.
type TokenStoreInterface interface {
	GetUpstreamToken(ctx context.Context, provider string) (*oauth2.Token, bool)
	StoreUpstreamToken(ctx context.Context, provider string, token *oauth2.Token) error
}

// TokenStore keeps upstream access tokens in Redis until shortly before they expire.
type TokenStore struct {
	cache *cache.Client
	now   func() time.Time
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache, now: time.Now}
}

// GetUpstreamToken returns a cached, still valid token for provider.
// Unreadable or expiring entries are evicted.
func (s *TokenStore) GetUpstreamToken(ctx context.Context, provider string) (*oauth2.Token, bool) {
	key := upstreamTokenKeyPrefix + provider
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil || !s.usable(&token) {
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &token, true
}

func (s *TokenStore) usable(token *oauth2.Token) bool {
	if token.AccessToken == "" {
		return false
	}
	return token.Expiry.IsZero() || s.now().Add(tokenExpirySkew).Before(token.Expiry)
}

// StoreUpstreamToken caches token until its expiry minus a safety margin.
// Tokens without an expiry, or about to expire, are not cached.
func (s *TokenStore) StoreUpstreamToken(ctx context.Context, provider string, token *oauth2.Token) error {
	if token == nil || token.Expiry.IsZero() {
		return nil
	}
	ttl := token.Expiry.Sub(s.now()) - tokenExpirySkew
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	return s.cache.Set(ctx, upstreamTokenKeyPrefix+provider, payload, ttl)
}
