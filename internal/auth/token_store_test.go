package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"tripcraft/internal/cache"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := NewTokenStore(c)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok := store.GetUpstreamToken(ctx, "amadeus")
	assert.False(t, ok)

	tok := &oauth2.Token{AccessToken: "abc", TokenType: "Bearer", Expiry: now.Add(30 * time.Minute)}
	require.NoError(t, store.StoreUpstreamToken(ctx, "amadeus", tok))

	got, ok := store.GetUpstreamToken(ctx, "amadeus")
	require.True(t, ok)
	assert.Equal(t, "abc", got.AccessToken)

	assert.InDelta(t, (29 * time.Minute).Seconds(), mr.TTL(upstreamTokenKeyPrefix+"amadeus").Seconds(), 1)

	now = now.Add(29*time.Minute + 30*time.Second)
	_, ok = store.GetUpstreamToken(ctx, "amadeus")
	assert.False(t, ok, "token inside the expiry margin must not be reused")
	assert.False(t, mr.Exists(upstreamTokenKeyPrefix+"amadeus"))
}

func TestTokenStore_EvictsUnreadableEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	store := NewTokenStore(c)
	ctx := context.Background()

	require.NoError(t, mr.Set(upstreamTokenKeyPrefix+"amadeus", "{not json"))
	require.NoError(t, mr.Set(upstreamTokenKeyPrefix+"empty", `{"access_token":""}`))

	_, ok := store.GetUpstreamToken(ctx, "amadeus")
	assert.False(t, ok)
	_, ok = store.GetUpstreamToken(ctx, "empty")
	assert.False(t, ok)

	assert.Empty(t, mr.Keys())
}

func TestTokenStore_SkipsShortLivedTokens(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	store := NewTokenStore(c)
	ctx := context.Background()

	require.NoError(t, store.StoreUpstreamToken(ctx, "a", &oauth2.Token{AccessToken: "x", Expiry: time.Now().Add(30 * time.Second)}))
	require.NoError(t, store.StoreUpstreamToken(ctx, "b", &oauth2.Token{AccessToken: "x"}))
	require.NoError(t, store.StoreUpstreamToken(ctx, "c", nil))

	assert.Empty(t, mr.Keys())
}

func TestTokenStore_DisabledCache(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	require.NoError(t, store.StoreUpstreamToken(ctx, "amadeus", &oauth2.Token{AccessToken: "x", Expiry: time.Now().Add(time.Hour)}))
	_, ok := store.GetUpstreamToken(ctx, "amadeus")
	assert.False(t, ok)
}
