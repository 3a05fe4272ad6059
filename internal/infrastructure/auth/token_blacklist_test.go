package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both implementations must be interchangeable behind the interface so
// the server can fall back to memory when Redis is unreachable.
var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("JTI blacklisting", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		blocked, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, blocked)

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		blocked, err = bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("expired entries fall out", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

		blocked, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("user-wide invalidation", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		issuedBefore := time.Now().Add(-time.Minute)

		invalid, err := bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.False(t, invalid)

		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalid, err = bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalid)

		issuedAfter := time.Now().Add(time.Minute)
		invalid, err = bl.IsUserTokenInvalidated(ctx, "user-1", issuedAfter)
		require.NoError(t, err)
		assert.False(t, invalid)

		invalid, err = bl.IsUserTokenInvalidated(ctx, "user-2", issuedBefore)
		require.NoError(t, err)
		assert.False(t, invalid)
	})
}
