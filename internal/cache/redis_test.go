package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-match/internal/testutil"
)

func TestLikeCount_MissHitInvalidate(t *testing.T) {
	ctx := context.Background()
	rc, mr := testutil.NewRedis(t)

	_, ok, err := rc.GetLikeCount(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.UpdateLikeCount(ctx, 7, 12))
	n, ok, err := rc.GetLikeCount(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, time.Hour, mr.TTL(rc.KeyForLikeCount(7)))

	require.NoError(t, rc.InvalidateLikeCount(ctx, 7))
	_, ok, _ = rc.GetLikeCount(ctx, 7)
	assert.False(t, ok)
}

func TestPresence_CountsSessions(t *testing.T) {
	ctx := context.Background()
	rc, _ := testutil.NewRedis(t)

	n, err := rc.IncrOnline(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, _ = rc.IncrOnline(ctx, 1)
	assert.Equal(t, int64(2), n)

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	n, err = rc.DecrOnline(ctx, 1, at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	seen, _ := rc.LastSeen(ctx, 1)
	assert.True(t, seen.IsZero(), "still online, last_seen untouched")

	n, err = rc.DecrOnline(ctx, 1, at)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	count, _ := rc.OnlineCount(ctx, 1)
	assert.Equal(t, int64(0), count)
	seen, err = rc.LastSeen(ctx, 1)
	require.NoError(t, err)
	assert.True(t, at.Equal(seen))
}

func TestTyping_SetClear(t *testing.T) {
	ctx := context.Background()
	rc, mr := testutil.NewRedis(t)

	require.NoError(t, rc.SetTyping(ctx, "c1", 1, true, 30*time.Second))
	require.NoError(t, rc.SetTyping(ctx, "c1", 2, false, 30*time.Second))
	assert.Equal(t, 30*time.Second, mr.TTL("typing:c1"))

	users, err := rc.Typing(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, users)

	existed, err := rc.ClearTyping(ctx, "c1", 1)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = rc.ClearTyping(ctx, "c1", 1)
	require.NoError(t, err)
	assert.False(t, existed)
}
