package store

import (
	"context"
	"testing"
	"time"

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestBalanceCacheRoundTrip(t *testing.T) {
	c := NewRedisBalanceCache(newTestRedis(t), time.Minute)
	ctx := context.Background()

	up, ok, err := c.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, up)

	require.NoError(t, c.Put(ctx, &domain.UserPoints{UserID: "alice", TotalPoints: 80, UpdatedAt: 1}))

	up, ok, err = c.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", up.UserID)
	assert.Equal(t, int64(80), up.TotalPoints)
}

func TestBalanceCacheInvalidate(t *testing.T) {
	c := NewRedisBalanceCache(newTestRedis(t), time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, &domain.UserPoints{UserID: "alice", TotalPoints: 80}))
	require.NoError(t, c.Invalidate(ctx, "alice"))

	_, ok, err := c.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	// Invalidating an absent entry is a no-op
	require.NoError(t, c.Invalidate(ctx, "alice"))
}

func TestRankingStoreOrdersDescending(t *testing.T) {
	r := NewRedisRankingStore(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, r.SetScore(ctx, "alice", 100))
	require.NoError(t, r.SetScore(ctx, "bob", 300))
	require.NoError(t, r.SetScore(ctx, "alice", 80)) // absolute set, not increment

	entries, err := r.TopN(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.LeaderboardEntry{UserID: "bob", Total: 300}, entries[0])
	assert.Equal(t, domain.LeaderboardEntry{UserID: "alice", Total: 80}, entries[1])
}

func TestRankingStoreTopNCapsResults(t *testing.T) {
	r := NewRedisRankingStore(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, r.SetScore(ctx, "a", 1))
	require.NoError(t, r.SetScore(ctx, "b", 2))
	require.NoError(t, r.SetScore(ctx, "c", 3))

	entries, err := r.TopN(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].UserID)
	assert.Equal(t, "b", entries[1].UserID)
}

func TestRankingStoreRemove(t *testing.T) {
	r := NewRedisRankingStore(newTestRedis(t))
	ctx := context.Background()

	require.NoError(t, r.SetScore(ctx, "alice", 100))
	require.NoError(t, r.Remove(ctx, "alice"))
	require.NoError(t, r.Remove(ctx, "alice")) // absent member is a no-op

	entries, err := r.TopN(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEventSinkDeliversToStream(t *testing.T) {
	rdb := newTestRedis(t)
	s := NewRedisEventSink(rdb, "user-points-topic", 16)

	err := s.Publish(context.Background(), &domain.PointRecord{
		ID: 7, UserID: "alice", Amount: 100, Reason: "bonus", CreatedAt: 1700000000000,
	})
	require.NoError(t, err)
	s.Close() // drains the queue

	msgs, err := rdb.XRange(context.Background(), "user-points-topic", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice", msgs[0].Values["userId"])
	assert.Equal(t, "100", msgs[0].Values["amount"])
	assert.Equal(t, "7", msgs[0].Values["id"])
	assert.Equal(t, "bonus", msgs[0].Values["reason"])
}

func TestEventSinkQueueFull(t *testing.T) {
	rdb := newTestRedis(t)
	s := NewRedisEventSink(rdb, "user-points-topic", 1)
	defer s.Close()

	// Saturate the queue faster than the worker can possibly drain it;
	// at least the enqueue refusals must come back as ErrQueueFull, and
	// no Publish call may block
	var refused int
	for i := 0; i < 10000; i++ {
		if err := s.Publish(context.Background(), &domain.PointRecord{ID: uint64(i), UserID: "x"}); err != nil {
			assert.ErrorIs(t, err, ErrQueueFull)
			refused++
		}
	}
	t.Logf("refused %d of 10000 publishes", refused)
}
