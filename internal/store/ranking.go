package store

import (
	"context" // Context for Redis operations

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/domain" // Importing domain models

	"github.com/redis/go-redis/v9" // Redis client
)

// Sorted set key holding one member per user, scored by total points
const leaderboardKey = "leaderboard"

// RedisRankingStore keeps the score-ordered leaderboard in a Redis sorted set.
// Ties between equal scores follow Redis member ordering, which callers must
// not depend on.
type RedisRankingStore struct {
	rdb *redis.Client // Redis client
}

// NewRedisRankingStore builds a ranking store on top of a Redis client
func NewRedisRankingStore(rdb *redis.Client) *RedisRankingStore {
	return &RedisRankingStore{rdb: rdb}
}

// SetScore sets the user's score to an absolute value (not an increment); the
// caller passes the already-serialized new total so the set is authoritative
func (r *RedisRankingStore) SetScore(ctx context.Context, userID string, score int64) error {
	return r.rdb.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(score), // Score mirrors the running total
		Member: userID,         // One member per user
	}).Err()
}

// Remove drops the user from the leaderboard; removing an absent member is a no-op
func (r *RedisRankingStore) Remove(ctx context.Context, userID string) error {
	return r.rdb.ZRem(ctx, leaderboardKey, userID).Err()
}

// TopN returns the n highest-scored users in descending order
func (r *RedisRankingStore) TopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	zs, err := r.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, 0, len(zs)) // Empty set yields an empty slice
	for _, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, domain.LeaderboardEntry{
			UserID: member,           // Ranked user
			Total:  int64(z.Score),   // Score at query time
		})
	}
	return entries, nil
}
