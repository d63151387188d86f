package domain

// LeaderboardEntry is a read model returned by leaderboard queries; it is never persisted
type LeaderboardEntry struct {
	UserID string `json:"userId"` // Ranked user
	Total  int64  `json:"total"`  // Score at query time
}
