package service

import (
	"context" // Context for store operations
	"fmt"     // Error wrapping
	"sync"    // Per-user serialization
	"time"    // Grant duration metric

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/domain"  // Importing domain models
	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/metrics" // Prometheus counters

	"github.com/sirupsen/logrus" // Logging library
)

// Number of entries returned by the leaderboard query
const leaderboardSize = 10

// GrantStore is the durable ledger of grants plus the per-user aggregate.
// AppendGrant and EraseUser must commit the ledger and aggregate together.
type GrantStore interface {
	AppendGrant(ctx context.Context, rec *domain.PointRecord) (int64, error)
	RecordByID(ctx context.Context, id uint64) (*domain.PointRecord, error)
	UpdateRecord(ctx context.Context, rec *domain.PointRecord) error
	RecordsByUser(ctx context.Context, userID string) ([]domain.PointRecord, error)
	BalanceByUser(ctx context.Context, userID string) (*domain.UserPoints, error)
	EraseUser(ctx context.Context, userID string) error
}

// BalanceCache caches aggregate rows for the balance read path
type BalanceCache interface {
	Get(ctx context.Context, userID string) (*domain.UserPoints, bool, error)
	Put(ctx context.Context, up *domain.UserPoints) error
	Invalidate(ctx context.Context, userID string) error
}

// RankingStore keeps the score-ordered leaderboard view
type RankingStore interface {
	SetScore(ctx context.Context, userID string, score int64) error
	Remove(ctx context.Context, userID string) error
	TopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

// EventSink receives a copy of every accepted grant, best effort
type EventSink interface {
	Publish(ctx context.Context, rec *domain.PointRecord) error
}

// PointsService coordinates the ledger, aggregate, cache, ranking store and
// event sink for every points operation
type PointsService struct {
	store   GrantStore   // Durable ledger + aggregate
	cache   BalanceCache // Read-through balance cache
	ranking RankingStore // Leaderboard view
	sink    EventSink    // Downstream event channel

	mu    sync.Mutex             // Guards locks
	locks map[string]*sync.Mutex // One mutex per user seen so far
}

// NewPointsService wires the four collaborators into a service
func NewPointsService(store GrantStore, cache BalanceCache, ranking RankingStore, sink EventSink) *PointsService {
	return &PointsService{
		store:   store,
		cache:   cache,
		ranking: ranking,
		sink:    sink,
		locks:   map[string]*sync.Mutex{},
	}
}

// userLock returns the mutex serializing writes for one user. Entries are
// never freed; the map is bounded by the user population.
func (s *PointsService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Grant appends a grant to the ledger, folds it into the user's total, updates
// the leaderboard score, invalidates the cached balance and publishes the
// record downstream. The read-increment-write on the aggregate is serialized
// per user so concurrent grants cannot lose an update. Zero and negative
// amounts are legal.
func (s *PointsService) Grant(ctx context.Context, userID string, amount int64, reason string) (*domain.PointRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}
	start := time.Now()
	defer func() { metrics.GrantDuration.Observe(time.Since(start).Seconds()) }()

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	rec := &domain.PointRecord{UserID: userID, Amount: amount, Reason: reason}
	newTotal, err := s.store.AppendGrant(ctx, rec)
	if err != nil {
		metrics.GrantFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: append grant: %v", ErrStoreUnavailable, err)
	}
	// From here on the ledger and aggregate are committed. A failure below
	// leaves the derived views behind the ledger; log enough context for an
	// operator or offline job to re-derive them before surfacing the error.
	if err := s.ranking.SetScore(ctx, userID, newTotal); err != nil {
		s.logInconsistency("ranking", rec, newTotal, err)
		metrics.GrantFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: set leaderboard score: %v", ErrStoreUnavailable, err)
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logInconsistency("cache", rec, newTotal, err)
		metrics.GrantFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: invalidate balance cache: %v", ErrStoreUnavailable, err)
	}
	// Best effort: a dropped event is recoverable from the ledger
	if err := s.sink.Publish(ctx, rec); err != nil {
		logrus.WithFields(logrus.Fields{
			"record_id": rec.ID,      // Ledger id
			"user_id":   userID,      // Owner of the grant
			"error":     err.Error(), // Error message
		}).Warn("Grant event dropped") // Log the dropped event
	}
	metrics.GrantsTotal.Inc()
	// Log successful grant
	logrus.WithFields(logrus.Fields{
		"record_id": rec.ID,   // Ledger id
		"user_id":   userID,   // Owner of the grant
		"amount":    amount,   // Signed amount
		"reason":    reason,   // Free text
		"total":     newTotal, // Running total after this grant
	}).Info("Points granted")
	return rec, nil
}

// GetBalance returns the user's aggregate row, consulting the cache first and
// populating it on a miss. Absent users yield (nil, nil), not an error. The
// ledger is never read here.
func (s *PointsService) GetBalance(ctx context.Context, userID string) (*domain.UserPoints, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}
	// Cache read errors fall through to the database rather than failing the read
	if up, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		metrics.BalanceCacheHitsTotal.Inc()
		return up, nil
	}
	metrics.BalanceCacheMissesTotal.Inc()
	up, err := s.store.BalanceByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load balance: %v", ErrStoreUnavailable, err)
	}
	if up == nil {
		return nil, nil // Never granted, or erased
	}
	_ = s.cache.Put(ctx, up) // Best-effort populate; the next read retries
	return up, nil
}

// Leaderboard returns the top ten users by descending total. An empty ranking
// store yields an empty slice, never an error.
func (s *PointsService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, err := s.ranking.TopN(ctx, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("%w: leaderboard query: %v", ErrStoreUnavailable, err)
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}

// AmendReason replaces the reason on an existing grant. Reason edits are
// metadata only: the aggregate, ranking store, cache and event sink are
// untouched.
func (s *PointsService) AmendReason(ctx context.Context, id uint64, reason string) (*domain.PointRecord, error) {
	rec, err := s.store.RecordByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load record: %v", ErrStoreUnavailable, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: point record %d", ErrNotFound, id)
	}
	rec.Reason = reason
	if err := s.store.UpdateRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: update record: %v", ErrStoreUnavailable, err)
	}
	// Log the reason edit
	logrus.WithFields(logrus.Fields{
		"record_id": id,     // Ledger id
		"reason":    reason, // New free text
	}).Info("Grant reason amended")
	return rec, nil
}

// EraseUser removes every trace of the user: ledger rows, aggregate row,
// leaderboard member and cached balance. Erasing an unknown user succeeds
// silently, and no event is published.
func (s *PointsService) EraseUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.EraseUser(ctx, userID); err != nil {
		return fmt.Errorf("%w: erase ledger rows: %v", ErrStoreUnavailable, err)
	}
	if err := s.ranking.Remove(ctx, userID); err != nil {
		return fmt.Errorf("%w: remove leaderboard member: %v", ErrStoreUnavailable, err)
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		return fmt.Errorf("%w: invalidate balance cache: %v", ErrStoreUnavailable, err)
	}
	// Log the erasure
	logrus.WithFields(logrus.Fields{
		"user_id": userID, // Erased user
	}).Info("User points erased")
	return nil
}

// logInconsistency records a grant whose ledger write committed but whose
// derived views did not catch up
func (s *PointsService) logInconsistency(step string, rec *domain.PointRecord, total int64, err error) {
	logrus.WithFields(logrus.Fields{
		"step":      step,        // Step that failed
		"record_id": rec.ID,      // Committed ledger id
		"user_id":   rec.UserID,  // Owner of the grant
		"total":     total,       // Committed running total
		"error":     err.Error(), // Error message
	}).Error("Grant committed but derived view is stale")
}
