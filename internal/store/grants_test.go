package store

import (
	"context"
	"testing"

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *SQLGrantStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // a single connection keeps the in-memory database alive
	require.NoError(t, db.AutoMigrate(&domain.PointRecord{}, &domain.UserPoints{}))
	return NewSQLGrantStore(db)
}

func TestAppendGrantAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &domain.PointRecord{UserID: "alice", Amount: 100, Reason: "bonus"}
	total, err := s.AppendGrant(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, int64(100), total)
	assert.NotZero(t, rec.ID)
	assert.NotZero(t, rec.CreatedAt)
}

func TestAppendGrantAccumulates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var total int64
	var err error
	for _, amount := range []int64{100, -30, 0, 7} {
		total, err = s.AppendGrant(ctx, &domain.PointRecord{UserID: "alice", Amount: amount})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(77), total)

	up, err := s.BalanceByUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, int64(77), up.TotalPoints)

	recs, err := s.RecordsByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}

func TestAppendGrantKeepsUsersSeparate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AppendGrant(ctx, &domain.PointRecord{UserID: "alice", Amount: 100})
	require.NoError(t, err)
	total, err := s.AppendGrant(ctx, &domain.PointRecord{UserID: "bob", Amount: 300})
	require.NoError(t, err)
	assert.Equal(t, int64(300), total)

	up, err := s.BalanceByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), up.TotalPoints)
}

func TestBalanceByUserAbsent(t *testing.T) {
	s := newTestStore(t)

	up, err := s.BalanceByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, up)
}

func TestRecordByIDAbsent(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.RecordByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestUpdateRecordTouchesOnlyReason(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &domain.PointRecord{UserID: "alice", Amount: 50, Reason: "initial"}
	_, err := s.AppendGrant(ctx, rec)
	require.NoError(t, err)

	edit := *rec
	edit.Reason = "corrected"
	edit.Amount = 9999 // must be ignored by the update
	require.NoError(t, s.UpdateRecord(ctx, &edit))

	stored, err := s.RecordByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "corrected", stored.Reason)
	assert.Equal(t, int64(50), stored.Amount)
	assert.Equal(t, "alice", stored.UserID)
	assert.Equal(t, rec.CreatedAt, stored.CreatedAt)
}

func TestEraseUserRemovesEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AppendGrant(ctx, &domain.PointRecord{UserID: "alice", Amount: 10})
	require.NoError(t, err)
	_, err = s.AppendGrant(ctx, &domain.PointRecord{UserID: "alice", Amount: 20})
	require.NoError(t, err)
	_, err = s.AppendGrant(ctx, &domain.PointRecord{UserID: "bob", Amount: 5})
	require.NoError(t, err)

	require.NoError(t, s.EraseUser(ctx, "alice"))

	recs, err := s.RecordsByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, recs)
	up, err := s.BalanceByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, up)

	// Other users are untouched
	up, err = s.BalanceByUser(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, int64(5), up.TotalPoints)

	// Erasing again is a no-op, not an error
	require.NoError(t, s.EraseUser(ctx, "alice"))
}
