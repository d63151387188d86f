package store

import (
	"context" // Context for database operations
	"errors"  // Error inspection
	"time"    // Timestamps for upserts

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clause support
)

// SQLGrantStore persists point records and per-user totals in the relational store
type SQLGrantStore struct {
	db *gorm.DB // Database handle
}

// NewSQLGrantStore wraps a gorm handle into a grant store
func NewSQLGrantStore(db *gorm.DB) *SQLGrantStore {
	return &SQLGrantStore{db: db}
}

// AppendGrant inserts the grant row and folds its amount into the user's running
// total inside a single transaction, so the ledger and the aggregate commit or
// roll back together. Returns the total after the increment.
func (s *SQLGrantStore) AppendGrant(ctx context.Context, rec *domain.PointRecord) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Append the ledger row; the store assigns id and created_at
		if err := tx.Create(rec).Error; err != nil {
			return err // Return error to rollback
		}
		// Upsert the aggregate: first grant creates the row, later grants
		// increment in place so concurrent writers cannot lose an update
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_points": gorm.Expr("total_points + ?", rec.Amount),
				"updated_at":   time.Now().UnixMilli(),
			}),
		}).Create(&domain.UserPoints{UserID: rec.UserID, TotalPoints: rec.Amount}).Error; err != nil {
			return err // Return error to rollback
		}
		// Read back the total written above; the row is locked by this transaction
		var up domain.UserPoints
		if err := tx.First(&up, "user_id = ?", rec.UserID).Error; err != nil {
			return err // Return error to rollback
		}
		total = up.TotalPoints
		return nil // Commit transaction
	})
	return total, err
}

// RecordByID returns the point record with the given id, or nil when absent
func (s *SQLGrantStore) RecordByID(ctx context.Context, id uint64) (*domain.PointRecord, error) {
	var rec domain.PointRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Absent is not an error
		}
		return nil, err
	}
	return &rec, nil
}

// UpdateRecord persists a reason edit; amount, user and created_at stay untouched
func (s *SQLGrantStore) UpdateRecord(ctx context.Context, rec *domain.PointRecord) error {
	return s.db.WithContext(ctx).
		Model(&domain.PointRecord{}).
		Where("id = ?", rec.ID).
		Update("reason", rec.Reason).Error
}

// RecordsByUser returns all grant rows for a user in insertion order
func (s *SQLGrantStore) RecordsByUser(ctx context.Context, userID string) ([]domain.PointRecord, error) {
	var recs []domain.PointRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&recs).Error
	return recs, err
}

// BalanceByUser returns the user's aggregate row, or nil when the user has none
func (s *SQLGrantStore) BalanceByUser(ctx context.Context, userID string) (*domain.UserPoints, error) {
	var up domain.UserPoints
	if err := s.db.WithContext(ctx).First(&up, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Absent is not an error
		}
		return nil, err
	}
	return &up, nil
}

// EraseUser deletes the user's grant rows and aggregate row in one transaction.
// Deleting a user with no data present is a no-op, not an error.
func (s *SQLGrantStore) EraseUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Remove all ledger rows for the user
		if err := tx.Where("user_id = ?", userID).Delete(&domain.PointRecord{}).Error; err != nil {
			return err // Return error to rollback
		}
		// Remove the aggregate row
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserPoints{}).Error; err != nil {
			return err // Return error to rollback
		}
		return nil // Commit transaction
	})
}
