package domain

// PointRecord Model
type PointRecord struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`                            // Primary key, assigned by the store
	UserID    string `gorm:"index;not null" json:"userId"`                    // Owner of the grant
	Amount    int64  `gorm:"not null" json:"amount"`                          // Signed amount; negative is a deduction
	Reason    string `json:"reason"`                                          // Free text, the only field mutable after creation
	CreatedAt int64  `gorm:"autoCreateTime:milli;<-:create" json:"createdAt"` // Timestamp of creation in milliseconds, never updated
}
