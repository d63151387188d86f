package domain

// UserPoints Model
type UserPoints struct {
	UserID      string `gorm:"primaryKey" json:"userId"`                 // Primary key
	TotalPoints int64  `gorm:"not null;default:0" json:"totalPoints"`    // Running total, sum of all non-erased grant amounts
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli" json:"updatedAt"`    // Timestamp of last mutation in milliseconds
}
