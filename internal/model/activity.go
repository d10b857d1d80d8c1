package model

import (
	"time"
)

// ActivityLog records ledger-relevant user events (signup, login, trip
// generation, purchases, redemptions).
type ActivityLog struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:50;not null;index" json:"action"`
	Detail    string    `gorm:"size:500" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
