package model

import (
	"time"
)

const (
	SubStatusActive    = "active"
	SubStatusExpired   = "expired"
	SubStatusCancelled = "cancelled"
	SubStatusPending   = "pending"
)

// SubscriptionPlan is an immutable catalog entry, seeded at startup.
type SubscriptionPlan struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Price        float64   `gorm:"type:decimal(10,2)" json:"price"`
	Currency     string    `gorm:"size:10;default:USD" json:"currency"`
	Features     string    `gorm:"type:text" json:"features"` // comma separated
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// Subscription is one row per premium activation. It also serves as the
// completed payment audit row: price, currency, payment method and the
// provider transaction id are recorded here.
type Subscription struct {
	ID                      int64     `gorm:"primaryKey" json:"id"`
	UserID                  int64     `gorm:"not null;index" json:"user_id"`
	PlanID                  int64     `gorm:"not null;index" json:"plan_id"`
	Status                  string    `gorm:"size:20;default:active;index" json:"status"` // active, expired, cancelled, pending
	StartedAt               time.Time `gorm:"not null" json:"started_at"`
	ExpiresAt               time.Time `gorm:"not null;index" json:"expires_at"`
	Price                   float64   `gorm:"type:decimal(10,2)" json:"price"`
	Currency                string    `gorm:"size:10" json:"currency"`
	PaymentMethod           string    `gorm:"size:30" json:"payment_method,omitempty"`
	TransactionID           string    `gorm:"size:100" json:"transaction_id,omitempty"`
	AutoRenew               bool      `gorm:"default:true" json:"auto_renew"`
	CreditsBeforeActivation int       `json:"-"`
	PointsBeforeActivation  int       `json:"-"`
	CreatedAt               time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
