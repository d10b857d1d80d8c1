package model

import (
	"time"
)

const (
	TripStatusPending    = "pending"
	TripStatusGenerating = "generating"
	TripStatusCompleted  = "completed"
	TripStatusFailed     = "failed"
)

// TripPlan is the record a credit purchases. The itinerary payload is opaque
// JSON produced by the generator; the ledger never looks inside it.
type TripPlan struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	UserID       int64      `gorm:"not null;index" json:"user_id"`
	Destination  string     `gorm:"size:200;not null" json:"destination"`
	DurationDays int        `gorm:"not null" json:"duration_days"`
	Budget       string     `gorm:"size:50" json:"budget"` // budget, moderate, luxury
	Activities   string     `gorm:"size:500" json:"activities"`
	TravelWith   string     `gorm:"size:50" json:"travel_with,omitempty"`
	Status       string     `gorm:"size:20;default:pending;index" json:"status"` // pending, generating, completed, failed
	Itinerary    string     `gorm:"type:text" json:"itinerary,omitempty"`
	ItineraryURL string     `gorm:"size:500" json:"itinerary_url,omitempty"`
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	CreditUsed   int        `gorm:"default:0" json:"credit_used"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (TripPlan) TableName() string {
	return "trip_plans"
}
