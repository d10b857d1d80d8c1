package model

import (
	"time"
)

const (
	RewardTxEarnedFeedback  = "earned_feedback"
	RewardTxRedeemedCredits = "redeemed_credits"
)

// RewardTransaction is the append-only point ledger. Points are positive for
// earns and negative for redemptions.
type RewardTransaction struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"not null;index" json:"user_id"`
	Type            string    `gorm:"size:30;not null" json:"type"` // earned_feedback, redeemed_credits
	Points          int       `gorm:"not null" json:"points"`
	TripPlanID      *int64    `gorm:"index" json:"trip_plan_id,omitempty"`
	FeedbackID      *int64    `gorm:"index" json:"feedback_id,omitempty"`
	CreditsReceived *int      `json:"credits_received,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

func (RewardTransaction) TableName() string {
	return "reward_transactions"
}

// FeedbackReward proves a feedback reward was already granted for a trip.
// The composite unique index is the duplicate-claim guard.
type FeedbackReward struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_feedback_rewards_user_trip" json:"user_id"`
	TripPlanID int64     `gorm:"not null;uniqueIndex:idx_feedback_rewards_user_trip" json:"trip_plan_id"`
	FeedbackID int64     `gorm:"not null" json:"feedback_id"`
	Points     int       `gorm:"not null" json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

func (FeedbackReward) TableName() string {
	return "feedback_rewards"
}

// Feedback is a user's rating of a generated trip plan.
type Feedback struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	TripPlanID int64     `gorm:"not null;index" json:"trip_plan_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1-5
	Comment    string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
