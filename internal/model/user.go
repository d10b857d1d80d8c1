package model

import (
	"time"
)

type User struct {
	ID                   int64      `gorm:"primaryKey" json:"id"`
	ExternalID           string     `gorm:"column:external_id;size:100;uniqueIndex;not null" json:"-"`
	Email                string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name                 string     `gorm:"size:100" json:"name"`
	AvatarURL            string     `gorm:"size:500" json:"avatar_url"`
	Credits              int        `gorm:"default:0" json:"credits"`
	RewardPoints         int        `gorm:"default:0" json:"reward_points"`
	TotalCreditsUsed     int        `gorm:"default:0" json:"total_credits_used"`
	TotalTripsPlanned    int        `gorm:"default:0" json:"total_trips_planned"`
	IsPremium            bool       `gorm:"default:false" json:"is_premium"`
	PremiumExpiresAt     *time.Time `json:"premium_expires_at,omitempty"`
	CreditsBeforePremium *int       `json:"-"`
	PointsBeforePremium  *int       `json:"-"`
	LastActiveAt         *time.Time `json:"last_active_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type UserPreferences struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	UserID             int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Currency           string    `gorm:"size:10;default:USD" json:"currency"`
	Language           string    `gorm:"size:10;default:en" json:"language"`
	EmailNotifications bool      `gorm:"default:true" json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
