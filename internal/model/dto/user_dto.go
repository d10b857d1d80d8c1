package dto

type UserInfo struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	AvatarURL         string `json:"avatar_url"`
	Credits           int    `json:"credits"`
	RewardPoints      int    `json:"reward_points"`
	TotalCreditsUsed  int    `json:"total_credits_used"`
	TotalTripsPlanned int    `json:"total_trips_planned"`
	IsPremium         bool   `json:"is_premium"`
	PremiumExpiresAt  string `json:"premium_expires_at,omitempty"`
	CreatedAt         string `json:"created_at"`
}

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Currency *string `json:"currency"`
	Language *string `json:"language"`
}
