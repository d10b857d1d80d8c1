package dto

type CreateSubscriptionRequest struct {
	PlanID        int64  `json:"plan_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
}

type CreateSubscriptionResponse struct {
	SubscriptionID int64  `json:"subscription_id"`
	ExpiresAt      string `json:"expires_at"`
	Message        string `json:"message"`
}

type SubscriptionStatus struct {
	IsPremium        bool   `json:"is_premium"`
	PremiumExpiresAt string `json:"premium_expires_at,omitempty"`
	SubscriptionID   *int64 `json:"subscription_id,omitempty"`
	PlanName         string `json:"plan_name,omitempty"`
	Status           string `json:"status,omitempty"`
}

type ExpireSweepResponse struct {
	ExpiredCount int `json:"expired_count"`
}
