package dto

type RedeemPointsRequest struct {
	Points int `json:"points" binding:"required"`
}

type RedeemPointsResponse struct {
	CreditsAwarded   int `json:"credits_awarded"`
	RemainingPoints  int `json:"remaining_points"`
	NewCreditBalance int `json:"new_credit_balance"`
}

type RedemptionTier struct {
	Points      int    `json:"points"`
	Credits     int    `json:"credits"`
	Available   bool   `json:"available"`
	Description string `json:"description"`
	Badge       string `json:"badge,omitempty"`
}

type RedemptionTiersResponse struct {
	CurrentPoints int              `json:"current_points"`
	Tiers         []RedemptionTier `json:"tiers"`
}
