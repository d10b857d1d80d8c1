package dto

type CreateTripRequest struct {
	Destination  string `json:"destination" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required,min=1,max=30"`
	Budget       string `json:"budget" binding:"required,oneof=budget moderate luxury"`
	Activities   string `json:"activities"`
	TravelWith   string `json:"travel_with"`
}

// CreateTripResponse mirrors the deduct-credit surface: the remaining balance
// is a number for free-tier users and the string "Unlimited" for premium.
type CreateTripResponse struct {
	TripPlanID       int64       `json:"trip_plan_id"`
	CreditUsed       int         `json:"credit_used"`
	RemainingCredits interface{} `json:"remaining_credits"`
	IsPremium        bool        `json:"is_premium"`
}

type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type FeedbackResponse struct {
	FeedbackID    int64 `json:"feedback_id"`
	PointsAwarded int   `json:"points_awarded"`
	TotalPoints   int   `json:"total_points"`
}
