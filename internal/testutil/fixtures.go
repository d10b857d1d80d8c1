package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
)

// TestUser creates a test user with the standard welcome balance.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := time.Now().UnixNano()
	user := &model.User{
		ExternalID:   fmt.Sprintf("ext_%d", n),
		Email:        fmt.Sprintf("test_%d@example.com", n),
		Name:         fmt.Sprintf("Test User %d", n%10000),
		Credits:      2,
		RewardPoints: 0,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithExternalID sets the identity key.
func WithExternalID(externalID string) func(*model.User) {
	return func(u *model.User) {
		u.ExternalID = externalID
	}
}

// WithEmail sets the email.
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithCredits sets the credit balance.
func WithCredits(credits int) func(*model.User) {
	return func(u *model.User) {
		u.Credits = credits
	}
}

// WithRewardPoints sets the point balance.
func WithRewardPoints(points int) func(*model.User) {
	return func(u *model.User) {
		u.RewardPoints = points
	}
}

// WithPremium marks the user premium until the given time.
func WithPremium(expiresAt time.Time) func(*model.User) {
	return func(u *model.User) {
		u.IsPremium = true
		u.PremiumExpiresAt = &expiresAt
	}
}

// TestPlan creates a subscription plan.
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*model.SubscriptionPlan)) *model.SubscriptionPlan {
	t.Helper()

	plan := &model.SubscriptionPlan{
		Name:         fmt.Sprintf("Test Plan %d", time.Now().UnixNano()),
		DurationDays: 30,
		Price:        9.99,
		Currency:     "USD",
		Features:     "Unlimited trip plans",
		Active:       true,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// WithDuration sets the plan duration in days.
func WithDuration(days int) func(*model.SubscriptionPlan) {
	return func(p *model.SubscriptionPlan) {
		p.DurationDays = days
	}
}

// TestSubscription creates a subscription row.
func TestSubscription(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now()
	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    planID,
		Status:    model.SubStatusActive,
		StartedAt: now,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
		Price:     9.99,
		Currency:  "USD",
		AutoRenew: true,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithExpiresAt sets the subscription end date.
func WithExpiresAt(at time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.ExpiresAt = at
	}
}

// WithSnapshot sets the pre-activation balances carried by the subscription.
func WithSnapshot(credits, points int) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.CreditsBeforeActivation = credits
		s.PointsBeforeActivation = points
	}
}

// WithSubStatus sets the subscription status.
func WithSubStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// TestTrip creates a trip plan.
func TestTrip(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.TripPlan)) *model.TripPlan {
	t.Helper()

	trip := &model.TripPlan{
		UserID:       userID,
		Destination:  "Lisbon",
		DurationDays: 5,
		Budget:       "moderate",
		Activities:   "food,museums",
		Status:       model.TripStatusPending,
		CreditUsed:   1,
	}

	for _, opt := range opts {
		opt(trip)
	}

	if err := db.Create(trip).Error; err != nil {
		t.Fatalf("Failed to create test trip: %v", err)
	}

	return trip
}

// WithTripStatus sets the trip status.
func WithTripStatus(status string) func(*model.TripPlan) {
	return func(tp *model.TripPlan) {
		tp.Status = status
	}
}

// TestFeedback creates a feedback row for a trip.
func TestFeedback(t *testing.T, db *gorm.DB, userID, tripID int64) *model.Feedback {
	t.Helper()

	feedback := &model.Feedback{
		UserID:     userID,
		TripPlanID: tripID,
		Rating:     5,
		Comment:    "Great itinerary",
	}

	if err := db.Create(feedback).Error; err != nil {
		t.Fatalf("Failed to create test feedback: %v", err)
	}

	return feedback
}
