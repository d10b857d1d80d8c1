package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/queue"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
)

var (
	ErrTripNotFound   = errors.New("trip plan not found")
	ErrTripPermission = errors.New("trip plan belongs to another user")
)

// unlimitedBalance is the remaining-credits sentinel reported for premium
// accounts, whose trips never consume credits.
const unlimitedBalance = "Unlimited"

type TripService struct {
	db            *gorm.DB
	userRepo      *repository.UserRepository
	tripRepo      *repository.TripRepository
	creditService *CreditService
	rewardService *RewardService
	rewardRepo    *repository.RewardRepository
	activityRepo  *repository.ActivityRepository
	jobQueue      *queue.Queue
	cfg           *config.Config
}

func NewTripService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	tripRepo *repository.TripRepository,
	creditService *CreditService,
	rewardService *RewardService,
	rewardRepo *repository.RewardRepository,
	activityRepo *repository.ActivityRepository,
	jobQueue *queue.Queue,
	cfg *config.Config,
) *TripService {
	return &TripService{
		db:            db,
		userRepo:      userRepo,
		tripRepo:      tripRepo,
		creditService: creditService,
		rewardService: rewardService,
		rewardRepo:    rewardRepo,
		activityRepo:  activityRepo,
		jobQueue:      jobQueue,
		cfg:           cfg,
	}
}

// Create is the credit-gated trip creation. Premium accounts plan for free;
// everyone else pays one credit. The debit, the trip row and the ledger entry
// commit together, so a failed insert never leaves a dangling debit. The
// itinerary itself is generated asynchronously by the worker; enqueue failure
// degrades the trip to a pending shell rather than failing the operation.
func (s *TripService) Create(ctx context.Context, userID int64, req *dto.CreateTripRequest) (*dto.CreateTripResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	premium := userIsPremium(user, time.Now())

	trip := &model.TripPlan{
		UserID:       userID,
		Destination:  req.Destination,
		DurationDays: req.DurationDays,
		Budget:       req.Budget,
		Activities:   req.Activities,
		TravelWith:   req.TravelWith,
		Status:       model.TripStatusPending,
	}

	if premium {
		trip.CreditUsed = 0
		if err := s.tripRepo.Create(trip); err != nil {
			return nil, err
		}
		s.logActivity(userID, "trip_created", fmt.Sprintf("%s (premium)", req.Destination))
	} else {
		trip.CreditUsed = 1
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := s.tripRepo.WithTx(tx).Create(trip); err != nil {
				return err
			}
			return s.creditService.DebitForTrip(tx, userID, trip.ID, req.Destination)
		})
		if err != nil {
			return nil, err
		}
		s.logActivity(userID, "trip_created", req.Destination)
	}

	s.enqueueGeneration(ctx, user, trip)

	resp := &dto.CreateTripResponse{
		TripPlanID: trip.ID,
		CreditUsed: trip.CreditUsed,
		IsPremium:  premium,
	}
	if premium {
		resp.RemainingCredits = unlimitedBalance
	} else {
		// Report the stored balance, not one derived from the read taken
		// before the transaction.
		resp.RemainingCredits = user.Credits - 1
		if fresh, err := s.userRepo.GetByID(userID); err == nil {
			resp.RemainingCredits = fresh.Credits
		}
	}
	return resp, nil
}

func (s *TripService) enqueueGeneration(ctx context.Context, user *model.User, trip *model.TripPlan) {
	if s.jobQueue == nil {
		return
	}
	msg := &queue.TripMessage{
		TripPlanID:   trip.ID,
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Destination:  trip.Destination,
		DurationDays: trip.DurationDays,
		Budget:       trip.Budget,
		Activities:   trip.Activities,
		TravelWith:   trip.TravelWith,
	}
	if err := s.jobQueue.Push(ctx, msg); err != nil {
		log.Printf("Failed to enqueue itinerary generation for trip %d: %v", trip.ID, err)
	}
}

// Get returns a trip owned by the user.
func (s *TripService) Get(userID, tripID int64) (*model.TripPlan, error) {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if trip.UserID != userID {
		return nil, ErrTripPermission
	}
	return trip, nil
}

// List pages through the user's trips.
func (s *TripService) List(userID int64, page, pageSize int) ([]model.TripPlan, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.tripRepo.ListByUser(userID, page, pageSize)
}

// Delete removes a trip owned by the user. Ledger rows referencing the trip
// are kept; the log is append-only.
func (s *TripService) Delete(userID, tripID int64) error {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTripNotFound
		}
		return err
	}
	if trip.UserID != userID {
		return ErrTripPermission
	}
	return s.tripRepo.Delete(tripID)
}

// SubmitFeedback records the rating and routes it through the reward ledger.
// Reward refusals (premium, duplicate) do not fail the feedback itself.
func (s *TripService) SubmitFeedback(userID, tripID int64, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	trip, err := s.tripRepo.GetByID(tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if trip.UserID != userID {
		return nil, ErrTripPermission
	}

	feedback := &model.Feedback{
		UserID:     userID,
		TripPlanID: tripID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.rewardRepo.CreateFeedback(feedback); err != nil {
		return nil, err
	}

	resp := &dto.FeedbackResponse{FeedbackID: feedback.ID}

	points, total, err := s.rewardService.AwardFeedbackPoints(userID, tripID, feedback.ID)
	switch {
	case err == nil:
		resp.PointsAwarded = points
		resp.TotalPoints = total
	case errors.Is(err, ErrAlreadyRewarded) || errors.Is(err, ErrPremiumNoRewards):
		// Feedback stands, reward refused.
	default:
		return nil, err
	}

	return resp, nil
}

func (s *TripService) logActivity(userID int64, action, detail string) {
	entry := &model.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("Failed to log activity %s for user %d: %v", action, userID, err)
	}
}
