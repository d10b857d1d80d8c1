package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
)

var (
	ErrInsufficientPoints = errors.New("insufficient reward points")
	ErrInvalidRedemption  = errors.New("invalid redemption amount")
	ErrAlreadyRewarded    = errors.New("feedback reward already granted for this trip")
	ErrPremiumNoRewards   = errors.New("premium members are not eligible for feedback rewards")
)

// redemptionTiers is the fixed, exact-match exchange table.
var redemptionTiers = []dto.RedemptionTier{
	{Points: 250, Credits: 2, Description: "Redeem 250 points for 2 trip credits", Badge: "bronze"},
	{Points: 500, Credits: 6, Description: "Redeem 500 points for 6 trip credits", Badge: "silver"},
	{Points: 1000, Credits: 15, Description: "Redeem 1000 points for 15 trip credits", Badge: "gold"},
}

func tierCredits(points int) (int, bool) {
	for _, tier := range redemptionTiers {
		if tier.Points == points {
			return tier.Credits, true
		}
	}
	return 0, false
}

type RewardService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	rewardRepo   *repository.RewardRepository
	creditRepo   *repository.CreditRepository
	activityRepo *repository.ActivityRepository
	cfg          *config.Config
}

func NewRewardService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	rewardRepo *repository.RewardRepository,
	creditRepo *repository.CreditRepository,
	activityRepo *repository.ActivityRepository,
	cfg *config.Config,
) *RewardService {
	return &RewardService{
		db:           db,
		userRepo:     userRepo,
		rewardRepo:   rewardRepo,
		creditRepo:   creditRepo,
		activityRepo: activityRepo,
		cfg:          cfg,
	}
}

// AwardFeedbackPoints grants the fixed feedback award once per (user, trip).
// Premium accounts are excluded. The feedback_rewards unique index is the
// real duplicate guard: a racing second claim fails the insert and the whole
// transaction rolls back.
func (s *RewardService) AwardFeedbackPoints(userID, tripPlanID, feedbackID int64) (int, int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}

	if userIsPremium(user, time.Now()) {
		return 0, 0, ErrPremiumNoRewards
	}

	exists, err := s.rewardRepo.FeedbackRewardExists(userID, tripPlanID)
	if err != nil {
		return 0, 0, err
	}
	if exists {
		return 0, 0, ErrAlreadyRewarded
	}

	points := s.cfg.Credits.FeedbackPoints

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).AddRewardPoints(userID, points); err != nil {
			return err
		}
		if err := s.rewardRepo.WithTx(tx).CreateFeedbackReward(&model.FeedbackReward{
			UserID:     userID,
			TripPlanID: tripPlanID,
			FeedbackID: feedbackID,
			Points:     points,
		}); err != nil {
			return err
		}
		return s.rewardRepo.WithTx(tx).CreateTransaction(&model.RewardTransaction{
			UserID:     userID,
			Type:       model.RewardTxEarnedFeedback,
			Points:     points,
			TripPlanID: &tripPlanID,
			FeedbackID: &feedbackID,
		})
	})
	if err != nil {
		// Unique-index violation from a concurrent claim.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, 0, ErrAlreadyRewarded
		}
		return 0, 0, err
	}

	s.logActivity(userID, "feedback_rewarded", fmt.Sprintf("trip %d, %d points", tripPlanID, points))
	if fresh, err := s.userRepo.GetByID(userID); err == nil {
		return points, fresh.RewardPoints, nil
	}
	return points, user.RewardPoints + points, nil
}

// RedeemPoints converts points into credits at a fixed tier. Only exact tier
// values are accepted; anything else fails closed with no state change.
func (s *RewardService) RedeemPoints(userID int64, points int) (*dto.RedeemPointsResponse, error) {
	credits, ok := tierCredits(points)
	if !ok {
		return nil, ErrInvalidRedemption
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.RewardPoints < points {
		return nil, ErrInsufficientPoints
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Both balances move in one guarded statement; a concurrent redeem
		// that empties the points first makes this a no-op and we bail out.
		swapped, err := s.userRepo.WithTx(tx).RedeemPoints(userID, points, credits)
		if err != nil {
			return err
		}
		if !swapped {
			return ErrInsufficientPoints
		}

		if err := s.creditRepo.WithTx(tx).Create(&model.CreditTransaction{
			UserID:      userID,
			Type:        model.CreditTxCredit,
			Amount:      credits,
			Description: fmt.Sprintf("Redeemed %d reward points", points),
		}); err != nil {
			return err
		}

		return s.rewardRepo.WithTx(tx).CreateTransaction(&model.RewardTransaction{
			UserID:          userID,
			Type:            model.RewardTxRedeemedCredits,
			Points:          -points,
			CreditsReceived: &credits,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(userID, "points_redeemed", fmt.Sprintf("%d points for %d credits", points, credits))

	resp := &dto.RedeemPointsResponse{
		CreditsAwarded:   credits,
		RemainingPoints:  user.RewardPoints - points,
		NewCreditBalance: user.Credits + credits,
	}
	// Report the stored balances rather than ones derived from the
	// pre-transaction read.
	if fresh, err := s.userRepo.GetByID(userID); err == nil {
		resp.RemainingPoints = fresh.RewardPoints
		resp.NewCreditBalance = fresh.Credits
	}
	return resp, nil
}

// RedemptionTiers is the derived tier view annotated with availability.
func (s *RewardService) RedemptionTiers(userID int64) (*dto.RedemptionTiersResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tiers := make([]dto.RedemptionTier, len(redemptionTiers))
	copy(tiers, redemptionTiers)
	for i := range tiers {
		tiers[i].Available = user.RewardPoints >= tiers[i].Points
	}

	return &dto.RedemptionTiersResponse{
		CurrentPoints: user.RewardPoints,
		Tiers:         tiers,
	}, nil
}

// ListTransactions pages through the point ledger.
func (s *RewardService) ListTransactions(userID int64, page, pageSize int) ([]model.RewardTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.rewardRepo.ListTransactionsByUser(userID, page, pageSize)
}

func (s *RewardService) logActivity(userID int64, action, detail string) {
	entry := &model.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("Failed to log activity %s for user %d: %v", action, userID, err)
	}
}
