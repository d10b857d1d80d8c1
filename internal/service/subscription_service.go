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
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/email"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
)

var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found or unauthorized")
)

type SubscriptionService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	subRepo      *repository.SubscriptionRepository
	planRepo     *repository.PlanRepository
	activityRepo *repository.ActivityRepository
	emailService *email.Service
	cfg          *config.Config
}

func NewSubscriptionService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	planRepo *repository.PlanRepository,
	activityRepo *repository.ActivityRepository,
	emailService *email.Service,
	cfg *config.Config,
) *SubscriptionService {
	return &SubscriptionService{
		db:           db,
		userRepo:     userRepo,
		subRepo:      subRepo,
		planRepo:     planRepo,
		activityRepo: activityRepo,
		emailService: emailService,
		cfg:          cfg,
	}
}

// IsPremiumUser reports whether the account holds an unexpired entitlement.
// Pure read, no side effect.
func (s *SubscriptionService) IsPremiumUser(userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return userIsPremium(user, time.Now()), nil
}

func userIsPremium(user *model.User, now time.Time) bool {
	return user.IsPremium && user.PremiumExpiresAt != nil && user.PremiumExpiresAt.After(now)
}

// Create activates a premium subscription. The live credit and point balances
// are snapshotted onto both the subscription row and the account, not zeroed:
// they stay untouched during the premium period and are restored verbatim by
// the expiry sweep. The subscription row doubles as the payment audit record.
func (s *SubscriptionService) Create(userID, planID int64, paymentMethod, transactionID string) (*dto.CreateSubscriptionResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour)

	sub := &model.Subscription{
		UserID:                  userID,
		PlanID:                  plan.ID,
		Status:                  model.SubStatusActive,
		StartedAt:               now,
		ExpiresAt:               expiresAt,
		Price:                   plan.Price,
		Currency:                plan.Currency,
		PaymentMethod:           paymentMethod,
		TransactionID:           transactionID,
		AutoRenew:               true,
		CreditsBeforeActivation: user.Credits,
		PointsBeforeActivation:  user.RewardPoints,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.subRepo.WithTx(tx).Create(sub); err != nil {
			return err
		}
		if err := s.userRepo.WithTx(tx).SetPremium(userID, expiresAt, user.Credits, user.RewardPoints); err != nil {
			return err
		}
		entry := &model.ActivityLog{
			UserID: userID,
			Action: "subscription_purchased",
			Detail: fmt.Sprintf("%s (%.2f %s) via %s", plan.Name, plan.Price, plan.Currency, paymentMethod),
		}
		return s.activityRepo.WithTx(tx).Create(entry)
	})
	if err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendPremiumActivated(user.Email, user.Name, plan.Name, expiresAt); err != nil {
			log.Printf("Failed to send premium activation email to %s: %v", user.Email, err)
		}
	}

	return &dto.CreateSubscriptionResponse{
		SubscriptionID: sub.ID,
		ExpiresAt:      expiresAt.Format(time.RFC3339),
		Message:        fmt.Sprintf("Premium active until %s", expiresAt.Format("January 2, 2006")),
	}, nil
}

// Cancel marks a subscription cancelled and stops renewal. Premium benefits
// remain until the natural end date; the sweep handles the downgrade.
func (s *SubscriptionService) Cancel(userID, subscriptionID int64) error {
	sub, err := s.subRepo.GetByID(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	if sub.UserID != userID {
		return ErrSubscriptionNotFound
	}

	if err := s.subRepo.UpdateFields(sub.ID, map[string]interface{}{
		"status":     model.SubStatusCancelled,
		"auto_renew": false,
	}); err != nil {
		return err
	}

	s.logActivity(userID, "subscription_cancelled", fmt.Sprintf("subscription %d", sub.ID))
	return nil
}

// Expire sweeps active subscriptions past their end date. Each subscription
// and its owning account are patched in one transaction: status to expired,
// premium flags cleared, balances restored from the activation snapshot.
// A failed account keeps its subscription active so the next sweep retries it.
func (s *SubscriptionService) Expire(now time.Time) (int, error) {
	expired, err := s.subRepo.ListExpired(now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, sub := range expired {
		sub := sub
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := s.subRepo.WithTx(tx).UpdateFields(sub.ID, map[string]interface{}{
				"status": model.SubStatusExpired,
			}); err != nil {
				return err
			}
			return s.userRepo.WithTx(tx).ClearPremium(
				sub.UserID,
				sub.CreditsBeforeActivation,
				sub.PointsBeforeActivation,
			)
		})
		if err != nil {
			log.Printf("Failed to expire subscription %d for user %d: %v", sub.ID, sub.UserID, err)
			continue
		}
		count++
	}

	return count, nil
}

// Status describes the account's current entitlement.
func (s *SubscriptionService) Status(userID int64) (*dto.SubscriptionStatus, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	status := &dto.SubscriptionStatus{
		IsPremium: userIsPremium(user, time.Now()),
	}
	if user.PremiumExpiresAt != nil {
		status.PremiumExpiresAt = user.PremiumExpiresAt.Format(time.RFC3339)
	}

	sub, err := s.subRepo.GetActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return nil, err
	}

	status.SubscriptionID = &sub.ID
	status.Status = sub.Status
	if plan, err := s.planRepo.GetByID(sub.PlanID); err == nil {
		status.PlanName = plan.Name
	}

	return status, nil
}

// ListPlans returns the active plan catalog.
func (s *SubscriptionService) ListPlans() ([]model.SubscriptionPlan, error) {
	return s.planRepo.ListActive()
}

// EnsureDefaultPlans seeds the plan catalog from config on first start.
// Plans are immutable after creation; an already-seeded catalog is left alone.
func (s *SubscriptionService) EnsureDefaultPlans() error {
	count, err := s.planRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, pc := range s.cfg.Plans {
		plan := &model.SubscriptionPlan{
			Name:         pc.Name,
			DurationDays: pc.DurationDays,
			Price:        pc.Price,
			Currency:     pc.Currency,
			Features:     pc.Features,
			Active:       true,
		}
		if err := s.planRepo.Create(plan); err != nil {
			return err
		}
		log.Printf("Seeded subscription plan %q (%d days)", plan.Name, plan.DurationDays)
	}
	return nil
}

func (s *SubscriptionService) logActivity(userID int64, action, detail string) {
	entry := &model.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("Failed to log activity %s for user %d: %v", action, userID, err)
	}
}
