package service

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// CreditService owns the consumable credit balance. The counter on the user
// row is the source of truth; credit_transactions is the append-only audit
// log written alongside every balance move.
type CreditService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	creditRepo   *repository.CreditRepository
	activityRepo *repository.ActivityRepository
	cfg          *config.Config
}

func NewCreditService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	creditRepo *repository.CreditRepository,
	activityRepo *repository.ActivityRepository,
	cfg *config.Config,
) *CreditService {
	return &CreditService{
		db:           db,
		userRepo:     userRepo,
		creditRepo:   creditRepo,
		activityRepo: activityRepo,
		cfg:          cfg,
	}
}

// GetBalance returns the current credit balance.
func (s *CreditService) GetBalance(userID int64) (*dto.CreditBalance, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.CreditBalance{Credits: user.Credits, IsPremium: user.IsPremium}, nil
}

// Add credits the balance and appends a purchase transaction. The handler
// validates the amount; here a non-positive amount is still rejected so no
// other caller can sneak a negative delta through the purchase path.
func (s *CreditService) Add(userID int64, amount int, description string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if description == "" {
		description = fmt.Sprintf("Purchased %s", describeAmount(amount))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).AddCredits(userID, amount); err != nil {
			return err
		}
		return s.creditRepo.WithTx(tx).Create(&model.CreditTransaction{
			UserID:      userID,
			Type:        model.CreditTxPurchase,
			Amount:      amount,
			Description: description,
		})
	})
	if err != nil {
		return 0, err
	}

	s.logActivity(userID, "credits_purchased", description)

	// Report the stored balance; the pre-transaction read can be stale when
	// another writer moved the counter in between.
	if fresh, err := s.userRepo.GetByID(userID); err == nil {
		return fresh.Credits, nil
	}
	return user.Credits + amount, nil
}

// DebitForTrip consumes one credit inside the caller's transaction and
// appends the debit row linked to the trip. Returns ErrInsufficientCredits
// when the guarded update finds the balance short.
func (s *CreditService) DebitForTrip(tx *gorm.DB, userID, tripPlanID int64, destination string) error {
	debited, err := s.userRepo.WithTx(tx).DebitCredit(userID)
	if err != nil {
		return err
	}
	if !debited {
		return ErrInsufficientCredits
	}

	return s.creditRepo.WithTx(tx).Create(&model.CreditTransaction{
		UserID:      userID,
		Type:        model.CreditTxDebit,
		Amount:      1,
		Description: fmt.Sprintf("Trip plan: %s", destination),
		TripPlanID:  &tripPlanID,
	})
}

// ListTransactions pages through the audit log.
func (s *CreditService) ListTransactions(userID int64, page, pageSize int) ([]model.CreditTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.creditRepo.ListByUser(userID, page, pageSize)
}

func (s *CreditService) logActivity(userID int64, action, detail string) {
	entry := &model.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("Failed to log activity %s for user %d: %v", action, userID, err)
	}
}
