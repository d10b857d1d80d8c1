package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/email"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/pkg/oss"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	creditRepo   *repository.CreditRepository
	activityRepo *repository.ActivityRepository
	emailService *email.Service
	ossClient    *oss.Client
	cfg          *config.Config
}

func NewUserService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	creditRepo *repository.CreditRepository,
	activityRepo *repository.ActivityRepository,
	emailService *email.Service,
	ossClient *oss.Client,
	cfg *config.Config,
) *UserService {
	return &UserService{
		db:           db,
		userRepo:     userRepo,
		creditRepo:   creditRepo,
		activityRepo: activityRepo,
		emailService: emailService,
		ossClient:    ossClient,
		cfg:          cfg,
	}
}

// CreateOrGetUser is the idempotent upsert keyed on the external identity.
// An existing account only gets its profile and last-active fields refreshed.
// A new account is set up in one transaction: the user row with the welcome
// credit balance, the preferences shell, the welcome credit-transaction and
// the signup activity entry all land or none do.
func (s *UserService) CreateOrGetUser(externalID, userEmail, name, avatarURL string) (*model.User, error) {
	user, err := s.userRepo.GetByExternalID(externalID)
	if err == nil {
		now := time.Now()
		fields := map[string]interface{}{"last_active_at": now}
		if name != "" && name != user.Name {
			fields["name"] = name
		}
		if avatarURL != "" && avatarURL != user.AvatarURL {
			fields["avatar_url"] = avatarURL
		}
		if err := s.userRepo.UpdateFields(user.ID, fields); err != nil {
			return nil, err
		}
		s.logActivity(user.ID, "login", "")
		return s.userRepo.GetByID(user.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	welcome := s.cfg.Credits.WelcomeCredits
	newUser := &model.User{
		ExternalID:   externalID,
		Email:        userEmail,
		Name:         name,
		AvatarURL:    avatarURL,
		Credits:      welcome,
		RewardPoints: 0,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(newUser); err != nil {
			return err
		}

		prefs := &model.UserPreferences{UserID: newUser.ID}
		if err := tx.Create(prefs).Error; err != nil {
			return err
		}

		welcomeTx := &model.CreditTransaction{
			UserID:      newUser.ID,
			Type:        model.CreditTxCredit,
			Amount:      welcome,
			Description: "Welcome bonus",
		}
		if err := s.creditRepo.WithTx(tx).Create(welcomeTx); err != nil {
			return err
		}

		entry := &model.ActivityLog{UserID: newUser.ID, Action: "signup"}
		return s.activityRepo.WithTx(tx).Create(entry)
	})
	if err != nil {
		// A racing signup for the same identity loses on the unique index;
		// fall back to reading the winner's row.
		if existing, getErr := s.userRepo.GetByExternalID(externalID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcome(userEmail, name); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", userEmail, err)
		}
	}

	return newUser, nil
}

// GetProfile returns the user info together with ledger balances.
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return buildUserInfo(user), nil
}

// UpdateProfile updates the mutable profile fields.
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if req.Currency != nil || req.Language != nil {
		fields := map[string]interface{}{}
		if req.Currency != nil {
			fields["currency"] = *req.Currency
		}
		if req.Language != nil {
			fields["language"] = *req.Language
		}
		if err := s.db.Model(&model.UserPreferences{}).Where("user_id = ?", userID).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return buildUserInfo(user), nil
}

// UploadAvatar stores the avatar in OSS and saves its URL.
func (s *UserService) UploadAvatar(userID int64, file io.Reader, filename string) (string, error) {
	if s.ossClient == nil {
		return "", errors.New("object storage is not configured")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	avatarURL, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"avatar_url": avatarURL}); err != nil {
		return "", err
	}

	return avatarURL, nil
}

func (s *UserService) logActivity(userID int64, action, detail string) {
	entry := &model.ActivityLog{UserID: userID, Action: action, Detail: detail}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("Failed to log activity %s for user %d: %v", action, userID, err)
	}
}

func buildUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		AvatarURL:         user.AvatarURL,
		Credits:           user.Credits,
		RewardPoints:      user.RewardPoints,
		TotalCreditsUsed:  user.TotalCreditsUsed,
		TotalTripsPlanned: user.TotalTripsPlanned,
		IsPremium:         user.IsPremium,
		CreatedAt:         user.CreatedAt.Format(time.RFC3339),
	}
	if user.PremiumExpiresAt != nil {
		info.PremiumExpiresAt = user.PremiumExpiresAt.Format(time.RFC3339)
	}
	return info
}

func describeAmount(amount int) string {
	if amount == 1 {
		return "1 credit"
	}
	return fmt.Sprintf("%d credits", amount)
}
