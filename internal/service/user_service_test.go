package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model/dto"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/repository"
	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/testutil"
)

func setupUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	userRepo := repository.NewUserRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	cfg := &config.Config{
		Credits: config.CreditsConfig{WelcomeCredits: 2, FeedbackPoints: 100},
	}

	return NewUserService(db, userRepo, creditRepo, activityRepo, nil, nil, cfg), db
}

func TestUserService_CreateOrGetUser_NewUser(t *testing.T) {
	service, db := setupUserService(t)

	user, err := service.CreateOrGetUser("google-123", "alice@example.com", "Alice", "https://img/a.png")
	require.NoError(t, err)
	assert.Equal(t, "google-123", user.ExternalID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, 2, user.Credits)
	assert.Equal(t, 0, user.RewardPoints)
	assert.False(t, user.IsPremium)

	// Welcome bonus lands in the audit log.
	var tx model.CreditTransaction
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, model.CreditTxCredit).First(&tx).Error)
	assert.Equal(t, 2, tx.Amount)
	assert.Equal(t, "Welcome bonus", tx.Description)

	var prefs model.UserPreferences
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&prefs).Error)
}

func TestUserService_CreateOrGetUser_ExistingUser(t *testing.T) {
	service, db := setupUserService(t)

	first, err := service.CreateOrGetUser("google-123", "alice@example.com", "Alice", "")
	require.NoError(t, err)

	// Drain the welcome balance so a repeat sign-in cannot re-grant it.
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", first.ID).Update("credits", 0).Error)

	second, err := service.CreateOrGetUser("google-123", "alice@example.com", "Alice Cooper", "https://img/new.png")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 0, second.Credits)
	assert.Equal(t, "Alice Cooper", second.Name)
	assert.Equal(t, "https://img/new.png", second.AvatarURL)

	var count int64
	db.Model(&model.CreditTransaction{}).Where("user_id = ?", first.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserService_GetProfile(t *testing.T) {
	service, db := setupUserService(t)

	user := testutil.TestUser(t, db, testutil.WithCredits(5), testutil.WithRewardPoints(250))

	info, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.ID)
	assert.Equal(t, user.Email, info.Email)
	assert.Equal(t, 5, info.Credits)
	assert.Equal(t, 250, info.RewardPoints)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	service, _ := setupUserService(t)

	_, err := service.GetProfile(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	service, db := setupUserService(t)

	user := testutil.TestUser(t, db)

	name := "Renamed"
	info, err := service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", info.Name)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "Renamed", updated.Name)
}
