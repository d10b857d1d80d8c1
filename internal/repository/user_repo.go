package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByExternalID(externalID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// DebitCredit atomically consumes one credit and bumps the usage counters.
// The balance guard lives in the WHERE clause so two concurrent debits can
// never drive credits below zero; returns false when the balance was short.
func (r *UserRepository) DebitCredit(id int64) (bool, error) {
	res := r.db.Model(&model.User{}).
		Where("id = ? AND credits >= ?", id, 1).
		Updates(map[string]interface{}{
			"credits":             gorm.Expr("credits - 1"),
			"total_credits_used":  gorm.Expr("total_credits_used + 1"),
			"total_trips_planned": gorm.Expr("total_trips_planned + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) AddCredits(id int64, amount int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("credits", gorm.Expr("credits + ?", amount)).Error
}

func (r *UserRepository) AddRewardPoints(id int64, points int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("reward_points", gorm.Expr("reward_points + ?", points)).Error
}

// RedeemPoints swaps points for credits in one guarded update; both fields
// move in the same statement. Returns false when the point balance was short.
func (r *UserRepository) RedeemPoints(id int64, points, credits int) (bool, error) {
	res := r.db.Model(&model.User{}).
		Where("id = ? AND reward_points >= ?", id, points).
		Updates(map[string]interface{}{
			"reward_points": gorm.Expr("reward_points - ?", points),
			"credits":       gorm.Expr("credits + ?", credits),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetPremium flips the premium flags and stores the pre-activation snapshot.
func (r *UserRepository) SetPremium(id int64, expiresAt time.Time, creditsSnapshot, pointsSnapshot int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_premium":             true,
		"premium_expires_at":     expiresAt,
		"credits_before_premium": creditsSnapshot,
		"points_before_premium":  pointsSnapshot,
	}).Error
}

// ClearPremium removes the premium flags and restores the snapshot balances.
func (r *UserRepository) ClearPremium(id int64, restoreCredits, restorePoints int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_premium":             false,
		"premium_expires_at":     nil,
		"credits_before_premium": nil,
		"points_before_premium":  nil,
		"credits":                restoreCredits,
		"reward_points":          restorePoints,
	}).Error
}

func (r *UserRepository) TouchLastActive(id int64, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("last_active_at", at).Error
}

func (r *UserRepository) ExistsByExternalID(externalID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("external_id = ?", externalID).Count(&count).Error
	return count > 0, err
}
