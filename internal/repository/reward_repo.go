package repository

import (
	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) WithTx(tx *gorm.DB) *RewardRepository {
	return &RewardRepository{db: tx}
}

func (r *RewardRepository) CreateTransaction(tx *model.RewardTransaction) error {
	return r.db.Create(tx).Error
}

func (r *RewardRepository) ListTransactionsByUser(userID int64, page, pageSize int) ([]model.RewardTransaction, int64, error) {
	var total int64
	if err := r.db.Model(&model.RewardTransaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []model.RewardTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&txs).Error
	return txs, total, err
}

func (r *RewardRepository) CreateFeedbackReward(reward *model.FeedbackReward) error {
	return r.db.Create(reward).Error
}

// FeedbackRewardExists reports whether a reward was already granted for the
// (user, trip) pair. The unique index on feedback_rewards backs this check at
// insert time, so a racing duplicate fails there even if both callers pass.
func (r *RewardRepository) FeedbackRewardExists(userID, tripPlanID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.FeedbackReward{}).
		Where("user_id = ? AND trip_plan_id = ?", userID, tripPlanID).
		Count(&count).Error
	return count > 0, err
}

func (r *RewardRepository) CreateFeedback(feedback *model.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *RewardRepository) GetFeedbackByID(id int64) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.Where("id = ?", id).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}
