package repository

import (
	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) WithTx(tx *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: tx}
}

func (r *ActivityRepository) Create(entry *model.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *ActivityRepository) ListByUser(userID int64, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).
		Find(&entries).Error
	return entries, err
}
