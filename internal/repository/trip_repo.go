package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) WithTx(tx *gorm.DB) *TripRepository {
	return &TripRepository{db: tx}
}

func (r *TripRepository) Create(trip *model.TripPlan) error {
	return r.db.Create(trip).Error
}

func (r *TripRepository) GetByID(id int64) (*model.TripPlan, error) {
	var trip model.TripPlan
	err := r.db.Where("id = ?", id).First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) ListByUser(userID int64, page, pageSize int) ([]model.TripPlan, int64, error) {
	var total int64
	if err := r.db.Model(&model.TripPlan{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []model.TripPlan
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&trips).Error
	return trips, total, err
}

func (r *TripRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.TripPlan{}).Where("id = ?", id).Updates(fields).Error
}

func (r *TripRepository) Delete(id int64) error {
	return r.db.Delete(&model.TripPlan{}, id).Error
}

// ListStaleGenerating finds trips stuck in generating since before the cutoff,
// so the cron loop can fail them out.
func (r *TripRepository) ListStaleGenerating(before time.Time) ([]model.TripPlan, error) {
	var trips []model.TripPlan
	err := r.db.Where("status = ? AND updated_at < ?", model.TripStatusGenerating, before).Find(&trips).Error
	return trips, err
}
