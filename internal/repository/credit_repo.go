package repository

import (
	"gorm.io/gorm"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/internal/model"
)

// CreditRepository manages the append-only credit transaction log. Rows are
// created, listed and counted; there is deliberately no update or delete.
type CreditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

func (r *CreditRepository) WithTx(tx *gorm.DB) *CreditRepository {
	return &CreditRepository{db: tx}
}

func (r *CreditRepository) Create(tx *model.CreditTransaction) error {
	return r.db.Create(tx).Error
}

func (r *CreditRepository) ListByUser(userID int64, page, pageSize int) ([]model.CreditTransaction, int64, error) {
	var total int64
	if err := r.db.Model(&model.CreditTransaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []model.CreditTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&txs).Error
	return txs, total, err
}

// SumByUserAndType folds the log for one transaction type. Used by audits and
// tests to check the users.credits counter against the ledger.
func (r *CreditRepository) SumByUserAndType(userID int64, txType string) (int, error) {
	var sum *int
	err := r.db.Model(&model.CreditTransaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND type = ?", userID, txType).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
