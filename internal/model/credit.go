package model

import (
	"time"
)

const (
	CreditTxCredit   = "credit"
	CreditTxDebit    = "debit"
	CreditTxPurchase = "purchase"
	CreditTxRefund   = "refund"
)

// CreditTransaction is an append-only ledger row. Rows are never mutated after
// creation; the spendable balance lives on users.credits and the log is audit
// only.
type CreditTransaction struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Type        string    `gorm:"size:20;not null;index" json:"type"` // credit, debit, purchase, refund
	Amount      int       `gorm:"not null" json:"amount"`             // always positive
	Description string    `gorm:"size:255" json:"description"`
	TripPlanID  *int64    `gorm:"index" json:"trip_plan_id,omitempty"`
	Status      string    `gorm:"size:20;default:completed" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
