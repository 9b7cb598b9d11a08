package models

import (
	"time"
)

const (
	PaymentStatusPending    = "PENDING"
	PaymentStatusSuccessful = "SUCCESSFUL"
	PaymentStatusFailed     = "FAILED"
)

// Payment is one payment attempt series for an order. A FAILED row is reused
// in place on retry so there is at most one row per order; a SUCCESSFUL row
// is never mutated again.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Method    string    `gorm:"size:50;not null" json:"method"`
	Status    string    `gorm:"size:20;not null;index" json:"status"` // PENDING, SUCCESSFUL, FAILED
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (Payment) TableName() string {
	return "payments"
}

// Settled reports whether the row is fail-closed against further attempts.
func (p *Payment) Settled() bool {
	return p.Status == PaymentStatusSuccessful
}
