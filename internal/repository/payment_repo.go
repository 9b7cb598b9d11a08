package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artisan/internal/models"
	"artisan/internal/payments"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRepository is the gorm-backed payment store. UpsertPending runs in a
// transaction with a row lock on the order's payment, so it is a per-order
// serialization point on its own even without the coordinator's lock.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) FindByOrder(ctx context.Context, orderID uint) (*models.Payment, error) {
	var p models.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	p.Timestamp = time.Now()
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) UpsertPending(ctx context.Context, orderID uint, amount float64, method string) (*models.Payment, error) {
	var out models.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_id = ?", orderID).
			First(&existing).Error
		notFound := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !notFound {
			return err
		}
		if !notFound && existing.Settled() {
			return fmt.Errorf("%w: order %d", payments.ErrAlreadySettled, orderID)
		}

		out = existing // keeps the identifier on retry
		out.OrderID = orderID
		out.Amount = amount
		out.Method = method
		out.Status = models.PaymentStatusPending
		out.Timestamp = time.Now()
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
