package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"artisan/internal/models"
	"artisan/internal/payments"
)

// MemoryPaymentRepository keeps payment rows in a mutex-guarded map keyed by
// order id. It backs tests and local development; identifiers come from a
// monotonic counter like the database would assign them.
type MemoryPaymentRepository struct {
	mu     sync.Mutex
	byID   map[uint]*models.Payment
	order  map[uint]uint // orderID -> payment ID
	nextID uint
	writes int
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		byID:  make(map[uint]*models.Payment),
		order: make(map[uint]uint),
	}
}

func (r *MemoryPaymentRepository) FindByOrder(ctx context.Context, orderID uint) (*models.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.order[orderID]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *MemoryPaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	p.Timestamp = time.Now()
	cp := *p
	r.byID[cp.ID] = &cp
	r.order[cp.OrderID] = cp.ID
	r.writes++
	return nil
}

func (r *MemoryPaymentRepository) UpsertPending(ctx context.Context, orderID uint, amount float64, method string) (*models.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var rec models.Payment
	if id, ok := r.order[orderID]; ok {
		existing := r.byID[id]
		if existing.Settled() {
			return nil, fmt.Errorf("%w: order %d", payments.ErrAlreadySettled, orderID)
		}
		rec = *existing
	} else {
		r.nextID++
		rec = models.Payment{ID: r.nextID}
	}

	rec.OrderID = orderID
	rec.Amount = amount
	rec.Method = method
	rec.Status = models.PaymentStatusPending
	rec.Timestamp = time.Now()

	cp := rec
	r.byID[cp.ID] = &cp
	r.order[orderID] = cp.ID
	r.writes++
	return &rec, nil
}

// Writes is a test hook: the number of row writes performed so far.
func (r *MemoryPaymentRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Rows is a test hook: the number of rows currently stored.
func (r *MemoryPaymentRepository) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
