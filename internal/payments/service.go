package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"artisan/internal/lock"
	"artisan/internal/metrics"
	"artisan/internal/models"
	"artisan/pkg/gateway"
	"artisan/pkg/orders"
)

// Store is the payment record persistence port. FindByOrder returns
// (nil, nil) when no record exists.
type Store interface {
	FindByOrder(ctx context.Context, orderID uint) (*models.Payment, error)
	// Save assigns an identifier if the record has none, overwrites the row
	// otherwise, and refreshes the timestamp.
	Save(ctx context.Context, p *models.Payment) error
	// UpsertPending puts the order's record into PENDING with the request
	// fields, reusing a FAILED (or stale PENDING) row in place and creating
	// one when absent. It returns ErrAlreadySettled when the existing row is
	// SUCCESSFUL, without writing anything.
	UpsertPending(ctx context.Context, orderID uint, amount float64, method string) (*models.Payment, error)
}

type Request struct {
	OrderID uint
	Amount  float64
	Method  string
}

type Response struct {
	PaymentID uint      `json:"payment_id"`
	OrderID   uint      `json:"order_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Service coordinates the payment protocol: idempotency guard, record
// creation or reuse, gateway execution, terminal persist and the order
// status push.
type Service struct {
	store          Store
	registry       *gateway.Registry
	sink           orders.StatusSink
	locker         lock.Locker
	gatewayTimeout time.Duration
	sinkTimeout    time.Duration
	metrics        *metrics.PaymentMetrics
}

func NewService(store Store, registry *gateway.Registry, sink orders.StatusSink, locker lock.Locker, gatewayTimeout, sinkTimeout time.Duration) *Service {
	if gatewayTimeout <= 0 {
		gatewayTimeout = 10 * time.Second
	}
	if sinkTimeout <= 0 {
		sinkTimeout = 5 * time.Second
	}
	return &Service{
		store:          store,
		registry:       registry,
		sink:           sink,
		locker:         locker,
		gatewayTimeout: gatewayTimeout,
		sinkTimeout:    sinkTimeout,
		metrics:        metrics.Get(),
	}
}

// ProcessPayment runs one payment attempt for an order. On a sink failure the
// returned Response is non-nil alongside an ErrOrderSync error: the payment
// is terminal, only the order notification is in doubt.
func (s *Service) ProcessPayment(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	defer func() {
		s.metrics.ProcessDuration.Observe(time.Since(start).Seconds())
	}()

	if err := validate(req); err != nil {
		s.metrics.RejectedTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	// Per-order serialization: one caller past this point per order.
	release, err := s.locker.Acquire(ctx, fmt.Sprintf("payment:order:%d", req.OrderID))
	if err != nil {
		return nil, fmt.Errorf("serialize order %d: %w", req.OrderID, err)
	}
	defer release()

	// Resolve before the first persist so an unknown method leaves no
	// PENDING row behind.
	strategy, err := s.registry.Resolve(req.Method)
	if err != nil {
		s.metrics.RejectedTotal.WithLabelValues("unknown_method").Inc()
		return nil, err
	}

	rec, err := s.store.UpsertPending(ctx, req.OrderID, req.Amount, req.Method)
	if err != nil {
		if errors.Is(err, ErrAlreadySettled) {
			s.metrics.RejectedTotal.WithLabelValues("already_settled").Inc()
		}
		return nil, err
	}

	// The PENDING row is durable; the attempt now runs to completion even if
	// the caller goes away.
	detached := context.WithoutCancel(ctx)

	verdict := s.executeGateway(detached, strategy, req)

	if verdict.Successful {
		rec.Status = models.PaymentStatusSuccessful
	} else {
		rec.Status = models.PaymentStatusFailed
	}
	if err := s.store.Save(detached, rec); err != nil {
		return nil, fmt.Errorf("persist terminal payment state for order %d: %w", req.OrderID, err)
	}
	s.metrics.ProcessedTotal.WithLabelValues(rec.Status).Inc()
	log.Printf("[payments] order %d settled as %s (tx %s)", req.OrderID, rec.Status, verdict.TransactionID)

	resp := toResponse(rec)

	if err := s.notifyOrderService(detached, rec); err != nil {
		s.metrics.OrderSyncFailed.Inc()
		log.Printf("[payments] order %d status push failed: %v", req.OrderID, err)
		return resp, fmt.Errorf("%w: %v", ErrOrderSync, err)
	}
	return resp, nil
}

// GetStatusByOrder returns the current record view for an order. Read-only.
func (s *Service) GetStatusByOrder(ctx context.Context, orderID uint) (*Response, error) {
	rec, err := s.store.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: order %d", ErrPaymentNotFound, orderID)
	}
	return toResponse(rec), nil
}

// executeGateway bounds the strategy call with the gateway timeout. Any
// execution error, timeouts included, becomes a failed verdict so the record
// never stays PENDING.
func (s *Service) executeGateway(ctx context.Context, strategy gateway.Strategy, req Request) gateway.Verdict {
	execCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	verdict, err := strategy.Execute(execCtx, gateway.Request{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.Method,
	})
	if err != nil {
		log.Printf("[payments] gateway execution for order %d failed: %v", req.OrderID, err)
		return gateway.Verdict{Successful: false, ErrorMessage: err.Error()}
	}
	return verdict
}

func (s *Service) notifyOrderService(ctx context.Context, rec *models.Payment) error {
	token := orders.StatusPaymentFailed
	if rec.Status == models.PaymentStatusSuccessful {
		token = orders.StatusPaid
	}
	sinkCtx, cancel := context.WithTimeout(ctx, s.sinkTimeout)
	defer cancel()
	return s.sink.UpdateOrderStatus(sinkCtx, rec.OrderID, token)
}

func validate(req Request) error {
	if req.OrderID == 0 {
		return fmt.Errorf("%w: order id is required", ErrInvalidRequest)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	if req.Method == "" {
		return fmt.Errorf("%w: method is required", ErrInvalidRequest)
	}
	return nil
}

func toResponse(p *models.Payment) *Response {
	return &Response{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method,
		Status:    p.Status,
		Timestamp: p.Timestamp,
	}
}
