package gateway

import (
	"context"
)

// Request carries the fields a strategy needs to attempt settlement.
type Request struct {
	OrderID uint
	Amount  float64
	Method  string
}

// Verdict is the outcome of one settlement attempt. TransactionID is set for
// both outcomes; ErrorMessage only when the attempt failed.
type Verdict struct {
	Successful    bool
	TransactionID string
	ErrorMessage  string
}

// Strategy attempts to settle a payment. Implementations must not touch
// persistence; the verdict is their only output.
type Strategy interface {
	Execute(ctx context.Context, req Request) (Verdict, error)
}
