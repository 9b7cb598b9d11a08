package payments

import "errors"

var (
	// ErrInvalidRequest covers missing order id, non-positive amount and
	// empty method.
	ErrInvalidRequest = errors.New("invalid payment request")

	// ErrAlreadySettled rejects any further attempt for an order whose
	// payment already reached SUCCESSFUL.
	ErrAlreadySettled = errors.New("payment already settled")

	// ErrPaymentNotFound is returned by status lookups for orders without a
	// payment record.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrOrderSync marks an order status sink failure after the payment
	// reached its terminal state. The payment record is kept as-is; the
	// order and payment may diverge until reconciled out of band.
	ErrOrderSync = errors.New("order status sync failed")
)
