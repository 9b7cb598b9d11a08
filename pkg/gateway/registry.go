package gateway

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMethod is returned when no strategy is registered for a payment
// method. Resolution fails closed; there is no default strategy.
var ErrUnknownMethod = errors.New("unknown payment method")

func IsUnknownMethod(err error) bool {
	return errors.Is(err, ErrUnknownMethod)
}

// Registry maps payment method identifiers to strategies. The mapping is
// static configuration built at startup; matching is case-insensitive.
type Registry struct {
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

func (r *Registry) Register(method string, s Strategy) {
	r.strategies[strings.ToUpper(method)] = s
}

func (r *Registry) Resolve(method string) (Strategy, error) {
	if s, ok := r.strategies[strings.ToUpper(method)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
}

// DefaultRegistry wires the closed production set: both mock credit card
// methods resolve to the given mock strategy.
func DefaultRegistry(mock *MockStrategy) *Registry {
	r := NewRegistry()
	r.Register(MethodCreditCard, mock)
	r.Register(MethodCreditCardFail, mock)
	return r
}
