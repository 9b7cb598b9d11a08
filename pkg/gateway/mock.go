package gateway

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MethodCreditCard and MethodCreditCardFail are the mock method identifiers.
// MethodCreditCardFail always produces a failed verdict, regardless of the
// random source.
const (
	MethodCreditCard     = "MOCK_CREDIT_CARD"
	MethodCreditCardFail = "MOCK_CREDIT_CARD_FAIL"
)

// MockStrategy simulates a payment gateway. The random source is injected so
// outcomes are reproducible under test; the mutex guards it because one
// strategy instance serves concurrent payments and *rand.Rand is not safe
// for concurrent use.
type MockStrategy struct {
	mu             sync.Mutex
	rng            *rand.Rand
	successPercent int
}

// NewMockStrategy returns a mock gateway with a time-seeded source and the
// given settle rate (0-100).
func NewMockStrategy(successPercent int) *MockStrategy {
	return NewMockStrategyWithSource(rand.New(rand.NewSource(time.Now().UnixNano())), successPercent)
}

func NewMockStrategyWithSource(rng *rand.Rand, successPercent int) *MockStrategy {
	if successPercent < 0 {
		successPercent = 0
	}
	if successPercent > 100 {
		successPercent = 100
	}
	return &MockStrategy{rng: rng, successPercent: successPercent}
}

func (s *MockStrategy) Execute(ctx context.Context, req Request) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}
	txID := uuid.NewString()

	// Forced outcome takes precedence over the random draw.
	if strings.EqualFold(req.Method, MethodCreditCardFail) {
		return Verdict{
			Successful:    false,
			TransactionID: txID,
			ErrorMessage:  "payment declined by " + MethodCreditCardFail + " method",
		}, nil
	}

	s.mu.Lock()
	draw := s.rng.Intn(100)
	s.mu.Unlock()
	if draw < s.successPercent {
		return Verdict{Successful: true, TransactionID: txID}, nil
	}
	return Verdict{
		Successful:    false,
		TransactionID: txID,
		ErrorMessage:  "mock gateway declined the payment",
	}, nil
}
