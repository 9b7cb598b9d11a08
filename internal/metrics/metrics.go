package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics collects the payment-processing counters exposed on /metrics.
type PaymentMetrics struct {
	ProcessedTotal  *prometheus.CounterVec // by terminal status
	RejectedTotal   *prometheus.CounterVec // by rejection reason
	ProcessDuration prometheus.Histogram
	OrderSyncFailed prometheus.Counter
}

var (
	once     sync.Once
	instance *PaymentMetrics
)

// Get returns the process-wide metrics, registering collectors on first use.
func Get() *PaymentMetrics {
	once.Do(func() {
		instance = &PaymentMetrics{
			ProcessedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "payment_processed_total",
					Help: "Payment attempts that reached a terminal status",
				},
				[]string{"status"}, // SUCCESSFUL / FAILED
			),
			RejectedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "payment_rejected_total",
					Help: "Payment attempts rejected before gateway execution",
				},
				[]string{"reason"}, // already_settled / unknown_method / invalid
			),
			ProcessDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "payment_process_duration_seconds",
					Help:    "Duration of ProcessPayment calls",
					Buckets: prometheus.DefBuckets,
				},
			),
			OrderSyncFailed: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "payment_order_sync_failed_total",
					Help: "Order status sink calls that failed after a terminal payment state",
				},
			),
		}
	})
	return instance
}
