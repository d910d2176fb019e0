package obs

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for InvoiceMetrics.Computations.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
)

// InvoiceMetrics groups Prometheus collectors for invoice computations.
type InvoiceMetrics struct {
	Computations *prometheus.CounterVec
	Warnings     *prometheus.CounterVec
	Duration     prometheus.Histogram
}

// NewInvoiceMetrics registers and returns invoice collectors. Collectors that
// are already registered on reg are reused.
func NewInvoiceMetrics(namespace string, reg prometheus.Registerer) *InvoiceMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &InvoiceMetrics{
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Count of invoice total computations by outcome.",
		}, []string{"result"}),
		Warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Count of advisory warnings attached to computed invoices.",
		}, []string{"warning"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_ms",
			Help:      "Invoice computation latency in milliseconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
	mustRegisterCollector(reg, m.Computations, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Computations = v
		}
	})
	mustRegisterCollector(reg, m.Warnings, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.Warnings = v
		}
	})
	mustRegisterCollector(reg, m.Duration, func(existing prometheus.Collector) {
		if v, ok := existing.(prometheus.Histogram); ok {
			m.Duration = v
		}
	})
	return m
}

// Observe records one computation. It is safe to call on a nil receiver.
func (m *InvoiceMetrics) Observe(result string, warnings []string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Computations.WithLabelValues(result).Inc()
	for _, w := range warnings {
		m.Warnings.WithLabelValues(w).Inc()
	}
	m.Duration.Observe(DurationMillis(elapsed))
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register invoice metric: %w", err))
	}
}
