package obs_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/invoice-pricing/internal/obs"
)

func TestInvoiceMetricsObserve(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewInvoiceMetrics("invoice", registry)

	metrics.Observe(obs.ResultOK, []string{"Unknown coupon"}, 2*time.Millisecond)
	metrics.Observe(obs.ResultInvalid, nil, time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Computations.WithLabelValues(obs.ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Computations.WithLabelValues(obs.ResultInvalid)))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Warnings.WithLabelValues("Unknown coupon")))
	require.Equal(t, 1, testutil.CollectAndCount(metrics.Duration))
}

func TestInvoiceMetricsReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := obs.NewInvoiceMetrics("invoice", registry)
	second := obs.NewInvoiceMetrics("invoice", registry)

	second.Observe(obs.ResultOK, nil, time.Millisecond)
	require.Equal(t, 1.0, testutil.ToFloat64(first.Computations.WithLabelValues(obs.ResultOK)))
}

func TestInvoiceMetricsNilReceiver(t *testing.T) {
	var metrics *obs.InvoiceMetrics
	require.NotPanics(t, func() {
		metrics.Observe(obs.ResultOK, []string{"x"}, time.Millisecond)
	})
}
