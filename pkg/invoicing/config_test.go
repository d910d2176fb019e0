package invoicing_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/invoice-pricing/pkg/invoicing"
)

func TestNewServiceFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	body := `
log:
  level: debug
metrics:
  namespace: billing
rules:
  coupons:
    SPRING15: 0.15
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := invoicing.LoadConfig(path)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	var buf bytes.Buffer
	svc, err := invoicing.NewServiceFromConfig(cfg, registry, &buf)
	require.NoError(t, err)

	total, warnings, err := svc.ComputeTotal(newInvoice("TH", "none", "SPRING15", "1000"))
	require.NoError(t, err)
	// discount 150, tax (1000-150)*0.07 = 59.5
	requireDecimal(t, "909.5", total)
	require.Empty(t, warnings)

	_, warnings, err = svc.ComputeTotal(newInvoice("TH", "none", "WELCOME10", "1000"))
	require.NoError(t, err)
	require.Equal(t, []string{"Unknown coupon"}, warnings)

	require.Contains(t, buf.String(), `"component":"invoicing"`)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	require.Contains(t, names, "billing_computations_total")
}

func TestNewServiceFromConfigRejectsBadRules(t *testing.T) {
	cfg, err := invoicing.LoadConfig("")
	require.NoError(t, err)
	cfg.Rules.Coupons = map[string]float64{"BAD": 2}

	_, err = invoicing.NewServiceFromConfig(cfg, prometheus.NewRegistry(), &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewServiceFromConfigNil(t *testing.T) {
	svc, err := invoicing.NewServiceFromConfig(nil, prometheus.NewRegistry(), &bytes.Buffer{})
	require.ErrorIs(t, err, invoicing.ErrNilConfig)
	require.Nil(t, svc)
}

func TestNewServiceFromConfigDefaultTaxFromEnv(t *testing.T) {
	t.Setenv("INVOICE_RULES_DEFAULT_TAX", "0.2")

	cfg, err := invoicing.LoadConfig("")
	require.NoError(t, err)
	svc, err := invoicing.NewServiceFromConfig(cfg, prometheus.NewRegistry(), &bytes.Buffer{})
	require.NoError(t, err)

	// FR uses the default rows: shipping 25 below 200, tax (100)*0.2 = 20
	total, _, err := svc.ComputeTotal(newInvoice("FR", "none", "", "100"))
	require.NoError(t, err)
	requireDecimal(t, "145", total)

	// Countries with their own tax rate are unaffected: (100)*0.07 = 7, shipping 60
	total, _, err = svc.ComputeTotal(newInvoice("TH", "none", "", "100"))
	require.NoError(t, err)
	requireDecimal(t, "167", total)
}
