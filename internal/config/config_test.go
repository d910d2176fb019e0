package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "invoice", cfg.Metrics.Namespace)
	require.Nil(t, cfg.Rules.Coupons)
	require.Nil(t, cfg.Rules.Shipping)
	require.Nil(t, cfg.Rules.DefaultTax)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.yaml")
	body := `
log:
  level: debug
  format: console
rules:
  coupons:
    SPRING15: 0.15
  shipping:
    SG:
      threshold: 100
      fee: 9.5
    DEFAULT:
      threshold: 200
      fee: 25
  default_tax: 0.06
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("INVOICE_LOG_LEVEL", "warn")
	t.Setenv("INVOICE_METRICS_NAMESPACE", "billing")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, "billing", cfg.Metrics.Namespace)
	require.Equal(t, map[string]float64{"SPRING15": 0.15}, cfg.Rules.Coupons)
	require.Equal(t, ShippingSettings{Threshold: 100, Fee: 9.5}, cfg.Rules.Shipping["SG"])
	require.Equal(t, ShippingSettings{Threshold: 200, Fee: 25}, cfg.Rules.Shipping["DEFAULT"])
	require.NotNil(t, cfg.Rules.DefaultTax)
	require.InDelta(t, 0.06, *cfg.Rules.DefaultTax, 1e-9)
	require.Nil(t, cfg.Rules.Membership)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "log.level", envKey("INVOICE_LOG_LEVEL"))
	require.Equal(t, "rules.default_tax", envKey("INVOICE_RULES_DEFAULT_TAX"))
}
