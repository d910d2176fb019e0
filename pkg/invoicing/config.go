package invoicing

import (
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/invoice-pricing/internal/config"
	"github.com/noah-isme/invoice-pricing/internal/obs"
	"github.com/noah-isme/invoice-pricing/internal/rules"
)

type (
	Config  = config.Config
	Metrics = obs.InvoiceMetrics
)

// ErrNilConfig is returned by NewServiceFromConfig when no config is supplied.
var ErrNilConfig = errors.New("invoicing: config is required")

// LoadConfig reads settings from an optional YAML file and INVOICE_ environment variables.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// NewMetrics registers invoice collectors on reg under namespace, for use with WithMetrics.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	return obs.NewInvoiceMetrics(namespace, reg)
}

// NewServiceFromConfig builds a Service whose rules, logger and metrics come
// from cfg. Logs are written to out and collectors registered on reg.
func NewServiceFromConfig(cfg *Config, reg prometheus.Registerer, out io.Writer, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	ruleCfg, err := rules.FromSettings(cfg.Rules)
	if err != nil {
		return nil, err
	}
	logger := obs.NewLogger(out, cfg.Log.Format, cfg.Log.Level).With().Str("component", "invoicing").Logger()
	base := []Option{
		WithRules(ruleCfg),
		WithLogger(logger),
		WithMetrics(NewMetrics(cfg.Metrics.Namespace, reg)),
	}
	return NewService(append(base, opts...)...), nil
}
