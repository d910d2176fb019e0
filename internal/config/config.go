package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables recognised by Load.
const EnvPrefix = "INVOICE_"

// Config holds the settings a host application needs to build an invoice service.
type Config struct {
	Log     LogSettings     `koanf:"log"`
	Metrics MetricsSettings `koanf:"metrics"`
	Rules   RuleSettings    `koanf:"rules"`
}

// LogSettings selects the zerolog output format and level.
type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsSettings controls Prometheus collector naming.
type MetricsSettings struct {
	Namespace string `koanf:"namespace"`
}

// ShippingSettings is one row of the shipping table.
type ShippingSettings struct {
	Threshold float64 `koanf:"threshold" validate:"gte=0"`
	Fee       float64 `koanf:"fee" validate:"gte=0"`
}

// RuleSettings overrides the built-in pricing tables. A nil map keeps the
// built-in table; a non-nil map replaces it entirely.
type RuleSettings struct {
	Coupons    map[string]float64          `koanf:"coupons" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=1"`
	Shipping   map[string]ShippingSettings `koanf:"shipping" validate:"omitempty,dive,keys,required,endkeys"`
	Membership map[string]float64          `koanf:"membership" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=1"`
	Tax        map[string]float64          `koanf:"tax" validate:"omitempty,dive,keys,required,endkeys,gte=0,lte=1"`
	DefaultTax *float64                    `koanf:"default_tax" validate:"omitempty,gte=0,lte=1"`
}

var defaults = map[string]any{
	"log.level":         "info",
	"log.format":        "json",
	"metrics.namespace": "invoice",
}

// Load reads configuration from built-in defaults, an optional YAML file and
// INVOICE_-prefixed environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if p := strings.TrimSpace(path); p != "" {
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// MustLoad behaves like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// envKey maps INVOICE_LOG_LEVEL to log.level and INVOICE_RULES_DEFAULT_TAX to
// rules.default_tax. Only the first underscore separates a section.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
