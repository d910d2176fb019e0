// Package invoicing computes the payable total of a customer invoice.
//
// A Service validates the invoice, then prices it against an immutable set of
// rule tables: shipping, membership and coupon discounts, fragile surcharges
// and country tax. A Service holds no mutable state and may be shared.
package invoicing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/invoice-pricing/internal/common"
	"github.com/noah-isme/invoice-pricing/internal/invoice"
	"github.com/noah-isme/invoice-pricing/internal/obs"
	"github.com/noah-isme/invoice-pricing/internal/pricing"
	"github.com/noah-isme/invoice-pricing/internal/rules"
	"github.com/noah-isme/invoice-pricing/internal/validation"
)

type (
	Invoice         = invoice.Invoice
	LineItem        = invoice.LineItem
	Category        = invoice.Category
	Quote           = pricing.Quote
	RuleConfig      = rules.RuleConfig
	ValidationError = common.ValidationError
)

const (
	CategoryBook        = invoice.CategoryBook
	CategoryFood        = invoice.CategoryFood
	CategoryElectronics = invoice.CategoryElectronics
	CategoryOther       = invoice.CategoryOther
)

// ErrInvalidInvoice matches any validation failure returned by a Service.
var ErrInvalidInvoice = common.ErrInvalidInvoice

// Service orchestrates validation and pricing.
type Service struct {
	rules     *rules.RuleConfig
	validator *validation.Validator
	engine    *pricing.Engine
	logger    zerolog.Logger
	metrics   *obs.InvoiceMetrics
	tracer    trace.Tracer
}

// Option customises a Service.
type Option func(*Service)

// WithRules replaces the built-in rule tables.
func WithRules(cfg *rules.RuleConfig) Option {
	return func(s *Service) {
		if cfg != nil {
			s.rules = cfg
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics records computations on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracerProvider sets the provider spans are started from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = obs.Tracer(tp) }
}

// NewService builds a Service using the built-in rules unless overridden.
func NewService(opts ...Option) *Service {
	s := &Service{
		rules:     rules.Default(),
		validator: validation.New(),
		engine:    pricing.NewEngine(),
		logger:    zerolog.Nop(),
		tracer:    obs.Tracer(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate returns every problem found on inv without pricing it.
func (s *Service) Validate(inv *Invoice) []string {
	return s.validator.Validate(inv)
}

// ComputeTotal returns the payable total and advisory warnings for inv. It
// fails with a *ValidationError listing every problem when inv is invalid.
func (s *Service) ComputeTotal(inv *Invoice) (decimal.Decimal, []string, error) {
	return s.ComputeTotalContext(context.Background(), inv)
}

// ComputeTotalContext is ComputeTotal with a caller-supplied context for tracing.
func (s *Service) ComputeTotalContext(ctx context.Context, inv *Invoice) (decimal.Decimal, []string, error) {
	q, err := s.Quote(ctx, inv)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return q.Total, q.Warnings, nil
}

// Quote returns the full pricing breakdown for inv.
func (s *Service) Quote(ctx context.Context, inv *Invoice) (Quote, error) {
	start := time.Now()
	_, span := s.tracer.Start(ctx, "invoice.compute_total")
	defer span.End()

	if problems := s.validator.Validate(inv); len(problems) > 0 {
		err := common.NewValidationError(problems)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid invoice")
		s.logger.Warn().
			Str("invoice_id", invoiceID(inv)).
			Strs("problems", problems).
			Msg("invoice rejected")
		s.metrics.Observe(obs.ResultInvalid, nil, time.Since(start))
		return Quote{}, err
	}

	span.SetAttributes(
		attribute.String("invoice.id", inv.InvoiceID),
		attribute.String("invoice.country", inv.Country),
		attribute.String("invoice.membership", inv.Membership),
		attribute.Int("invoice.items", len(inv.Items)),
	)

	q := s.engine.Compute(*inv, s.rules)

	span.SetAttributes(
		attribute.String("invoice.total", q.Total.String()),
		attribute.StringSlice("invoice.warnings", q.Warnings),
	)
	s.logger.Debug().
		Str("invoice_id", inv.InvoiceID).
		Stringer("total", q.Total).
		Strs("warnings", q.Warnings).
		Msg("invoice priced")
	s.metrics.Observe(obs.ResultOK, q.Warnings, time.Since(start))
	return q, nil
}

func invoiceID(inv *Invoice) string {
	if inv == nil {
		return ""
	}
	return inv.InvoiceID
}
