package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Default execution limits applied when neither the engine options nor the
// per-call options override them.
const (
	DefaultTimeout        = 5 * time.Second
	DefaultMaxConcurrency = 10
)

// CustomValidator validates a value for a custom-typed rule. It may return
// a replacement value (coercion); returning the input unchanged is fine.
// A returned *Error or Errors is recorded as-is; any other error is
// recorded under the "custom" code.
type CustomValidator interface {
	ValidateValue(ctx context.Context, value any, rule schema.Rule, record map[string]any) (any, error)
}

// CustomLookup resolves custom type names to validators. The registry
// package provides the standard implementation.
type CustomLookup interface {
	Lookup(name string) (CustomValidator, bool)
}

// Formatter shapes the externally visible error payload from the nested
// error tree.
type Formatter func(errors map[string]any) any

// DefaultFormatter wraps the tree in the standard envelope.
func DefaultFormatter(errs map[string]any) any {
	return map[string]any{
		"message": "Validation failed",
		"errors":  errs,
	}
}

// Translator rewrites an error message by code before formatting. The
// default translator returns message unchanged.
type Translator interface {
	Translate(code, message string, meta map[string]any) string
}

type identityTranslator struct{}

func (identityTranslator) Translate(_, message string, _ map[string]any) string {
	return message
}

// Engine validates records against schemas. Construct once with New (or
// NewFromEnv) and share freely: Validate is safe for concurrent use.
type Engine struct {
	registry   CustomLookup
	formatter  Formatter
	translator Translator
	logger     *slog.Logger

	convert        bool
	timeout        time.Duration
	maxConcurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the custom-type registry consulted by custom rules.
func WithRegistry(r CustomLookup) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithFormatter replaces the error payload formatter.
func WithFormatter(f Formatter) Option {
	return func(e *Engine) {
		if f != nil {
			e.formatter = f
		}
	}
}

// WithTranslator sets the message translator applied before formatting.
func WithTranslator(t Translator) Option {
	return func(e *Engine) {
		if t != nil {
			e.translator = t
		}
	}
}

// WithLogger sets the logger used by the scheduler. Logs are discarded by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithConvert sets the engine-wide default for the convert flag.
func WithConvert(v bool) Option {
	return func(e *Engine) { e.convert = v }
}

// WithTimeout sets the engine-wide default ceiling for async units.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithMaxConcurrency bounds the number of validation units running at once
// on the parallel path.
func WithMaxConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxConcurrency = n
		}
	}
}

// New creates an engine with the default formatter, an identity translator,
// and no custom-type registry.
func New(opts ...Option) *Engine {
	e := &Engine{
		formatter:      DefaultFormatter,
		translator:     identityTranslator{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout:        DefaultTimeout,
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromEnv creates an engine whose execution defaults come from the
// environment (see Config), with opts applied on top.
func NewFromEnv(opts ...Option) (*Engine, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithConvert(cfg.Convert),
		WithTimeout(cfg.Timeout),
		WithMaxConcurrency(cfg.MaxConcurrency),
	}
	return New(append(base, opts...)...), nil
}
