package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/schemakit/pkg/engine"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// CheckFunc validates a value without changing it.
type CheckFunc func(ctx context.Context, value any) error

// CoerceFunc validates a value and may return a replacement.
type CoerceFunc func(ctx context.Context, value any) (any, error)

// Registry resolves custom type names to validators. It is safe for
// concurrent use; registration typically happens once during setup.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]engine.CustomValidator
}

// Option configures a Registry.
type Option func(*Registry)

// WithBuiltins preloads the built-in validators: uuid, url, ip.
func WithBuiltins() Option {
	return func(r *Registry) {
		for name, v := range builtins() {
			r.validators[name] = v
		}
	}
}

// New creates an empty registry (or one preloaded via options).
func New(opts ...Option) *Registry {
	r := &Registry{validators: make(map[string]engine.CustomValidator)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores a validator under name, normalizing the accepted shapes
// into the engine contract. Registering an unsupported shape returns
// ErrUnsupportedShape. Re-registering a name replaces the previous
// validator.
func (r *Registry) Register(name string, v any) error {
	if name == "" {
		return ErrEmptyName
	}
	if v == nil {
		return ErrNilValidator
	}

	normalized, err := normalize(v)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.validators[name] = normalized
	return nil
}

// Lookup resolves a type name. The second return is false for names never
// registered.
func (r *Registry) Lookup(name string) (engine.CustomValidator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[name]
	return v, ok
}

// Names returns the registered type names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	return names
}

func normalize(v any) (engine.CustomValidator, error) {
	switch fn := v.(type) {
	case engine.CustomValidator:
		return fn, nil
	case CheckFunc:
		return checkAdapter(fn), nil
	case func(ctx context.Context, value any) error:
		return checkAdapter(fn), nil
	case CoerceFunc:
		return coerceAdapter(fn), nil
	case func(ctx context.Context, value any) (any, error):
		return coerceAdapter(fn), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, v)
}

type checkAdapter func(ctx context.Context, value any) error

func (f checkAdapter) ValidateValue(ctx context.Context, value any, _ schema.Rule, _ map[string]any) (any, error) {
	if err := f(ctx, value); err != nil {
		return nil, err
	}
	return value, nil
}

type coerceAdapter func(ctx context.Context, value any) (any, error)

func (f coerceAdapter) ValidateValue(ctx context.Context, value any, _ schema.Rule, _ map[string]any) (any, error) {
	return f(ctx, value)
}
