package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// checkCustom resolves the rule's type name against the registry and runs
// the validator. An unregistered name is a configuration problem surfaced
// as a field error, not a fault. Validators may return a replacement value;
// a returned *Error or Errors passes through with its own code and meta,
// any other error is recorded under the "custom" code.
func (e *Engine) checkCustom(ctx context.Context, record map[string]any, rule schema.Rule, value any) (any, any) {
	if e.registry == nil {
		return nil, Errors{unknownCustomType(rule.CustomType)}
	}
	v, ok := e.registry.Lookup(rule.CustomType)
	if !ok {
		return nil, Errors{unknownCustomType(rule.CustomType)}
	}

	out, err := v.ValidateValue(ctx, value, rule, record)
	if err != nil {
		var many Errors
		if errors.As(err, &many) {
			return nil, many
		}
		var one *Error
		if errors.As(err, &one) {
			return nil, Errors{one}
		}
		return nil, Errors{NewError(CodeCustom, err.Error(),
			map[string]any{"type": rule.CustomType})}
	}
	return out, nil
}

func unknownCustomType(name string) *Error {
	return NewError(CodeCustomType,
		fmt.Sprintf("unknown custom type %q", name),
		map[string]any{"type": name})
}
