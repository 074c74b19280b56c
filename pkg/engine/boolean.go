package engine

import (
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Default truthy/falsy sets for boolean coercion, applied when the rule
// does not configure its own. String membership is case-insensitive.
var (
	defaultTruthy = []any{true, "true", "1", 1, "yes", "on"}
	defaultFalsy  = []any{false, "false", "0", 0, "no", "off"}
)

// checkBool ensures the value is a boolean. In convert mode a value found
// in the truthy set becomes true and one found in the falsy set becomes
// false; anything else fails the ensure phase.
func (e *Engine) checkBool(rule schema.Rule, value any, convert bool) (any, any) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	if !convert {
		return nil, Errors{NewError(CodeBoolean, "must be a boolean", nil)}
	}

	truthy := rule.Truthy
	if truthy == nil {
		truthy = defaultTruthy
	}
	falsy := rule.Falsy
	if falsy == nil {
		falsy = defaultFalsy
	}

	if inSet(value, truthy) {
		return true, nil
	}
	if inSet(value, falsy) {
		return false, nil
	}
	return nil, Errors{NewError(CodeBoolean, "must be a boolean", nil)}
}

func inSet(value any, set []any) bool {
	for _, candidate := range set {
		if vs, ok := value.(string); ok {
			if cs, ok := candidate.(string); ok {
				if strings.EqualFold(strings.TrimSpace(vs), cs) {
					return true
				}
				continue
			}
		}
		if looseEqual(value, candidate) {
			return true
		}
	}
	return false
}
