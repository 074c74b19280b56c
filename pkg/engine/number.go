package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// checkNumber ensures the value is numeric, parsing decimal strings in
// convert mode (integer or floating forms, locale-free), then collects
// every constraint violation: min, max, integer. Already-numeric values
// keep their original Go type in the output.
func (e *Engine) checkNumber(rule schema.Rule, value any, convert bool) (any, any) {
	out := value
	f, ok := toFloat(value)
	if !ok && convert {
		if s, isStr := value.(string); isStr {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err == nil && !math.IsInf(parsed, 0) && !math.IsNaN(parsed) {
				f, ok = parsed, true
				out = parsed
			}
		}
	}
	if !ok {
		return nil, Errors{NewError(CodeNumber, "must be a number", nil)}
	}

	var errs Errors
	if rule.Min != nil && f < *rule.Min {
		errs = append(errs, NewError(CodeNumberMin,
			fmt.Sprintf("must be at least %v", *rule.Min),
			map[string]any{"min": *rule.Min}))
	}
	if rule.Max != nil && f > *rule.Max {
		errs = append(errs, NewError(CodeNumberMax,
			fmt.Sprintf("must be at most %v", *rule.Max),
			map[string]any{"max": *rule.Max}))
	}
	if rule.Integer && f != math.Trunc(f) {
		errs = append(errs, NewError(CodeNumberInteger,
			"must be an integer", nil))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}
