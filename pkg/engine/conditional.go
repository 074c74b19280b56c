package engine

import (
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// effectiveRule resolves conditional rules to the active sub-rule for this
// record. It returns the active rule, whether a rule was selected at all,
// and the governing required flag: the selected sub-rule's flag overrides
// the conditional's own, which applies only when no branch matches and no
// fallback exists. Chained conditionals resolve transitively.
func (e *Engine) effectiveRule(rule schema.Rule, record map[string]any) (schema.Rule, bool, bool) {
	if rule.Type != schema.TypeConditional {
		return rule, true, rule.Required
	}

	cond := rule.When
	var next *schema.Rule
	if e.conditionMatches(cond, record) {
		next = cond.Then
	} else {
		next = cond.Otherwise
		if next == nil {
			next = cond.Base
		}
	}
	if next == nil {
		return schema.Rule{}, false, rule.Required
	}
	return e.effectiveRule(*next, record)
}

// conditionMatches evaluates all configured checks against the referenced
// field's raw value. Every configured check must hold; an unset check is
// vacuously true. Reading the sibling field never triggers required errors.
func (e *Engine) conditionMatches(cond *schema.Condition, record map[string]any) bool {
	value, _ := resolveField(record, cond.Field)

	if cond.IsSet && !looseEqual(value, cond.Is) {
		return false
	}
	if len(cond.In) > 0 {
		found := false
		for _, candidate := range cond.In {
			if looseEqual(value, candidate) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if cond.Matches != nil {
		s, ok := value.(string)
		if !ok || !cond.Matches.MatchString(s) {
			return false
		}
	}
	if cond.Min != nil || cond.Max != nil {
		f, ok := toFloat(value)
		if !ok {
			return false
		}
		if cond.Min != nil && f < *cond.Min {
			return false
		}
		if cond.Max != nil && f > *cond.Max {
			return false
		}
	}
	return true
}
