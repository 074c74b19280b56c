package engine

import (
	"context"
	"reflect"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// runState is the per-call validation context: the resolved call options
// and the hook semaphore for the parallel path. It is shared read-only
// across validation units.
type runState struct {
	opts     callOptions
	parallel bool
	hookSem  chan struct{}
}

// Validate checks input against s and returns the normalized record on
// success. On failure the returned error is a *Result carrying the nested
// error tree, the flattened path map, and the formatted payload; the record
// return is nil. Input must be a string-keyed map, otherwise a single
// invalid_data error is reported under the reserved "_" key without any
// field validation; schemas must not declare a field named "_".
func (e *Engine) Validate(ctx context.Context, input any, s *schema.Schema, opts ...CallOption) (map[string]any, error) {
	o := e.callOptions(opts)

	record, ok := asRecord(input)
	if !ok {
		return nil, e.failure(map[string]any{
			recordKey: Errors{NewError(CodeInvalidData, "must be a key/value map", nil)},
		})
	}

	run := &runState{opts: o}
	if s.HasAsync() {
		run.parallel = true
		run.hookSem = make(chan struct{}, o.maxConcurrency)
		e.logger.DebugContext(ctx, "validation plan selected",
			"mode", "parallel", "max_concurrency", o.maxConcurrency)
	}

	var out map[string]any
	var tree map[string]any
	if run.parallel {
		out, tree = e.validateParallel(ctx, run, s, record)
	} else {
		out, tree = e.validateSchema(ctx, run, s, record)
	}

	if len(tree) > 0 {
		return nil, e.failure(tree)
	}
	return out, nil
}

// recordKey is the reserved tree key for failures that concern the record
// as a whole rather than a declared field.
const recordKey = "_"

// validateSchema runs the sequential path: defaults merged, then each field
// validated to completion in declaration order. Returns the normalized
// record and the (possibly empty) nested error tree.
func (e *Engine) validateSchema(ctx context.Context, run *runState, s *schema.Schema, record map[string]any) (map[string]any, map[string]any) {
	merged := mergeDefaults(record, s.Defaults())

	out := make(map[string]any, len(merged))
	for k, v := range merged {
		out[k] = v
	}

	tree := make(map[string]any)
	for _, f := range s.Fields() {
		value, set, errs := e.validateField(ctx, run, merged, f.Name, f.Rule)
		if errs != nil {
			tree[f.Name] = errs
			continue
		}
		if set {
			out[f.Name] = value
		}
	}

	if len(tree) == 0 {
		return out, nil
	}
	return nil, tree
}

// validateField routes one field through the resolver, the conditional
// resolver, and the type checkers. The third return is nil on success,
// otherwise Errors or a nested map[string]any error tree.
func (e *Engine) validateField(ctx context.Context, run *runState, record map[string]any, name string, rule schema.Rule) (any, bool, any) {
	active, selected, required := e.effectiveRule(rule, record)

	raw, present := resolveField(record, name)
	if !present {
		if required {
			return nil, false, Errors{NewError(CodeRequired, "field is required", nil)}
		}
		return nil, false, nil
	}

	// A conditional that selects no branch leaves the value unconstrained.
	if !selected {
		return raw, true, nil
	}

	value, errs := e.checkValue(ctx, run, record, active, raw)
	if errs != nil {
		return nil, false, errs
	}

	if active.Hook != nil {
		if herr := e.runHook(ctx, run, record, active, value); herr != nil {
			return nil, false, Errors{herr}
		}
	}
	return value, true, nil
}

// checkValue dispatches a present value to the checker for its rule type.
// Ensure-phase failures short-circuit with a single type error; constraint
// phases collect every violation.
func (e *Engine) checkValue(ctx context.Context, run *runState, record map[string]any, rule schema.Rule, value any) (any, any) {
	switch rule.Type {
	case schema.TypeString:
		return e.checkString(rule, value, run.opts.convert)
	case schema.TypeNumber:
		return e.checkNumber(rule, value, run.opts.convert)
	case schema.TypeBool:
		return e.checkBool(rule, value, run.opts.convert)
	case schema.TypeDate:
		return e.checkDate(rule, value, run.opts.convert)
	case schema.TypeObject:
		return e.checkObject(ctx, run, rule, value)
	case schema.TypeArray:
		return e.checkArray(ctx, run, record, rule, value)
	case schema.TypeCustom:
		return e.checkCustom(ctx, record, rule, value)
	case schema.TypeConditional:
		// Reached when an array element rule is conditional; field-level
		// conditionals are resolved before dispatch.
		active, selected, _ := e.effectiveRule(rule, record)
		if !selected {
			return value, nil
		}
		return e.checkValue(ctx, run, record, active, value)
	}
	return nil, Errors{NewError(CodeInvalidData, "unknown rule type", map[string]any{"type": string(rule.Type)})}
}

// mergeDefaults returns a copy of record with defaults filled in for fields
// that are missing or empty-equivalent. An explicitly present null counts
// as missing, so the default applies.
func mergeDefaults(record, defaults map[string]any) map[string]any {
	if len(defaults) == 0 {
		return record
	}
	merged := make(map[string]any, len(record)+len(defaults))
	for k, v := range record {
		merged[k] = v
	}
	for k, v := range defaults {
		if _, present := resolveField(merged, k); !present {
			merged[k] = v
		}
	}
	return merged
}

// asRecord normalizes input into a string-keyed map. Typed maps with string
// keys are widened; anything else is rejected.
func asRecord(input any) (map[string]any, bool) {
	if input == nil {
		return nil, false
	}
	if m, ok := input.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		m[k.String()] = rv.MapIndex(k).Interface()
	}
	return m, true
}
