package engine

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

const defaultDelimiter = ","

// checkArray ensures the value is a sequence (splitting a delimited string
// in convert mode), collects every array-level constraint violation, and
// then validates each element against the Of rule independently. Element
// failures are keyed by original index and never stop validation of the
// remaining elements.
func (e *Engine) checkArray(ctx context.Context, run *runState, record map[string]any, rule schema.Rule, value any) (any, any) {
	items, ok := asSequence(value, rule, run.opts.convert)
	if !ok {
		return nil, Errors{NewError(CodeArray, "must be an array", nil)}
	}

	var errs Errors
	if rule.MinItems != nil && len(items) < *rule.MinItems {
		errs = append(errs, NewError(CodeArrayMinItems,
			fmt.Sprintf("must contain at least %d items", *rule.MinItems),
			map[string]any{"min": *rule.MinItems}))
	}
	if rule.MaxItems != nil && len(items) > *rule.MaxItems {
		errs = append(errs, NewError(CodeArrayMaxItems,
			fmt.Sprintf("must contain at most %d items", *rule.MaxItems),
			map[string]any{"max": *rule.MaxItems}))
	}
	if rule.Unique && hasDuplicates(items) {
		errs = append(errs, NewError(CodeArrayUnique,
			"must not contain duplicate items", nil))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if rule.Of == nil {
		return items, nil
	}

	out := make([]any, len(items))
	elemErrs := make([]any, len(items))

	if run.parallel && rule.Of.HasAsync() {
		// Each element is an independent unit; the field unit waits for
		// all of them before merging by index. Elements take no pool
		// token here: concurrency is bounded at the hook await, so an
		// element that fans out into nested units never holds a token
		// its own children are waiting for.
		var wg sync.WaitGroup
		for i, item := range items {
			wg.Add(1)
			go func(i int, item any) {
				defer wg.Done()
				out[i], elemErrs[i] = e.validateElement(ctx, run, record, *rule.Of, item)
			}(i, item)
		}
		wg.Wait()
	} else {
		for i, item := range items {
			out[i], elemErrs[i] = e.validateElement(ctx, run, record, *rule.Of, item)
		}
	}

	tree := make(map[string]any)
	for i, ee := range elemErrs {
		if ee != nil {
			tree[strconv.Itoa(i)] = ee
		}
	}
	if len(tree) > 0 {
		return nil, tree
	}
	return out, nil
}

// validateElement runs one array element through the element rule: sync
// validation first, then the rule's hook only when sync checks pass.
func (e *Engine) validateElement(ctx context.Context, run *runState, record map[string]any, rule schema.Rule, value any) (any, any) {
	active, selected, _ := e.effectiveRule(rule, record)
	if !selected {
		return value, nil
	}

	out, errs := e.checkValue(ctx, run, record, active, value)
	if errs != nil {
		return nil, errs
	}
	if active.Hook != nil {
		if herr := e.runHook(ctx, run, record, active, out); herr != nil {
			return nil, Errors{herr}
		}
	}
	return out, nil
}

// asSequence normalizes the value into []any. Native slices and arrays of
// any element type are accepted; in convert mode a string is split on the
// rule's delimiter with segments trimmed and empties dropped.
func asSequence(value any, rule schema.Rule, convert bool) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}

	if s, ok := value.(string); ok {
		if !convert {
			return nil, false
		}
		sep := rule.Delimiter
		if sep == "" {
			sep = defaultDelimiter
		}
		var items []any
		for _, part := range strings.Split(s, sep) {
			part = strings.TrimSpace(part)
			if part != "" {
				items = append(items, part)
			}
		}
		return items, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// hasDuplicates reports structural duplicates across all elements.
func hasDuplicates(items []any) bool {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if looseEqual(items[i], items[j]) {
				return true
			}
		}
	}
	return false
}
