package engine

import (
	"reflect"
	"strings"
)

// resolveField looks up name in the record. A field is missing when the key
// is absent or its value is empty-equivalent (nil, empty or whitespace-only
// string). An unknown key is a miss, never an error.
func resolveField(record map[string]any, name string) (any, bool) {
	v, ok := record[name]
	if !ok || isEmptyValue(v) {
		return nil, false
	}
	return v, true
}

// isEmptyValue reports whether v counts as absent for presence checks.
// Zero numbers, false, and empty collections are real values and do not
// count as empty.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// toFloat converts any native numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// looseEqual compares two values structurally, treating numeric values of
// different widths as equal when they represent the same quantity.
func looseEqual(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
