package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes are fixed symbolic identifiers, stable across message
// translation. Ensure-phase failures carry the bare type name; constraint
// failures carry "<type>_<constraint>".
const (
	CodeRequired    = "required"
	CodeInvalidData = "invalid_data"

	CodeString        = "string"
	CodeStringMin     = "string_min"
	CodeStringMax     = "string_max"
	CodeStringPattern = "string_pattern"
	CodeStringEmail   = "string_email"

	CodeNumber        = "number"
	CodeNumberMin     = "number_min"
	CodeNumberMax     = "number_max"
	CodeNumberInteger = "number_integer"

	CodeBoolean = "boolean"
	CodeDate    = "date"
	CodeObject  = "object"

	CodeArray         = "array"
	CodeArrayMinItems = "array_min_items"
	CodeArrayMaxItems = "array_max_items"
	CodeArrayUnique   = "array_unique"

	CodeCustom     = "custom"
	CodeCustomType = "custom_type"

	CodeAsyncTimeout = "async_timeout"
	CodeAsyncError   = "async_error"
)

// Error is a single validation failure: a stable code, a human-readable
// message, and the constraint parameters that produced it. Values are
// immutable once created.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates an error entry. Meta may be nil.
func NewError(code, message string, meta map[string]any) *Error {
	return &Error{Code: code, Message: message, Meta: meta}
}

// Errors is an ordered list of failures for one field or array element.
type Errors []*Error

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the messages in order.
func (es Errors) Messages() []string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return msgs
}

// Result is the failure value returned by Validate. It satisfies the error
// interface and exposes the nested error tree, the flattened path map, and
// the formatter's payload.
type Result struct {
	// Errors mirrors the schema shape: values are either Errors (leaf),
	// or map[string]any for nested objects and index-keyed array elements.
	Errors map[string]any

	// Fields maps dot/index-joined paths ("user.email", "tags.1") to the
	// translated messages at that path, one entry per failing leaf.
	Fields map[string][]string

	// Payload is the formatter output, with Fields injected under "fields"
	// when the formatter returned a map.
	Payload any
}

func (r *Result) Error() string {
	if len(r.Fields) == 0 {
		return "validation failed"
	}

	paths := make([]string, 0, len(r.Fields))
	for p := range r.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var parts []string
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", p, strings.Join(r.Fields[p], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsResult extracts a *Result from an error returned by Validate.
func AsResult(err error) (*Result, bool) {
	var r *Result
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
