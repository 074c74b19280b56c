package schema

import (
	"context"
	"regexp"
	"time"
)

// Type identifies a Rule variant. The set is closed: the engine matches
// exhaustively on it and unknown values are rejected at validation time.
type Type string

const (
	TypeString      Type = "string"
	TypeNumber      Type = "number"
	TypeBool        Type = "boolean"
	TypeDate        Type = "date"
	TypeObject      Type = "object"
	TypeArray       Type = "array"
	TypeConditional Type = "conditional"
	TypeCustom      Type = "custom"
)

// Hook performs additional validation after all synchronous checks on the
// field have passed. It receives the coerced field value and the full input
// record (read-only). The scheduler runs hooks asynchronously and enforces a
// timeout; a non-nil error is recorded against the field without affecting
// sibling fields.
type Hook func(ctx context.Context, value any, record map[string]any) error

// Rule describes the validation applied to a single field. Only the
// parameters matching the Type are consulted; the rest are ignored.
type Rule struct {
	Type     Type
	Required bool

	// String parameters.
	MinLen  *int
	MaxLen  *int
	Pattern *regexp.Regexp
	Email   bool

	// Number parameters. Bounds are inclusive.
	Min     *float64
	Max     *float64
	Integer bool

	// Boolean parameters. When nil the engine's default truthy/falsy sets
	// apply. Membership is case-insensitive for string values.
	Truthy []any
	Falsy  []any

	// Object parameters.
	Fields *Schema

	// Array parameters. Of is the rule applied to each element; Delimiter
	// is used for string-to-array coercion in convert mode.
	Of        *Rule
	MinItems  *int
	MaxItems  *int
	Unique    bool
	Delimiter string

	// Conditional parameters.
	When *Condition

	// Custom parameters. CustomType is resolved against a registry at
	// validation time.
	CustomType string

	// Optional asynchronous hook and per-rule timeout override. A zero
	// HookTimeout falls back to the call-level timeout.
	Hook        Hook
	HookTimeout time.Duration
}

// HasAsync reports whether the rule, or any rule reachable from it,
// declares an asynchronous hook. The engine uses this to decide between
// sequential and parallel execution.
func (r Rule) HasAsync() bool {
	if r.Hook != nil {
		return true
	}
	if r.Fields != nil && r.Fields.HasAsync() {
		return true
	}
	if r.Of != nil && r.Of.HasAsync() {
		return true
	}
	if r.When != nil {
		for _, sub := range []*Rule{r.When.Then, r.When.Otherwise, r.When.Base} {
			if sub != nil && sub.HasAsync() {
				return true
			}
		}
	}
	return false
}

// Condition is a field-dependent rule selector: when every configured check
// holds against the referenced field's raw value, Then becomes the active
// rule; otherwise Otherwise, falling back to Base when Otherwise is unset.
type Condition struct {
	Field string

	// Checks. An unset check is vacuously true; at least one must be
	// configured (enforced by the When builder).
	Is      any
	IsSet   bool
	In      []any
	Matches *regexp.Regexp
	Min     *float64
	Max     *float64

	Then      *Rule
	Otherwise *Rule
	Base      *Rule
}

// HasChecks reports whether at least one check is configured.
func (c *Condition) HasChecks() bool {
	return c.IsSet || len(c.In) > 0 || c.Matches != nil || c.Min != nil || c.Max != nil
}

// Field pairs a name with its rule, preserving declaration order.
type Field struct {
	Name string
	Rule Rule
}

// Schema is an ordered collection of field rules plus optional default
// values merged into the input record before validation. Field names are
// canonical strings.
type Schema struct {
	fields   []Field
	index    map[string]int
	defaults map[string]any
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{index: make(map[string]int)}
}

// Add registers a rule for the named field, replacing any previous rule for
// the same name. It returns the schema for chaining.
func (s *Schema) Add(name string, rule Rule) *Schema {
	if i, ok := s.index[name]; ok {
		s.fields[i].Rule = rule
		return s
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, Field{Name: name, Rule: rule})
	return s
}

// Default sets a default value for the named field, applied by the engine
// when the field is missing from the input.
func (s *Schema) Default(name string, value any) *Schema {
	if s.defaults == nil {
		s.defaults = make(map[string]any)
	}
	s.defaults[name] = value
	return s
}

// Fields returns the field rules in declaration order. The returned slice
// is shared; callers must not modify it.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Field returns the rule registered for name.
func (s *Schema) Field(name string) (Rule, bool) {
	i, ok := s.index[name]
	if !ok {
		return Rule{}, false
	}
	return s.fields[i].Rule, true
}

// Defaults returns the default-value map, which may be nil.
func (s *Schema) Defaults() map[string]any {
	return s.defaults
}

// Len returns the number of declared fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// HasAsync reports whether any rule in the schema, transitively including
// nested object schemas and array element rules, declares an async hook.
func (s *Schema) HasAsync() bool {
	for _, f := range s.fields {
		if f.Rule.HasAsync() {
			return true
		}
	}
	return false
}
