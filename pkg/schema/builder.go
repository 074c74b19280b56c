package schema

import (
	"fmt"
	"regexp"
	"time"
)

// Option configures a Rule built by one of the type constructors.
type Option func(*Rule)

// Required marks the field as mandatory: a missing or empty-equivalent
// value fails with a single "required" error and no further checks run.
func Required() Option {
	return func(r *Rule) { r.Required = true }
}

// MinLen sets the minimum string length in bytes.
func MinLen(n int) Option {
	return func(r *Rule) { r.MinLen = &n }
}

// MaxLen sets the maximum string length in bytes.
func MaxLen(n int) Option {
	return func(r *Rule) { r.MaxLen = &n }
}

// Pattern requires the string to match the given regular expression.
// Panics on an invalid expression to enforce fail-fast schema construction.
func Pattern(expr string) Option {
	re := regexp.MustCompile(expr)
	return func(r *Rule) { r.Pattern = re }
}

// Email requires the string to be a local@domain.tld address.
func Email() Option {
	return func(r *Rule) { r.Email = true }
}

// Min sets the inclusive lower numeric bound.
func Min(v float64) Option {
	return func(r *Rule) { r.Min = &v }
}

// Max sets the inclusive upper numeric bound.
func Max(v float64) Option {
	return func(r *Rule) { r.Max = &v }
}

// Integer requires the number to have no fractional part.
func Integer() Option {
	return func(r *Rule) { r.Integer = true }
}

// Truthy overrides the values accepted as true in convert mode.
func Truthy(values ...any) Option {
	return func(r *Rule) { r.Truthy = values }
}

// Falsy overrides the values accepted as false in convert mode.
func Falsy(values ...any) Option {
	return func(r *Rule) { r.Falsy = values }
}

// MinItems sets the minimum array length.
func MinItems(n int) Option {
	return func(r *Rule) { r.MinItems = &n }
}

// MaxItems sets the maximum array length.
func MaxItems(n int) Option {
	return func(r *Rule) { r.MaxItems = &n }
}

// Unique requires all array elements to be distinct by structural equality.
func Unique() Option {
	return func(r *Rule) { r.Unique = true }
}

// Delimiter sets the separator used to split a string into an array in
// convert mode. The engine defaults to "," when unset.
func Delimiter(sep string) Option {
	return func(r *Rule) { r.Delimiter = sep }
}

// WithHook attaches an asynchronous post-validation hook to the rule.
func WithHook(h Hook) Option {
	return func(r *Rule) { r.Hook = h }
}

// WithHookTimeout overrides the call-level timeout for this rule's hook.
func WithHookTimeout(d time.Duration) Option {
	return func(r *Rule) { r.HookTimeout = d }
}

// String builds a string rule.
func String(opts ...Option) Rule {
	return build(Rule{Type: TypeString}, opts)
}

// Number builds a number rule.
func Number(opts ...Option) Rule {
	return build(Rule{Type: TypeNumber}, opts)
}

// Bool builds a boolean rule.
func Bool(opts ...Option) Rule {
	return build(Rule{Type: TypeBool}, opts)
}

// Date builds a date rule.
func Date(opts ...Option) Rule {
	return build(Rule{Type: TypeDate}, opts)
}

// Object builds an object rule validating the nested schema.
func Object(fields *Schema, opts ...Option) Rule {
	if fields == nil {
		panic(fmt.Errorf("schema: Object requires a nested schema"))
	}
	return build(Rule{Type: TypeObject, Fields: fields}, opts)
}

// Array builds an array rule validating each element against of.
func Array(of Rule, opts ...Option) Rule {
	return build(Rule{Type: TypeArray, Of: &of}, opts)
}

// Any builds an array rule without an element rule: only the array-level
// constraints apply and elements pass through untouched.
func Any(opts ...Option) Rule {
	return build(Rule{Type: TypeArray}, opts)
}

// Custom builds a rule resolved against a validator registry by type name.
func Custom(name string, opts ...Option) Rule {
	if name == "" {
		panic(fmt.Errorf("schema: Custom requires a type name"))
	}
	return build(Rule{Type: TypeCustom, CustomType: name}, opts)
}

func build(r Rule, opts []Option) Rule {
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// ConditionBuilder assembles a conditional rule step by step. Obtain one
// with When and finish with Rule, which panics if no check or no Then
// branch was configured.
type ConditionBuilder struct {
	cond     Condition
	required bool
}

// When starts a conditional rule keyed on the named sibling field.
func When(field string) *ConditionBuilder {
	if field == "" {
		panic(fmt.Errorf("schema: When requires a field name"))
	}
	return &ConditionBuilder{cond: Condition{Field: field}}
}

// Is requires the referenced field to equal v.
func (b *ConditionBuilder) Is(v any) *ConditionBuilder {
	b.cond.Is = v
	b.cond.IsSet = true
	return b
}

// In requires the referenced field to be one of values.
func (b *ConditionBuilder) In(values ...any) *ConditionBuilder {
	b.cond.In = values
	return b
}

// Matches requires the referenced field to be a string matching expr.
// Panics on an invalid expression.
func (b *ConditionBuilder) Matches(expr string) *ConditionBuilder {
	b.cond.Matches = regexp.MustCompile(expr)
	return b
}

// Min requires the referenced field to be a number >= v.
func (b *ConditionBuilder) Min(v float64) *ConditionBuilder {
	b.cond.Min = &v
	return b
}

// Max requires the referenced field to be a number <= v.
func (b *ConditionBuilder) Max(v float64) *ConditionBuilder {
	b.cond.Max = &v
	return b
}

// Then sets the rule that applies when every check holds.
func (b *ConditionBuilder) Then(r Rule) *ConditionBuilder {
	b.cond.Then = &r
	return b
}

// Else sets the rule that applies when any check fails.
func (b *ConditionBuilder) Else(r Rule) *ConditionBuilder {
	b.cond.Otherwise = &r
	return b
}

// Base sets the fallback rule used when the checks fail and no Else branch
// is configured.
func (b *ConditionBuilder) Base(r Rule) *ConditionBuilder {
	b.cond.Base = &r
	return b
}

// Required marks the conditional itself as mandatory. The flag only governs
// presence when no sub-rule ends up selected; a selected sub-rule's own
// Required wins.
func (b *ConditionBuilder) Required() *ConditionBuilder {
	b.required = true
	return b
}

// Rule finalizes the conditional. Panics when no check or no Then branch
// was configured: such a schema can never select a branch deterministically
// and is a programming error.
func (b *ConditionBuilder) Rule() Rule {
	if !b.cond.HasChecks() {
		panic(fmt.Errorf("schema: conditional on %q has no checks configured", b.cond.Field))
	}
	if b.cond.Then == nil {
		panic(fmt.Errorf("schema: conditional on %q has no Then branch", b.cond.Field))
	}
	cond := b.cond
	return Rule{Type: TypeConditional, Required: b.required, When: &cond}
}
