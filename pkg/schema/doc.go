// Package schema defines the declarative rule model consumed by the
// validation engine: a Schema maps field names to Rule values, each Rule
// describing one field's expected type, constraints, and optional
// asynchronous hook.
//
// Rules form a closed set of variants (string, number, boolean, date,
// object, array, conditional, custom) selected by the Type tag. Rule and
// Schema values are built once, typically with the constructor helpers in
// this package, and are read-only during validation; the engine never
// mutates them, so a Schema is safe to share across goroutines.
//
// # Usage
//
//	s := schema.New().
//		Add("email", schema.String(schema.Required(), schema.Email())).
//		Add("age", schema.Number(schema.Min(18))).
//		Add("tags", schema.Array(schema.String(), schema.MaxItems(10)))
//
// Conditional rules select their effective sub-rule from another field's
// value and are built with the fluent When builder:
//
//	s.Add("permissions", schema.When("role").
//		Is("admin").
//		Then(schema.Array(schema.String(), schema.MinItems(1), schema.Required())).
//		Else(schema.Array(schema.String())).
//		Rule())
//
// Misconfigured conditionals (no checks, or a missing Then branch) panic at
// construction time: a broken schema is a programming error that should
// prevent startup rather than surface as a data error.
package schema
