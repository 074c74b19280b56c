// Package engine validates and coerces records against declarative schemas.
// Given a string-keyed input record and a schema built with pkg/schema, a
// Validate call returns either the normalized record or a *Result error
// carrying a nested, path-addressable report of everything that failed.
//
// # Validation model
//
// Each field runs through a two-phase check: the ensure phase confirms or,
// in convert mode, coerces the raw value into the rule's type; the
// constraint phase then evaluates every declared constraint and collects
// all violations, not just the first. Object rules recurse into nested
// schemas, array rules validate each element independently with failures
// keyed by index, and conditional rules select their effective sub-rule
// from a sibling field's value.
//
// # Concurrency
//
// A schema with no asynchronous hooks validates strictly sequentially in
// declaration order. As soon as any rule (transitively, including array
// element rules) carries a hook, top-level fields become independent units
// on a bounded worker pool, and hook executions anywhere in the tree share
// a second semaphore of the same size. That semaphore is held only for the
// duration of a single hook await, never while a unit fans out into nested
// units, so arbitrarily nested async arrays queue excess hooks without any
// deadlock risk. A unit that exceeds its timeout is recorded as
// async_timeout without disturbing its siblings, and results merge back in
// declaration order once every unit resolves.
//
// # Usage
//
//	eng := engine.New(engine.WithRegistry(reg))
//	s := schema.New().
//		Add("email", schema.String(schema.Required(), schema.Email())).
//		Add("age", schema.Number(schema.Min(18)))
//
//	out, err := eng.Validate(ctx, input, s, engine.Convert(true))
//	if err != nil {
//		if res, ok := engine.AsResult(err); ok {
//			// res.Fields["email"], res.Payload, ...
//		}
//	}
//
// Engines are immutable after construction and safe for concurrent use.
package engine
