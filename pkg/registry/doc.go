// Package registry maps custom type names to validators consumed by
// custom-typed schema rules. It replaces ambient process-wide state with an
// explicit object owned by the caller: construct a Registry once, register
// validators during setup, and hand it to the engine.
//
// Register accepts a closed set of validator shapes and normalizes them at
// registration time:
//
//   - engine.CustomValidator — the full contract, may replace the value
//   - func(ctx context.Context, value any) error — check only
//   - func(ctx context.Context, value any) (any, error) — check and coerce
//
// Anything else is rejected with ErrUnsupportedShape: a validator the
// engine cannot call is a programming error caught at setup, not a data
// error at validation time.
//
// # Usage
//
//	reg := registry.New(registry.WithBuiltins())
//	err := reg.Register("slug", func(ctx context.Context, v any) error {
//		...
//	})
//	eng := engine.New(engine.WithRegistry(reg))
//
// WithBuiltins preloads the "uuid", "url", and "ip" validators.
package registry
