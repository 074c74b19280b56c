package engine_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/engine"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func sleepHook(d time.Duration) schema.Hook {
	return func(ctx context.Context, _ any, _ map[string]any) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func TestScheduler_AsyncTimeout(t *testing.T) {
	t.Parallel()
	eng := engine.New()

	s := schema.New().
		Add("slow", schema.String(
			schema.WithHook(sleepHook(time.Second)),
			schema.WithHookTimeout(10*time.Millisecond),
		)).
		Add("age", schema.Number(schema.Min(18)))

	_, err := eng.Validate(context.Background(),
		map[string]any{"slow": "value", "age": 10}, s)
	res, ok := engine.AsResult(err)
	require.True(t, ok)

	t.Run("timed out unit reports async_timeout", func(t *testing.T) {
		errs := res.Errors["slow"].(engine.Errors)
		require.Len(t, errs, 1)
		assert.Equal(t, engine.CodeAsyncTimeout, errs[0].Code)
		assert.Equal(t, int64(10), errs[0].Meta["timeout_ms"])
	})

	t.Run("sibling unit still reports its own outcome", func(t *testing.T) {
		errs := res.Errors["age"].(engine.Errors)
		require.Len(t, errs, 1)
		assert.Equal(t, engine.CodeNumberMin, errs[0].Code)
	})
}

func TestScheduler_AsyncError(t *testing.T) {
	t.Parallel()
	eng := engine.New()

	t.Run("hook failure is recorded with detail", func(t *testing.T) {
		s := schema.New().Add("v", schema.String(
			schema.WithHook(func(ctx context.Context, _ any, _ map[string]any) error {
				return errors.New("upstream unavailable")
			}),
		))
		_, err := eng.Validate(context.Background(), map[string]any{"v": "x"}, s)
		errs := fieldErrors(t, err, "v")
		require.Len(t, errs, 1)
		assert.Equal(t, engine.CodeAsyncError, errs[0].Code)
		assert.Equal(t, "upstream unavailable", errs[0].Meta["error"])
	})

	t.Run("panicking hook does not take down siblings", func(t *testing.T) {
		s := schema.New().
			Add("bad", schema.String(
				schema.WithHook(func(ctx context.Context, _ any, _ map[string]any) error {
					panic("boom")
				}),
			)).
			Add("good", schema.String())

		_, err := eng.Validate(context.Background(),
			map[string]any{"bad": "x", "good": "y"}, s)
		errs := fieldErrors(t, err, "bad")
		assert.Equal(t, engine.CodeAsyncError, errs[0].Code)

		res, _ := engine.AsResult(err)
		assert.NotContains(t, res.Errors, "good")
	})
}

func TestScheduler_HookRunsOnlyAfterSyncSuccess(t *testing.T) {
	t.Parallel()
	var called atomic.Bool
	eng := engine.New()

	s := schema.New().Add("v", schema.String(
		schema.MinLen(10),
		schema.WithHook(func(ctx context.Context, _ any, _ map[string]any) error {
			called.Store(true)
			return nil
		}),
	))

	_, err := eng.Validate(context.Background(), map[string]any{"v": "short"}, s)
	errs := fieldErrors(t, err, "v")
	assert.Equal(t, engine.CodeStringMin, errs[0].Code)
	assert.False(t, called.Load(), "hook must not run when sync validation fails")
}

func TestScheduler_HookReceivesCoercedValue(t *testing.T) {
	t.Parallel()
	var seen atomic.Value
	eng := engine.New()

	s := schema.New().Add("age", schema.Number(
		schema.WithHook(func(ctx context.Context, value any, _ map[string]any) error {
			seen.Store(value)
			return nil
		}),
	))

	out, err := eng.Validate(context.Background(),
		map[string]any{"age": "42"}, s, engine.Convert(true))
	require.NoError(t, err)
	assert.Equal(t, float64(42), out["age"])
	assert.Equal(t, float64(42), seen.Load())
}

func TestScheduler_ParallelPreservesOrderAndValues(t *testing.T) {
	t.Parallel()
	eng := engine.New()

	s := schema.New()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		s.Add(name, schema.String(schema.WithHook(sleepHook(5 * time.Millisecond))))
	}

	input := map[string]any{"a": "1", "b": "2", "c": "3", "d": "4", "e": "5"}
	out, err := eng.Validate(context.Background(), input, s, engine.MaxConcurrency(2))
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestScheduler_AsyncArrayElements(t *testing.T) {
	t.Parallel()
	eng := engine.New()

	var calls atomic.Int32
	elem := schema.String(
		schema.MinLen(2),
		schema.WithHook(func(ctx context.Context, value any, _ map[string]any) error {
			calls.Add(1)
			if value == "bad" {
				return errors.New("rejected")
			}
			return nil
		}),
	)
	s := schema.New().Add("items", schema.Array(elem))

	_, err := eng.Validate(context.Background(),
		map[string]any{"items": []any{"ok", "bad", "x", "fine"}}, s)
	res, ok := engine.AsResult(err)
	require.True(t, ok)

	tree := res.Errors["items"].(map[string]any)
	require.Len(t, tree, 2)

	t.Run("hook failure keyed by index", func(t *testing.T) {
		errs := tree["1"].(engine.Errors)
		assert.Equal(t, engine.CodeAsyncError, errs[0].Code)
	})

	t.Run("sync failure skips that element's hook", func(t *testing.T) {
		errs := tree["2"].(engine.Errors)
		assert.Equal(t, engine.CodeStringMin, errs[0].Code)
		// hooks ran for the three elements that passed sync validation
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestScheduler_NestedAsyncArrays(t *testing.T) {
	t.Parallel()
	eng := engine.New()

	var calls atomic.Int32
	leaf := schema.String(schema.WithHook(func(ctx context.Context, _ any, _ map[string]any) error {
		calls.Add(1)
		return nil
	}))
	s := schema.New().Add("matrix", schema.Array(schema.Array(leaf)))

	input := map[string]any{
		"matrix": []any{
			[]any{"a", "b"},
			[]any{"c", "d"},
		},
	}

	// More concurrent units than pool slots: every outer element fans out
	// into inner hook units, which must not starve behind their parents.
	type result struct {
		out map[string]any
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := eng.Validate(context.Background(), input, s, engine.MaxConcurrency(2))
		done <- result{out, err}
	}()

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, input["matrix"], r.out["matrix"])
		assert.Equal(t, int32(4), calls.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("Validate did not return on nested async arrays")
	}
}

func TestScheduler_SequentialWithoutHooks(t *testing.T) {
	t.Parallel()
	eng := engine.New()

	// Timeout far below the hook sleep: must be irrelevant because the
	// schema declares no hooks and takes the sequential path.
	s := schema.New().Add("v", schema.String())
	out, err := eng.Validate(context.Background(),
		map[string]any{"v": "x"}, s, engine.Timeout(time.Nanosecond))
	require.NoError(t, err)
	assert.Equal(t, "x", out["v"])
}
