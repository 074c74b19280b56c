package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrymomot/schemakit/pkg/async"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// validateParallel runs the parallel path: every top-level field is an
// independent unit on a bounded pool. Each unit completes its synchronous
// validation (including nested recursion and element fan-out) and its hook
// before resolving; all units are awaited, then results merge back in
// declaration order. Units share only the merged record, read-only, so the
// ordered merge needs no lock.
func (e *Engine) validateParallel(ctx context.Context, run *runState, s *schema.Schema, record map[string]any) (map[string]any, map[string]any) {
	merged := mergeDefaults(record, s.Defaults())

	fields := s.Fields()
	type unitResult struct {
		value any
		set   bool
		errs  any
	}
	results := make([]unitResult, len(fields))

	sem := make(chan struct{}, run.opts.maxConcurrency)
	var wg sync.WaitGroup
	for i, f := range fields {
		wg.Add(1)
		go func(i int, f schema.Field) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			value, set, errs := e.validateField(ctx, run, merged, f.Name, f.Rule)
			results[i] = unitResult{value: value, set: set, errs: errs}
		}(i, f)
	}
	wg.Wait()

	out := make(map[string]any, len(merged))
	for k, v := range merged {
		out[k] = v
	}
	tree := make(map[string]any)
	for i, f := range fields {
		r := results[i]
		if r.errs != nil {
			tree[f.Name] = r.errs
			continue
		}
		if r.set {
			out[f.Name] = r.value
		}
	}

	if len(tree) == 0 {
		return out, nil
	}
	return nil, tree
}

// runHook executes the rule's async hook through a future and awaits it
// under the effective timeout: the rule's own override, else the call
// option, else the engine default. The hook semaphore is held only across
// the await itself, never while a unit waits on nested units, so arbitrary
// nesting cannot exhaust the pool. A timed-out unit has its context
// canceled and is recorded as async_timeout; any other failure, including a
// panicking hook, is recorded as async_error. Sibling units are unaffected
// either way.
func (e *Engine) runHook(ctx context.Context, run *runState, record map[string]any, rule schema.Rule, value any) *Error {
	timeout := rule.HookTimeout
	if timeout <= 0 {
		timeout = run.opts.timeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if run.hookSem != nil {
		run.hookSem <- struct{}{}
		defer func() { <-run.hookSem }()
	}

	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	hook := rule.Hook
	fut := async.Go(hctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, runHookFunc(ctx, hook, value, record)
	})

	_, err := fut.AwaitTimeout(timeout)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, async.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		e.logger.WarnContext(ctx, "async validation unit timed out",
			"timeout", timeout)
		return NewError(CodeAsyncTimeout, "asynchronous validation timed out",
			map[string]any{"timeout_ms": timeout.Milliseconds()})
	default:
		e.logger.WarnContext(ctx, "async validation unit failed",
			"error", err)
		return NewError(CodeAsyncError, "asynchronous validation failed",
			map[string]any{"error": err.Error()})
	}
}

// runHookFunc invokes the hook, converting a panic into an ordinary error
// so one misbehaving hook cannot take down sibling units.
func runHookFunc(ctx context.Context, hook schema.Hook, value any, record map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()
	return hook(ctx, value, record)
}
