package async

import (
	"context"
	"time"
)

// Future holds the eventual result of a function started with Go.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Go runs fn in its own goroutine and returns a Future resolving to its
// result. A context that is already canceled short-circuits without
// invoking fn.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.value, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the future resolves and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitTimeout blocks until the future resolves or d elapses. On timeout it
// returns the zero value and ErrTimeout; the future itself keeps running
// and may still be awaited later.
func (f *Future[T]) AwaitTimeout(d time.Duration) (T, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// Done reports whether the future has resolved, without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// All awaits every future in order and collects the values. The first
// non-nil error is returned alongside the values gathered so far.
func All[T any](futures ...*Future[T]) ([]T, error) {
	values := make([]T, len(futures))
	for i, f := range futures {
		v, err := f.Await()
		values[i] = v
		if err != nil {
			return values[:i+1], err
		}
	}
	return values, nil
}
