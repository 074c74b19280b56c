// Package async provides a minimal future abstraction for work that runs
// out-of-line with a deadline. The validation scheduler uses it to execute
// rule hooks: every hook runs through Go and is awaited through a single
// explicit Future handle, so there is exactly one asynchronous contract in
// the system.
//
// # Usage
//
//	fut := async.Go(ctx, func(ctx context.Context) (string, error) {
//		return fetch(ctx, id)
//	})
//	v, err := fut.AwaitTimeout(5 * time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//		// the work is abandoned; its goroutine still winds down on its own
//	}
//
// Await may be called any number of times from any goroutine; the result is
// set once, before the future is marked done.
package async
