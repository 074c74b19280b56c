package engine

import "time"

// CallOption overrides the engine defaults for a single Validate call.
type CallOption func(*callOptions)

type callOptions struct {
	convert        bool
	timeout        time.Duration
	maxConcurrency int
}

// Convert enables (or disables) type coercion for this call.
func Convert(v bool) CallOption {
	return func(o *callOptions) { o.convert = v }
}

// Timeout sets the ceiling for asynchronous units for this call. Rule-level
// hook timeouts still take precedence for their own rule.
func Timeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// MaxConcurrency bounds parallel validation units for this call.
func MaxConcurrency(n int) CallOption {
	return func(o *callOptions) {
		if n > 0 {
			o.maxConcurrency = n
		}
	}
}

func (e *Engine) callOptions(opts []CallOption) callOptions {
	o := callOptions{
		convert:        e.convert,
		timeout:        e.timeout,
		maxConcurrency: e.maxConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
