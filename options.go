package sig

type options struct {
	name   string
	equals func(a, b any) bool
}

// Option configures a signal, memo or effect.
type Option func(*options)

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithName names the node in errors, logs and metrics. Defaults to "<kind>#<id>".
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithEquals replaces the equality check deciding whether a write or a
// recomputation changed the value. T must match the node's type.
func WithEquals[T any](fn func(a, b T) bool) Option {
	return func(o *options) {
		o.equals = func(a, b any) bool {
			return fn(as[T](a), as[T](b))
		}
	}
}
