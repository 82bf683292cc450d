package sig

import "github.com/AnatoleLucet/signals/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates your typical read/write signal.
func NewSignal[T any](initial T, opts ...Option) *Signal[T] {
	o := newOptions(opts)

	return &Signal[T]{
		internal.GetRuntime().NewSignal(initial, o.name, o.equals),
	}
}

// Read the current value of the signal, tracking the dependency if within a reactive context.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking it.
func (s *Signal[T]) Peek() T {
	return as[T](s.signal.Peek())
}

// Write a new value to the signal, triggering updates to any dependents.
// Writing a value equal to the current one does nothing.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// Set is an alias of Write.
func (s *Signal[T]) Set(v T) {
	s.signal.Write(v)
}

// Update writes fn(current value).
func (s *Signal[T]) Update(fn func(T) T) {
	s.signal.Update(func(v any) any {
		return fn(as[T](v))
	})
}

// Version is incremented each time the value changes.
func (s *Signal[T]) Version() uint64 {
	return s.signal.Version()
}

func (s *Signal[T]) Name() string {
	return s.signal.Name()
}
