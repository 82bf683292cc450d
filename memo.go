package sig

import "github.com/AnatoleLucet/signals/internal"

type Memo[T any] struct {
	memo *internal.Memo
}

// NewMemo creates a derived signal. fn runs on the first read, and again on
// a later read only if one of the values it read changed.
func NewMemo[T any](fn func() T, opts ...Option) *Memo[T] {
	o := newOptions(opts)

	return &Memo[T]{
		internal.GetRuntime().NewMemo(func() any { return fn() }, o.name, o.equals),
	}
}

// Read the current value of the memo, tracking the dependency if within a reactive context.
func (m *Memo[T]) Read() T {
	return as[T](m.memo.Read())
}

// Peek reads the current value without tracking it.
func (m *Memo[T]) Peek() T {
	return as[T](m.memo.Peek())
}

// Err returns the error of the last computation: a *ComputeError when fn
// panicked, a *CycleError when fn ended up reading itself.
// The memo keeps its last good value meanwhile.
func (m *Memo[T]) Err() error {
	return m.memo.Err()
}

func (m *Memo[T]) Version() uint64 {
	return m.memo.Version()
}

func (m *Memo[T]) Name() string {
	return m.memo.Name()
}

// Dispose removes the memo from the graph.
func (m *Memo[T]) Dispose() {
	m.memo.Dispose()
}
