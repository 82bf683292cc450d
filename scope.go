package sig

import "github.com/AnatoleLucet/signals/internal"

type Scope struct {
	scope *internal.Scope
}

// NewScope creates a new reactive scope, child of the active one if any.
// A scope manages the lifecycle of reactive nodes created within its context.
func NewScope() *Scope {
	return &Scope{
		internal.GetRuntime().NewScope(),
	}
}

// CreateScope runs fn in a new scope and returns its result with a function
// disposing everything fn created.
func CreateScope[T any](fn func() T) (T, func()) {
	s := NewScope()

	var result T
	_ = s.Run(func() error {
		result = fn()
		return nil
	})

	return result, s.Dispose
}

// Run a function within the context of this scope.
// Each reactive node created within the function will be owned by this scope,
// and will be disposed when Dispose is called on it.
func (s *Scope) Run(fn func() error) error { return s.scope.Run(fn) }

// Dispose this scope and all its children. Calling it again does nothing.
func (s *Scope) Dispose() { s.scope.Dispose() }

// Add a cleanup function to be called when the scope is disposed.
func (s *Scope) OnCleanup(fn func()) { s.scope.OnCleanup(fn) }

// Add a function to be called when a panic occurs within Run, or when a
// memo or effect created within this scope fails.
// If no error handler is registered, Run panics as usual.
func (s *Scope) OnError(fn func(error)) { s.scope.OnError(fn) }

// Err returns the combined errors of the cleanup functions that panicked
// during the last dispose.
func (s *Scope) Err() error { return s.scope.Err() }

func (s *Scope) Disposed() bool { return s.scope.Disposed() }

// OnCleanup registers a function to be called when the current scope is disposed,
// or before the current effect or memo runs again.
// It panics with ErrNoScope outside of any scope.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}
