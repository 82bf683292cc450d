package sig

import "github.com/AnatoleLucet/signals/internal"

type Context[T any] struct {
	ctx *internal.Context
}

// NewContext creates a new reactive context with a default value.
func NewContext[T any](defaultValue T) *Context[T] {
	return &Context[T]{
		internal.NewContext(defaultValue),
	}
}

// Value retrieves the current value of the context,
// inheriting from parent scopes if not set in the current one.
func (c *Context[T]) Value() T {
	return as[T](c.ctx.Value())
}

// Set a new value for the context in the current scope.
// It panics with ErrNoScope outside of any scope.
func (c *Context[T]) Set(value T) {
	c.ctx.Set(value)
}
