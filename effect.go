package sig

import "github.com/AnatoleLucet/signals/internal"

// EffectFunc is the body of an effect. The function returned by the
// func() func() form is called before the next run and on dispose.
type EffectFunc interface {
	func() | func() func()
}

type Effect struct {
	effect *internal.Effect
}

// NewEffect creates a reactive effect that runs the given function once
// now, then whenever its dependencies change.
func NewEffect[F EffectFunc](fn F, opts ...Option) *Effect {
	o := newOptions(opts)

	var compute func() any
	switch f := any(fn).(type) {
	case func():
		compute = func() any {
			f()
			return nil
		}
	case func() func():
		compute = func() any {
			if cleanup := f(); cleanup != nil {
				return cleanup
			}
			return nil
		}
	}

	return &Effect{
		internal.GetRuntime().NewEffect(compute, o.name),
	}
}

// Dispose stops the effect. It never runs again, even if it was already scheduled.
func (e *Effect) Dispose() {
	e.effect.Dispose()
}

// Err returns the error of the last run, if the effect panicked.
func (e *Effect) Err() error {
	return e.effect.Err()
}

func (e *Effect) Name() string {
	return e.effect.Name()
}
