package sig

import (
	"github.com/AnatoleLucet/signals/internal"
	"github.com/go-logr/logr"
)

// ConfigOption configures the runtime of the calling goroutine.
type ConfigOption = internal.Option

// Hooks receives instrumentation events from a runtime. See the metrics and
// tracing packages for implementations.
type Hooks = internal.Hooks

type Kind = internal.Kind

const (
	KindSignal = internal.KindSignal
	KindMemo   = internal.KindMemo
	KindEffect = internal.KindEffect
)

// DefaultMaxFlushPasses is how many times a flush drains pending effects
// before it gives up on effects that keep re-triggering each other.
const DefaultMaxFlushPasses = internal.DefaultMaxFlushPasses

// Configure applies opts to the runtime of the calling goroutine.
// Each goroutine has its own runtime, so configure it before creating nodes.
func Configure(opts ...ConfigOption) {
	internal.GetRuntime().Configure(opts...)
}

// WithScheduler decides when pending effects run. The default runs them
// synchronously at the end of the outermost write, batch or computation.
// A scheduler may instead call flush later, from any goroutine.
func WithScheduler(scheduler func(flush func())) ConfigOption {
	return internal.WithScheduler(scheduler)
}

// WithLogger overrides the logger set with SetLogger for this runtime.
func WithLogger(l logr.Logger) ConfigOption {
	return internal.WithLogger(l)
}

func WithHooks(h Hooks) ConfigOption {
	return internal.WithHooks(h)
}

func WithMaxFlushPasses(n int) ConfigOption {
	return internal.WithMaxFlushPasses(n)
}

// MultiHooks sends every event to each of the given hooks.
func MultiHooks(hooks ...Hooks) Hooks {
	return internal.MultiHooks(hooks...)
}

// SetLogger sets the process-wide logger. Nothing is logged by default.
func SetLogger(l logr.Logger) {
	internal.SetLogger(l)
}

// ReleaseRuntime drops the runtime of the calling goroutine. Nodes created
// on it keep working, and new ones will use a fresh runtime.
func ReleaseRuntime() {
	internal.ReleaseRuntime()
}
