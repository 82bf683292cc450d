package internal

import "github.com/go-logr/logr"

const DefaultMaxFlushPasses = 100

// FlushScheduler decides when pending effects are flushed. It is called once per
// batch of pending effects and must eventually call flush, from any goroutine.
type FlushScheduler func(flush func())

// SyncScheduler flushes right away, at the end of the outermost write, batch or run.
func SyncScheduler(flush func()) {
	flush()
}

type Config struct {
	Scheduler      FlushScheduler
	Logger         *logr.Logger
	Hooks          Hooks
	MaxFlushPasses int
}

type Option func(*Config)

func DefaultConfig() Config {
	return Config{
		Scheduler:      SyncScheduler,
		Hooks:          nopHooks{},
		MaxFlushPasses: DefaultMaxFlushPasses,
	}
}

func WithScheduler(s FlushScheduler) Option {
	return func(c *Config) {
		if s == nil {
			s = SyncScheduler
		}
		c.Scheduler = s
	}
}

func WithLogger(l logr.Logger) Option {
	return func(c *Config) {
		c.Logger = &l
	}
}

func WithHooks(h Hooks) Option {
	return func(c *Config) {
		if h == nil {
			h = nopHooks{}
		}
		c.Hooks = h
	}
}

func WithMaxFlushPasses(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			n = DefaultMaxFlushPasses
		}
		c.MaxFlushPasses = n
	}
}
