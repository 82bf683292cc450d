package internal

import "time"

// Hooks receives instrumentation events from a runtime.
// Calls happen synchronously while the runtime is locked.
type Hooks interface {
	// OnRun is called after a memo or effect function returned or panicked.
	OnRun(name string, kind Kind, d time.Duration)

	// OnError is called when a memo or effect is left with an error.
	OnError(name string, kind Kind, err error)

	// OnFlush is called after pending effects were drained.
	OnFlush(passes, effects int, d time.Duration)
}

type multiHooks []Hooks

// MultiHooks fans every event out to each of the given hooks.
func MultiHooks(hooks ...Hooks) Hooks {
	m := make(multiHooks, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			m = append(m, h)
		}
	}

	return m
}

func (m multiHooks) OnRun(name string, kind Kind, d time.Duration) {
	for _, h := range m {
		h.OnRun(name, kind, d)
	}
}

func (m multiHooks) OnError(name string, kind Kind, err error) {
	for _, h := range m {
		h.OnError(name, kind, err)
	}
}

func (m multiHooks) OnFlush(passes, effects int, d time.Duration) {
	for _, h := range m {
		h.OnFlush(passes, effects, d)
	}
}

type nopHooks struct{}

func (nopHooks) OnRun(string, Kind, time.Duration) {}
func (nopHooks) OnError(string, Kind, error)       {}
func (nopHooks) OnFlush(int, int, time.Duration)   {}
