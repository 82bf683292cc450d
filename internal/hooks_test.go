package internal

import (
	"fmt"
	"time"
)

// recordingHooks keeps every event as a string, durations left out.
type recordingHooks struct {
	events []string
}

func (h *recordingHooks) OnRun(name string, kind Kind, _ time.Duration) {
	h.events = append(h.events, fmt.Sprintf("run %s %s", kind, name))
}

func (h *recordingHooks) OnError(name string, kind Kind, err error) {
	h.events = append(h.events, fmt.Sprintf("error %s %s: %v", kind, name, err))
}

func (h *recordingHooks) OnFlush(passes, effects int, _ time.Duration) {
	h.events = append(h.events, fmt.Sprintf("flush passes=%d effects=%d", passes, effects))
}
