package sig

import "github.com/AnatoleLucet/signals/internal"

var (
	ErrNoScope    = internal.ErrNoScope
	ErrDisposed   = internal.ErrDisposed
	ErrCycle      = internal.ErrCycle
	ErrFlushStorm = internal.ErrFlushStorm
)

type (
	CycleError   = internal.CycleError
	ComputeError = internal.ComputeError
)
