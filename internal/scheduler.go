package internal

type Scheduler struct {
	// incremented each time pending effects were drained
	clock int

	// effects waiting in a scope's pending list
	pending int

	// a flush was handed to the configured scheduler and did not start yet
	scheduled bool
	running   bool

	settled *SettledQueue
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		settled: NewSettledQueue(),
	}
}

// Run drains with fn, then runs the settled callbacks. Nested calls are no-ops.
func (s *Scheduler) Run(fn func()) {
	if s.running || !s.scheduled {
		return
	}

	s.scheduled = false
	s.running = true

	defer func() {
		s.running = false
		s.clock++

		s.settled.Run()
	}()

	fn()
}

func (s *Scheduler) Time() int {
	return s.clock
}
