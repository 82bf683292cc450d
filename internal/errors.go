package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoScope is raised when an API that needs an active scope is called outside of one.
	ErrNoScope = errors.New("sig: no active scope")

	// ErrDisposed is returned when running a scope that was already disposed.
	ErrDisposed = errors.New("sig: scope disposed")

	// ErrCycle is matched by every CycleError.
	ErrCycle = errors.New("sig: dependency cycle")

	// ErrFlushStorm is reported when effects keep scheduling each other past the flush limit.
	ErrFlushStorm = errors.New("sig: effects did not settle")
)

// CycleError is attached to a computation that read itself, directly or
// through other computations, while it was running.
type CycleError struct {
	// names of the computations involved, starting and ending with the offending node
	Path []string
}

func newCycleError(path []*Node) *CycleError {
	names := make([]string, 0, len(path))
	for _, n := range path {
		names = append(names, n.name)
	}

	return &CycleError{Path: names}
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("sig: dependency cycle: %s", strings.Join(e.Path, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// ComputeError wraps a panic raised by a memo or effect function.
type ComputeError struct {
	Node  string
	Value any
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("sig: %s panicked: %v", e.Node, e.Value)
}

func (e *ComputeError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

// asError turns a recovered panic value into an error.
func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("%v", v)
}
