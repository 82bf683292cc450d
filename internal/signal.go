package internal

import "reflect"

type Signal struct {
	*Node
}

func (r *Runtime) NewSignal(initial any, name string, equals func(a, b any) bool) *Signal {
	r.Lock()
	defer r.Unlock()

	s := &Signal{r.newNode(KindSignal, name, equals)}
	s.value = initial

	return s
}

// Read returns the value and, inside a computation, records the dependency.
func (s *Signal) Read() any {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	r.tracker.Track(s.Node)
	return s.value
}

func (s *Signal) Peek() any {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	return s.value
}

// Write stores v and marks every observer dirty, unless v equals the current value.
func (s *Signal) Write(v any) {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	if s.disposed {
		r.log().V(1).Info("write to disposed signal ignored", "node", s.name)
		return
	}

	if s.equals(s.value, v) {
		return
	}

	s.value = v
	s.version++

	// every observer is marked before any effect gets a chance to run
	r.notify(s.Node)
	r.requestFlush()
}

// Update writes the result of fn applied to the current value, as one step.
func (s *Signal) Update(fn func(any) any) {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	s.Write(fn(s.value))
}

// DefaultEquals compares with == when the dynamic types allow it and falls
// back to reflect.DeepEqual for slices, maps and funcs.
func DefaultEquals(a, b any) (equal bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	if !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}

	// comparable types can still hold uncomparable values, e.g. an interface field
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(a, b)
		}
	}()

	return a == b
}
