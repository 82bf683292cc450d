package internal

import (
	"slices"

	"go.uber.org/multierr"
)

// Scope owns the nodes, child scopes and cleanup callbacks created while it
// is active, and releases them all on dispose.
type Scope struct {
	rt *Runtime

	parent   *Scope
	children []*Scope
	nodes    []*Node

	cleanups []func()
	catchers []func(error)

	// dirty effects owned by this scope
	pending *NodeQueue

	// context values set in this scope
	values map[*Context]any

	// the memo or effect whose runs this scope belongs to, nil for plain scopes
	node *Node

	disposed bool

	// cleanup failures of the last dispose or reset
	err error
}

func (r *Runtime) newScope(parent *Scope, node *Node) *Scope {
	s := &Scope{
		rt:      r,
		parent:  parent,
		node:    node,
		pending: NewNodeQueue(),
	}

	switch {
	case parent == nil:
	case parent.disposed:
		// born released, it can never be disposed through its parent
		s.disposed = true
		s.parent = nil
	default:
		parent.children = append(parent.children, s)
	}

	return s
}

// NewScope creates a child of the active scope, or a top-level scope.
func (r *Runtime) NewScope() *Scope {
	r.Lock()
	defer r.Unlock()

	parent := r.tracker.CurrentScope()
	if parent == nil {
		parent = r.root
	}

	return r.newScope(parent, nil)
}

func (s *Scope) Parent() *Scope {
	if s.parent == s.rt.root {
		return nil
	}

	return s.parent
}

// Run calls fn with s as the active scope. A panic is handed to the error
// handlers of s and returned, or propagates when s has none.
func (s *Scope) Run(fn func() error) (err error) {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	if s.disposed {
		return ErrDisposed
	}

	defer func() {
		if p := recover(); p != nil {
			if len(s.catchers) == 0 {
				panic(p)
			}

			err = asError(p)
			s.catch(err)
		}
	}()

	r.tracker.RunWithScope(s, func() {
		err = fn()
	})

	return err
}

func (s *Scope) OnCleanup(fn func()) {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	s.onCleanup(fn)
}

func (s *Scope) onCleanup(fn func()) {
	if s.disposed {
		// nothing left to attach to
		if err := s.rt.safeCall(fn); err != nil {
			s.rt.log().Error(err, "cleanup failed")
		}
		return
	}

	s.cleanups = append(s.cleanups, fn)
}

// OnError registers a handler for panics raised in Run and for errors of
// memos and effects created in s or its descendants.
func (s *Scope) OnError(fn func(error)) {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	s.catchers = append(s.catchers, fn)
}

func (s *Scope) catch(err error) {
	for _, catcher := range slices.Clone(s.catchers) {
		catcher(err)
	}
}

func (s *Scope) Err() error {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	return s.err
}

func (s *Scope) Disposed() bool {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	return s.disposed
}

// Dispose releases children in reverse creation order, then owned nodes,
// then cleanup callbacks, and detaches s from its parent. Calling it again
// is a no-op.
func (s *Scope) Dispose() {
	r := s.rt
	r.Lock()
	defer r.Unlock()

	s.dispose(s)
}

func (s *Scope) dispose(root *Scope) {
	if s.disposed {
		return
	}
	s.disposed = true

	s.release(root)

	if s.parent != nil {
		s.parent.removeChild(s)
		s.parent = nil
	}
}

// reset releases everything s owns but keeps it usable, before its node runs again.
func (s *Scope) reset() {
	s.release(s)
	clear(s.values)
}

func (s *Scope) release(root *Scope) {
	r := s.rt

	children := s.children
	s.children = nil
	for _, child := range slices.Backward(children) {
		child.dispose(root)
	}

	nodes := s.nodes
	s.nodes = nil
	for _, n := range nodes {
		r.disposeNode(n, root)
	}

	cleanups := s.cleanups
	s.cleanups = nil

	var errs error
	for _, fn := range cleanups {
		if err := r.safeCall(fn); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	s.err = errs
	if errs != nil {
		r.log().Error(errs, "cleanup failed", "cleanups", len(cleanups), "failed", len(multierr.Errors(errs)))
	}
}

func (s *Scope) addNode(n *Node) {
	// top-level nodes live as long as the runtime, no need to hold them
	if s == s.rt.root {
		return
	}

	if s.disposed {
		s.rt.log().V(1).Info("node created in a disposed scope", "node", n.name)
		s.rt.disposeNode(n, nil)
		return
	}

	s.nodes = append(s.nodes, n)
}

func (s *Scope) removeNode(n *Node) {
	if i := slices.Index(s.nodes, n); i != -1 {
		s.nodes = slices.Delete(s.nodes, i, i+1)
	}
}

func (s *Scope) removeChild(child *Scope) {
	if i := slices.Index(s.children, child); i != -1 {
		s.children = slices.Delete(s.children, i, i+1)
	}
}

// contains reports whether n was created in s or one of its descendants.
func (s *Scope) contains(n *Node) bool {
	for o := n.owner; o != nil; o = o.parent {
		if o == s {
			return true
		}
	}

	return false
}

// runPending runs the dirty effects of s, then those of its descendants.
// It returns how many effects ran.
func (s *Scope) runPending() int {
	r := s.rt
	ran := 0

	for _, n := range s.pending.Take() {
		if !n.pending {
			continue
		}

		n.pending = false
		r.scheduler.pending--

		if r.refresh(n) {
			ran++
		}
	}

	for _, child := range slices.Clone(s.children) {
		if !child.disposed {
			ran += child.runPending()
		}
	}

	return ran
}

// dropPending forgets every pending effect of s and its descendants. The
// dropped effects stay subscribed and run on the next change of a source.
func (s *Scope) dropPending() {
	r := s.rt

	for _, n := range s.pending.Take() {
		if n.pending {
			n.pending = false
			r.scheduler.pending--
			r.settle(n)
		}
	}

	for _, child := range slices.Clone(s.children) {
		child.dropPending()
	}
}

// disposeNode removes n from the graph for good. Observers of n that are not
// being disposed along with root are reported, they will not see updates anymore.
func (r *Runtime) disposeNode(n *Node, root *Scope) {
	if n.disposed {
		return
	}
	n.disposed = true

	if n.scope != nil {
		within := root
		if within == nil {
			within = n.scope
		}
		n.scope.dispose(within)
	}

	if n.cleanup != nil {
		cleanup := n.cleanup
		n.cleanup = nil

		if err := r.safeCall(cleanup); err != nil {
			r.log().Error(err, "effect cleanup failed", "node", n.name)
		}
	}

	n.clearSources()

	for _, obs := range n.clearObservers() {
		if obs.disposed || root != nil && root.contains(obs) {
			continue
		}

		r.log().Info("disposed node is still observed", "level", "warn", "node", n.name, "observer", obs.name)
	}

	if n.pending {
		n.pending = false
		n.owner.pending.Remove(n)
		r.scheduler.pending--
	}

	if root == nil {
		n.owner.removeNode(n)
	}
}
