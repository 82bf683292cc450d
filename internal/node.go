package internal

import (
	"fmt"
	"slices"
)

type Kind int

const (
	KindSignal Kind = iota
	KindMemo
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindMemo:
		return "memo"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// sourceLink records a dependency and the version it had when it was read.
type sourceLink struct {
	node    *Node
	version uint64
}

// Node is the unit of the reactive graph. Signals, memos and effects share
// this shape, their behavior only differs by kind and by the functions
// installed at construction.
type Node struct {
	rt *Runtime

	id   uint64
	kind Kind
	name string

	value   any
	version uint64
	equals  func(a, b any) bool

	// the nodes read during the last run, in read order
	sources     []sourceLink
	sourceIndex map[*Node]int

	// the nodes that read this node during their last run
	observers []*Node

	dirty       bool
	initialized bool
	pending     bool
	running     bool
	disposed    bool

	// nil for signals
	compute func() any

	// returned by the last effect run, called before the next one
	cleanup func()

	// effects only: how the node reacts to being marked dirty
	schedule func()

	err error

	// the scope that created this node
	owner *Scope

	// memos and effects own the nodes created while they run
	scope *Scope
}

func (r *Runtime) newNode(kind Kind, name string, equals func(a, b any) bool) *Node {
	r.nextID++

	n := &Node{
		rt:     r,
		id:     r.nextID,
		kind:   kind,
		name:   name,
		equals: equals,
	}

	if n.name == "" {
		n.name = fmt.Sprintf("%s#%d", kind, n.id)
	}
	if n.equals == nil {
		n.equals = DefaultEquals
	}

	n.owner = r.tracker.currentScope
	if n.owner == nil {
		n.owner = r.root
	}
	n.owner.addNode(n)

	return n
}

func (n *Node) ID() uint64 { return n.id }

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) Name() string { return n.name }

func (n *Node) Runtime() *Runtime { return n.rt }

// Version returns how many times the value changed.
func (n *Node) Version() uint64 {
	n.rt.Lock()
	defer n.rt.Unlock()

	return n.version
}

// Err returns the error left by the last run, if any.
func (n *Node) Err() error {
	n.rt.Lock()
	defer n.rt.Unlock()

	return n.err
}

// Disposed reports whether the node was removed from the graph.
func (n *Node) Disposed() bool {
	n.rt.Lock()
	defer n.rt.Unlock()

	return n.disposed
}

// Sources returns the nodes this node read during its last run.
func (n *Node) Sources() []*Node {
	n.rt.Lock()
	defer n.rt.Unlock()

	sources := make([]*Node, 0, len(n.sources))
	for _, l := range n.sources {
		sources = append(sources, l.node)
	}

	return sources
}

// Observers returns the nodes that read this node during their last run.
func (n *Node) Observers() []*Node {
	n.rt.Lock()
	defer n.rt.Unlock()

	return slices.Clone(n.observers)
}

// link creates a bidirectional edge between this node (observer) and src.
func (n *Node) link(src *Node) {
	if src == n || src.disposed || n.disposed {
		return
	}

	// already read during this run
	if _, ok := n.sourceIndex[src]; ok {
		return
	}

	if n.sourceIndex == nil {
		n.sourceIndex = make(map[*Node]int)
	}

	n.sourceIndex[src] = len(n.sources)
	n.sources = append(n.sources, sourceLink{node: src, version: src.version})
	src.observers = append(src.observers, n)
}

// clearSources removes every edge going from this node to its sources.
func (n *Node) clearSources() {
	for _, l := range n.sources {
		l.node.removeObserver(n)
	}

	n.sources = n.sources[:0]
	clear(n.sourceIndex)
}

// clearObservers removes every edge going from observers to this node.
// It returns the observers that were still attached.
func (n *Node) clearObservers() []*Node {
	observers := n.observers
	n.observers = nil

	for _, obs := range observers {
		obs.removeSource(n)
	}

	return observers
}

func (n *Node) removeObserver(obs *Node) {
	if i := slices.Index(n.observers, obs); i != -1 {
		n.observers = slices.Delete(n.observers, i, i+1)
	}
}

func (n *Node) removeSource(src *Node) {
	i, ok := n.sourceIndex[src]
	if !ok {
		return
	}

	n.sources = slices.Delete(n.sources, i, i+1)
	delete(n.sourceIndex, src)

	for j := i; j < len(n.sources); j++ {
		n.sourceIndex[n.sources[j].node] = j
	}
}
