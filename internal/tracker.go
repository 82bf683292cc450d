package internal

import "slices"

type Tracker struct {
	tracking bool

	currentScope       *Scope // for lifecycle/cleanup tracking
	currentComputation *Node  // for reactive dependency tracking

	// computations currently mid-execution, outermost first
	running []*Node
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

func (t *Tracker) RunWithScope(scope *Scope, fn func()) {
	prev := t.currentScope
	t.currentScope = scope
	defer func() { t.currentScope = prev }()

	fn()
}

func (t *Tracker) RunWithComputation(node *Node, fn func()) {
	prevScope := t.currentScope
	prevComputation := t.currentComputation
	prevTracking := t.tracking

	t.currentScope = node.scope
	t.currentComputation = node
	t.tracking = true

	defer func() {
		t.currentScope = prevScope
		t.currentComputation = prevComputation
		t.tracking = prevTracking
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	prev := t.tracking
	t.tracking = false
	defer func() { t.tracking = prev }()

	fn()
}

// Track links the current computation to node.
func (t *Tracker) Track(node *Node) {
	if t.ShouldTrack() {
		t.currentComputation.link(node)
	}
}

func (t *Tracker) ShouldTrack() bool {
	return t.currentComputation != nil && t.tracking
}

func (t *Tracker) CurrentScope() *Scope {
	return t.currentScope
}

func (t *Tracker) CurrentComputation() *Node {
	return t.currentComputation
}

func (t *Tracker) IsRunning() bool {
	return len(t.running) > 0
}

func (t *Tracker) push(node *Node) {
	node.running = true
	t.running = append(t.running, node)
}

func (t *Tracker) pop() {
	last := len(t.running) - 1
	t.running[last].running = false
	t.running[last] = nil
	t.running = t.running[:last]
}

// cyclePath returns the running computations from node up to the innermost
// one, followed by node again.
func (t *Tracker) cyclePath(node *Node) []*Node {
	i := slices.Index(t.running, node)
	if i == -1 {
		return []*Node{node, node}
	}

	path := slices.Clone(t.running[i:])
	return append(path, node)
}
