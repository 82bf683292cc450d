package internal

import "slices"

// NodeQueue holds effects waiting to run, in the order they were marked.
type NodeQueue struct {
	nodes []*Node
}

func NewNodeQueue() *NodeQueue {
	return &NodeQueue{
		nodes: make([]*Node, 0),
	}
}

func (q *NodeQueue) Enqueue(node *Node) {
	q.nodes = append(q.nodes, node)
}

func (q *NodeQueue) Remove(node *Node) {
	q.nodes = slices.DeleteFunc(q.nodes, func(n *Node) bool { return n == node })
}

// Take empties the queue and returns what it held.
func (q *NodeQueue) Take() []*Node {
	nodes := q.nodes
	q.nodes = nil

	return nodes
}

func (q *NodeQueue) Len() int {
	return len(q.nodes)
}

type SettledQueue struct {
	callbacks []func()
}

func NewSettledQueue() *SettledQueue {
	return &SettledQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *SettledQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

// Run calls the queued callbacks once. Callbacks queued meanwhile wait for the next run.
func (q *SettledQueue) Run() {
	callbacks := q.callbacks
	q.callbacks = nil

	for _, cb := range callbacks {
		cb()
	}
}

func (q *SettledQueue) Len() int {
	return len(q.callbacks)
}
