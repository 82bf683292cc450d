package internal

type Effect struct {
	*Node
}

// NewEffect creates an effect and runs it once right away. When fn returns
// a func(), it is called before the next run and on dispose.
func (r *Runtime) NewEffect(fn func() any, name string) *Effect {
	r.Lock()
	defer r.Unlock()

	e := &Effect{r.newNode(KindEffect, name, nil)}
	e.compute = fn
	e.schedule = func() { r.enqueue(e.Node) }

	r.run(e.Node)
	r.requestFlush()

	return e
}

func (e *Effect) Dispose() {
	r := e.rt
	r.Lock()
	defer r.Unlock()

	r.disposeNode(e.Node, nil)
}

// enqueue adds a dirty effect to its owner's pending list, once. The flush
// is requested by whoever started the propagation.
func (r *Runtime) enqueue(n *Node) {
	if n.pending {
		return
	}

	n.pending = true
	n.owner.pending.Enqueue(n)
	r.scheduler.pending++
}
