package internal

type Memo struct {
	*Node
}

// NewMemo creates a lazy derived node. fn does not run until the first read.
func (r *Runtime) NewMemo(fn func() any, name string, equals func(a, b any) bool) *Memo {
	r.Lock()
	defer r.Unlock()

	m := &Memo{r.newNode(KindMemo, name, equals)}
	m.compute = fn

	return m
}

// Read recomputes the memo if a source changed and records the dependency.
func (m *Memo) Read() any {
	r := m.rt
	r.Lock()
	defer r.Unlock()

	r.refresh(m.Node)
	r.tracker.Track(m.Node)

	return m.value
}

// Peek is Read without recording the dependency.
func (m *Memo) Peek() any {
	r := m.rt
	r.Lock()
	defer r.Unlock()

	r.tracker.RunUntracked(func() {
		r.refresh(m.Node)
	})

	return m.value
}

func (m *Memo) Dispose() {
	r := m.rt
	r.Lock()
	defer r.Unlock()

	r.disposeNode(m.Node, nil)
}
