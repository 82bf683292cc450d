package internal

// Context is a value looked up through the scope tree, falling back to a default.
// Contexts are not bound to a runtime, they resolve against the caller's.
type Context struct {
	defaultValue any
}

func NewContext(defaultValue any) *Context {
	return &Context{
		defaultValue: defaultValue,
	}
}

// Value returns the value set in the closest enclosing scope.
func (c *Context) Value() any {
	r := GetRuntime()
	r.Lock()
	defer r.Unlock()

	for s := r.tracker.CurrentScope(); s != nil; s = s.parent {
		if v, ok := s.values[c]; ok {
			return v
		}
	}

	return c.defaultValue
}

// Set stores value in the active scope, for it and its descendants.
func (c *Context) Set(value any) {
	r := GetRuntime()
	r.Lock()
	defer r.Unlock()

	s := r.tracker.CurrentScope()
	if s == nil {
		panic(ErrNoScope)
	}

	if s.values == nil {
		s.values = make(map[*Context]any)
	}
	s.values[c] = value
}
