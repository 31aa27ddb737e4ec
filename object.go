package pick

// Object is a pickable scene object as seen by the picking core.
//
// Objects are owned by the external scene graph; the core only ever holds
// a non-owning reference to the currently hovered one. Identity is the
// 24-bit identifier, never the Go reference: a Provider may return
// distinct instances for the same identifier across lookups.
type Object interface {
	// ID returns the object identifier, in [0, MaxID].
	ID() uint32

	// Interactive reports whether the object participates in hover and
	// gaze interactions. Non-interactive objects still occupy identity
	// buffer pixels but resolve as if they were background for hover.
	Interactive() bool
}

// ClickHandler is implemented by objects that respond to activation,
// whether from a discrete pointer click or a completed gaze dwell.
// Objects without the capability are silently skipped.
type ClickHandler interface {
	HandleClick()
}

// OverHandler is implemented by objects that respond to being hovered.
//
// HandleOver fires on every qualifying hover tick while the pointer or
// gaze rests on the object, not only on entry. This is a continuous
// "still hovering" signal; consumers that want enter/leave semantics must
// edge-detect on their side.
type OverHandler interface {
	HandleOver()
}

// OutHandler is implemented by objects that respond to the pointer or
// gaze leaving them. HandleOut fires exactly once per departure, before
// any HandleOver on the newly entered object.
type OutHandler interface {
	HandleOut()
}

// Provider connects the picking core to the owning scene.
//
// It is an external collaborator: the core never mutates it and never
// drives its lifecycle.
type Provider interface {
	// Enabled gates both click paths and hover updates. When false the
	// picker goes quiet without error.
	Enabled() bool

	// Scene returns the render-ready subgraph of pickable objects, or
	// nil when nothing is pickable this frame.
	Scene() Scene

	// Lookup resolves a decoded identifier to its object. A nil result
	// is the normal answer for background pixels, not an error.
	Lookup(id uint32) Object
}
