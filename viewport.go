package pick

// Rectangle is a viewport extent in device pixels.
type Rectangle struct {
	Width  int
	Height int
}

// Ratio returns the width/height aspect ratio, or 0 for a degenerate
// rectangle.
func (r Rectangle) Ratio() float32 {
	if r.Height <= 0 {
		return 0
	}
	return float32(r.Width) / float32(r.Height)
}

// Viewport is the slice of the owning viewport system the picking core
// consumes: the active camera, the pixel extent the identity buffer is
// sized against, and the pointer event source.
type Viewport interface {
	// Camera returns the viewport's active camera.
	Camera() *Camera

	// Rect returns the viewport extent in device pixels.
	Rect() Rectangle

	// Pointer returns the viewport's pointer event source, or nil when
	// the host has no pointer (headless, pure VR).
	Pointer() PointerSource
}

// PointerEvent is a pointer position normalized to [0,1] x [0,1] with
// the vertical origin at the top of the viewport.
type PointerEvent struct {
	X float32
	Y float32
}

// Subscription is a stable handle identifying one registered pointer
// handler. The zero value means "not subscribed".
type Subscription uint64

// PointerSource delivers pointer events to registered handlers.
//
// Handlers are keyed by the returned Subscription rather than by
// function identity, so subscribe/unsubscribe never depends on
// reference equality of closures.
type PointerSource interface {
	// OnMove registers a handler for pointer move events.
	OnMove(fn func(PointerEvent)) Subscription

	// OnClick registers a handler for pointer click events.
	OnClick(fn func(PointerEvent)) Subscription

	// Unsubscribe removes a previously registered handler. Unknown or
	// zero handles are ignored.
	Unsubscribe(s Subscription)
}

// PointerHub is a ready-made PointerSource for hosts and tests: the
// owning viewport system feeds it raw events via Move and Click, and the
// picker (or anything else) subscribes through the PointerSource side.
type PointerHub struct {
	nextID Subscription
	moves  map[Subscription]func(PointerEvent)
	clicks map[Subscription]func(PointerEvent)
}

// NewPointerHub creates an empty pointer hub.
func NewPointerHub() *PointerHub {
	return &PointerHub{
		moves:  make(map[Subscription]func(PointerEvent)),
		clicks: make(map[Subscription]func(PointerEvent)),
	}
}

// OnMove registers a handler for pointer move events.
func (h *PointerHub) OnMove(fn func(PointerEvent)) Subscription {
	h.nextID++
	h.moves[h.nextID] = fn
	return h.nextID
}

// OnClick registers a handler for pointer click events.
func (h *PointerHub) OnClick(fn func(PointerEvent)) Subscription {
	h.nextID++
	h.clicks[h.nextID] = fn
	return h.nextID
}

// Unsubscribe removes a handler by its subscription handle.
func (h *PointerHub) Unsubscribe(s Subscription) {
	delete(h.moves, s)
	delete(h.clicks, s)
}

// Move dispatches a pointer move event to all move handlers.
func (h *PointerHub) Move(ev PointerEvent) {
	for _, fn := range h.moves {
		fn(ev)
	}
}

// Click dispatches a pointer click event to all click handlers.
func (h *PointerHub) Click(ev PointerEvent) {
	for _, fn := range h.clicks {
		fn(ev)
	}
}

// Len returns the number of registered handlers. Useful in teardown
// tests.
func (h *PointerHub) Len() int {
	return len(h.moves) + len(h.clicks)
}
