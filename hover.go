package pick

// hoverTick advances the hover state machine for the given normalized
// position. It runs once per pointer move in desktop mode and once per
// frame at screen center in VR mode.
//
// Transitions:
//   - nothing (or a non-interactive object) under the position: notify
//     out on the previous target, clear the hover, stop any dwell timer.
//   - a different interactive object than the current target: notify out
//     on the previous target first, restart the dwell timer in VR mode,
//     adopt the new target.
//   - any interactive object under the position, new or unchanged:
//     notify over. Over is a continuous signal, fired every tick.
//
// Object identity is compared by identifier, not reference: the provider
// may hand out distinct instances for the same id across lookups.
func (p *Picker) hoverTick(x, y float32) {
	obj := p.resolveAt(x, y)
	if obj == nil || !obj.Interactive() {
		p.clearHover()
		return
	}

	if p.hovered == nil || p.hovered.ID() != obj.ID() {
		if p.hovered != nil {
			if out, ok := p.hovered.(OutHandler); ok {
				out.HandleOut()
			}
		}
		if p.vr && p.timer != nil {
			p.timer.Restart(obj)
		}
		p.hovered = obj
	}

	if over, ok := obj.(OverHandler); ok {
		over.HandleOver()
	}
}

// clearHover leaves the Hovering state, notifying the departed object
// and stopping any active dwell timer.
func (p *Picker) clearHover() {
	if p.hovered == nil {
		return
	}
	if out, ok := p.hovered.(OutHandler); ok {
		out.HandleOut()
	}
	p.hovered = nil
	if p.vr && p.timer != nil {
		p.timer.Stop()
	}
}

// Hovered returns the object currently under the pointer or gaze, or nil.
// The reference is non-owning and valid until the next hover transition.
func (p *Picker) Hovered() Object {
	return p.hovered
}
