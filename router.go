// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pick

// attachPointer subscribes the picker to the viewport's pointer stream.
// Idempotent: live subscriptions are kept as-is. VR mode uses gaze
// instead of pointer events, so attaching is skipped there.
func (p *Picker) attachPointer() {
	if p.vr {
		return
	}
	src := p.viewport.Pointer()
	if src == nil {
		return
	}
	if p.moveSub == 0 {
		p.moveSub = src.OnMove(p.pointerMove)
	}
	if p.clickSub == 0 {
		p.clickSub = src.OnClick(p.pointerClick)
	}
}

// detachPointer drops both pointer subscriptions. Safe to call when
// not subscribed.
func (p *Picker) detachPointer() {
	src := p.viewport.Pointer()
	if src == nil {
		p.moveSub, p.clickSub = 0, 0
		return
	}
	if p.moveSub != 0 {
		src.Unsubscribe(p.moveSub)
		p.moveSub = 0
	}
	if p.clickSub != 0 {
		src.Unsubscribe(p.clickSub)
		p.clickSub = 0
	}
}

// SetVR switches between pointer-driven and gaze-driven input. Entering
// VR detaches the pointer subscriptions and arms the dwell countdown for
// any object already hovered, so it can be gaze-clicked without the gaze
// leaving and returning first; leaving VR stops any dwell countdown and
// reattaches the subscriptions. Calling with the current mode is a
// no-op.
func (p *Picker) SetVR(enabled bool) {
	if p.vr == enabled || p.destroyed {
		return
	}
	if enabled {
		p.detachPointer()
		p.vr = true
		if p.hovered != nil && p.timer != nil {
			p.timer.Restart(p.hovered)
		}
		return
	}
	p.vr = false
	if p.timer != nil {
		p.timer.Stop()
	}
	p.attachPointer()
}

// VR reports whether gaze-driven input is active.
func (p *Picker) VR() bool {
	return p.vr
}

func (p *Picker) pointerMove(ev PointerEvent) {
	if !p.ready || p.destroyed || !p.provider.Enabled() {
		return
	}
	p.hoverTick(ev.X, ev.Y)
}

// pointerClick resolves the object under the click position directly,
// independent of hover state. A click on the background or on an object
// without a click handler does nothing; Interactive gates hover only.
func (p *Picker) pointerClick(ev PointerEvent) {
	if !p.ready || p.destroyed || !p.provider.Enabled() {
		return
	}
	obj := p.resolveAt(ev.X, ev.Y)
	if obj == nil {
		return
	}
	if click, ok := obj.(ClickHandler); ok {
		click.HandleClick()
	}
}
