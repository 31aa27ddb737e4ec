// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pick

import (
	"image"
)

// Picker performs color-coded GPU object picking for a single viewport.
// It renders the scene into a downscaled offscreen target with each
// object flat-colored by its encoded identifier, reads back single
// pixels under the pointer or gaze, and drives hover and click
// notifications on the resolved objects.
//
// A Picker is not safe for concurrent use. Drive Update and the pointer
// source from the same goroutine, typically the frame loop.
type Picker struct {
	provider  Provider
	viewport  Viewport
	materials MaterialSource
	backend   Backend

	opts  options
	codec Codec

	target  Target
	targetW int
	targetH int

	hovered Object
	gaze    *Gaze
	timer   DwellTimer

	moveSub  Subscription
	clickSub Subscription

	vr        bool
	ready     bool
	destroyed bool

	debugImage *image.RGBA
}

// New creates a Picker over the given collaborators. The provider
// supplies the pickable scene and id lookup, the viewport supplies
// camera, dimensions and pointer events, the materials source supplies
// the flat identity-pass material, and the backend renders and reads
// back the offscreen target.
//
// Picking starts inactive: call SceneLoaded once object registration is
// complete, then Update every frame.
func New(provider Provider, viewport Viewport, materials MaterialSource, backend Backend, opts ...Option) (*Picker, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	if viewport == nil {
		return nil, ErrNoViewport
	}
	if materials == nil {
		return nil, ErrNoMaterials
	}
	if backend == nil {
		return nil, ErrNoBackend
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Picker{
		provider:  provider,
		viewport:  viewport,
		materials: materials,
		backend:   backend,
		opts:      o,
		timer:     o.timer,
	}
	if o.debugEncode {
		p.codec = Codec{debug: true, debugColor: o.debugColor}
	}
	p.gaze = &Gaze{picker: p}
	p.attachPointer()

	Logger().Debug("picker created",
		"backend", backend.Name(),
		"downscale", o.downscale,
		"minHeight", o.minHeight)
	return p, nil
}

// SceneLoaded marks object registration as complete. Until it is called
// Update, pointer events and gaze dwell are ignored, so partially
// registered scenes never produce stale picks.
func (p *Picker) SceneLoaded() {
	p.ready = true
}

// Update renders the identity pass for this frame. cam overrides the
// viewport camera when non-nil; pass nil to use viewport.Camera().
// In VR mode Update also advances the gaze hover at screen center.
//
// Update is a no-op before SceneLoaded, after Destroy, and while the
// provider reports picking disabled.
func (p *Picker) Update(cam *Camera) error {
	if !p.ready || p.destroyed || !p.provider.Enabled() {
		return nil
	}

	w, h := TargetSize(p.viewport.Rect(), p.opts.downscale, p.opts.minHeight)
	if err := p.ensureTarget(w, h); err != nil {
		return err
	}

	if cam == nil {
		cam = p.viewport.Camera()
	}
	if err := p.renderIdentityPass(cam); err != nil {
		return err
	}

	if p.vr {
		p.hoverTick(0.5, 0.5)
	}
	return nil
}

// Gaze returns the gaze adapter for sustained-gaze activation. The same
// adapter is returned on every call.
func (p *Picker) Gaze() *Gaze {
	return p.gaze
}

// Codec returns the id codec in effect, including any debug override.
// Batch and material builders source identity colors from here rather
// than from EncodeID, so the debug override applies to them.
func (p *Picker) Codec() Codec {
	return p.codec
}

// Destroy releases the offscreen target and detaches from the pointer
// source. The Picker is unusable afterwards; further calls are no-ops.
// Idempotent.
func (p *Picker) Destroy() {
	if p.destroyed {
		return
	}
	p.detachPointer()
	if p.timer != nil {
		p.timer.Stop()
	}
	if p.target != nil {
		p.backend.DestroyTarget(p.target)
		p.target = nil
	}
	p.targetW, p.targetH = 0, 0
	p.hovered = nil
	p.debugImage = nil
	p.ready = false
	p.destroyed = true
}
