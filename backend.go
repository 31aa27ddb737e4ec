// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pick

import "image/color"

// Scene is the render-ready subgraph of pickable objects, owned by the
// external scene graph. The core's only mutation of it is the override
// material swap around the identity pass.
type Scene interface {
	// SetOverrideMaterial installs m on every node in the subgraph for
	// subsequent renders. Passing nil restores the original materials.
	SetOverrideMaterial(m Material)
}

// Target is an offscreen identity render target owned by a Backend.
//
// A target's backing GPU resources may not exist at any given moment:
// resizing destroys them and the backend recreates them lazily before
// the next render or readback.
type Target interface {
	// Width returns the target width in device pixels.
	Width() int

	// Height returns the target height in device pixels.
	Height() int
}

// Backend abstracts the rendering device behind the picking core.
//
// Implementations live in backend/ sub-packages (backend/wgpu renders
// through gogpu/wgpu). Tests substitute a deterministic fake that
// returns fixed pixel bytes, which is the reason picking never calls a
// GPU API directly.
//
// Thread safety: backends are driven from the owner's single
// render/update callback; implementations are not required to support
// concurrent use.
type Backend interface {
	// Name returns the backend identifier (e.g., "wgpu").
	Name() string

	// CreateTarget allocates an offscreen identity target. Allocation
	// failure (e.g., GPU memory exhaustion) is fatal to the caller and
	// must be returned, not retried.
	CreateTarget(width, height int) (Target, error)

	// ResizeTarget changes the target's dimensions. This is destructive:
	// the backing buffer is destroyed immediately and reallocated lazily
	// before the next render. Callers must never interleave a resize
	// between a pass submission and its readback.
	ResizeTarget(t Target, width, height int) error

	// ClearTarget clears the target's color buffer to c and optionally
	// its depth and stencil buffers.
	ClearTarget(t Target, c color.NRGBA, clearDepth, clearStencil bool) error

	// Render draws the scene into the target with the given camera,
	// clearing first when clear is set. The scene's override material is
	// already installed by the caller.
	Render(t Target, s Scene, cam *Camera, clear bool) error

	// ReadPixels synchronously reads a w x h block of RGBA8 pixels
	// starting at (x, y), 4 bytes per pixel, rows bottom-up (render
	// target convention: y addresses rows from the bottom). The call
	// blocks until the GPU pipeline up to the last submitted pass has
	// completed.
	ReadPixels(t Target, x, y, w, h int) ([]byte, error)

	// DestroyTarget releases the target and its GPU resources.
	DestroyTarget(t Target)

	// Close releases all backend resources. The backend must not be
	// used afterwards.
	Close()
}
