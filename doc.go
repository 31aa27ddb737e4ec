// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pick provides hardware color-coded object picking for
// interactive 3D scenes.
//
// # Overview
//
// pick answers the question "which object is under the pointer?" without
// per-object CPU ray intersection tests. The pickable scene is rendered
// once per frame into a small offscreen identity buffer using an override
// material that outputs each object's identifier encoded as an RGB color.
// A single-pixel readback plus a codec decode then resolves any viewport
// position to an object.
//
// # Quick Start
//
//	picker, err := pick.New(provider, viewport, materials, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer picker.Destroy()
//
//	picker.SceneLoaded()
//
//	// Once per frame, from the owner's render callback:
//	if err := picker.Update(nil); err != nil {
//	    log.Printf("picking pass failed: %v", err)
//	}
//
// Pointer move and click events arrive through the viewport's
// PointerSource and drive hover and click dispatch automatically.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Picker, Codec, Camera, Object and its capability
//     interfaces, PointerHub
//   - Backends: backend/ (registry), backend/wgpu (WebGPU via gogpu/wgpu)
//
// The render backend is an interface so tests can substitute a
// deterministic fake returning fixed pixel bytes without a rendering
// device.
//
// # Coordinate System
//
// Pointer positions are normalized to [0,1] x [0,1] with the origin at
// the top-left of the viewport. The identity buffer itself is
// bottom-origin, as render targets usually are; the resolver performs the
// vertical flip.
//
// # Input Modes
//
// In desktop mode, discrete pointer events drive hover and click. In VR
// mode there is no pointer: each Update resolves the fixed screen-center
// position for hover, and a sustained-gaze dwell completion (reported
// through Gaze) substitutes for a click.
package pick

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
