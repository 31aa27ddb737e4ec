// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick"
)

// identityTarget is an offscreen identity render target: an RGBA8 color
// texture readable back to the CPU plus a depth/stencil buffer.
//
// GPU resources are allocated lazily by ensure and destroyed eagerly on
// resize, so a resized target costs nothing until the next render.
type identityTarget struct {
	width  int
	height int

	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView
}

func (t *identityTarget) Width() int  { return t.width }
func (t *identityTarget) Height() int { return t.height }

// ensure allocates the backing textures if they do not exist.
func (t *identityTarget) ensure(device hal.Device) error {
	if t.colorTex != nil {
		return nil
	}
	size := hal.Extent3D{
		Width:              uint32(t.width),
		Height:             uint32(t.height),
		DepthOrArrayLayers: 1,
	}

	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "pick_identity_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create identity color texture: %w", err)
	}
	t.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "pick_identity_color_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("wgpu: create identity color view: %w", err)
	}
	t.colorView = colorView

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "pick_identity_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("wgpu: create identity depth texture: %w", err)
	}
	t.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "pick_identity_depth_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("wgpu: create identity depth view: %w", err)
	}
	t.depthView = depthView
	return nil
}

// destroy releases the backing textures. The target itself stays valid
// and reallocates on the next ensure.
func (t *identityTarget) destroy(device hal.Device) {
	if t.colorView != nil {
		device.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.colorTex != nil {
		device.DestroyTexture(t.colorTex)
		t.colorTex = nil
	}
	if t.depthView != nil {
		device.DestroyTextureView(t.depthView)
		t.depthView = nil
	}
	if t.depthTex != nil {
		device.DestroyTexture(t.depthTex)
		t.depthTex = nil
	}
}

// CreateTarget creates an identity target. Backing textures are
// allocated on first render.
func (b *Backend) CreateTarget(width, height int) (pick.Target, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("wgpu: invalid target dimensions %dx%d", width, height)
	}
	return &identityTarget{width: width, height: height}, nil
}

// ResizeTarget destroys the target's textures and records the new
// dimensions. Reallocation happens lazily before the next render.
func (b *Backend) ResizeTarget(t pick.Target, width, height int) error {
	it, ok := t.(*identityTarget)
	if !ok {
		return ErrBadTarget
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("wgpu: invalid target dimensions %dx%d", width, height)
	}
	it.destroy(b.device)
	it.width, it.height = width, height
	return nil
}

// DestroyTarget releases the target's GPU resources.
func (b *Backend) DestroyTarget(t pick.Target) {
	if it, ok := t.(*identityTarget); ok {
		it.destroy(b.device)
	}
}
