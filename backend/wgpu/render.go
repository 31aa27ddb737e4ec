// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
	"time"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick"
)

// Batch is one identity draw call: a triangle list flat-colored with a
// single encoded object identifier.
type Batch struct {
	// Color is the encoded identity color as normalized RGBA.
	Color [4]float32

	// Vertices holds x, y, z, alpha per vertex in triangle list order
	// (four floats per vertex, three vertices per triangle). The alpha
	// component masks transparent cutouts; fragments below 0.5 are
	// discarded.
	Vertices []float32
}

// BatchSource is the scene contract this backend renders. The host's
// pick.Scene implementation exposes its pickable geometry as identity
// batches, typically one batch per object with the object's encoded
// color.
type BatchSource interface {
	PickBatches() []Batch
}

// ClearTarget clears the target's color buffer to c honoring the depth
// and stencil flags, via an empty render pass.
func (b *Backend) ClearTarget(t pick.Target, c color.NRGBA, clearDepth, clearStencil bool) error {
	it, ok := t.(*identityTarget)
	if !ok {
		return ErrBadTarget
	}
	if err := it.ensure(b.device); err != nil {
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "pick_clear_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pick_clear"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(clearPassDescriptor(it, c, clearDepth, clearStencil))
	rp.End()

	return b.submit(encoder)
}

func clearPassDescriptor(it *identityTarget, c color.NRGBA, clearDepth, clearStencil bool) *hal.RenderPassDescriptor {
	depthLoad := gputypes.LoadOpLoad
	if clearDepth {
		depthLoad = gputypes.LoadOpClear
	}
	stencilLoad := gputypes.LoadOpLoad
	if clearStencil {
		stencilLoad = gputypes.LoadOpClear
	}
	return &hal.RenderPassDescriptor{
		Label: "pick_clear_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    it.colorView,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(c.R) / 255,
				G: float64(c.G) / 255,
				B: float64(c.B) / 255,
				A: float64(c.A) / 255,
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              it.depthView,
			DepthLoadOp:       depthLoad,
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   1.0,
			StencilLoadOp:     stencilLoad,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		},
	}
}

// Render draws the scene's identity batches into the target. The scene
// must implement BatchSource. A nil scene is a no-op.
func (b *Backend) Render(t pick.Target, s pick.Scene, cam *pick.Camera, clear bool) error {
	it, ok := t.(*identityTarget)
	if !ok {
		return ErrBadTarget
	}
	if s == nil {
		return nil
	}
	bs, ok := s.(BatchSource)
	if !ok {
		return ErrBadScene
	}
	batches := bs.PickBatches()
	if len(batches) == 0 && !clear {
		return nil
	}
	if err := it.ensure(b.device); err != nil {
		return err
	}

	// Per-frame GPU resources: one vertex buffer, uniform buffer, and
	// bind group per batch.
	type batchResources struct {
		vertBuf    hal.Buffer
		uniformBuf hal.Buffer
		bindGroup  hal.BindGroup
		vertCount  uint32
	}
	resources := make([]batchResources, 0, len(batches))
	defer func() {
		for _, r := range resources {
			if r.bindGroup != nil {
				b.device.DestroyBindGroup(r.bindGroup)
			}
			if r.uniformBuf != nil {
				b.device.DestroyBuffer(r.uniformBuf)
			}
			if r.vertBuf != nil {
				b.device.DestroyBuffer(r.vertBuf)
			}
		}
	}()

	for i := range batches {
		batch := &batches[i]
		if len(batch.Vertices) == 0 {
			continue
		}
		vertBuf, err := b.createAndUploadBuffer(
			fmt.Sprintf("pick_verts_%d", i),
			floatBytes(batch.Vertices),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		resources = append(resources, batchResources{
			vertBuf:   vertBuf,
			vertCount: uint32(len(batch.Vertices) / 4),
		})
		r := &resources[len(resources)-1]

		uniformBuf, err := b.createAndUploadBuffer(
			fmt.Sprintf("pick_uniform_%d", i),
			makePickUniform(cam.PassView(), cam.Projection, batch.Color),
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		r.uniformBuf = uniformBuf

		bindGroup, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "pick_bind",
			Layout: b.uniformLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
				}},
			},
		})
		if err != nil {
			return fmt.Errorf("wgpu: create pick bind group: %w", err)
		}
		r.bindGroup = bindGroup
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "pick_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pick_identity"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpLoad
	depthLoadOp := gputypes.LoadOpLoad
	if clear {
		loadOp = gputypes.LoadOpClear
		depthLoadOp = gputypes.LoadOpClear
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "pick_identity_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       it.colorView,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              it.depthView,
			DepthLoadOp:       depthLoadOp,
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpLoad,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		},
	})
	rp.SetPipeline(b.pipeline)
	for _, r := range resources {
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.vertBuf, 0)
		rp.Draw(r.vertCount, 1, 0, 0)
	}
	rp.End()

	return b.submit(encoder)
}

// ReadPixels copies the whole identity texture to a staging buffer,
// blocks until the GPU is done, and extracts the requested w x h block.
// The y coordinate addresses rows from the bottom of the target.
func (b *Backend) ReadPixels(t pick.Target, x, y, w, h int) ([]byte, error) {
	it, ok := t.(*identityTarget)
	if !ok {
		return nil, ErrBadTarget
	}
	if x < 0 || y < 0 || w < 1 || h < 1 || x+w > it.width || y+h > it.height {
		return nil, fmt.Errorf("wgpu: read region %d,%d %dx%d outside %dx%d target",
			x, y, w, h, it.width, it.height)
	}
	if err := it.ensure(b.device); err != nil {
		return nil, err
	}

	tw, th := uint32(it.width), uint32(it.height)

	// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := tw * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(th)

	stagingBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pick_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(stagingBuf)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "pick_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pick_readback"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	// The color texture sits in render-attachment layout after the pass;
	// transition for the copy and back so the next pass stays valid.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: it.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(it.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: th},
		TextureBase:  hal.ImageCopyTexture{Texture: it.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: tw, Height: th, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: it.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := b.submit(encoder); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := b.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("wgpu: readback: %w", err)
	}

	// Texture rows run top-down; the contract addresses them bottom-up.
	out := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		texRow := it.height - 1 - (y + row)
		src := texRow*int(alignedBytesPerRow) + x*4
		dst := row * w * 4
		copy(out[dst:dst+w*4], readback[src:src+w*4])
	}
	return out, nil
}

// submit finishes encoding, submits, and waits for the GPU with a
// bounded fence timeout.
func (b *Backend) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// createAndUploadBuffer creates a buffer and writes data through the queue.
func (b *Backend) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// makePickUniform packs the 144-byte pick uniform block: view matrix,
// projection matrix, identity color.
func makePickUniform(view, proj math32.Matrix4, identity [4]float32) []byte {
	data := make([]byte, uniformSize)
	putMatrix(data[0:64], view)
	putMatrix(data[64:128], proj)
	for i, v := range identity {
		binary.LittleEndian.PutUint32(data[128+i*4:], math.Float32bits(v))
	}
	return data
}

// putMatrix serializes a column-major matrix as 16 little-endian floats,
// matching WGSL mat4x4<f32> layout.
func putMatrix(dst []byte, m math32.Matrix4) {
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(m[i]))
	}
}

// floatBytes serializes a float32 slice as little-endian bytes.
func floatBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}
