// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements a pick.Backend on the gogpu/wgpu hardware
// abstraction layer.
//
// The backend renders the identity pass into an offscreen RGBA8 target
// with a depth buffer, then reads pixels back through a staging buffer.
// It can own its GPU device or share one with a host application:
//
//	// Standalone: the backend opens its own device.
//	b, err := wgpu.New()
//
//	// Shared: reuse the host's device via its pick.DeviceHandle.
//	b, err := wgpu.NewWithProvider(app.GPUContextProvider())
//
// Importing the package registers it in the backend registry under the
// name "wgpu".
package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/pick"
	"github.com/gogpu/pick/backend"
)

// Common errors returned by the wgpu backend.
var (
	// ErrNoAdapter is returned when no GPU adapter is available.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrBadTarget is returned when a target from another backend is passed in.
	ErrBadTarget = errors.New("wgpu: target not created by this backend")

	// ErrBadScene is returned when the scene exposes no identity batches.
	ErrBadScene = errors.New("wgpu: scene does not expose pick batches")
)

func init() {
	backend.Register(backend.BackendWGPU, func() pick.Backend {
		b, err := New()
		if err != nil {
			pick.Logger().Warn("wgpu backend unavailable", "err", err)
			return nil
		}
		return b
	})
}

// Backend renders identity passes through the wgpu HAL.
//
// Not safe for concurrent use; drive it from the frame loop like the
// Picker that owns it.
type Backend struct {
	instance  hal.Instance
	device    hal.Device
	queue     hal.Queue
	ownDevice bool

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
}

// New creates a backend with its own GPU device, preferring a discrete
// or integrated adapter.
func New() (*Backend, error) {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, errors.New("wgpu: vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	b := &Backend{
		instance:  instance,
		device:    openDev.Device,
		queue:     openDev.Queue,
		ownDevice: true,
	}
	if err := b.createPipeline(); err != nil {
		b.Close()
		return nil, err
	}
	pick.Logger().Info("wgpu pick backend initialized", "adapter", selected.Info.Name)
	return b, nil
}

// NewWithDevice creates a backend over an existing HAL device and queue.
// The caller retains ownership of both; Close will not destroy them.
func NewWithDevice(device hal.Device, queue hal.Queue) (*Backend, error) {
	b := &Backend{device: device, queue: queue}
	if err := b.createPipeline(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewWithProvider creates a backend sharing the GPU device of a host
// application. The handle comes from the host (e.g., a gogpu.App's
// context provider); the backend does not create its own device. The
// handle must additionally implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func NewWithProvider(handle pick.DeviceHandle) (*Backend, error) {
	if handle == nil {
		return nil, errors.New("wgpu: nil device handle")
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, errors.New("wgpu: device handle does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("wgpu: handle HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("wgpu: handle HalQueue is not hal.Queue")
	}
	b, err := NewWithDevice(device, queue)
	if err != nil {
		return nil, err
	}
	pick.Logger().Info("wgpu pick backend sharing host device")
	return b, nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendWGPU }

// Close releases pipeline resources and, for an owned device, the device
// and instance. Safe to call more than once.
func (b *Backend) Close() {
	b.destroyPipeline()
	if b.ownDevice && b.device != nil {
		b.device.Destroy()
		b.device = nil
		b.queue = nil
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}
