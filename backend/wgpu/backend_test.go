package wgpu

import (
	"encoding/binary"
	"image/color"
	"math"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/pick"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func newTestBackend(t *testing.T) (*Backend, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	b, err := NewWithDevice(device, queue)
	if err != nil {
		cleanup()
		t.Fatalf("NewWithDevice failed: %v", err)
	}
	return b, func() {
		b.Close()
		cleanup()
	}
}

// hostHandle is a device handle as a host application would provide:
// the gpucontext surface plus the HAL accessors the backend asserts.
type hostHandle struct {
	pick.NullDeviceHandle
	device hal.Device
	queue  hal.Queue
}

func (h *hostHandle) HalDevice() any { return h.device }
func (h *hostHandle) HalQueue() any  { return h.queue }

// batchScene is a pick.Scene that exposes fixed identity batches.
type batchScene struct {
	batches []Batch
}

func (s *batchScene) SetOverrideMaterial(m pick.Material) {}
func (s *batchScene) PickBatches() []Batch                { return s.batches }

// plainScene implements pick.Scene but not BatchSource.
type plainScene struct{}

func (plainScene) SetOverrideMaterial(m pick.Material) {}

// otherTarget is a pick.Target from some other backend.
type otherTarget struct{}

func (otherTarget) Width() int  { return 1 }
func (otherTarget) Height() int { return 1 }

func TestNewWithDevice(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	if b.Name() != "wgpu" {
		t.Errorf("Name() = %q, want %q", b.Name(), "wgpu")
	}
	if b.pipeline == nil {
		t.Error("pipeline not created")
	}
	if b.uniformLayout == nil {
		t.Error("uniform layout not created")
	}
}

func TestNewWithProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	handle := &hostHandle{device: device, queue: queue}
	b, err := NewWithProvider(handle)
	if err != nil {
		t.Fatalf("NewWithProvider failed: %v", err)
	}
	defer b.Close()

	if b.pipeline == nil {
		t.Error("pipeline not created")
	}
	if b.ownDevice {
		t.Error("backend claims device ownership over a shared device")
	}
}

func TestNewWithProviderRejectsBareHandle(t *testing.T) {
	// A handle without HAL accessors has no device to share.
	if _, err := NewWithProvider(pick.NullDeviceHandle{}); err == nil {
		t.Error("NewWithProvider(NullDeviceHandle) error = nil, want error")
	}
	if _, err := NewWithProvider(nil); err == nil {
		t.Error("NewWithProvider(nil) error = nil, want error")
	}
}

func TestCreateTargetLazyAllocation(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	target, err := b.CreateTarget(128, 64)
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}
	if target.Width() != 128 || target.Height() != 64 {
		t.Errorf("target = %dx%d, want 128x64", target.Width(), target.Height())
	}

	it := target.(*identityTarget)
	if it.colorTex != nil {
		t.Error("textures allocated before first use")
	}

	// First clear forces allocation.
	if err := b.ClearTarget(target, color.NRGBA{A: 0xFF}, true, false); err != nil {
		t.Fatalf("ClearTarget failed: %v", err)
	}
	if it.colorTex == nil || it.depthTex == nil {
		t.Error("textures not allocated by ClearTarget")
	}
}

func TestCreateTargetInvalidDims(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	if _, err := b.CreateTarget(0, 64); err == nil {
		t.Error("CreateTarget(0, 64) error = nil, want error")
	}
}

func TestResizeTargetDestructive(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	target, err := b.CreateTarget(128, 64)
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}
	if err := b.ClearTarget(target, color.NRGBA{A: 0xFF}, true, false); err != nil {
		t.Fatalf("ClearTarget failed: %v", err)
	}

	it := target.(*identityTarget)
	if err := b.ResizeTarget(target, 256, 128); err != nil {
		t.Fatalf("ResizeTarget failed: %v", err)
	}
	if it.colorTex != nil {
		t.Error("textures still allocated after resize")
	}
	if it.width != 256 || it.height != 128 {
		t.Errorf("target = %dx%d after resize, want 256x128", it.width, it.height)
	}

	// Next clear reallocates at the new size.
	if err := b.ClearTarget(target, color.NRGBA{A: 0xFF}, true, false); err != nil {
		t.Fatalf("ClearTarget after resize failed: %v", err)
	}
	if it.colorTex == nil {
		t.Error("textures not reallocated after resize")
	}
}

func TestRenderBatches(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	target, err := b.CreateTarget(128, 64)
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}
	defer b.DestroyTarget(target)

	scene := &batchScene{batches: []Batch{
		{
			Color: [4]float32{1, 0, 0, 1},
			Vertices: []float32{
				0, 0, 0, 1,
				1, 0, 0, 1,
				0, 1, 0, 1,
			},
		},
	}}
	cam := &pick.Camera{}
	if err := b.Render(target, scene, cam, true); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}

func TestRenderNilScene(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	target, _ := b.CreateTarget(64, 64)
	if err := b.Render(target, nil, &pick.Camera{}, false); err != nil {
		t.Errorf("Render(nil scene) error = %v, want nil", err)
	}
}

func TestRenderWrongSceneType(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	target, _ := b.CreateTarget(64, 64)
	err := b.Render(target, plainScene{}, &pick.Camera{}, false)
	if err != ErrBadScene {
		t.Errorf("Render(plain scene) error = %v, want ErrBadScene", err)
	}
}

func TestForeignTargetRejected(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	if err := b.ResizeTarget(otherTarget{}, 2, 2); err != ErrBadTarget {
		t.Errorf("ResizeTarget(foreign) error = %v, want ErrBadTarget", err)
	}
	if err := b.ClearTarget(otherTarget{}, color.NRGBA{A: 0xFF}, false, false); err != ErrBadTarget {
		t.Errorf("ClearTarget(foreign) error = %v, want ErrBadTarget", err)
	}
	if _, err := b.ReadPixels(otherTarget{}, 0, 0, 1, 1); err != ErrBadTarget {
		t.Errorf("ReadPixels(foreign) error = %v, want ErrBadTarget", err)
	}
}

func TestReadPixels(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	target, err := b.CreateTarget(128, 64)
	if err != nil {
		t.Fatalf("CreateTarget failed: %v", err)
	}
	defer b.DestroyTarget(target)
	if err := b.ClearTarget(target, color.NRGBA{A: 0xFF}, true, false); err != nil {
		t.Fatalf("ClearTarget failed: %v", err)
	}

	pix, err := b.ReadPixels(target, 0, 0, 1, 1)
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	if len(pix) != 4 {
		t.Errorf("len(pix) = %d, want 4", len(pix))
	}

	pix, err = b.ReadPixels(target, 10, 10, 4, 2)
	if err != nil {
		t.Fatalf("ReadPixels block failed: %v", err)
	}
	if len(pix) != 4*2*4 {
		t.Errorf("len(pix) = %d, want %d", len(pix), 4*2*4)
	}
}

func TestReadPixelsOutOfRange(t *testing.T) {
	b, done := newTestBackend(t)
	defer done()

	target, _ := b.CreateTarget(16, 16)
	tests := []struct{ x, y, w, h int }{
		{-1, 0, 1, 1},
		{0, -1, 1, 1},
		{16, 0, 1, 1},
		{0, 0, 17, 1},
		{0, 0, 0, 1},
	}
	for _, tt := range tests {
		if _, err := b.ReadPixels(target, tt.x, tt.y, tt.w, tt.h); err == nil {
			t.Errorf("ReadPixels(%d, %d, %d, %d) error = nil, want error",
				tt.x, tt.y, tt.w, tt.h)
		}
	}
}

func TestMakePickUniform(t *testing.T) {
	var view, proj math32.Matrix4
	view[0] = 2
	proj[15] = 3
	data := makePickUniform(view, proj, [4]float32{0.5, 0.25, 0.125, 1})

	if len(data) != uniformSize {
		t.Fatalf("len(data) = %d, want %d", len(data), uniformSize)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[0:])); got != 2 {
		t.Errorf("view[0] = %v, want 2", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[64+15*4:])); got != 3 {
		t.Errorf("proj[15] = %v, want 3", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(data[128:])); got != 0.5 {
		t.Errorf("color r = %v, want 0.5", got)
	}
}

func TestCompilePickShader(t *testing.T) {
	spirv, err := compileWGSL(pickShaderSource)
	if err != nil {
		t.Fatalf("compileWGSL failed: %v", err)
	}
	if len(spirv) == 0 {
		t.Fatal("compileWGSL returned empty SPIR-V")
	}
	// SPIR-V magic number.
	if spirv[0] != 0x07230203 {
		t.Errorf("SPIR-V magic = %#x, want 0x07230203", spirv[0])
	}
}
