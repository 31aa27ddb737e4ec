package pick

import (
	"image/color"
	"testing"
)

// fakeObject records every handler invocation. It implements all three
// capability interfaces.
type fakeObject struct {
	id          uint32
	interactive bool

	overs  int
	outs   int
	clicks int

	log *[]string
	tag string
}

func (o *fakeObject) ID() uint32        { return o.id }
func (o *fakeObject) Interactive() bool { return o.interactive }

func (o *fakeObject) HandleOver() {
	o.overs++
	if o.log != nil {
		*o.log = append(*o.log, "over:"+o.tag)
	}
}

func (o *fakeObject) HandleOut() {
	o.outs++
	if o.log != nil {
		*o.log = append(*o.log, "out:"+o.tag)
	}
}

func (o *fakeObject) HandleClick() {
	o.clicks++
	if o.log != nil {
		*o.log = append(*o.log, "click:"+o.tag)
	}
}

// bareObject is pickable but has no capability handlers.
type bareObject struct {
	id          uint32
	interactive bool
}

func (o *bareObject) ID() uint32        { return o.id }
func (o *bareObject) Interactive() bool { return o.interactive }

type fakeScene struct {
	override Material
	sets     int
}

func (s *fakeScene) SetOverrideMaterial(m Material) {
	s.override = m
	s.sets++
}

type fakeProvider struct {
	enabled bool
	scene   *fakeScene
	objects map[uint32]Object
}

func (p *fakeProvider) Enabled() bool { return p.enabled }

func (p *fakeProvider) Scene() Scene {
	if p.scene == nil {
		return nil
	}
	return p.scene
}

func (p *fakeProvider) Lookup(id uint32) Object { return p.objects[id] }

type fakeTarget struct {
	w, h int
}

func (t *fakeTarget) Width() int  { return t.w }
func (t *fakeTarget) Height() int { return t.h }

// fakeBackend serves deterministic pixel bytes and counts every call.
// pixelAt, when set, answers per-position colors with y addressing rows
// from the bottom, matching the ReadPixels contract; otherwise every
// pixel is the uniform pixel color.
type fakeBackend struct {
	pixel   color.NRGBA
	pixelAt func(x, y int) color.NRGBA

	createErr error
	renderErr error
	readErr   error

	creates  int
	resizes  int
	clears   int
	renders  int
	reads    int
	destroys int
	closed   bool

	lastCam *Camera
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) CreateTarget(w, h int) (Target, error) {
	b.creates++
	if b.createErr != nil {
		return nil, b.createErr
	}
	return &fakeTarget{w: w, h: h}, nil
}

func (b *fakeBackend) ResizeTarget(t Target, w, h int) error {
	b.resizes++
	ft := t.(*fakeTarget)
	ft.w, ft.h = w, h
	return nil
}

func (b *fakeBackend) ClearTarget(t Target, c color.NRGBA, clearDepth, clearStencil bool) error {
	b.clears++
	return nil
}

func (b *fakeBackend) Render(t Target, s Scene, cam *Camera, clear bool) error {
	b.renders++
	b.lastCam = cam
	return b.renderErr
}

func (b *fakeBackend) ReadPixels(t Target, x, y, w, h int) ([]byte, error) {
	b.reads++
	if b.readErr != nil {
		return nil, b.readErr
	}
	out := make([]byte, 0, w*h*4)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := b.pixel
			if b.pixelAt != nil {
				c = b.pixelAt(x+col, y+row)
			}
			out = append(out, c.R, c.G, c.B, c.A)
		}
	}
	return out, nil
}

func (b *fakeBackend) DestroyTarget(t Target) { b.destroys++ }

func (b *fakeBackend) Close() { b.closed = true }

type fakeViewport struct {
	cam  *Camera
	rect Rectangle
	hub  *PointerHub
}

func (v *fakeViewport) Camera() *Camera { return v.cam }
func (v *fakeViewport) Rect() Rectangle { return v.rect }

func (v *fakeViewport) Pointer() PointerSource {
	if v.hub == nil {
		return nil
	}
	return v.hub
}

type fakeMaterial struct {
	name string
}

func (m fakeMaterial) Name() string { return m.name }

type fakeMaterials struct {
	err      error
	calls    int
	lastView string
}

func (m *fakeMaterials) PickMaterial(view string) (Material, error) {
	m.calls++
	m.lastView = view
	if m.err != nil {
		return nil, m.err
	}
	return fakeMaterial{name: "pick"}, nil
}

type fakeTimer struct {
	restarts []Object
	stops    int
}

func (t *fakeTimer) Restart(obj Object) { t.restarts = append(t.restarts, obj) }
func (t *fakeTimer) Stop()              { t.stops++ }

// fixture wires a Picker to a full set of fakes. Viewport 1024x512 with
// the default sizing policy yields a 128x64 identity target.
type fixture struct {
	provider  *fakeProvider
	viewport  *fakeViewport
	materials *fakeMaterials
	backend   *fakeBackend
	hub       *PointerHub
	picker    *Picker
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	hub := NewPointerHub()
	f := &fixture{
		provider:  &fakeProvider{enabled: true, scene: &fakeScene{}, objects: map[uint32]Object{}},
		viewport:  &fakeViewport{cam: &Camera{}, rect: Rectangle{Width: 1024, Height: 512}, hub: hub},
		materials: &fakeMaterials{},
		backend:   &fakeBackend{pixel: color.NRGBA{A: 0xFF}},
		hub:       hub,
	}
	p, err := New(f.provider, f.viewport, f.materials, f.backend, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	f.picker = p
	return f
}

// loaded runs the fixture through SceneLoaded and a first Update so the
// identity target exists and readbacks resolve.
func (f *fixture) loaded(t *testing.T) *fixture {
	t.Helper()
	f.picker.SceneLoaded()
	if err := f.picker.Update(nil); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	return f
}

// register adds a recording object under id and points the uniform
// readback pixel at it.
func (f *fixture) register(id uint32, interactive bool) *fakeObject {
	obj := &fakeObject{id: id, interactive: interactive}
	f.provider.objects[id] = obj
	f.backend.pixel = EncodeID(id)
	return obj
}
