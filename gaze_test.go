package pick

import (
	"image/color"
	"testing"
)

func TestDwellCompleteActivatesGazedObject(t *testing.T) {
	f := newFixture(t)
	obj := f.register(6, true)
	f.picker.SetVR(true)
	f.loaded(t)

	f.picker.Gaze().DwellComplete()
	if obj.clicks != 1 {
		t.Errorf("clicks = %d, want 1", obj.clicks)
	}
}

func TestDwellCompleteUsesCachedTarget(t *testing.T) {
	f := newFixture(t)
	gazed := f.register(6, true)
	other := &fakeObject{id: 7, interactive: true}
	f.provider.objects[7] = other
	f.picker.SetVR(true)
	f.loaded(t)

	// The identity buffer content changes after the hover was cached.
	// Activation must match what the reticle settled on, with no fresh
	// readback.
	f.backend.pixel = EncodeID(7)
	reads := f.backend.reads
	f.picker.Gaze().DwellComplete()

	if f.backend.reads != reads {
		t.Errorf("reads during DwellComplete = %d, want 0", f.backend.reads-reads)
	}
	if gazed.clicks != 1 {
		t.Errorf("gazed clicks = %d, want 1", gazed.clicks)
	}
	if other.clicks != 0 {
		t.Errorf("other clicks = %d, want 0", other.clicks)
	}
}

func TestDwellCompleteGuards(t *testing.T) {
	f := newFixture(t)
	obj := f.register(6, true)
	f.picker.SetVR(true)

	// Not ready yet.
	f.picker.Gaze().DwellComplete()
	if obj.clicks != 0 {
		t.Fatalf("clicks before SceneLoaded = %d, want 0", obj.clicks)
	}

	f.loaded(t)

	// Provider disabled.
	f.provider.enabled = false
	f.picker.Gaze().DwellComplete()
	if obj.clicks != 0 {
		t.Errorf("clicks while disabled = %d, want 0", obj.clicks)
	}
}

func TestDwellCompleteNoGazeTarget(t *testing.T) {
	f := newFixture(t)
	f.backend.pixel = color.NRGBA{A: 0xFF}
	f.picker.SetVR(true)
	f.loaded(t)

	f.picker.Gaze().DwellComplete() // must not panic
	if f.picker.Hovered() != nil {
		t.Errorf("Hovered() = %v, want nil", f.picker.Hovered())
	}
}

func TestDwellCompleteNonClickableTarget(t *testing.T) {
	f := newFixture(t)
	f.provider.objects[8] = &bareObject{id: 8, interactive: true}
	f.backend.pixel = EncodeID(8)
	f.picker.SetVR(true)
	f.loaded(t)

	f.picker.Gaze().DwellComplete() // must not panic
}

func TestGazeSameAdapter(t *testing.T) {
	f := newFixture(t)
	if f.picker.Gaze() != f.picker.Gaze() {
		t.Error("Gaze() returned different adapters across calls")
	}
}
