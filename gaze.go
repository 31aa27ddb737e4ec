// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pick

// DwellTimer abstracts the host's sustained-gaze countdown. The picker
// restarts it whenever the gaze target changes in VR mode and stops it
// when the gaze leaves all interactive objects. When the countdown
// elapses the host calls Gaze.DwellComplete.
//
// Implementations typically drive a reticle fill animation alongside
// the countdown.
type DwellTimer interface {
	// Restart arms (or re-arms) the countdown for obj.
	Restart(obj Object)

	// Stop cancels any running countdown.
	Stop()
}

// Gaze bridges sustained-gaze selection into the click path. Obtain one
// from Picker.Gaze and invoke DwellComplete from the host's dwell timer
// callback.
type Gaze struct {
	picker *Picker
}

// DwellComplete activates the currently gazed object as if it had been
// clicked. It reuses the hover target resolved by the last Update and
// performs no fresh pixel read, so the activation matches what the user
// saw the reticle settle on.
//
// It is a no-op when picking is not ready, disabled, or nothing
// clickable is under the gaze.
func (g *Gaze) DwellComplete() {
	p := g.picker
	if !p.ready || p.destroyed || !p.provider.Enabled() {
		return
	}
	obj := p.hovered
	if obj == nil {
		return
	}
	if click, ok := obj.(ClickHandler); ok {
		click.HandleClick()
	}
}
