package pick

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// renderIdentityPass renders the pickable scene into the identity target
// with the override pick material installed, then restores the scene's
// original materials so the next full-quality render is unaffected.
func (p *Picker) renderIdentityPass(cam *Camera) error {
	scene := p.provider.Scene()
	if scene == nil {
		return nil
	}

	mat, err := p.materials.PickMaterial(viewKind(cam))
	if err != nil {
		return fmt.Errorf("pick material: %w", err)
	}

	// Stereo cameras collapse to the left eye for this pass.
	passCam := &Camera{View: cam.PassView(), Projection: cam.Projection}

	scene.SetOverrideMaterial(mat)
	defer scene.SetOverrideMaterial(nil)

	// Color and depth are cleared, stencil is left alone.
	if err := p.backend.ClearTarget(p.target, color.NRGBA{}, true, false); err != nil {
		return fmt.Errorf("clear identity target: %w", err)
	}
	if err := p.backend.Render(p.target, scene, passCam, false); err != nil {
		Logger().Warn("identity pass failed", "err", err)
		return fmt.Errorf("identity pass: %w", err)
	}

	if p.opts.debugDump {
		p.captureDebugImage()
	}
	return nil
}

// captureDebugImage keeps a CPU copy of the identity buffer for
// inspection. Failures only log: the dump is diagnostic and must never
// affect picking.
func (p *Picker) captureDebugImage() {
	w, h := p.targetW, p.targetH
	pix, err := p.backend.ReadPixels(p.target, 0, 0, w, h)
	if err != nil || len(pix) < w*h*4 {
		Logger().Warn("debug dump readback failed", "err", err)
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	// ReadPixels returns rows bottom-up; images are top-origin.
	for row := 0; row < h; row++ {
		src := (h - 1 - row) * w * 4
		dst := row * img.Stride
		copy(img.Pix[dst:dst+w*4], pix[src:src+w*4])
	}
	p.debugImage = img
}

// DebugImage returns the identity buffer captured by the last Update, or
// nil when the debug dump option is off or no pass has run yet. The
// returned image is replaced (not mutated) on the next capture.
func (p *Picker) DebugImage() *image.RGBA {
	return p.debugImage
}

// OverlayDebug blits the captured identity buffer into the bottom-right
// corner of dst at quarter scale, for visual verification of the
// identity pass. It is a no-op without a captured image.
func (p *Picker) OverlayDebug(dst xdraw.Image) {
	src := p.debugImage
	if src == nil {
		return
	}
	b := dst.Bounds()
	corner := image.Rect(b.Max.X-b.Dx()/4, b.Max.Y-b.Dy()/4, b.Max.X, b.Max.Y)
	xdraw.NearestNeighbor.Scale(dst, corner, src, src.Bounds(), xdraw.Src, nil)
}
