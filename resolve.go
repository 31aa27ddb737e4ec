package pick

import "image/color"

// resolveAt converts a normalized viewport coordinate (top-origin,
// [0,1] x [0,1]) into the object visible there, via a single-pixel
// synchronous readback from the identity buffer.
//
// A nil result is the normal answer for background pixels and for
// identifiers nothing is registered under. The readback stalls until the
// GPU pipeline up to the identity pass has completed; callers only
// invoke this after the current frame's pass, never across a pending
// resize.
func (p *Picker) resolveAt(x, y float32) Object {
	if p.target == nil {
		return nil
	}
	w, h := p.targetW, p.targetH

	// Vertical flip: pointer coordinates are top-origin, render targets
	// bottom-origin.
	px := int(x * float32(w))
	py := int((1 - y) * float32(h))
	px = clamp(px, 0, w-1)
	py = clamp(py, 0, h-1)

	pix, err := p.backend.ReadPixels(p.target, px, py, 1, 1)
	if err != nil || len(pix) < 4 {
		Logger().Warn("identity readback failed", "err", err, "x", px, "y", py)
		return nil
	}

	// Alpha carries the transparency mask during the pass; identity is
	// RGB only.
	id := DecodeID(color.NRGBA{R: pix[0], G: pix[1], B: pix[2]})
	return p.provider.Lookup(id)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
