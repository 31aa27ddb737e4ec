package pick

import "math/bits"

// powerOfTwoFloor returns the largest power of two less than or equal
// to v, or 1 for v < 1.
func powerOfTwoFloor(v int) int {
	if v < 1 {
		return 1
	}
	return 1 << (bits.Len(uint(v)) - 1)
}

// TargetSize computes the identity buffer dimensions for a viewport.
//
// The height is the viewport height divided by the downscale factor,
// bounded below by minHeight, then floored to a power of two. The width
// follows the viewport aspect ratio from that height, again floored to a
// power of two. Power-of-two dimensions keep the target cheap to
// allocate and sample across GPU generations.
//
// Example: downscale 5, minHeight 64, viewport 1024x512 yields a raw
// height of max(64, 102.4) = 102.4, floored to 64; width 64*2 = 128.
func TargetSize(rect Rectangle, downscale, minHeight int) (w, h int) {
	if downscale < 1 {
		downscale = 1
	}
	if minHeight < 1 {
		minHeight = 1
	}
	rawH := float32(rect.Height) / float32(downscale)
	if rawH < float32(minHeight) {
		rawH = float32(minHeight)
	}
	h = powerOfTwoFloor(int(rawH))
	w = powerOfTwoFloor(int(float32(h) * rect.Ratio()))
	return w, h
}

// ensureTarget brings the identity target to the requested dimensions.
// It is a no-op when the dimensions are unchanged, avoiding GPU resource
// churn on stable viewports; otherwise the backing buffer is destroyed
// and reallocated lazily by the backend before the next render.
func (p *Picker) ensureTarget(w, h int) error {
	if p.target == nil {
		t, err := p.backend.CreateTarget(w, h)
		if err != nil {
			return err
		}
		p.target = t
		p.targetW, p.targetH = w, h
		Logger().Debug("identity target created", "width", w, "height", h)
		return nil
	}
	if w == p.targetW && h == p.targetH {
		return nil
	}
	if err := p.backend.ResizeTarget(p.target, w, h); err != nil {
		return err
	}
	Logger().Debug("identity target resized",
		"width", w, "height", h, "oldWidth", p.targetW, "oldHeight", p.targetH)
	p.targetW, p.targetH = w, h
	return nil
}
