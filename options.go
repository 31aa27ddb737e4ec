package pick

import "image/color"

// Default configuration values.
const (
	// DefaultDownscale divides the viewport height to size the identity
	// buffer. The identity pass and its readback run every frame, so the
	// buffer trades picking precision for throughput.
	DefaultDownscale = 5

	// DefaultMinTargetHeight is the lower bound on the identity buffer
	// height in pixels, applied before the power-of-two floor.
	DefaultMinTargetHeight = 64
)

// Option configures a Picker during creation.
// Use functional options to customize Picker behavior.
//
// Example:
//
//	// Default sizing policy
//	picker, err := pick.New(provider, viewport, materials, backend)
//
//	// Higher-precision identity buffer
//	picker, err := pick.New(provider, viewport, materials, backend,
//	    pick.WithDownscale(2), pick.WithMinTargetHeight(128))
type Option func(*options)

// options holds optional configuration for Picker creation.
type options struct {
	downscale   int
	minHeight   int
	debugDump   bool
	debugEncode bool
	debugColor  color.NRGBA
	timer       DwellTimer
}

// defaultOptions returns the default picker options.
func defaultOptions() options {
	return options{
		downscale: DefaultDownscale,
		minHeight: DefaultMinTargetHeight,
	}
}

// WithDownscale sets the viewport-to-target downscale factor.
// Values below 1 are ignored.
func WithDownscale(factor int) Option {
	return func(o *options) {
		if factor >= 1 {
			o.downscale = factor
		}
	}
}

// WithMinTargetHeight sets the minimum identity buffer height in pixels.
// Values below 1 are ignored.
func WithMinTargetHeight(px int) Option {
	return func(o *options) {
		if px >= 1 {
			o.minHeight = px
		}
	}
}

// WithDebugDump keeps a CPU copy of the identity buffer after every pass,
// available through [Picker.DebugImage] and [Picker.OverlayDebug].
// Diagnostic only: it adds a full-buffer readback per frame and has no
// effect on picking results.
func WithDebugDump() Option {
	return func(o *options) {
		o.debugDump = true
	}
}

// WithDebugEncodeColor forces the codec to encode every identifier as the
// single fixed color c, for visual verification of the identity pass.
// Picking results are meaningless while the override is active.
//
// The override lives on the picker's codec, so it only reaches colors
// produced through [Picker.Codec]. Batch and material builders must
// source identity colors from there; the package-level [EncodeID] is
// never overridden.
func WithDebugEncodeColor(c color.NRGBA) Option {
	return func(o *options) {
		o.debugEncode = true
		o.debugColor = c
	}
}

// WithDwellTimer attaches an external gaze-dwell timer. The hover state
// machine restarts it when the gazed object changes and stops it when the
// gaze leaves all interactive objects; the timer's completion mechanism
// is expected to call [Gaze.DwellComplete].
func WithDwellTimer(t DwellTimer) Option {
	return func(o *options) {
		o.timer = t
	}
}
