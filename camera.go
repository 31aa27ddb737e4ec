package pick

import "cogentcore.org/core/math32"

// Camera carries the view and projection transforms for the identity
// pass. The matrices follow the usual convention: View transforms world
// coordinates into camera-centered coordinates, Projection transforms
// camera coordinates into clip space.
type Camera struct {
	// View is the camera view matrix.
	View math32.Matrix4

	// Projection is the camera projection matrix.
	Projection math32.Matrix4

	// Stereo marks a stereoscopic (VR) camera. The identity pass always
	// collapses a stereo camera to the left eye: rendering the pass per
	// eye would double its cost for no picking benefit, and splitting it
	// across eyes would corrupt identity-buffer sampling.
	Stereo bool

	// LeftView is the left eye's view matrix. Valid only when Stereo.
	LeftView math32.Matrix4
}

// PassView returns the view matrix the identity pass renders with: the
// left eye transform for stereo cameras, the plain view otherwise.
func (c *Camera) PassView() math32.Matrix4 {
	if c.Stereo {
		return c.LeftView
	}
	return c.View
}

// Material view kinds, used to select and refresh pick material uniforms
// per view type.
const (
	ViewMono   = "mono"
	ViewStereo = "stereo"
)

// viewKind maps a camera to its material view kind.
func viewKind(c *Camera) string {
	if c != nil && c.Stereo {
		return ViewStereo
	}
	return ViewMono
}
