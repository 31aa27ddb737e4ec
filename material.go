package pick

// Material is an opaque shader material handle. The identity pass
// installs a pick material as the scene-wide override; its only contract
// with the core is a name for logging.
type Material interface {
	// Name returns the material identifier (e.g., "pick").
	Name() string
}

// MaterialSource supplies the identity-encoding pick material, with
// uniforms refreshed for the requested view kind (ViewMono or
// ViewStereo). It is the boundary to the host's material registry.
type MaterialSource interface {
	PickMaterial(view string) (Material, error)
}
