package pick

import "errors"

// Common errors returned by the picking core.
var (
	// ErrNoBackend is returned by New when no render backend is supplied.
	ErrNoBackend = errors.New("pick: no render backend")

	// ErrNoProvider is returned by New when no picking provider is supplied.
	ErrNoProvider = errors.New("pick: no picking provider")

	// ErrNoViewport is returned by New when no viewport is supplied.
	ErrNoViewport = errors.New("pick: no viewport")

	// ErrNoMaterials is returned by New when no material source is supplied.
	ErrNoMaterials = errors.New("pick: no material source")
)
