// Package backend provides a pluggable picking backend registry.
//
// The picking core renders and reads back its identity buffer through the
// pick.Backend interface; this package lets backend implementations
// register themselves and lets hosts select one at runtime.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The wgpu backend is automatically registered on import:
//
//	import _ "github.com/gogpu/pick/backend/wgpu"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get(backend.BackendWGPU)
//
// # Available Backends
//
// - "wgpu": GPU-accelerated via gogpu/wgpu (backend/wgpu)
package backend
