// Package angle manages the GPU contexts and drawable surfaces of a renderer
// hosted on ANGLE, the GLES-on-Direct3D translation layer.
//
// # Overview
//
// A Manager opens an EGL display through ANGLE, creates a primary context
// and a resource context that shares its object namespace, and owns at most
// one drawable surface at a time. The surface either draws into a native
// window or, for compositing, into an off-screen texture that other devices
// and processes can open through an OS shared handle.
//
// # Quick Start
//
//	import "github.com/gogpu/angle"
//
//	m, err := angle.New(angle.WithAcceleratedPaintCallback(
//		func(handle uintptr, w, h int) {
//			// hand the shared texture to the compositor
//		}))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer m.Close()
//
//	// Off-screen surface backed by a shared texture.
//	if err := m.CreateSurface(nil, 800, 600, true); err != nil {
//		log.Fatal(err)
//	}
//	m.MakeCurrent()
//	// ... issue GLES draw calls ...
//	m.SwapBuffers()
//
// # Display Tiers
//
// The display connection is opened by trying capability tiers in order
// until one initializes: D3D11 on hardware, D3D11 capped at feature level
// 9_3, and D3D11 WARP. Only the failure of the last tier is logged. Use
// WithTiers to change the order.
//
// The connection is shared by every Manager using the same egl.Platform
// and terminated when the last of them is closed.
//
// # Threading
//
// A Manager is not safe for concurrent use. Drive it from one goroutine
// locked to its OS thread (runtime.LockOSThread). Another thread may bind
// the resource context with MakeResourceCurrent to upload textures.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive diagnostics,
// including the EGL error code of every failed call.
package angle

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
