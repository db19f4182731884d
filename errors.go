// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import "errors"

// Package errors.
var (
	// ErrInitialize is returned by New when no display connection or GPU
	// context could be established.
	ErrInitialize = errors.New("angle: initialization failed")

	// ErrNoPlatformDisplay is returned when eglGetPlatformDisplayEXT is not
	// exported by the EGL implementation.
	ErrNoPlatformDisplay = errors.New("angle: eglGetPlatformDisplayEXT not available")

	// ErrNoDevice is returned when the native device behind the display
	// cannot be resolved.
	ErrNoDevice = errors.New("angle: native device not available")

	// ErrSurfaceCreation is returned when no drawable surface could be
	// created.
	ErrSurfaceCreation = errors.New("angle: surface creation failed")

	// ErrNoSurface is returned by operations that need a current surface.
	ErrNoSurface = errors.New("angle: no surface")

	// ErrClosed is returned by operations on a closed Manager.
	ErrClosed = errors.New("angle: manager closed")

	// ErrMakeCurrent is returned when a context or surface cannot be bound.
	ErrMakeCurrent = errors.New("angle: make current failed")

	// ErrSwap is returned when presenting the surface fails.
	ErrSwap = errors.New("angle: swap buffers failed")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("angle: invalid surface size")
)
