// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native wraps the GPU device that sits underneath an ANGLE
// display.
//
// The surface manager only needs a handful of operations from that device:
// allocate 2D textures, copy one texture into another, flush queued work, and
// derive an OS shared handle for a texture. Device captures exactly that, so
// the manager can run on the real D3D11 device ANGLE exposes on Windows, on a
// gogpu/wgpu HAL device (see HalDevice), or on a test double.
package native

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Package errors.
var (
	// ErrUnsupported is returned when no native device implementation exists
	// for the current platform.
	ErrUnsupported = errors.New("native: unsupported on this platform")

	// ErrNilDevice is returned when a nil device pointer is opened.
	ErrNilDevice = errors.New("native: nil device")

	// ErrInvalidSize is returned for textures with a zero dimension.
	ErrInvalidSize = errors.New("native: invalid texture size")

	// ErrForeignTexture is returned when a texture created by a different
	// device is passed to a Device method.
	ErrForeignTexture = errors.New("native: texture belongs to another device")

	// ErrNoSharedHandle is returned when a texture cannot be shared.
	ErrNoSharedHandle = errors.New("native: texture has no shared handle")

	// ErrReleased is returned by operations on a released device.
	ErrReleased = errors.New("native: device released")
)

// TextureDescriptor describes a single-sample, single-mip 2D texture.
type TextureDescriptor struct {
	// Label is a debug label. Backends without labels ignore it.
	Label string

	Width  uint32
	Height uint32

	Format gputypes.TextureFormat
	Usage  gputypes.TextureUsage

	// Shared requests a texture that can be opened from another device or
	// process through Device.SharedHandle.
	Shared bool
}

// Texture is a texture owned by a Device.
type Texture interface {
	// ClientBuffer returns the native texture pointer that is handed to
	// eglCreatePbufferFromClientBuffer.
	ClientBuffer() uintptr

	// Release frees the texture. It is safe to call more than once.
	Release()
}

// Device is the native GPU device used to back shared-texture surfaces.
//
// A Device is not safe for concurrent use; it follows the threading rules of
// the context that produced it.
type Device interface {
	CreateTexture(desc *TextureDescriptor) (Texture, error)

	// CopyTexture records a full copy of src into dst. Both textures must
	// have identical size and format.
	CopyTexture(dst, src Texture) error

	// Flush submits all recorded work and blocks until the GPU has
	// finished it.
	Flush() error

	// SharedHandle returns the OS handle that lets another device open t.
	SharedHandle(t Texture) (uintptr, error)

	// Release drops this reference to the device.
	Release()
}

// Opener wraps a raw device pointer obtained from EGL into a Device. The
// returned Device holds its own reference; the caller's pointer is not
// consumed.
type Opener func(ptr uintptr) (Device, error)

// DefaultOpener returns the Opener for the platform's native device type.
// On Windows this is OpenD3D11. Elsewhere it always fails with
// ErrUnsupported.
func DefaultOpener() Opener {
	return defaultOpener
}

func validate(desc *TextureDescriptor) error {
	if desc == nil || desc.Width == 0 || desc.Height == 0 {
		return ErrInvalidSize
	}
	return nil
}
