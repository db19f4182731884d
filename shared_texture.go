// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/angle/egl"
	"github.com/gogpu/angle/native"
)

// SharedTextureTarget renders off-screen into a texture whose contents can
// be opened by another device or process through an OS shared handle.
//
// It owns two BGRA8 textures of the same size. Draw commands write the
// render texture; Unlock copies it into the staging texture, which is the
// one that carries the shared handle. Consumers must only read the shared
// texture after Unlock has returned.
type SharedTextureTarget struct {
	width  int32
	height int32

	device  native.Device
	texture native.Texture
	staging native.Texture

	handle    uintptr
	surface   egl.Surface
	textureID uint32
}

func (*SharedTextureTarget) renderTarget() {}

// NewSharedTextureTarget returns an uninitialized target of the given size.
func NewSharedTextureTarget(width, height int32) *SharedTextureTarget {
	return &SharedTextureTarget{width: width, height: height}
}

// Initialize creates both textures on dev and derives the shared handle
// from the staging texture.
// The target keeps a reference to dev for Unlock but does not release it.
//
// A texture that cannot be shared is not an error: the handle stays zero and
// the failure is logged.
func (t *SharedTextureTarget) Initialize(dev native.Device) error {
	if dev == nil {
		return ErrNoDevice
	}
	if t.width <= 0 || t.height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, t.width, t.height)
	}
	t.Release()

	desc := native.TextureDescriptor{
		Label:  "angle.render",
		Width:  uint32(t.width),
		Height: uint32(t.height),
		Format: gputypes.TextureFormatBGRA8Unorm,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	}
	texture, err := dev.CreateTexture(&desc)
	if err != nil {
		return fmt.Errorf("angle: create render texture: %w", err)
	}

	desc.Label = "angle.staging"
	desc.Usage = gputypes.TextureUsageTextureBinding
	desc.Shared = true
	staging, err := dev.CreateTexture(&desc)
	if err != nil {
		texture.Release()
		return fmt.Errorf("angle: create staging texture: %w", err)
	}

	t.device = dev
	t.texture = texture
	t.staging = staging

	handle, err := dev.SharedHandle(staging)
	if err != nil {
		Logger().Warn("angle: shared handle unavailable", "err", err)
		handle = 0
	}
	t.handle = handle
	return nil
}

// Lock is reserved for keyed-mutex synchronization with the consumer of the
// shared handle. It currently does nothing.
func (t *SharedTextureTarget) Lock() {}

// Unlock copies the render texture into the staging texture and blocks
// until the device has executed the copy.
func (t *SharedTextureTarget) Unlock() error {
	if t.device == nil || t.texture == nil || t.staging == nil {
		return nil
	}
	if err := t.device.CopyTexture(t.staging, t.texture); err != nil {
		return fmt.Errorf("angle: copy to staging texture: %w", err)
	}
	if err := t.device.Flush(); err != nil {
		return fmt.Errorf("angle: flush: %w", err)
	}
	return nil
}

// SetSurface records the pbuffer surface wrapping the render texture and
// the GL texture name bound to it, if any.
func (t *SharedTextureTarget) SetSurface(surface egl.Surface, textureID uint32) {
	t.surface = surface
	t.textureID = textureID
}

// Width returns the target width in pixels.
func (t *SharedTextureTarget) Width() int32 { return t.width }

// Height returns the target height in pixels.
func (t *SharedTextureTarget) Height() int32 { return t.height }

// Texture returns the render texture, or nil before Initialize.
func (t *SharedTextureTarget) Texture() native.Texture { return t.texture }

// SharedHandle returns the OS handle of the staging texture. It is zero
// before Initialize or when the device cannot share textures.
func (t *SharedTextureTarget) SharedHandle() uintptr { return t.handle }

// Surface returns the pbuffer surface set by SetSurface.
func (t *SharedTextureTarget) Surface() egl.Surface { return t.surface }

// TextureID returns the GL texture name set by SetSurface.
func (t *SharedTextureTarget) TextureID() uint32 { return t.textureID }

// Release frees both textures. The surface is owned by the Manager and is
// not destroyed here. Release is safe to call more than once.
func (t *SharedTextureTarget) Release() {
	if t.staging != nil {
		t.staging.Release()
		t.staging = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
	t.device = nil
	t.handle = 0
	t.surface = egl.NoSurface
	t.textureID = 0
}
