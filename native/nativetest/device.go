// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package nativetest provides an in-memory native.Device for tests.
package nativetest

import (
	"errors"

	"github.com/gogpu/angle/native"
)

// ErrInjected is returned by operations that were scripted to fail.
var ErrInjected = errors.New("nativetest: injected failure")

// Device is a native.Device that records what it is asked to do.
// Texture pointers and shared handles are unique non-zero values.
type Device struct {
	// FailCreateAt makes the n-th CreateTexture call (1-based) fail.
	FailCreateAt int
	FailCopy     bool
	FailFlush    bool

	// NoSharedHandle makes SharedHandle fail for every texture.
	NoSharedHandle bool

	// OnRelease, if set, runs when Release is first called.
	OnRelease func()

	Created  []*Texture
	Copies   int
	Flushes  int
	Released bool

	// Opened records the pointers passed to the Opener.
	Opened []uintptr

	next uintptr
}

var _ native.Device = (*Device)(nil)

// New returns a healthy device.
func New() *Device {
	return &Device{next: 0x1000}
}

// Opener returns an Opener that hands out d for any non-zero pointer.
func (d *Device) Opener() native.Opener {
	return func(ptr uintptr) (native.Device, error) {
		if ptr == 0 {
			return nil, native.ErrNilDevice
		}
		d.Opened = append(d.Opened, ptr)
		return d, nil
	}
}

// Texture is a recorded texture.
type Texture struct {
	Desc     native.TextureDescriptor
	Ptr      uintptr
	Shared   uintptr
	Released bool

	// Generation counts copies written into this texture.
	Generation int

	owner *Device
}

func (t *Texture) ClientBuffer() uintptr { return t.Ptr }

func (t *Texture) Release() { t.Released = true }

func (d *Device) alloc() uintptr {
	if d.next == 0 {
		d.next = 0x1000
	}
	d.next += 0x10
	return d.next
}

func (d *Device) CreateTexture(desc *native.TextureDescriptor) (native.Texture, error) {
	if d.Released {
		return nil, native.ErrReleased
	}
	if desc == nil || desc.Width == 0 || desc.Height == 0 {
		return nil, native.ErrInvalidSize
	}
	if d.FailCreateAt > 0 && len(d.Created)+1 == d.FailCreateAt {
		d.Created = append(d.Created, nil)
		return nil, ErrInjected
	}
	t := &Texture{Desc: *desc, Ptr: d.alloc(), owner: d}
	if desc.Shared {
		t.Shared = d.alloc() | 0x1
	}
	d.Created = append(d.Created, t)
	return t, nil
}

func (d *Device) CopyTexture(dst, src native.Texture) error {
	if d.FailCopy {
		return ErrInjected
	}
	s, ok1 := src.(*Texture)
	t, ok2 := dst.(*Texture)
	if !ok1 || !ok2 || s.owner != d || t.owner != d {
		return native.ErrForeignTexture
	}
	t.Generation++
	d.Copies++
	return nil
}

func (d *Device) Flush() error {
	if d.FailFlush {
		return ErrInjected
	}
	d.Flushes++
	return nil
}

func (d *Device) SharedHandle(t native.Texture) (uintptr, error) {
	tt, ok := t.(*Texture)
	if !ok || tt.owner != d {
		return 0, native.ErrForeignTexture
	}
	if d.NoSharedHandle || tt.Shared == 0 {
		return 0, native.ErrNoSharedHandle
	}
	return tt.Shared, nil
}

func (d *Device) Release() {
	if d.Released {
		return
	}
	d.Released = true
	if d.OnRelease != nil {
		d.OnRelease()
	}
}

// Live returns the textures that have been created and not yet released.
func (d *Device) Live() []*Texture {
	var out []*Texture
	for _, t := range d.Created {
		if t != nil && !t.Released {
			out = append(out, t)
		}
	}
	return out
}
