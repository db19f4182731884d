// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativetest

import (
	"errors"
	"testing"

	"github.com/gogpu/angle/native"
)

func TestDeviceTextures(t *testing.T) {
	d := New()
	a, err := d.CreateTexture(&native.TextureDescriptor{Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	b, err := d.CreateTexture(&native.TextureDescriptor{Width: 4, Height: 4, Shared: true})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	if a.ClientBuffer() == 0 || a.ClientBuffer() == b.ClientBuffer() {
		t.Errorf("client buffers %#x, %#x; want distinct non-zero", a.ClientBuffer(), b.ClientBuffer())
	}

	if _, err := d.SharedHandle(a); !errors.Is(err, native.ErrNoSharedHandle) {
		t.Errorf("SharedHandle(unshared) error = %v, want ErrNoSharedHandle", err)
	}
	h, err := d.SharedHandle(b)
	if err != nil || h == 0 {
		t.Errorf("SharedHandle(shared) = %#x, %v", h, err)
	}

	if err := d.CopyTexture(b, a); err != nil {
		t.Fatalf("CopyTexture failed: %v", err)
	}
	if b.(*Texture).Generation != 1 {
		t.Error("copy not recorded on the destination")
	}

	a.Release()
	if live := d.Live(); len(live) != 1 || live[0] != b {
		t.Errorf("Live() = %v, want only the shared texture", live)
	}
}

func TestDeviceScriptedFailures(t *testing.T) {
	d := New()
	d.FailCreateAt = 1
	if _, err := d.CreateTexture(&native.TextureDescriptor{Width: 1, Height: 1}); !errors.Is(err, ErrInjected) {
		t.Errorf("CreateTexture error = %v, want ErrInjected", err)
	}
	if _, err := d.CreateTexture(&native.TextureDescriptor{Width: 1, Height: 1}); err != nil {
		t.Errorf("second CreateTexture error = %v, want nil", err)
	}

	other := New()
	foreign, _ := other.CreateTexture(&native.TextureDescriptor{Width: 1, Height: 1})
	own, _ := d.CreateTexture(&native.TextureDescriptor{Width: 1, Height: 1})
	if err := d.CopyTexture(own, foreign); !errors.Is(err, native.ErrForeignTexture) {
		t.Errorf("CopyTexture(foreign) error = %v, want ErrForeignTexture", err)
	}

	var released int
	d.OnRelease = func() { released++ }
	d.Release()
	d.Release()
	if released != 1 {
		t.Errorf("OnRelease ran %d times, want 1", released)
	}
	if _, err := d.CreateTexture(&native.TextureDescriptor{Width: 1, Height: 1}); !errors.Is(err, native.ErrReleased) {
		t.Errorf("CreateTexture after Release error = %v, want ErrReleased", err)
	}
}

func TestOpener(t *testing.T) {
	d := New()
	open := d.Opener()
	if _, err := open(0); !errors.Is(err, native.ErrNilDevice) {
		t.Errorf("open(0) error = %v, want ErrNilDevice", err)
	}
	got, err := open(0x10)
	if err != nil || got != native.Device(d) {
		t.Errorf("open(0x10) = %v, %v; want the device", got, err)
	}
	if len(d.Opened) != 1 || d.Opened[0] != 0x10 {
		t.Errorf("Opened = %v, want [0x10]", d.Opened)
	}
}
