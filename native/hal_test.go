// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a noop HAL device for testing.
func createNoopDevice(t *testing.T) *HalDevice {
	t.Helper()
	d, err := OpenHalBackend(&noop.API{})
	if err != nil {
		t.Fatalf("OpenHalBackend failed: %v", err)
	}
	t.Cleanup(d.Release)
	return d
}

func bgraDesc(label string, usage gputypes.TextureUsage) *TextureDescriptor {
	return &TextureDescriptor{
		Label:  label,
		Width:  64,
		Height: 32,
		Format: gputypes.TextureFormatBGRA8Unorm,
		Usage:  usage,
	}
}

func TestHalDeviceCopyAndFlush(t *testing.T) {
	d := createNoopDevice(t)

	src, err := d.CreateTexture(bgraDesc("render", gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageTextureBinding))
	if err != nil {
		t.Fatalf("CreateTexture(render) failed: %v", err)
	}
	defer src.Release()

	dstDesc := bgraDesc("staging", gputypes.TextureUsageTextureBinding)
	dstDesc.Shared = true
	dst, err := d.CreateTexture(dstDesc)
	if err != nil {
		t.Fatalf("CreateTexture(staging) failed: %v", err)
	}
	defer dst.Release()

	for range 3 {
		if err := d.CopyTexture(dst, src); err != nil {
			t.Fatalf("CopyTexture failed: %v", err)
		}
	}
	if len(d.pending) != 3 {
		t.Errorf("pending = %d, want 3", len(d.pending))
	}
	if err := d.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(d.pending) != 0 {
		t.Errorf("pending after Flush = %d, want 0", len(d.pending))
	}
}

func TestHalDeviceSharedHandle(t *testing.T) {
	d := createNoopDevice(t)
	tex, err := d.CreateTexture(bgraDesc("staging", gputypes.TextureUsageTextureBinding))
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	defer tex.Release()

	h, err := d.SharedHandle(tex)
	switch {
	case err == nil && h == 0:
		t.Error("SharedHandle returned 0 without an error")
	case err != nil && !errors.Is(err, ErrNoSharedHandle):
		t.Errorf("SharedHandle error = %v, want nil or ErrNoSharedHandle", err)
	}
}

func TestHalDeviceInvalidTextures(t *testing.T) {
	d := createNoopDevice(t)

	if _, err := d.CreateTexture(&TextureDescriptor{Width: 0, Height: 4}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("CreateTexture(0x4) error = %v, want ErrInvalidSize", err)
	}
	if _, err := d.CreateTexture(nil); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("CreateTexture(nil) error = %v, want ErrInvalidSize", err)
	}

	other := createNoopDevice(t)
	foreign, err := other.CreateTexture(bgraDesc("foreign", gputypes.TextureUsageTextureBinding))
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	defer foreign.Release()
	own, err := d.CreateTexture(bgraDesc("own", gputypes.TextureUsageTextureBinding))
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	defer own.Release()

	if err := d.CopyTexture(own, foreign); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("CopyTexture(foreign src) error = %v, want ErrForeignTexture", err)
	}
	if _, err := d.SharedHandle(foreign); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("SharedHandle(foreign) error = %v, want ErrForeignTexture", err)
	}

	own.Release()
	if err := d.CopyTexture(foreign, own); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("CopyTexture(released) error = %v, want ErrForeignTexture", err)
	}
}

func TestHalDeviceRelease(t *testing.T) {
	d, err := OpenHalBackend(&noop.API{})
	if err != nil {
		t.Fatalf("OpenHalBackend failed: %v", err)
	}
	tex, err := d.CreateTexture(bgraDesc("t", gputypes.TextureUsageTextureBinding))
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	tex.Release()

	d.Release()
	d.Release()

	if _, err := d.CreateTexture(bgraDesc("after", gputypes.TextureUsageTextureBinding)); !errors.Is(err, ErrReleased) {
		t.Errorf("CreateTexture after Release error = %v, want ErrReleased", err)
	}
	if err := d.Flush(); !errors.Is(err, ErrReleased) {
		t.Errorf("Flush after Release error = %v, want ErrReleased", err)
	}
}

func TestNewHalDeviceDoesNotOwn(t *testing.T) {
	opened := createNoopDevice(t)

	shared := NewHalDevice(opened.device, opened.queue)
	shared.Release()

	// The underlying device is still usable by its owner.
	tex, err := opened.CreateTexture(bgraDesc("still-alive", gputypes.TextureUsageTextureBinding))
	if err != nil {
		t.Fatalf("CreateTexture on owner after borrowed Release failed: %v", err)
	}
	tex.Release()
}

// mockProvider implements gpucontext.DeviceProvider and exposes HAL types
// the way gogpu's providers do.
type mockProvider struct {
	halDevice any
	halQueue  any
}

func (m *mockProvider) Device() gpucontext.Device             { return nil }
func (m *mockProvider) Queue() gpucontext.Queue               { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) HalDevice() any                        { return m.halDevice }
func (m *mockProvider) HalQueue() any                         { return m.halQueue }

// plainProvider has no HAL accessors.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return nil }
func (plainProvider) Queue() gpucontext.Queue               { return nil }
func (plainProvider) Adapter() gpucontext.Adapter           { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

func TestFromProvider(t *testing.T) {
	opened := createNoopDevice(t)

	d, err := FromProvider(&mockProvider{halDevice: opened.device, halQueue: opened.queue})
	if err != nil {
		t.Fatalf("FromProvider failed: %v", err)
	}
	if d.HalDevice().(hal.Device) != opened.device {
		t.Error("FromProvider did not share the provider's device")
	}
	if d.owned {
		t.Error("shared device marked as owned")
	}

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"wrong device type", &mockProvider{halDevice: "device", halQueue: opened.queue}},
		{"nil queue", &mockProvider{halDevice: opened.device}},
		{"no hal accessors", plainProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromProvider(tt.provider); err == nil {
				t.Error("FromProvider succeeded, want error")
			}
		})
	}
}

func TestOpenHalUnregistered(t *testing.T) {
	if _, err := OpenHal(gputypes.Backend(255)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("OpenHal(unregistered) error = %v, want ErrUnsupported", err)
	}
}
