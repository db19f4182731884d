// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"testing"

	"github.com/gogpu/angle/native"
	"github.com/gogpu/angle/native/nativetest"
)

// TestDefaultOptions tests the values New uses without options.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()

	if o.platform != nil {
		t.Error("default platform set, want nil until New opens one")
	}
	if o.opener == nil {
		t.Error("default opener is nil")
	}
	if len(o.tiers) != 3 {
		t.Errorf("default tiers = %d, want 3", len(o.tiers))
	}
	if o.clientVersion != DefaultClientVersion {
		t.Errorf("clientVersion = %d, want %d", o.clientVersion, DefaultClientVersion)
	}
	if o.vsync != VSyncCompositor {
		t.Errorf("vsync = %v, want VSyncCompositor", o.vsync)
	}
}

// TestOptionsIgnoreZeroValues tests that zero arguments keep the defaults.
func TestOptionsIgnoreZeroValues(t *testing.T) {
	o := defaultOptions()
	WithOpener(nil)(&o)
	WithClientVersion(0)(&o)
	WithClientVersion(-3)(&o)

	if o.opener == nil {
		t.Error("WithOpener(nil) cleared the opener")
	}
	if o.clientVersion != DefaultClientVersion {
		t.Errorf("clientVersion = %d, want %d", o.clientVersion, DefaultClientVersion)
	}
}

// TestOptionsApply tests that each option reaches the options struct.
func TestOptionsApply(t *testing.T) {
	dev := nativetest.New()
	var called bool

	o := defaultOptions()
	for _, opt := range []Option{
		WithOpener(dev.Opener()),
		WithClientVersion(3),
		WithVSyncPolicy(VSyncSwapInterval),
		WithAcceleratedPaintCallback(func(uintptr, int, int) { called = true }),
	} {
		opt(&o)
	}

	got, err := o.opener(1)
	if err != nil {
		t.Fatalf("opener error = %v", err)
	}
	if got != native.Device(dev) {
		t.Error("WithOpener did not install the opener")
	}
	if o.clientVersion != 3 {
		t.Errorf("clientVersion = %d, want 3", o.clientVersion)
	}
	if o.vsync != VSyncSwapInterval {
		t.Errorf("vsync = %v, want VSyncSwapInterval", o.vsync)
	}
	o.onPaint(0, 0, 0)
	if !called {
		t.Error("WithAcceleratedPaintCallback did not install the callback")
	}
}
