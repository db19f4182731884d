// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"slices"

	"github.com/gogpu/angle/egl"
	"github.com/gogpu/angle/native"
)

// Option configures a Manager during creation.
//
// Example:
//
//	m, err := angle.New(
//		angle.WithAcceleratedPaintCallback(onFrame),
//		angle.WithVSyncPolicy(angle.VSyncSwapInterval),
//	)
type Option func(*options)

// VSyncPolicy decides what SetVSyncEnabled does.
type VSyncPolicy int

const (
	// VSyncCompositor leaves frame pacing to the system compositor.
	// SetVSyncEnabled does nothing.
	VSyncCompositor VSyncPolicy = iota

	// VSyncSwapInterval applies the request as an EGL swap interval, so
	// that an enabled vsync blocks SwapBuffers until the vertical blank.
	VSyncSwapInterval
)

// AcceleratedPaintFunc receives the shared texture handle after every
// present of a shared-texture surface. It runs on the thread that called
// SwapBuffers and must not block for long.
type AcceleratedPaintFunc func(sharedHandle uintptr, width, height int)

// DefaultClientVersion is the GLES major version requested for contexts.
const DefaultClientVersion = 2

type options struct {
	platform      egl.Platform
	opener        native.Opener
	tiers         []Tier
	clientVersion int
	vsync         VSyncPolicy
	onPaint       AcceleratedPaintFunc
}

func defaultOptions() options {
	return options{
		opener:        native.DefaultOpener(),
		tiers:         DefaultTiers(),
		clientVersion: DefaultClientVersion,
		vsync:         VSyncCompositor,
	}
}

// WithPlatform sets the EGL implementation. By default egl.Open is used.
func WithPlatform(p egl.Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// WithOpener sets how the raw device pointer reported by ANGLE is turned
// into a native.Device. The default is native.DefaultOpener.
func WithOpener(op native.Opener) Option {
	return func(o *options) {
		if op != nil {
			o.opener = op
		}
	}
}

// WithTiers replaces the display fallback order. An empty list keeps the
// default tiers.
func WithTiers(tiers ...Tier) Option {
	return func(o *options) {
		if len(tiers) > 0 {
			o.tiers = slices.Clone(tiers)
		}
	}
}

// WithClientVersion sets EGL_CONTEXT_CLIENT_VERSION for both contexts.
func WithClientVersion(major int) Option {
	return func(o *options) {
		if major > 0 {
			o.clientVersion = major
		}
	}
}

// WithVSyncPolicy sets how SetVSyncEnabled behaves.
func WithVSyncPolicy(p VSyncPolicy) Option {
	return func(o *options) {
		o.vsync = p
	}
}

// WithAcceleratedPaintCallback registers fn to be called after each present
// of a shared-texture surface.
func WithAcceleratedPaintCallback(fn AcceleratedPaintFunc) Option {
	return func(o *options) {
		o.onPaint = fn
	}
}
