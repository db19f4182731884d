// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import "github.com/gogpu/angle/egl"

// RenderTarget is where a Manager's surface draws. It is either a
// WindowTarget or a *SharedTextureTarget; no other implementations exist.
//
// Passing a nil RenderTarget to CreateSurface asks the Manager to build a
// SharedTextureTarget itself.
type RenderTarget interface {
	renderTarget()
}

// WindowTarget renders into a swapchain owned by a native window (an HWND
// on Windows).
type WindowTarget struct {
	Window egl.NativeWindowType
}

func (WindowTarget) renderTarget() {}

var (
	_ RenderTarget = WindowTarget{}
	_ RenderTarget = (*SharedTextureTarget)(nil)
)
