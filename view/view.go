// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package view connects a host view to the frames an angle.Manager
// produces.
//
// A View holds two independent callbacks. The accelerated callback receives
// the OS shared handle of each presented shared-texture frame and is
// forwarded to the Manager. The paint callback is the CPU pixel path: it is
// invoked through Paint by whatever produces pixel buffers and is never
// called by the Manager itself.
package view

import (
	"sync"

	"github.com/gogpu/angle"
)

// PaintFunc receives a frame as tightly packed BGRA pixels.
type PaintFunc func(buffer []byte, width, height int)

// AcceleratedPainter is implemented by *angle.Manager.
type AcceleratedPainter interface {
	SetAcceleratedPaintCallback(fn angle.AcceleratedPaintFunc)
}

var _ AcceleratedPainter = (*angle.Manager)(nil)

// View routes frame notifications to host callbacks. The zero value is
// ready to use. A View is safe for concurrent use: callbacks may be
// replaced from the UI goroutine while frames arrive on the raster thread.
type View struct {
	mu          sync.RWMutex
	painter     AcceleratedPainter
	paint       PaintFunc
	accelerated angle.AcceleratedPaintFunc
}

// New returns a View bound to painter. painter may be nil and attached
// later with Attach.
func New(painter AcceleratedPainter) *View {
	v := &View{}
	v.Attach(painter)
	return v
}

// Attach binds the view to painter and forwards the current accelerated
// callback to it.
func (v *View) Attach(painter AcceleratedPainter) {
	v.mu.Lock()
	v.painter = painter
	v.mu.Unlock()
	if painter != nil {
		painter.SetAcceleratedPaintCallback(v.onAcceleratedPaint)
	}
}

// Detach removes the view's callback from its painter.
func (v *View) Detach() {
	v.mu.Lock()
	painter := v.painter
	v.painter = nil
	v.mu.Unlock()
	if painter != nil {
		painter.SetAcceleratedPaintCallback(nil)
	}
}

// SetPaintCallback sets the callback for the pixel path.
func (v *View) SetPaintCallback(fn PaintFunc) {
	v.mu.Lock()
	v.paint = fn
	v.mu.Unlock()
}

// SetAcceleratedPaintCallback sets the callback for shared-texture frames.
func (v *View) SetAcceleratedPaintCallback(fn angle.AcceleratedPaintFunc) {
	v.mu.Lock()
	v.accelerated = fn
	v.mu.Unlock()
}

// Paint delivers a pixel frame to the paint callback, if any. It reports
// whether a callback ran.
func (v *View) Paint(buffer []byte, width, height int) bool {
	v.mu.RLock()
	fn := v.paint
	v.mu.RUnlock()
	if fn == nil {
		return false
	}
	fn(buffer, width, height)
	return true
}

func (v *View) onAcceleratedPaint(sharedHandle uintptr, width, height int) {
	v.mu.RLock()
	fn := v.accelerated
	v.mu.RUnlock()
	if fn != nil {
		fn(sharedHandle, width, height)
	}
}
