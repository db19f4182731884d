// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"fmt"

	"github.com/gogpu/angle/egl"
	"github.com/gogpu/angle/native"
)

// Manager owns the GPU contexts and the drawable surface of one embedded
// view.
//
// A Manager is not safe for concurrent use. One goroutine, locked to its OS
// thread, drives the primary context; a second thread may bind the resource
// context with MakeResourceCurrent to upload resources into the shared
// namespace.
type Manager struct {
	platform egl.Platform
	conn     *connection

	display         egl.Display
	config          egl.Config
	context         egl.Context
	resourceContext egl.Context

	surface egl.Surface
	target  RenderTarget
	width   int32
	height  int32

	// device is resolved on first use and released through scope.
	device native.Device
	scope  contextScope

	opts   options
	closed bool
}

// New opens (or shares) the display connection and creates the primary and
// resource contexts.
//
// On failure New releases everything it acquired and returns an error
// wrapping ErrInitialize; a partially initialized Manager is never returned.
func New(opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := o.platform
	if p == nil {
		var err error
		p, err = egl.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInitialize, err)
		}
	}

	conn, err := connections.acquire(p, o.tiers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialize, err)
	}

	m := &Manager{
		platform: p,
		conn:     conn,
		display:  conn.display,
		opts:     o,
	}
	if err := m.createContexts(); err != nil {
		m.Close()
		return nil, fmt.Errorf("%w: %w", ErrInitialize, err)
	}
	Logger().Debug("angle: manager created", "tier", conn.tier.String())
	return m, nil
}

func (m *Manager) createContexts() error {
	p := m.platform

	configAttribs := []egl.Int{
		egl.RedSize, 8,
		egl.GreenSize, 8,
		egl.BlueSize, 8,
		egl.AlphaSize, 8,
		egl.DepthSize, 8,
		egl.StencilSize, 8,
		egl.None,
	}
	config, ok := p.ChooseConfig(m.display, configAttribs)
	if !ok {
		return fmt.Errorf("choose config: %w", logEGLError(p, "failed to choose first context"))
	}
	m.config = config

	contextAttribs := []egl.Int{egl.ContextClientVersion, egl.Int(m.opts.clientVersion), egl.None}

	m.context = p.CreateContext(m.display, config, egl.NoContext, contextAttribs)
	if m.context == egl.NoContext {
		return fmt.Errorf("create context: %w", logEGLError(p, "failed to create EGL context"))
	}

	m.resourceContext = p.CreateContext(m.display, config, m.context, contextAttribs)
	if m.resourceContext == egl.NoContext {
		return fmt.Errorf("create resource context: %w", logEGLError(p, "failed to create EGL resource context"))
	}
	return nil
}

// Close destroys the surface, releases the native device, destroys both
// contexts and drops this Manager's reference to the display connection.
// The display is terminated when the last Manager sharing it is closed.
//
// Close is idempotent.
func (m *Manager) Close() {
	if m == nil || m.closed {
		return
	}
	m.closed = true
	p := m.platform

	m.DestroySurface()

	// The native device wraps state owned by the contexts.
	m.scope.close()

	if m.resourceContext != egl.NoContext {
		if !p.DestroyContext(m.display, m.resourceContext) {
			logEGLError(p, "failed to destroy resource context")
		}
		m.resourceContext = egl.NoContext
	}
	if m.context != egl.NoContext {
		if !p.DestroyContext(m.display, m.context) {
			logEGLError(p, "failed to destroy context")
		}
		m.context = egl.NoContext
	}

	connections.release(m.conn)
	m.conn = nil
	m.display = egl.NoDisplay
	Logger().Debug("angle: manager closed")
}

// MakeCurrent binds the primary context and the current surface to the
// calling thread.
func (m *Manager) MakeCurrent() error {
	if m.closed {
		return ErrClosed
	}
	return m.makeCurrent(m.surface, m.surface, m.context)
}

// ClearContext unbinds the surface from the calling thread while keeping
// the primary context current.
func (m *Manager) ClearContext() error {
	if m.closed {
		return ErrClosed
	}
	return m.makeCurrent(egl.NoSurface, egl.NoSurface, m.context)
}

// MakeResourceCurrent binds the resource context, without a surface, to the
// calling thread.
func (m *Manager) MakeResourceCurrent() error {
	if m.closed {
		return ErrClosed
	}
	return m.makeCurrent(egl.NoSurface, egl.NoSurface, m.resourceContext)
}

func (m *Manager) makeCurrent(draw, read egl.Surface, ctx egl.Context) error {
	if !m.platform.MakeCurrent(m.display, draw, read, ctx) {
		return fmt.Errorf("%w: %w", ErrMakeCurrent, egl.LastError(m.platform))
	}
	return nil
}

// SurfaceDimensions returns the size the current surface was created with,
// or 0x0 when there is no surface.
func (m *Manager) SurfaceDimensions() (width, height int32) {
	if m.closed || m.surface == egl.NoSurface {
		return 0, 0
	}
	return m.width, m.height
}

// SetAcceleratedPaintCallback replaces the function called after every
// present of a shared-texture surface. Pass nil to remove it.
func (m *Manager) SetAcceleratedPaintCallback(fn AcceleratedPaintFunc) {
	m.opts.onPaint = fn
}

// Tier returns the capability tier the display connection was opened with.
func (m *Manager) Tier() Tier {
	if m.conn == nil {
		return Tier{}
	}
	return m.conn.tier
}

// Display returns the EGL display, or egl.NoDisplay after Close.
func (m *Manager) Display() egl.Display { return m.display }

// Config returns the config the contexts were created with.
func (m *Manager) Config() egl.Config { return m.config }

// Context returns the primary context.
func (m *Manager) Context() egl.Context { return m.context }

// ResourceContext returns the context that shares the primary context's
// object namespace.
func (m *Manager) ResourceContext() egl.Context { return m.resourceContext }

// Surface returns the current surface, or egl.NoSurface.
func (m *Manager) Surface() egl.Surface { return m.surface }

// Target returns the current render target, or nil when there is no
// surface.
func (m *Manager) Target() RenderTarget { return m.target }
