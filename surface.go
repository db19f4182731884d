// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"fmt"

	"github.com/gogpu/angle/egl"
)

// pbufferRenderables is the order in which client API levels are tried for
// shared-texture pbuffers. Older hardware without ES3 gets one retry at ES2.
var pbufferRenderables = []egl.Int{egl.OpenGLES3Bit, egl.OpenGLES2Bit}

// CreateSurface creates the drawable surface, replacing any existing one.
//
// With a nil target the Manager builds a SharedTextureTarget of the given
// size on the native device and wraps its render texture in a pbuffer. A
// *SharedTextureTarget is (re)initialized at the given size the same way.
// A WindowTarget gets a fixed-size window surface using the config chosen
// by New.
//
// On failure the Manager is left without a surface.
func (m *Manager) CreateSurface(target RenderTarget, width, height int32, vsync bool) error {
	if m.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	m.DestroySurface()

	var (
		surface egl.Surface
		err     error
	)
	switch t := target.(type) {
	case nil:
		st := NewSharedTextureTarget(width, height)
		surface, err = m.createSharedTextureSurface(st)
		target = st
	case *SharedTextureTarget:
		if t == nil {
			t = NewSharedTextureTarget(width, height)
			target = t
		}
		t.width, t.height = width, height
		surface, err = m.createSharedTextureSurface(t)
	case WindowTarget:
		surface, err = m.createWindowSurface(t, width, height)
	default:
		err = fmt.Errorf("%w: unknown render target %T", ErrSurfaceCreation, target)
	}
	if err != nil {
		return err
	}

	m.width = width
	m.height = height
	m.surface = surface
	m.target = target
	Logger().Debug("angle: surface created", "width", width, "height", height, "target", fmt.Sprintf("%T", target))

	if err := m.SetVSyncEnabled(vsync); err != nil {
		Logger().Warn("angle: vsync not applied", "err", err)
	}
	return nil
}

func (m *Manager) createSharedTextureSurface(st *SharedTextureTarget) (egl.Surface, error) {
	dev, ok := m.Device()
	if !ok {
		return egl.NoSurface, fmt.Errorf("%w: %w", ErrSurfaceCreation, ErrNoDevice)
	}
	if err := st.Initialize(dev); err != nil {
		return egl.NoSurface, fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}

	surface, err := m.createPbuffer(st)
	if err != nil {
		st.Release()
		return egl.NoSurface, err
	}
	st.SetSurface(surface, 0)
	m.bindBackBuffer(surface)
	return surface, nil
}

// createPbuffer wraps the render texture of st in a pbuffer, trying each
// level of pbufferRenderables once.
func (m *Manager) createPbuffer(st *SharedTextureTarget) (egl.Surface, error) {
	p := m.platform
	buf := egl.ClientBuffer(st.Texture().ClientBuffer())
	surfaceAttribs := []egl.Int{
		egl.Width, egl.Int(st.Width()),
		egl.Height, egl.Int(st.Height()),
		egl.TextureTarget, egl.Texture2D,
		egl.TextureFormat, egl.TextureRGBA,
		egl.None,
	}

	var code egl.Error
	for i, renderable := range pbufferRenderables {
		last := i == len(pbufferRenderables)-1
		configAttribs := []egl.Int{
			egl.RenderableType, renderable,
			egl.SurfaceType, egl.PbufferBit,
			egl.RedSize, 8,
			egl.GreenSize, 8,
			egl.BlueSize, 8,
			egl.AlphaSize, 8,
			egl.DepthSize, 8,
			egl.StencilSize, 8,
			egl.None,
		}
		config, ok := p.ChooseConfig(m.display, configAttribs)
		if ok {
			surface := p.CreatePbufferFromClientBuffer(m.display, egl.D3DTextureANGLE, buf, config, surfaceAttribs)
			if surface != egl.NoSurface {
				return surface, nil
			}
		}
		if last {
			code = logEGLError(p, "failed to create pbuffer surface", "renderable", fmt.Sprintf("0x%X", int32(renderable)))
			break
		}
		code = egl.LastError(p)
		Logger().Debug("angle: pbuffer unavailable, retrying at a lower client API level",
			"renderable", fmt.Sprintf("0x%X", int32(renderable)), "egl_error", code.String())
	}
	return egl.NoSurface, fmt.Errorf("%w: pbuffer: %w", ErrSurfaceCreation, code)
}

// bindBackBuffer makes surface current just long enough to bind its back
// buffer to the render texture, then restores the previous surfaces.
func (m *Manager) bindBackBuffer(surface egl.Surface) {
	p := m.platform
	draw := p.GetCurrentSurface(egl.Draw)
	read := p.GetCurrentSurface(egl.Read)

	if !p.MakeCurrent(m.display, surface, surface, m.context) {
		logEGLError(p, "failed to make pbuffer current")
		return
	}
	if !p.BindTexImage(m.display, surface, egl.BackBuffer) {
		logEGLError(p, "failed to bind pbuffer back buffer")
	}
	if !p.MakeCurrent(m.display, draw, read, m.context) {
		logEGLError(p, "failed to restore current surfaces")
	}
}

func (m *Manager) createWindowSurface(t WindowTarget, width, height int32) (egl.Surface, error) {
	p := m.platform
	attribs := []egl.Int{
		egl.FixedSizeANGLE, egl.True,
		egl.Width, egl.Int(width),
		egl.Height, egl.Int(height),
		egl.None,
	}
	surface := p.CreateWindowSurface(m.display, m.config, t.Window, attribs)
	if surface == egl.NoSurface {
		code := logEGLError(p, "surface creation failed")
		return egl.NoSurface, fmt.Errorf("%w: window: %w", ErrSurfaceCreation, code)
	}
	return surface, nil
}

// CreateSurfaceFromHandle wraps an arbitrary client buffer, such as a D3D
// texture or share handle, in a pbuffer using the Manager's config. The
// caller owns the returned surface.
func (m *Manager) CreateSurfaceFromHandle(handleType egl.Enum, handle egl.ClientBuffer, attribs []egl.Int) (egl.Surface, error) {
	if m.closed {
		return egl.NoSurface, ErrClosed
	}
	p := m.platform
	surface := p.CreatePbufferFromClientBuffer(m.display, handleType, handle, m.config, attribs)
	if surface == egl.NoSurface {
		code := logEGLError(p, "failed to create surface from handle")
		return egl.NoSurface, fmt.Errorf("%w: %w", ErrSurfaceCreation, code)
	}
	return surface, nil
}

// ResizeSurface recreates the surface at a new size. It does nothing when
// the size matches SurfaceDimensions.
//
// If the new surface cannot be created the error is logged and returned and
// the Manager stays usable without a surface until the next successful
// CreateSurface or ResizeSurface.
func (m *Manager) ResizeSurface(target RenderTarget, width, height int32, vsync bool) error {
	if m.closed {
		return ErrClosed
	}
	if w, h := m.SurfaceDimensions(); w == width && h == height {
		return nil
	}

	m.width = width
	m.height = height

	if err := m.ClearContext(); err != nil {
		Logger().Debug("angle: clear context before resize", "err", err)
	}
	m.DestroySurface()
	if err := m.CreateSurface(target, width, height, vsync); err != nil {
		Logger().Warn("angle: resize failed to create surface", "width", width, "height", height, "err", err)
		return err
	}
	return nil
}

// DestroySurface destroys the current surface and releases its render
// target. It is safe to call when there is no surface.
func (m *Manager) DestroySurface() {
	if m.surface != egl.NoSurface && m.display != egl.NoDisplay {
		if !m.platform.DestroySurface(m.display, m.surface) {
			logEGLError(m.platform, "failed to destroy surface")
		}
		Logger().Debug("angle: surface destroyed")
	}
	m.surface = egl.NoSurface

	if st, ok := m.target.(*SharedTextureTarget); ok && st != nil {
		st.Release()
	}
	m.target = nil
}

// SwapBuffers presents the current surface.
//
// For a shared-texture surface, a successful present is followed by
// Unlock, which blocks until the staging texture holds the frame, and then
// by the accelerated paint callback with the shared handle and the target
// size. A failed copy is logged and skips the callback; the result of the
// present is returned either way.
func (m *Manager) SwapBuffers() error {
	if m.closed {
		return ErrClosed
	}
	if m.surface == egl.NoSurface {
		return ErrNoSurface
	}

	p := m.platform
	if !p.SwapBuffers(m.display, m.surface) {
		code := logEGLError(p, "failed to swap buffers")
		return fmt.Errorf("%w: %w", ErrSwap, code)
	}

	st, ok := m.target.(*SharedTextureTarget)
	if !ok || st == nil {
		return nil
	}
	if err := st.Unlock(); err != nil {
		Logger().Warn("angle: shared texture not updated", "err", err)
		return nil
	}
	if fn := m.opts.onPaint; fn != nil {
		fn(st.SharedHandle(), int(st.Width()), int(st.Height()))
	}
	return nil
}

// SetVSyncEnabled sets whether presents wait for the vertical blank.
//
// Under the default VSyncCompositor policy frame pacing is left to the
// system compositor and this does nothing. Under VSyncSwapInterval it makes
// the surface current and sets the EGL swap interval to 1 or 0.
func (m *Manager) SetVSyncEnabled(enabled bool) error {
	if m.opts.vsync == VSyncCompositor {
		return nil
	}
	if m.closed {
		return ErrClosed
	}
	if m.surface == egl.NoSurface {
		return ErrNoSurface
	}

	p := m.platform
	if !p.MakeCurrent(m.display, m.surface, m.surface, m.context) {
		code := logEGLError(p, "unable to make surface current to update the swap interval")
		return fmt.Errorf("%w: %w", ErrMakeCurrent, code)
	}
	interval := egl.Int(0)
	if enabled {
		interval = 1
	}
	if !p.SwapInterval(m.display, interval) {
		code := logEGLError(p, "unable to update the swap interval")
		return fmt.Errorf("angle: swap interval: %w", code)
	}
	return nil
}
