// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"github.com/gogpu/angle/egl"
	"github.com/gogpu/angle/native"
)

// Device returns the native GPU device behind the display connection.
//
// The device is resolved through EGL_EXT_device_query on first use and
// cached. It reports false when the query entry points are missing, a query
// fails or the configured Opener rejects the pointer. The returned device is
// owned by the Manager and released by Close before any context is
// destroyed; callers must not release it.
func (m *Manager) Device() (native.Device, bool) {
	if m.device != nil {
		return m.device, true
	}
	if m.closed {
		return nil, false
	}

	p := m.platform
	if !p.HasProc(egl.ProcQueryDisplayAttribEXT) || !p.HasProc(egl.ProcQueryDeviceAttribEXT) {
		Logger().Debug("angle: EGL device query not available")
		return nil, false
	}

	eglDevice, ok := p.QueryDisplayAttribEXT(m.display, egl.DeviceEXTAttrib)
	if !ok {
		logEGLError(p, "failed to query the EGL device")
		return nil, false
	}
	ptr, ok := p.QueryDeviceAttribEXT(egl.DeviceEXT(eglDevice), egl.D3D11DeviceANGLE)
	if !ok {
		logEGLError(p, "failed to query the D3D11 device")
		return nil, false
	}

	dev, err := m.opts.opener(uintptr(ptr))
	if err != nil {
		Logger().Error("angle: failed to open native device", "err", err)
		return nil, false
	}

	m.device = dev
	m.scope.hold(func() {
		dev.Release()
		m.device = nil
	})
	return dev, true
}
