// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"fmt"
	"strings"

	"github.com/gogpu/angle/egl"
)

// Backend selects the native renderer ANGLE translates to.
type Backend int

const (
	// BackendD3D11 is ANGLE's Direct3D 11 renderer.
	BackendD3D11 Backend = iota
	// BackendD3D9 is ANGLE's legacy Direct3D 9 renderer.
	BackendD3D9
	// BackendDefault lets ANGLE pick.
	BackendDefault
)

func (b Backend) String() string {
	switch b {
	case BackendD3D11:
		return "d3d11"
	case BackendD3D9:
		return "d3d9"
	case BackendDefault:
		return "default"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

func (b Backend) attrib() egl.Int {
	switch b {
	case BackendD3D9:
		return egl.PlatformANGLETypeD3D9
	case BackendDefault:
		return egl.PlatformANGLETypeDefault
	}
	return egl.PlatformANGLETypeD3D11
}

// ParseBackend parses the String form of a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d3d11", "":
		return BackendD3D11, nil
	case "d3d9":
		return BackendD3D9, nil
	case "default":
		return BackendDefault, nil
	}
	return 0, fmt.Errorf("angle: unknown backend %q", s)
}

// Tier is one capability request tried while opening the display
// connection.
type Tier struct {
	// Name identifies the tier in logs.
	Name string

	Backend Backend

	// MaxVersionMajor and MaxVersionMinor cap the native feature level.
	// Zero means unconstrained.
	MaxVersionMajor int
	MaxVersionMinor int

	// Software requests the software rasterizer (WARP on D3D11).
	Software bool

	// AutomaticTrim lets ANGLE trim driver memory when the app is
	// suspended.
	AutomaticTrim bool

	// FastPresentPath renders straight into the swapchain in its native
	// orientation.
	FastPresentPath bool
}

// DefaultTiers returns the standard fallback order: D3D11 on hardware, D3D11
// limited to feature level 9_3, then D3D11 WARP.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Name:            "d3d11",
			Backend:         BackendD3D11,
			AutomaticTrim:   true,
			FastPresentPath: true,
		},
		{
			Name:            "d3d11-fl9_3",
			Backend:         BackendD3D11,
			MaxVersionMajor: 9,
			MaxVersionMinor: 3,
			AutomaticTrim:   true,
		},
		{
			Name:          "d3d11-warp",
			Backend:       BackendD3D11,
			Software:      true,
			AutomaticTrim: true,
		},
	}
}

// Attribs returns the display attribute list for eglGetPlatformDisplayEXT,
// terminated by EGL_NONE.
func (t Tier) Attribs() []egl.Int {
	attribs := []egl.Int{egl.PlatformANGLEType, t.Backend.attrib()}
	if t.MaxVersionMajor > 0 {
		attribs = append(attribs,
			egl.PlatformANGLEMaxVersionMajor, egl.Int(t.MaxVersionMajor),
			egl.PlatformANGLEMaxVersionMinor, egl.Int(t.MaxVersionMinor),
		)
	}
	if t.Software {
		attribs = append(attribs, egl.PlatformANGLEDeviceType, egl.PlatformANGLEDeviceTypeD3DWARP)
	}
	if t.AutomaticTrim {
		attribs = append(attribs, egl.PlatformANGLEEnableAutomaticTrim, egl.True)
	}
	if t.FastPresentPath {
		attribs = append(attribs, egl.ExperimentalPresentPath, egl.ExperimentalPresentPathFast)
	}
	return append(attribs, egl.None)
}

func (t Tier) String() string {
	if t.Name != "" {
		return t.Name
	}
	s := t.Backend.String()
	if t.MaxVersionMajor > 0 {
		s += fmt.Sprintf("-fl%d_%d", t.MaxVersionMajor, t.MaxVersionMinor)
	}
	if t.Software {
		s += "-warp"
	}
	return s
}
