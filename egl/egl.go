// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

import "errors"

// ErrUnavailable is returned by Open when no EGL implementation can be
// loaded on this platform.
var ErrUnavailable = errors.New("egl: implementation not available")

// Opaque EGL handle types. Zero is the EGL_NO_* value for each of them.
type (
	Display           uintptr
	Config            uintptr
	Context           uintptr
	Surface           uintptr
	DeviceEXT         uintptr
	ClientBuffer      uintptr
	NativeDisplayType uintptr
	NativeWindowType  uintptr
)

// Int mirrors EGLint, Enum mirrors EGLenum and Attrib mirrors EGLAttrib.
type (
	Int    int32
	Enum   uint32
	Attrib uintptr
)

const (
	NoDisplay Display   = 0
	NoConfig  Config    = 0
	NoContext Context   = 0
	NoSurface Surface   = 0
	NoDevice  DeviceEXT = 0

	DefaultDisplay NativeDisplayType = 0
)

// Platform is the set of EGL entry points the surface manager drives.
//
// Extension entry points (the *EXT methods) may be missing at runtime;
// callers must check HasProc before using them. Methods returning bool
// report EGL_TRUE as true. Handle-returning methods return the zero
// handle on failure, after which GetError reports the reason.
//
// A Platform value is used as the key of the process-wide display
// connection, so implementations must be comparable (pointer receivers
// are the usual choice).
type Platform interface {
	HasProc(name string) bool

	GetPlatformDisplayEXT(platform Enum, native NativeDisplayType, attribs []Int) Display
	Initialize(d Display) bool
	Terminate(d Display) bool

	ChooseConfig(d Display, attribs []Int) (Config, bool)
	CreateContext(d Display, c Config, share Context, attribs []Int) Context
	DestroyContext(d Display, ctx Context) bool

	CreateWindowSurface(d Display, c Config, win NativeWindowType, attribs []Int) Surface
	CreatePbufferFromClientBuffer(d Display, bufType Enum, buf ClientBuffer, c Config, attribs []Int) Surface
	DestroySurface(d Display, s Surface) bool

	MakeCurrent(d Display, draw, read Surface, ctx Context) bool
	GetCurrentSurface(readdraw Int) Surface
	BindTexImage(d Display, s Surface, buffer Int) bool
	SwapBuffers(d Display, s Surface) bool
	SwapInterval(d Display, interval Int) bool

	GetError() Int

	QueryDisplayAttribEXT(d Display, attribute Int) (Attrib, bool)
	QueryDeviceAttribEXT(dev DeviceEXT, attribute Int) (Attrib, bool)
}

// Extension entry point names accepted by Platform.HasProc.
const (
	ProcGetPlatformDisplayEXT = "eglGetPlatformDisplayEXT"
	ProcQueryDisplayAttribEXT = "eglQueryDisplayAttribEXT"
	ProcQueryDeviceAttribEXT  = "eglQueryDeviceAttribEXT"
)

// Open returns the system EGL implementation.
func Open() (Platform, error) {
	return openPlatform()
}
