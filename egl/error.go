// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

import "fmt"

// Error is an EGL error code as returned by eglGetError.
type Error Int

// EGL error codes.
const (
	Success           Error = 0x3000
	NotInitialized    Error = 0x3001
	BadAccess         Error = 0x3002
	BadAlloc          Error = 0x3003
	BadAttribute      Error = 0x3004
	BadConfig         Error = 0x3005
	BadContext        Error = 0x3006
	BadCurrentSurface Error = 0x3007
	BadDisplay        Error = 0x3008
	BadMatch          Error = 0x3009
	BadNativePixmap   Error = 0x300A
	BadNativeWindow   Error = 0x300B
	BadParameter      Error = 0x300C
	BadSurface        Error = 0x300D
	ContextLost       Error = 0x300E
)

var errorNames = map[Error]string{
	Success:           "EGL_SUCCESS",
	NotInitialized:    "EGL_NOT_INITIALIZED",
	BadAccess:         "EGL_BAD_ACCESS",
	BadAlloc:          "EGL_BAD_ALLOC",
	BadAttribute:      "EGL_BAD_ATTRIBUTE",
	BadConfig:         "EGL_BAD_CONFIG",
	BadContext:        "EGL_BAD_CONTEXT",
	BadCurrentSurface: "EGL_BAD_CURRENT_SURFACE",
	BadDisplay:        "EGL_BAD_DISPLAY",
	BadMatch:          "EGL_BAD_MATCH",
	BadNativePixmap:   "EGL_BAD_NATIVE_PIXMAP",
	BadNativeWindow:   "EGL_BAD_NATIVE_WINDOW",
	BadParameter:      "EGL_BAD_PARAMETER",
	BadSurface:        "EGL_BAD_SURFACE",
	ContextLost:       "EGL_CONTEXT_LOST",
}

// String returns the EGL constant name, or the hex code for unknown values.
func (e Error) String() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EGL error 0x%04X", int32(e))
}

// Error implements the error interface.
func (e Error) Error() string {
	return "egl: " + e.String()
}

// LastError returns the pending error of p as an Error value.
func LastError(p Platform) Error {
	return Error(p.GetError())
}
