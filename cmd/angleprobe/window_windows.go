// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package main

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/angle/egl"
)

func init() {
	// glfw and EGL calls must stay on the main thread.
	runtime.LockOSThread()
}

// openWindow creates a glfw window without a client API and returns its HWND.
func openWindow(width, height int32) (egl.NativeWindowType, func(), error) {
	if err := glfw.Init(); err != nil {
		return 0, nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	win, err := glfw.CreateWindow(int(width), int(height), "angleprobe", nil, nil)
	if err != nil {
		glfw.Terminate()
		return 0, nil, fmt.Errorf("glfw window: %w", err)
	}
	hwnd := egl.NativeWindowType(uintptr(unsafe.Pointer(win.GetWin32Window())))
	return hwnd, func() {
		win.Destroy()
		glfw.Terminate()
	}, nil
}
