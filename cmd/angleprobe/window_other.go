// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !windows

package main

import (
	"errors"

	"github.com/gogpu/angle/egl"
)

func openWindow(width, height int32) (egl.NativeWindowType, func(), error) {
	return 0, nil, errors.New("window mode requires Windows")
}
