// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !windows

package egl

// ANGLE's D3D11 renderer only exists on Windows.
func openPlatform() (Platform, error) {
	return nil, ErrUnavailable
}
