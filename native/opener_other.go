// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !windows

package native

func defaultOpener(ptr uintptr) (Device, error) {
	if ptr == 0 {
		return nil, ErrNilDevice
	}
	return nil, ErrUnsupported
}
