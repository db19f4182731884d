// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

// Package com has the minimum needed to call COM interfaces through their
// vtables without cgo.
package com

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// IUnknown vtable slots.
const (
	vtblQueryInterface = 0
	vtblAddRef         = 1
	vtblRelease        = 2
)

// HRESULT is a COM status code.
type HRESULT uint32

// Failed reports whether hr is an error code.
func (hr HRESULT) Failed() bool { return int32(hr) < 0 }

func (hr HRESULT) Error() string { return fmt.Sprintf("HRESULT 0x%08X", uint32(hr)) }

// Err returns hr as an error, or nil for success codes.
func (hr HRESULT) Err() error {
	if hr.Failed() {
		return hr
	}
	return nil
}

// VtblFn returns the function pointer in slot idx of obj's vtable.
func VtblFn(obj uintptr, idx int) uintptr {
	vtablePtr := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtablePtr + uintptr(idx)*unsafe.Sizeof(uintptr(0))))
}

// Call invokes vtable slot idx on obj with obj as the implicit this.
func Call(obj uintptr, idx int, args ...uintptr) uintptr {
	all := make([]uintptr, 0, len(args)+1)
	all = append(all, obj)
	all = append(all, args...)
	r, _, _ := syscall.SyscallN(VtblFn(obj, idx), all...)
	return r
}

// AddRef increments obj's reference count.
func AddRef(obj uintptr) {
	if obj != 0 {
		Call(obj, vtblAddRef)
	}
}

// Release decrements obj's reference count.
func Release(obj uintptr) {
	if obj != 0 {
		Call(obj, vtblRelease)
	}
}

// QueryInterface asks obj for the interface iid. The returned pointer holds
// a reference that the caller must Release.
func QueryInterface(obj uintptr, iid *windows.GUID) (uintptr, error) {
	var out uintptr
	hr := HRESULT(Call(obj, vtblQueryInterface,
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	))
	if err := hr.Err(); err != nil {
		return 0, err
	}
	return out, nil
}
