// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package native

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"golang.org/x/sys/windows"

	"github.com/gogpu/angle/internal/com"
)

// D3D11 / DXGI values.
const (
	dxgiFormatB8G8R8A8Unorm = 87
	dxgiFormatR8G8B8A8Unorm = 28

	d3d11UsageDefault = 0

	d3d11BindShaderResource = 0x8
	d3d11BindRenderTarget   = 0x20

	d3d11ResourceMiscShared = 0x2
)

// COM vtable slots.
const (
	d3d11DeviceCreateTexture2D     = 5  // ID3D11Device
	d3d11DeviceGetImmediateContext = 40 // ID3D11Device
	d3d11CtxCopyResource           = 47 // ID3D11DeviceContext
	d3d11CtxFlush                  = 111
	dxgiResourceGetSharedHandle    = 8 // IDXGIResource
)

var iidIDXGIResource = windows.GUID{
	Data1: 0x035f3ab4, Data2: 0x482e, Data3: 0x4e50,
	Data4: [8]byte{0xb4, 0x1f, 0x8a, 0x7f, 0x8b, 0xd8, 0x96, 0x0b},
}

// d3d11Texture2DDesc matches D3D11_TEXTURE2D_DESC.
type d3d11Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleCount    uint32
	SampleQuality  uint32
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// D3D11Device is a reference to an ID3D11Device and its immediate context.
type D3D11Device struct {
	device uintptr
	ctx    uintptr
}

var _ Device = (*D3D11Device)(nil)

func defaultOpener(ptr uintptr) (Device, error) {
	return OpenD3D11(ptr)
}

// OpenD3D11 takes a new reference on the ID3D11Device at ptr, typically the
// value of EGL_D3D11_DEVICE_ANGLE.
func OpenD3D11(ptr uintptr) (*D3D11Device, error) {
	if ptr == 0 {
		return nil, ErrNilDevice
	}
	com.AddRef(ptr)
	var ctx uintptr
	com.Call(ptr, d3d11DeviceGetImmediateContext, uintptr(unsafe.Pointer(&ctx)))
	if ctx == 0 {
		com.Release(ptr)
		return nil, fmt.Errorf("native: ID3D11Device has no immediate context")
	}
	return &D3D11Device{device: ptr, ctx: ctx}, nil
}

type d3d11Texture struct {
	owner *D3D11Device
	ptr   uintptr
}

func (t *d3d11Texture) ClientBuffer() uintptr { return t.ptr }

func (t *d3d11Texture) Release() {
	com.Release(t.ptr)
	t.ptr = 0
}

func dxgiFormat(f gputypes.TextureFormat) (uint32, error) {
	switch f {
	case gputypes.TextureFormatBGRA8Unorm:
		return dxgiFormatB8G8R8A8Unorm, nil
	case gputypes.TextureFormatRGBA8Unorm:
		return dxgiFormatR8G8B8A8Unorm, nil
	}
	return 0, fmt.Errorf("native: unsupported texture format %v", f)
}

func bindFlags(u gputypes.TextureUsage) uint32 {
	var flags uint32
	if u&gputypes.TextureUsageRenderAttachment != 0 {
		flags |= d3d11BindRenderTarget
	}
	if u&gputypes.TextureUsageTextureBinding != 0 {
		flags |= d3d11BindShaderResource
	}
	return flags
}

func (d *D3D11Device) CreateTexture(desc *TextureDescriptor) (Texture, error) {
	if d.device == 0 {
		return nil, ErrReleased
	}
	if err := validate(desc); err != nil {
		return nil, err
	}
	format, err := dxgiFormat(desc.Format)
	if err != nil {
		return nil, err
	}
	td := d3d11Texture2DDesc{
		Width:       desc.Width,
		Height:      desc.Height,
		MipLevels:   1,
		ArraySize:   1,
		Format:      format,
		SampleCount: 1,
		Usage:       d3d11UsageDefault,
		BindFlags:   bindFlags(desc.Usage),
	}
	if desc.Shared {
		td.MiscFlags = d3d11ResourceMiscShared
	}
	var tex uintptr
	hr := com.HRESULT(com.Call(d.device, d3d11DeviceCreateTexture2D,
		uintptr(unsafe.Pointer(&td)),
		0,
		uintptr(unsafe.Pointer(&tex)),
	))
	if err := hr.Err(); err != nil {
		return nil, fmt.Errorf("CreateTexture2D %q: %w", desc.Label, err)
	}
	return &d3d11Texture{owner: d, ptr: tex}, nil
}

func (d *D3D11Device) own(t Texture) (*d3d11Texture, error) {
	dt, ok := t.(*d3d11Texture)
	if !ok || dt.owner != d || dt.ptr == 0 {
		return nil, ErrForeignTexture
	}
	return dt, nil
}

func (d *D3D11Device) CopyTexture(dst, src Texture) error {
	if d.device == 0 {
		return ErrReleased
	}
	s, err := d.own(src)
	if err != nil {
		return err
	}
	t, err := d.own(dst)
	if err != nil {
		return err
	}
	com.Call(d.ctx, d3d11CtxCopyResource, t.ptr, s.ptr)
	return nil
}

// Flush submits the immediate context's command queue. D3D11 gives no
// completion signal here; the keyed-mutex or the consumer's own sync is
// what orders access on the other side of the shared handle.
func (d *D3D11Device) Flush() error {
	if d.device == 0 {
		return ErrReleased
	}
	com.Call(d.ctx, d3d11CtxFlush)
	return nil
}

func (d *D3D11Device) SharedHandle(t Texture) (uintptr, error) {
	dt, err := d.own(t)
	if err != nil {
		return 0, err
	}
	res, err := com.QueryInterface(dt.ptr, &iidIDXGIResource)
	if err != nil {
		return 0, fmt.Errorf("query IDXGIResource: %w", err)
	}
	defer com.Release(res)

	var handle uintptr
	hr := com.HRESULT(com.Call(res, dxgiResourceGetSharedHandle, uintptr(unsafe.Pointer(&handle))))
	if err := hr.Err(); err != nil {
		return 0, fmt.Errorf("GetSharedHandle: %w", err)
	}
	if handle == 0 {
		return 0, ErrNoSharedHandle
	}
	return handle, nil
}

// Release drops the immediate context and device references.
func (d *D3D11Device) Release() {
	com.Release(d.ctx)
	com.Release(d.device)
	d.ctx = 0
	d.device = 0
}
