// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// flushTimeout bounds the fence wait in HalDevice.Flush.
const flushTimeout = 5 * time.Second

// HalDevice implements Device on top of a gogpu/wgpu HAL device.
//
// Copies are recorded into their own command buffers and submitted
// immediately without a fence; Flush submits a fenced empty batch, waits
// for it, and then frees every command buffer submitted since the previous
// Flush.
type HalDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// owned is true when the device was opened by this package and must be
	// destroyed on Release.
	owned bool

	pending []hal.CommandBuffer
}

var _ Device = (*HalDevice)(nil)

// NewHalDevice wraps an existing HAL device and queue. Release does not
// destroy them.
func NewHalDevice(device hal.Device, queue hal.Queue) *HalDevice {
	return &HalDevice{device: device, queue: queue}
}

// FromProvider shares the HAL device of a host framework. The provider must
// also expose HalDevice() and HalQueue(), as gogpu's providers do.
func FromProvider(provider gpucontext.DeviceProvider) (*HalDevice, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("native: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("native: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("native: provider HalQueue is not hal.Queue")
	}
	return NewHalDevice(device, queue), nil
}

// OpenHal opens a device on the registered HAL backend with the given id.
// The backend package must have been imported for its registration to run.
func OpenHal(id gputypes.Backend) (*HalDevice, error) {
	backend, ok := hal.GetBackend(id)
	if !ok {
		return nil, fmt.Errorf("%w: hal backend %v not registered", ErrUnsupported, id)
	}
	return OpenHalBackend(backend)
}

// OpenHalBackend creates an instance on backend and opens the first
// hardware adapter, falling back to whatever adapter comes first.
func OpenHalBackend(backend hal.Backend) (*HalDevice, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no GPU adapters found", ErrUnsupported)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &HalDevice{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		owned:    true,
	}, nil
}

// HalDevice returns the underlying hal.Device, letting a HalDevice act as
// a HAL provider for other gogpu components.
func (d *HalDevice) HalDevice() any { return d.device }

// HalQueue returns the underlying hal.Queue.
func (d *HalDevice) HalQueue() any { return d.queue }

type halTexture struct {
	owner  *HalDevice
	tex    hal.Texture
	usage  gputypes.TextureUsage
	width  uint32
	height uint32
}

func (t *halTexture) ClientBuffer() uintptr {
	if t.tex == nil {
		return 0
	}
	return t.tex.NativeHandle()
}

func (t *halTexture) Release() {
	if t.tex == nil || t.owner.device == nil {
		return
	}
	t.owner.device.DestroyTexture(t.tex)
	t.tex = nil
}

// CreateTexture creates a 2D texture. Copy usage is always added so that
// CopyTexture works in both directions. Shared is accepted but has no HAL
// equivalent; SharedHandle falls back to the backend's native handle.
func (d *HalDevice) CreateTexture(desc *TextureDescriptor) (Texture, error) {
	if d.device == nil {
		return nil, ErrReleased
	}
	if err := validate(desc); err != nil {
		return nil, err
	}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage | gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}
	return &halTexture{owner: d, tex: tex, usage: desc.Usage, width: desc.Width, height: desc.Height}, nil
}

func (d *HalDevice) own(t Texture) (*halTexture, error) {
	ht, ok := t.(*halTexture)
	if !ok || ht.owner != d || ht.tex == nil {
		return nil, ErrForeignTexture
	}
	return ht, nil
}

// CopyTexture records and submits a texture-to-texture copy. Both textures
// are transitioned to copy usage and back so that the next frame finds them
// in the usage they were created for.
func (d *HalDevice) CopyTexture(dst, src Texture) error {
	if d.device == nil {
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

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "shared_texture_copy_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("shared_texture_copy"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{
		{Texture: s.tex, Usage: hal.TextureUsageTransition{OldUsage: s.usage, NewUsage: gputypes.TextureUsageCopySrc}},
		{Texture: t.tex, Usage: hal.TextureUsageTransition{OldUsage: t.usage, NewUsage: gputypes.TextureUsageCopyDst}},
	})
	encoder.CopyTextureToTexture(s.tex, t.tex, []hal.TextureCopy{{
		SrcBase: hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
		DstBase: hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		Size:    hal.Extent3D{Width: min(s.width, t.width), Height: min(s.height, t.height), DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{
		{Texture: s.tex, Usage: hal.TextureUsageTransition{OldUsage: gputypes.TextureUsageCopySrc, NewUsage: s.usage}},
		{Texture: t.tex, Usage: hal.TextureUsageTransition{OldUsage: gputypes.TextureUsageCopyDst, NewUsage: t.usage}},
	})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, nil, 0); err != nil {
		d.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("submit: %w", err)
	}
	d.pending = append(d.pending, cmdBuf)
	return nil
}

// Flush waits for every submission made so far.
func (d *HalDevice) Flush() error {
	if d.device == nil {
		return ErrReleased
	}
	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit(nil, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, flushTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	d.freePending()
	return nil
}

func (d *HalDevice) freePending() {
	for _, cb := range d.pending {
		d.device.FreeCommandBuffer(cb)
	}
	d.pending = d.pending[:0]
}

// SharedHandle returns the backend's native handle for t. HAL has no notion
// of cross-process sharing, so this is only meaningful for backends whose
// native handle is itself shareable.
func (d *HalDevice) SharedHandle(t Texture) (uintptr, error) {
	ht, err := d.own(t)
	if err != nil {
		return 0, err
	}
	h := ht.tex.NativeHandle()
	if h == 0 {
		return 0, ErrNoSharedHandle
	}
	return h, nil
}

// Release frees pending command buffers and, for devices opened by this
// package, destroys the device and instance.
func (d *HalDevice) Release() {
	if d.device == nil {
		return
	}
	if len(d.pending) > 0 {
		_ = d.Flush()
		d.freePending()
	}
	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
}
