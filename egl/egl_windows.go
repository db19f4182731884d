// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package egl

import (
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// libEGL.dll ships next to the executable with ANGLE; it is not a system
// DLL, so the search path is the default one rather than System32 only.
var (
	libEGL = windows.NewLazyDLL("libEGL.dll")

	procGetProcAddress                = libEGL.NewProc("eglGetProcAddress")
	procInitialize                    = libEGL.NewProc("eglInitialize")
	procTerminate                     = libEGL.NewProc("eglTerminate")
	procChooseConfig                  = libEGL.NewProc("eglChooseConfig")
	procCreateContext                 = libEGL.NewProc("eglCreateContext")
	procDestroyContext                = libEGL.NewProc("eglDestroyContext")
	procCreateWindowSurface           = libEGL.NewProc("eglCreateWindowSurface")
	procCreatePbufferFromClientBuffer = libEGL.NewProc("eglCreatePbufferFromClientBuffer")
	procDestroySurface                = libEGL.NewProc("eglDestroySurface")
	procMakeCurrent                   = libEGL.NewProc("eglMakeCurrent")
	procGetCurrentSurface             = libEGL.NewProc("eglGetCurrentSurface")
	procBindTexImage                  = libEGL.NewProc("eglBindTexImage")
	procSwapBuffers                   = libEGL.NewProc("eglSwapBuffers")
	procSwapInterval                  = libEGL.NewProc("eglSwapInterval")
	procGetError                      = libEGL.NewProc("eglGetError")
)

// windowsPlatform calls into ANGLE's libEGL.dll.
type windowsPlatform struct {
	mu    sync.Mutex
	procs map[string]uintptr
}

var (
	sharedPlatform     *windowsPlatform
	sharedPlatformOnce sync.Once
	sharedPlatformErr  error
)

// openPlatform returns a single process-wide instance so that every Manager
// shares one display connection.
func openPlatform() (Platform, error) {
	sharedPlatformOnce.Do(func() {
		if err := libEGL.Load(); err != nil {
			sharedPlatformErr = fmt.Errorf("%w: %w", ErrUnavailable, err)
			return
		}
		sharedPlatform = &windowsPlatform{procs: make(map[string]uintptr)}
	})
	if sharedPlatformErr != nil {
		return nil, sharedPlatformErr
	}
	return sharedPlatform, nil
}

// proc resolves an extension entry point through eglGetProcAddress and
// caches the result, including misses.
func (p *windowsPlatform) proc(name string) uintptr {
	p.mu.Lock()
	defer p.mu.Unlock()
	if addr, ok := p.procs[name]; ok {
		return addr
	}
	cname, err := syscall.BytePtrFromString(name)
	if err != nil {
		p.procs[name] = 0
		return 0
	}
	addr, _, _ := procGetProcAddress.Call(uintptr(unsafe.Pointer(cname)))
	p.procs[name] = addr
	return addr
}

func (p *windowsPlatform) HasProc(name string) bool {
	return p.proc(name) != 0
}

func (p *windowsPlatform) GetPlatformDisplayEXT(platform Enum, native NativeDisplayType, attribs []Int) Display {
	fn := p.proc(ProcGetPlatformDisplayEXT)
	if fn == 0 {
		return NoDisplay
	}
	list := withNone(attribs)
	r, _, _ := syscall.SyscallN(fn, uintptr(platform), uintptr(native), attribPtr(list))
	runtime.KeepAlive(list)
	return Display(r)
}

func (p *windowsPlatform) Initialize(d Display) bool {
	r, _, _ := procInitialize.Call(uintptr(d), 0, 0)
	return r != 0
}

func (p *windowsPlatform) Terminate(d Display) bool {
	r, _, _ := procTerminate.Call(uintptr(d))
	return r != 0
}

func (p *windowsPlatform) ChooseConfig(d Display, attribs []Int) (Config, bool) {
	var (
		cfg Config
		n   Int
	)
	list := withNone(attribs)
	r, _, _ := procChooseConfig.Call(
		uintptr(d),
		attribPtr(list),
		uintptr(unsafe.Pointer(&cfg)),
		1,
		uintptr(unsafe.Pointer(&n)),
	)
	runtime.KeepAlive(list)
	if r == 0 || n == 0 {
		return NoConfig, false
	}
	return cfg, true
}

func (p *windowsPlatform) CreateContext(d Display, c Config, share Context, attribs []Int) Context {
	list := withNone(attribs)
	r, _, _ := procCreateContext.Call(uintptr(d), uintptr(c), uintptr(share), attribPtr(list))
	runtime.KeepAlive(list)
	return Context(r)
}

func (p *windowsPlatform) DestroyContext(d Display, ctx Context) bool {
	r, _, _ := procDestroyContext.Call(uintptr(d), uintptr(ctx))
	return r != 0
}

func (p *windowsPlatform) CreateWindowSurface(d Display, c Config, win NativeWindowType, attribs []Int) Surface {
	list := withNone(attribs)
	r, _, _ := procCreateWindowSurface.Call(uintptr(d), uintptr(c), uintptr(win), attribPtr(list))
	runtime.KeepAlive(list)
	return Surface(r)
}

func (p *windowsPlatform) CreatePbufferFromClientBuffer(d Display, bufType Enum, buf ClientBuffer, c Config, attribs []Int) Surface {
	list := withNone(attribs)
	r, _, _ := procCreatePbufferFromClientBuffer.Call(
		uintptr(d), uintptr(bufType), uintptr(buf), uintptr(c), attribPtr(list))
	runtime.KeepAlive(list)
	return Surface(r)
}

func (p *windowsPlatform) DestroySurface(d Display, s Surface) bool {
	r, _, _ := procDestroySurface.Call(uintptr(d), uintptr(s))
	return r != 0
}

func (p *windowsPlatform) MakeCurrent(d Display, draw, read Surface, ctx Context) bool {
	r, _, _ := procMakeCurrent.Call(uintptr(d), uintptr(draw), uintptr(read), uintptr(ctx))
	return r != 0
}

func (p *windowsPlatform) GetCurrentSurface(readdraw Int) Surface {
	r, _, _ := procGetCurrentSurface.Call(uintptr(readdraw))
	return Surface(r)
}

func (p *windowsPlatform) BindTexImage(d Display, s Surface, buffer Int) bool {
	r, _, _ := procBindTexImage.Call(uintptr(d), uintptr(s), uintptr(buffer))
	return r != 0
}

func (p *windowsPlatform) SwapBuffers(d Display, s Surface) bool {
	r, _, _ := procSwapBuffers.Call(uintptr(d), uintptr(s))
	return r != 0
}

func (p *windowsPlatform) SwapInterval(d Display, interval Int) bool {
	r, _, _ := procSwapInterval.Call(uintptr(d), uintptr(interval))
	return r != 0
}

func (p *windowsPlatform) GetError() Int {
	r, _, _ := procGetError.Call()
	return Int(r)
}

func (p *windowsPlatform) QueryDisplayAttribEXT(d Display, attribute Int) (Attrib, bool) {
	fn := p.proc(ProcQueryDisplayAttribEXT)
	if fn == 0 {
		return 0, false
	}
	var value Attrib
	r, _, _ := syscall.SyscallN(fn, uintptr(d), uintptr(attribute), uintptr(unsafe.Pointer(&value)))
	return value, r != 0
}

func (p *windowsPlatform) QueryDeviceAttribEXT(dev DeviceEXT, attribute Int) (Attrib, bool) {
	fn := p.proc(ProcQueryDeviceAttribEXT)
	if fn == 0 {
		return 0, false
	}
	var value Attrib
	r, _, _ := syscall.SyscallN(fn, uintptr(dev), uintptr(attribute), uintptr(unsafe.Pointer(&value)))
	return value, r != 0
}

// attribPtr returns the C pointer for an attribute list, or NULL for an
// empty one.
func attribPtr(list []Int) uintptr {
	if len(list) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&list[0]))
}
