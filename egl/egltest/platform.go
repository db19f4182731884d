// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package egltest provides a scriptable, in-memory egl.Platform.
//
// The simulated platform hands out unique handles, tracks which objects are
// alive, records every call in order, and lets a test decide which calls
// fail. It is safe for concurrent use.
package egltest

import (
	"slices"
	"sync"

	"github.com/gogpu/angle/egl"
)

// DefaultDevicePointer is the value reported for EGL_D3D11_DEVICE_ANGLE
// unless Platform.DevicePointer is set.
const DefaultDevicePointer uintptr = 0xD3D11

// Call is one recorded platform call.
type Call struct {
	Name    string
	Attribs []egl.Int
}

// SurfaceKind tells window surfaces from pbuffers.
type SurfaceKind int

const (
	WindowSurface SurfaceKind = iota + 1
	PbufferSurface
)

// SurfaceInfo describes a live simulated surface.
type SurfaceInfo struct {
	Kind         SurfaceKind
	Config       egl.Config
	Width        egl.Int
	Height       egl.Int
	Window       egl.NativeWindowType
	ClientBuffer egl.ClientBuffer
	BoundTexture bool
}

// ContextInfo describes a live simulated context.
type ContextInfo struct {
	Config egl.Config
	Share  egl.Context
}

// Platform is a simulated EGL implementation. The exported fields script
// failures; set them before handing the platform to the code under test.
type Platform struct {
	// MissingProcs lists extension entry points HasProc reports as absent.
	MissingProcs []string

	// RejectDisplay makes GetPlatformDisplayEXT fail for matching attribute
	// lists. RejectInitialize makes Initialize fail on displays created with
	// matching lists.
	RejectDisplay    func(attribs []egl.Int) bool
	RejectInitialize func(attribs []egl.Int) bool

	FailChooseConfig    bool
	FailContext         bool
	FailResourceContext bool
	FailWindowSurface   bool
	FailSwap            bool
	FailMakeCurrent     bool
	FailDeviceQuery     bool

	// RejectPbuffer makes pbuffer creation fail for configs whose
	// EGL_RENDERABLE_TYPE matches.
	RejectPbuffer func(renderable egl.Int) bool

	// DevicePointer overrides DefaultDevicePointer.
	DevicePointer uintptr

	mu          sync.Mutex
	next        uintptr
	calls       []Call
	displays    map[egl.Display][]egl.Int
	initialized map[egl.Display]bool
	configs     map[egl.Config][]egl.Int
	contexts    map[egl.Context]ContextInfo
	surfaces    map[egl.Surface]*SurfaceInfo
	draw, read  egl.Surface
	current     egl.Context
	interval    egl.Int
	lastErr     egl.Error
	terminated  int
	swaps       int
}

// New returns a platform on which every call succeeds.
func New() *Platform {
	return &Platform{}
}

// RejectTiersBefore returns a RejectDisplay predicate that fails the first n
// distinct attribute lists it is asked about and accepts the rest.
func RejectTiersBefore(n int) func([]egl.Int) bool {
	var seen [][]egl.Int
	var mu sync.Mutex
	return func(attribs []egl.Int) bool {
		mu.Lock()
		defer mu.Unlock()
		idx := slices.IndexFunc(seen, func(s []egl.Int) bool { return slices.Equal(s, attribs) })
		if idx < 0 {
			seen = append(seen, slices.Clone(attribs))
			idx = len(seen) - 1
		}
		return idx < n
	}
}

func (p *Platform) lazyInit() {
	if p.displays != nil {
		return
	}
	p.next = 0x100
	p.displays = make(map[egl.Display][]egl.Int)
	p.initialized = make(map[egl.Display]bool)
	p.configs = make(map[egl.Config][]egl.Int)
	p.contexts = make(map[egl.Context]ContextInfo)
	p.surfaces = make(map[egl.Surface]*SurfaceInfo)
	p.lastErr = egl.Success
}

func (p *Platform) handle() uintptr {
	p.next++
	return p.next
}

func (p *Platform) record(name string, attribs []egl.Int) {
	p.lazyInit()
	p.calls = append(p.calls, Call{Name: name, Attribs: slices.Clone(attribs)})
}

func (p *Platform) fail(code egl.Error) {
	p.lastErr = code
}

func (p *Platform) validDisplay(d egl.Display) bool {
	if _, ok := p.displays[d]; !ok || !p.initialized[d] {
		p.fail(egl.BadDisplay)
		return false
	}
	return true
}

func (p *Platform) HasProc(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("HasProc:"+name, nil)
	return !slices.Contains(p.MissingProcs, name)
}

func (p *Platform) GetPlatformDisplayEXT(platform egl.Enum, _ egl.NativeDisplayType, attribs []egl.Int) egl.Display {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("GetPlatformDisplayEXT", attribs)
	if platform != egl.PlatformANGLE {
		p.fail(egl.BadParameter)
		return egl.NoDisplay
	}
	if p.RejectDisplay != nil && p.RejectDisplay(attribs) {
		p.fail(egl.NotInitialized)
		return egl.NoDisplay
	}
	for d, a := range p.displays {
		if slices.Equal(a, attribs) {
			return d
		}
	}
	d := egl.Display(p.handle())
	p.displays[d] = slices.Clone(attribs)
	return d
}

func (p *Platform) Initialize(d egl.Display) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("Initialize", nil)
	attribs, ok := p.displays[d]
	if !ok {
		p.fail(egl.BadDisplay)
		return false
	}
	if p.RejectInitialize != nil && p.RejectInitialize(attribs) {
		p.fail(egl.NotInitialized)
		return false
	}
	p.initialized[d] = true
	return true
}

func (p *Platform) Terminate(d egl.Display) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("Terminate", nil)
	if _, ok := p.displays[d]; !ok {
		p.fail(egl.BadDisplay)
		return false
	}
	p.initialized[d] = false
	p.terminated++
	return true
}

func (p *Platform) ChooseConfig(d egl.Display, attribs []egl.Int) (egl.Config, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("ChooseConfig", attribs)
	if !p.validDisplay(d) {
		return egl.NoConfig, false
	}
	if p.FailChooseConfig {
		p.fail(egl.BadAttribute)
		return egl.NoConfig, false
	}
	c := egl.Config(p.handle())
	p.configs[c] = slices.Clone(attribs)
	return c, true
}

func (p *Platform) CreateContext(d egl.Display, c egl.Config, share egl.Context, attribs []egl.Int) egl.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("CreateContext", attribs)
	if !p.validDisplay(d) {
		return egl.NoContext
	}
	if _, ok := p.configs[c]; !ok {
		p.fail(egl.BadConfig)
		return egl.NoContext
	}
	if (share == egl.NoContext && p.FailContext) || (share != egl.NoContext && p.FailResourceContext) {
		p.fail(egl.BadAlloc)
		return egl.NoContext
	}
	if share != egl.NoContext {
		if _, ok := p.contexts[share]; !ok {
			p.fail(egl.BadContext)
			return egl.NoContext
		}
	}
	ctx := egl.Context(p.handle())
	p.contexts[ctx] = ContextInfo{Config: c, Share: share}
	return ctx
}

func (p *Platform) DestroyContext(d egl.Display, ctx egl.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("DestroyContext", nil)
	if !p.validDisplay(d) {
		return false
	}
	if _, ok := p.contexts[ctx]; !ok {
		p.fail(egl.BadContext)
		return false
	}
	delete(p.contexts, ctx)
	if p.current == ctx {
		p.current = egl.NoContext
	}
	return true
}

func (p *Platform) CreateWindowSurface(d egl.Display, c egl.Config, win egl.NativeWindowType, attribs []egl.Int) egl.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("CreateWindowSurface", attribs)
	if !p.validDisplay(d) {
		return egl.NoSurface
	}
	if p.FailWindowSurface || win == 0 {
		p.fail(egl.BadNativeWindow)
		return egl.NoSurface
	}
	w, _ := egl.Lookup(attribs, egl.Width)
	h, _ := egl.Lookup(attribs, egl.Height)
	s := egl.Surface(p.handle())
	p.surfaces[s] = &SurfaceInfo{Kind: WindowSurface, Config: c, Width: w, Height: h, Window: win}
	return s
}

func (p *Platform) CreatePbufferFromClientBuffer(d egl.Display, bufType egl.Enum, buf egl.ClientBuffer, c egl.Config, attribs []egl.Int) egl.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("CreatePbufferFromClientBuffer", attribs)
	if !p.validDisplay(d) {
		return egl.NoSurface
	}
	cfg, ok := p.configs[c]
	if !ok {
		p.fail(egl.BadConfig)
		return egl.NoSurface
	}
	if bufType != egl.D3DTextureANGLE || buf == 0 {
		p.fail(egl.BadParameter)
		return egl.NoSurface
	}
	renderable, _ := egl.Lookup(cfg, egl.RenderableType)
	if p.RejectPbuffer != nil && p.RejectPbuffer(renderable) {
		p.fail(egl.BadMatch)
		return egl.NoSurface
	}
	w, _ := egl.Lookup(attribs, egl.Width)
	h, _ := egl.Lookup(attribs, egl.Height)
	s := egl.Surface(p.handle())
	p.surfaces[s] = &SurfaceInfo{Kind: PbufferSurface, Config: c, Width: w, Height: h, ClientBuffer: buf}
	return s
}

func (p *Platform) DestroySurface(d egl.Display, s egl.Surface) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("DestroySurface", nil)
	if !p.validDisplay(d) {
		return false
	}
	if _, ok := p.surfaces[s]; !ok {
		p.fail(egl.BadSurface)
		return false
	}
	delete(p.surfaces, s)
	if p.draw == s {
		p.draw = egl.NoSurface
	}
	if p.read == s {
		p.read = egl.NoSurface
	}
	return true
}

func (p *Platform) MakeCurrent(d egl.Display, draw, read egl.Surface, ctx egl.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("MakeCurrent", nil)
	if !p.validDisplay(d) {
		return false
	}
	if p.FailMakeCurrent {
		p.fail(egl.BadAccess)
		return false
	}
	for _, s := range []egl.Surface{draw, read} {
		if _, ok := p.surfaces[s]; s != egl.NoSurface && !ok {
			p.fail(egl.BadSurface)
			return false
		}
	}
	if _, ok := p.contexts[ctx]; ctx != egl.NoContext && !ok {
		p.fail(egl.BadContext)
		return false
	}
	p.draw, p.read, p.current = draw, read, ctx
	return true
}

func (p *Platform) GetCurrentSurface(readdraw egl.Int) egl.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("GetCurrentSurface", nil)
	if readdraw == egl.Read {
		return p.read
	}
	return p.draw
}

func (p *Platform) BindTexImage(d egl.Display, s egl.Surface, buffer egl.Int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("BindTexImage", nil)
	if !p.validDisplay(d) {
		return false
	}
	info, ok := p.surfaces[s]
	if !ok || info.Kind != PbufferSurface || buffer != egl.BackBuffer {
		p.fail(egl.BadSurface)
		return false
	}
	info.BoundTexture = true
	return true
}

func (p *Platform) SwapBuffers(d egl.Display, s egl.Surface) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SwapBuffers", nil)
	if !p.validDisplay(d) {
		return false
	}
	if _, ok := p.surfaces[s]; !ok {
		p.fail(egl.BadSurface)
		return false
	}
	if p.FailSwap {
		p.fail(egl.ContextLost)
		return false
	}
	p.swaps++
	return true
}

func (p *Platform) SwapInterval(d egl.Display, interval egl.Int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("SwapInterval", nil)
	if !p.validDisplay(d) {
		return false
	}
	p.interval = interval
	return true
}

// GetError returns and clears the pending error.
func (p *Platform) GetError() egl.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lazyInit()
	err := p.lastErr
	p.lastErr = egl.Success
	return egl.Int(err)
}

func (p *Platform) QueryDisplayAttribEXT(d egl.Display, attribute egl.Int) (egl.Attrib, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("QueryDisplayAttribEXT", nil)
	if !p.validDisplay(d) {
		return 0, false
	}
	if attribute != egl.DeviceEXTAttrib || p.FailDeviceQuery {
		p.fail(egl.BadAttribute)
		return 0, false
	}
	return egl.Attrib(0xDE71CE), true
}

func (p *Platform) QueryDeviceAttribEXT(dev egl.DeviceEXT, attribute egl.Int) (egl.Attrib, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("QueryDeviceAttribEXT", nil)
	if dev != egl.DeviceEXT(0xDE71CE) || attribute != egl.D3D11DeviceANGLE {
		p.fail(egl.BadAttribute)
		return 0, false
	}
	ptr := p.DevicePointer
	if ptr == 0 {
		ptr = DefaultDevicePointer
	}
	return egl.Attrib(ptr), true
}

// Calls returns every recorded call, in order.
func (p *Platform) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.calls)
}

// CallsNamed returns the recorded calls with the given name, in order.
func (p *Platform) CallsNamed(name string) []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Call
	for _, c := range p.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times name was called.
func (p *Platform) Count(name string) int {
	return len(p.CallsNamed(name))
}

// ResetCalls clears the call log without touching any state.
func (p *Platform) ResetCalls() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = nil
}

// Terminated returns how many times Terminate succeeded.
func (p *Platform) Terminated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminated
}

// Swaps returns how many presents succeeded.
func (p *Platform) Swaps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.swaps
}

// Interval returns the last swap interval set.
func (p *Platform) Interval() egl.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Surface returns a copy of the state of a live surface.
func (p *Platform) Surface(s egl.Surface) (SurfaceInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	info, ok := p.surfaces[s]
	if !ok {
		return SurfaceInfo{}, false
	}
	return *info, true
}

// LiveSurfaces returns the number of surfaces not yet destroyed.
func (p *Platform) LiveSurfaces() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.surfaces)
}

// Context returns the state of a live context.
func (p *Platform) Context(ctx egl.Context) (ContextInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	info, ok := p.contexts[ctx]
	return info, ok
}

// LiveContexts returns the number of contexts not yet destroyed.
func (p *Platform) LiveContexts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.contexts)
}

// Current returns the current draw and read surfaces and context.
func (p *Platform) Current() (draw, read egl.Surface, ctx egl.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draw, p.read, p.current
}

// ConfigAttribs returns the attribute list a config was chosen with.
func (p *Platform) ConfigAttribs(c egl.Config) []egl.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.configs[c])
}
