// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package angle

import (
	"fmt"
	"sync"

	"github.com/gogpu/angle/egl"
)

// connection is an initialized EGL display shared by every Manager created
// on the same platform.
type connection struct {
	platform egl.Platform
	display  egl.Display
	tier     Tier
	refs     int
}

// connectionRegistry hands out display connections keyed by platform.
//
// The first acquire for a platform runs the tier loop and initializes the
// display. Later acquires reuse it and only bump the reference count. The
// release that drops the count to zero terminates the display and forgets
// the connection, so the next acquire starts over.
type connectionRegistry struct {
	mu    sync.Mutex
	conns map[egl.Platform]*connection
}

// connections is the process-wide registry.
var connections = &connectionRegistry{}

func (r *connectionRegistry) acquire(p egl.Platform, tiers []Tier) (*connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.conns[p]; ok {
		c.refs++
		Logger().Debug("angle: reusing display connection", "tier", c.tier.String(), "refs", c.refs)
		return c, nil
	}

	display, tier, err := openDisplay(p, tiers)
	if err != nil {
		return nil, err
	}
	if r.conns == nil {
		r.conns = make(map[egl.Platform]*connection)
	}
	c := &connection{platform: p, display: display, tier: tier, refs: 1}
	r.conns[p] = c
	Logger().Info("angle: display initialized", "tier", tier.String())
	return c, nil
}

func (r *connectionRegistry) release(c *connection) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conns[c.platform] != c || c.refs == 0 {
		return
	}
	c.refs--
	if c.refs > 0 {
		return
	}
	delete(r.conns, c.platform)
	if !c.platform.Terminate(c.display) {
		logEGLError(c.platform, "failed to terminate display")
		return
	}
	Logger().Info("angle: display terminated", "tier", c.tier.String())
}

// refs returns the reference count of the connection for p, or 0.
func (r *connectionRegistry) refs(p egl.Platform) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[p]; ok {
		return c.refs
	}
	return 0
}

// openDisplay tries each tier in order and returns the first display that
// initializes. Failures of every tier but the last are expected on older
// hardware and are not logged.
func openDisplay(p egl.Platform, tiers []Tier) (egl.Display, Tier, error) {
	if !p.HasProc(egl.ProcGetPlatformDisplayEXT) {
		logEGLError(p, "eglGetPlatformDisplayEXT not available")
		return egl.NoDisplay, Tier{}, ErrNoPlatformDisplay
	}
	if len(tiers) == 0 {
		return egl.NoDisplay, Tier{}, fmt.Errorf("angle: no display tiers")
	}

	var lastErr error
	for i, tier := range tiers {
		last := i == len(tiers)-1
		display := p.GetPlatformDisplayEXT(egl.PlatformANGLE, egl.DefaultDisplay, tier.Attribs())
		if display == egl.NoDisplay {
			lastErr = fmt.Errorf("angle: no display for tier %s", tier)
			if last {
				code := logEGLError(p, "failed to get a compatible display", "tier", tier.String())
				lastErr = fmt.Errorf("%w: %w", lastErr, code)
			}
			continue
		}
		if !p.Initialize(display) {
			lastErr = fmt.Errorf("angle: initialize display for tier %s", tier)
			if last {
				code := logEGLError(p, "failed to initialize EGL via ANGLE", "tier", tier.String())
				lastErr = fmt.Errorf("%w: %w", lastErr, code)
			}
			continue
		}
		return display, tier, nil
	}
	return egl.NoDisplay, Tier{}, lastErr
}
