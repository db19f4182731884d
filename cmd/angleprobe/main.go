// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command angleprobe opens an ANGLE display, reports the tier it got and
// presents a few frames to an offscreen shared texture or a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/angle"
	"github.com/gogpu/angle/view"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		mode       = flag.String("mode", "", "surface mode: offscreen or window")
		frames     = flag.Int("frames", -1, "frames to present")
		width      = flag.Int("width", 0, "surface width")
		height     = flag.Int("height", 0, "surface height")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}
	if *width > 0 {
		cfg.Width = int32(*width)
	}
	if *height > 0 {
		cfg.Height = int32(*height)
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg Config) error {
	level, err := cfg.logLevel()
	if err != nil {
		return err
	}
	angle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	m, err := angle.New(opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	log.Printf("display tier: %s", m.Tier())
	if dev, ok := m.Device(); ok {
		log.Printf("native device: %T", dev)
	} else {
		log.Printf("native device: unavailable")
	}

	v := view.New(m)
	defer v.Detach()
	var presented int
	v.SetAcceleratedPaintCallback(func(h uintptr, w, hgt int) {
		presented++
		log.Printf("frame %d: shared handle %#x (%dx%d)", presented, h, w, hgt)
	})

	var target angle.RenderTarget
	if cfg.Mode == modeWindow {
		win, closeWindow, err := openWindow(cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		defer closeWindow()
		target = angle.WindowTarget{Window: win}
	}

	if err := m.CreateSurface(target, cfg.Width, cfg.Height, cfg.VSync); err != nil {
		return err
	}
	w, h := m.SurfaceDimensions()
	log.Printf("%s surface: %dx%d", cfg.Mode, w, h)

	if err := m.MakeCurrent(); err != nil {
		return err
	}
	for i := range cfg.Frames {
		if err := m.SwapBuffers(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	log.Printf("presented %d frames", cfg.Frames)
	return nil
}
