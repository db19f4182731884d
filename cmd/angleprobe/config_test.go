// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/angle"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Mode != modeOffscreen || cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
width: 1024
frames: 10
vsync_policy: swap-interval
log_level: debug
tiers:
  - name: hw
    backend: d3d11
    fast_present_path: true
  - backend: d3d11
    software: true
    automatic_trim: false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 1024x600", cfg.Width, cfg.Height)
	}
	if cfg.Frames != 10 {
		t.Errorf("frames = %d, want 10", cfg.Frames)
	}
	if p, _ := cfg.vsyncPolicy(); p != angle.VSyncSwapInterval {
		t.Errorf("vsync policy = %v, want swap interval", p)
	}
	if l, _ := cfg.logLevel(); l != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", l)
	}

	tiers, err := cfg.tiers()
	if err != nil {
		t.Fatalf("tiers() error = %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("tiers = %d, want 2", len(tiers))
	}
	if tiers[0].String() != "hw" || !tiers[0].AutomaticTrim || !tiers[0].FastPresentPath {
		t.Errorf("tier 0 = %+v", tiers[0])
	}
	if tiers[1].String() != "d3d11-warp" || tiers[1].AutomaticTrim {
		t.Errorf("tier 1 = %+v", tiers[1])
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if len(opts) != 3 {
		t.Errorf("Options() returned %d options, want 3", len(opts))
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "width: [", "parse"},
		{"bad mode", "mode: fullscreen", "mode"},
		{"bad size", "height: -1", "size"},
		{"bad policy", "vsync_policy: sometimes", "vsync_policy"},
		{"bad level", "log_level: loud", "log_level"},
		{"bad backend", "tiers:\n  - backend: metal", "tiers[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadConfig() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) succeeded, want error")
	}
}
