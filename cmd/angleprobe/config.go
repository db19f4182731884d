// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/angle"
)

// Config is the probe configuration. Fields absent from the YAML file keep
// their defaults.
type Config struct {
	Mode          string       `yaml:"mode"`
	Width         int32        `yaml:"width"`
	Height        int32        `yaml:"height"`
	Frames        int          `yaml:"frames"`
	VSync         bool         `yaml:"vsync"`
	VSyncPolicy   string       `yaml:"vsync_policy"`
	ClientVersion int          `yaml:"client_version"`
	LogLevel      string       `yaml:"log_level"`
	Tiers         []TierConfig `yaml:"tiers"`
}

// TierConfig describes one display tier in the config file.
type TierConfig struct {
	Name            string `yaml:"name"`
	Backend         string `yaml:"backend"`
	MaxVersionMajor int    `yaml:"max_version_major"`
	MaxVersionMinor int    `yaml:"max_version_minor"`
	Software        bool   `yaml:"software"`
	AutomaticTrim   *bool  `yaml:"automatic_trim"`
	FastPresentPath bool   `yaml:"fast_present_path"`
}

const (
	modeOffscreen = "offscreen"
	modeWindow    = "window"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Mode:          modeOffscreen,
		Width:         800,
		Height:        600,
		Frames:        3,
		VSyncPolicy:   "compositor",
		ClientVersion: angle.DefaultClientVersion,
		LogLevel:      "info",
	}
}

// LoadConfig reads path and overlays it on DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case modeOffscreen, modeWindow:
	default:
		errs = append(errs, fmt.Errorf("mode: unknown value %q", c.Mode))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size: %dx%d must be positive", c.Width, c.Height))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames: %d must not be negative", c.Frames))
	}
	if _, err := c.vsyncPolicy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.logLevel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.tiers(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) vsyncPolicy() (angle.VSyncPolicy, error) {
	switch strings.ToLower(c.VSyncPolicy) {
	case "", "compositor":
		return angle.VSyncCompositor, nil
	case "swap-interval", "swap_interval":
		return angle.VSyncSwapInterval, nil
	}
	return 0, fmt.Errorf("vsync_policy: unknown value %q", c.VSyncPolicy)
}

func (c Config) logLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// tiers converts the configured tiers. Nil means the built-in list.
func (c Config) tiers() ([]angle.Tier, error) {
	if len(c.Tiers) == 0 {
		return nil, nil
	}
	out := make([]angle.Tier, 0, len(c.Tiers))
	for i, tc := range c.Tiers {
		b, err := angle.ParseBackend(tc.Backend)
		if err != nil {
			return nil, fmt.Errorf("tiers[%d]: %w", i, err)
		}
		trim := true
		if tc.AutomaticTrim != nil {
			trim = *tc.AutomaticTrim
		}
		out = append(out, angle.Tier{
			Name:            tc.Name,
			Backend:         b,
			MaxVersionMajor: tc.MaxVersionMajor,
			MaxVersionMinor: tc.MaxVersionMinor,
			Software:        tc.Software,
			AutomaticTrim:   trim,
			FastPresentPath: tc.FastPresentPath,
		})
	}
	return out, nil
}

// Options returns the manager options the config selects.
func (c Config) Options() ([]angle.Option, error) {
	policy, err := c.vsyncPolicy()
	if err != nil {
		return nil, err
	}
	tiers, err := c.tiers()
	if err != nil {
		return nil, err
	}
	opts := []angle.Option{
		angle.WithVSyncPolicy(policy),
		angle.WithClientVersion(c.ClientVersion),
	}
	if tiers != nil {
		opts = append(opts, angle.WithTiers(tiers...))
	}
	return opts, nil
}
