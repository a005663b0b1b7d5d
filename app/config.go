// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/gx"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned for configurations Run cannot start with.
var ErrInvalidConfig = errors.New("app: invalid config")

// DefaultTargetFPS is the frame rate used when Config.TargetFPS is zero.
const DefaultTargetFPS = 60

// Config describes the window and the frame loop.
//
// It can be loaded from TOML:
//
//	title = "gx demo"
//	width = 1024
//	height = 768
//	target_fps = 120
//	vsync = false
//	background = "#202040"
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	// TargetFPS caps the frame rate. Zero means DefaultTargetFPS; a
	// negative value disables pacing.
	TargetFPS int `toml:"target_fps"`

	// VSync selects FIFO presentation. When false the display asks for
	// immediate presentation and falls back to FIFO if unsupported.
	VSync bool `toml:"vsync"`

	// Resizable lets the user resize the window.
	Resizable bool `toml:"resizable"`

	// Background is the initial clear color as "#rrggbb" or "#rrggbbaa".
	// Empty means white.
	Background string `toml:"background"`
}

// DefaultConfig returns an 800×600 resizable window titled "gx" with
// vsync on.
func DefaultConfig() Config {
	return Config{
		Title:     "gx",
		Width:     800,
		Height:    600,
		TargetFPS: DefaultTargetFPS,
		VSync:     true,
		Resizable: true,
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys missing from the
// file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("app: load config: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("app: load config %s:%d:%d: %w", path, row, col, err)
		}
		return Config{}, fmt.Errorf("app: load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("app: load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the window size and background color.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Background != "" && !validHex(c.Background) {
		return fmt.Errorf("%w: background %q is not a hex color", ErrInvalidConfig, c.Background)
	}
	return nil
}

// BackgroundColor returns the parsed background, or white when unset.
func (c Config) BackgroundColor() gx.Color {
	if c.Background == "" {
		return gx.White
	}
	return gx.Hex(c.Background)
}

// FrameRate returns the effective target frame rate; zero or less means
// unpaced.
func (c Config) FrameRate() int {
	if c.TargetFPS == 0 {
		return DefaultTargetFPS
	}
	return max(c.TargetFPS, 0)
}

// validHex reports whether s is a color gx.Hex accepts rather than
// mapping to black.
func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
