// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gx"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gx.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
title = "demo"
width = 1024
target_fps = 120
vsync = false
background = "#202040"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.Title = "demo"
	want.Width = 1024
	want.TargetFPS = 120
	want.VSync = false
	want.Background = "#202040"
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
	if got := cfg.BackgroundColor(); got != gx.Hex("#202040") {
		t.Errorf("BackgroundColor() = %+v", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "unknown key", body: "fullscreen = true\n"},
		{name: "bad type", body: "width = \"wide\"\n"},
		{name: "syntax", body: "width = \n"},
		{name: "zero height", body: "height = 0\n", want: ErrInvalidConfig},
		{name: "bad background", body: "background = \"#12345\"\n", want: ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadConfig succeeded")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestConfigFrameRate(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{0, DefaultTargetFPS},
		{30, 30},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := (Config{TargetFPS: tt.fps}).FrameRate(); got != tt.want {
			t.Errorf("FrameRate(%d) = %d, want %d", tt.fps, got, tt.want)
		}
	}
}

func TestValidHex(t *testing.T) {
	for _, s := range []string{"#fff", "000", "#000000", "#12ab34cd", "ABCD"} {
		if !validHex(s) {
			t.Errorf("validHex(%q) = false", s)
		}
	}
	for _, s := range []string{"", "#", "#12345", "#gggggg", "red"} {
		if validHex(s) {
			t.Errorf("validHex(%q) = true", s)
		}
	}
}
