// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command gxdemo opens a window and cycles through gx demo scenes.
//
// Space switches to the next scene and Escape quits.
//
//	gxdemo -scene clock
//	gxdemo -scene image -image photo.png
//	gxdemo -config gxdemo.toml -v
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gx/app"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML window config")
		sceneName  = flag.String("scene", "shapes", "first scene: shapes, clock, image or text")
		imagePath  = flag.String("image", "", "image file for the image scene (default: generated checkerboard)")
		width      = flag.Int("width", 0, "window width, overrides the config")
		height     = flag.Int("height", 0, "window height, overrides the config")
		fps        = flag.Int("fps", 0, "target frame rate, overrides the config")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := app.DefaultConfig()
	cfg.Title = "gxdemo"
	cfg.Background = "#101018"
	if *configPath != "" {
		c, err := app.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("gxdemo: %v", err)
		}
		cfg = c
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *fps != 0 {
		cfg.TargetFPS = *fps
	}

	d, err := newDemo(*sceneName, *imagePath)
	if err != nil {
		log.Fatalf("gxdemo: %v", err)
	}
	if err := app.Run(d, app.WithConfig(cfg), app.WithLogger(logger)); err != nil {
		log.Fatalf("gxdemo: %v", err)
	}
}
