// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nowindow || nogpu

package app

import "log/slog"

func runHosted(Handler, options, *slog.Logger) error {
	return ErrNoWindowSystem
}
