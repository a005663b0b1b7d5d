// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import "time"

// Pacer holds the frame loop to a target frame duration.
type Pacer struct {
	// Target is the desired duration of one frame. Zero disables pacing.
	Target time.Duration

	sleep func(time.Duration)
}

// NewPacer returns a Pacer for fps frames per second. fps <= 0 disables
// pacing.
func NewPacer(fps int) Pacer {
	if fps <= 0 {
		return Pacer{}
	}
	return Pacer{Target: time.Second / time.Duration(fps)}
}

// Remaining returns how long to sleep after a frame that took elapsed.
// Overrun frames get zero; lost time is not made up later.
func (p Pacer) Remaining(elapsed time.Duration) time.Duration {
	if p.Target <= 0 || elapsed >= p.Target {
		return 0
	}
	return p.Target - elapsed
}

// Wait sleeps for the rest of a frame that has been running for elapsed
// and returns the time slept.
func (p Pacer) Wait(elapsed time.Duration) time.Duration {
	d := p.Remaining(elapsed)
	if d > 0 {
		if p.sleep != nil {
			p.sleep(d)
		} else {
			time.Sleep(d)
		}
	}
	return d
}
