// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

// NowFunc returns the current time in seconds since the Unix epoch,
// assumed UTC. It is exported so that it can be overridden, for
// example by applications or tests that must be deterministic.
var NowFunc = systemClock

// Now returns the current time as a UTC Instant.
// Times before the epoch of Platform are raised to the epoch.
func Now() *Instant {
	return New(Platform.FromUnix(NowFunc()), nil)
}
