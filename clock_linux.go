// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

import (
	"log"
	"time"

	"golang.org/x/sys/unix"
)

// systemClock reads CLOCK_REALTIME directly, the same source an
// embedded runtime's time() uses.
func systemClock() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		log.Printf("tztime: clock_gettime failed: %v; using time.Now", err)
		return time.Now().Unix()
	}
	return int64(ts.Sec)
}
