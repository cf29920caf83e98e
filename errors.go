// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

import "fmt"

// An UnsupportedYearError reports a Create call for a year that
// precedes the epoch of Platform.
type UnsupportedYearError struct {
	Year  int
	Floor int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("year %d precedes the platform epoch (January 1, %d)", e.Year, e.Floor)
}

// An InvalidArgumentError reports a second count that is not an
// integer or does not fit in an int64.
type InvalidArgumentError struct {
	Value interface{}
}

func (e *InvalidArgumentError) Error() string {
	switch e.Value.(type) {
	case uint, uint64:
		return fmt.Sprintf("seconds %v out of range (want signed 64-bit value)", e.Value)
	}
	return fmt.Sprintf("seconds must be an integer, got %T", e.Value)
}
