// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calendar defines the calendar primitives on which tztime
// builds: a "mktime" that maps calendar fields to seconds since an
// epoch, and a "localtime" that maps seconds back to fields.
//
// Second counts are local-naive: no operating-system time zone is ever
// consulted, so "local" and "UTC" decomposition are the same operation.
// Offsets are the business of the caller.
//
// Embedded runtimes differ in their epoch. CPython and most POSIX
// systems count from 1970; MicroPython counts from 2000 and cannot
// represent earlier instants. A System captures that difference.
package calendar // import "go.tztime.net/calendar"

import "time"

// A System is a calendar platform whose epoch is midnight on January 1
// of EpochYear. The zero System behaves like Unix.
type System struct {
	EpochYear int
}

var (
	// Unix counts seconds from 1970-01-01T00:00:00.
	Unix = System{EpochYear: 1970}

	// MicroPython counts seconds from 2000-01-01T00:00:00,
	// the epoch of most embedded MicroPython ports.
	MicroPython = System{EpochYear: 2000}
)

// SecondsPerDay is the length of a calendar day. Leap seconds are not modelled.
const SecondsPerDay = 24 * 60 * 60

// Fields is a decomposed calendar value.
type Fields struct {
	Year    int
	Month   int // 1-12
	Day     int // 1-31
	Hour    int // 0-23
	Minute  int // 0-59
	Second  int // 0-61 on platforms with leap seconds; 0-59 here
	Weekday int // 0-6, Monday == 0
	YearDay int // 1-366
}

func (s System) epochYear() int {
	if s.EpochYear == 0 {
		return Unix.EpochYear
	}
	return s.EpochYear
}

// UnixOffset returns the number of seconds between the Unix epoch and
// the epoch of s.
func (s System) UnixOffset() int64 {
	return time.Date(s.epochYear(), time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
}

// Floor returns the earliest year s can represent.
func (s System) Floor() int { return s.epochYear() }

// Mktime converts calendar fields to seconds since the epoch of s.
//
// Fields outside their usual range are normalized the way C's mktime
// does: month 13 is January of the following year, day 0 is the last
// day of the previous month, hour 25 is 01h of the next day, and
// negative values borrow from the next larger field.
//
// A year before the epoch year is raised to the epoch year, and a
// result before the epoch is raised to zero, so Mktime never fails.
func (s System) Mktime(year, month, day, hour, min, sec int) int64 {
	if floor := s.epochYear(); year < floor {
		year = floor
	}
	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC).Unix() - s.UnixOffset()
	if t < 0 {
		return 0
	}
	return t
}

// Localtime decomposes secs, a count of seconds since the epoch of s,
// into calendar fields. Negative counts decompose to the days before
// the epoch; only Mktime clamps.
func (s System) Localtime(secs int64) Fields {
	t := time.Unix(secs+s.UnixOffset(), 0).UTC()
	return Fields{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: mondayFirst(t.Weekday()),
		YearDay: t.YearDay(),
	}
}

// Year returns the calendar year containing secs.
func (s System) Year(secs int64) int { return s.Localtime(secs).Year }

// Weekday returns the day of the week of secs, Monday == 0.
func (s System) Weekday(secs int64) int { return s.Localtime(secs).Weekday }

// FromUnix converts seconds since the Unix epoch to seconds since the
// epoch of s, clamping instants before the epoch of s to zero.
func (s System) FromUnix(unix int64) int64 {
	t := unix - s.UnixOffset()
	if t < 0 {
		return 0
	}
	return t
}

// ToUnix converts seconds since the epoch of s to seconds since the Unix epoch.
func (s System) ToUnix(secs int64) int64 { return secs + s.UnixOffset() }

func mondayFirst(d time.Weekday) int { return (int(d) + 6) % 7 }
