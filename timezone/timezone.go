// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timezone implements tztime.Timezone with a pair of yearly
// transition rules, one entering daylight time and one returning to
// standard time, in the manner of small-device timezone libraries.
//
// A Rule names a local wall-clock moment such as "the second Sunday in
// March at 02:00". Each query computes the year's two transitions from
// scratch; a Timezone holds no mutable state and is safe for concurrent
// use.
//
// If the two rules produce the same transition, the zone never observes
// daylight time. Zones whose return to standard time comes earlier in
// the calendar year than the start of daylight time (the southern
// hemisphere) are handled.
package timezone // import "go.tztime.net/timezone"

import (
	"fmt"
	"time"

	"go.tztime.net"
	"go.tztime.net/calendar"
)

// A Week selects an occurrence of a weekday within a month.
type Week int8

const (
	Last Week = iota
	First
	Second
	Third
	Fourth
)

var weekNames = [...]string{"Last", "First", "Second", "Third", "Fourth"}

func (w Week) String() string {
	if 0 <= w && int(w) < len(weekNames) {
		return weekNames[w]
	}
	return fmt.Sprintf("Week(%d)", int(w))
}

// A Rule describes one yearly transition: at Hour (local time, before
// the change) on the Week-th Weekday of Month, the zone's offset from
// UTC becomes Offset minutes.
type Rule struct {
	Abbrev  string
	Week    Week
	Weekday time.Weekday
	Month   time.Month
	Hour    int
	Offset  int // minutes east of UTC
}

func (r Rule) String() string {
	sign := '+'
	off := r.Offset
	if off < 0 {
		sign, off = '-', -off
	}
	return fmt.Sprintf("%s: %s %s of %s at %02d:00, UTC%c%02d:%02d",
		r.Abbrev, r.Week, r.Weekday, r.Month, r.Hour, sign, off/60, off%60)
}

// Validate reports the first field of r that is out of range.
func (r Rule) Validate() error {
	switch {
	case r.Week < Last || r.Week > Fourth:
		return fmt.Errorf("rule %q: invalid week %d", r.Abbrev, r.Week)
	case r.Weekday < time.Sunday || r.Weekday > time.Saturday:
		return fmt.Errorf("rule %q: invalid weekday %d", r.Abbrev, r.Weekday)
	case r.Month < time.January || r.Month > time.December:
		return fmt.Errorf("rule %q: invalid month %d", r.Abbrev, r.Month)
	case r.Hour < 0 || r.Hour > 23:
		return fmt.Errorf("rule %q: invalid hour %d", r.Abbrev, r.Hour)
	case r.Offset <= -24*60 || r.Offset >= 24*60:
		return fmt.Errorf("rule %q: offset %d minutes out of range", r.Abbrev, r.Offset)
	}
	return nil
}

// A Timezone is a pair of transition rules.
type Timezone struct {
	name string
	dst  Rule
	std  Rule
	cal  calendar.System
}

var _ tztime.Timezone = (*Timezone)(nil)

// An Option configures a Timezone.
type Option func(*Timezone)

// WithCalendar sets the calendar system whose second counts the
// Timezone interprets. The default is tztime.Platform as of the call
// to New; the two must agree when Instants use the Timezone.
func WithCalendar(sys calendar.System) Option {
	return func(tz *Timezone) { tz.cal = sys }
}

// WithName sets the name reported by Name.
func WithName(name string) Option {
	return func(tz *Timezone) { tz.name = name }
}

// New returns the Timezone that enters daylight time by rule dst and
// returns to standard time by rule std. The rules are not validated;
// see NewChecked.
func New(dst, std Rule, opts ...Option) *Timezone {
	tz := &Timezone{dst: dst, std: std, cal: tztime.Platform}
	for _, opt := range opts {
		opt(tz)
	}
	return tz
}

// NewChecked is like New but first validates both rules.
func NewChecked(dst, std Rule, opts ...Option) (*Timezone, error) {
	if err := dst.Validate(); err != nil {
		return nil, err
	}
	if err := std.Validate(); err != nil {
		return nil, err
	}
	return New(dst, std, opts...), nil
}

// Name returns the zone's name, or its abbreviations if it has none.
func (tz *Timezone) Name() string {
	switch {
	case tz.name != "":
		return tz.name
	case tz.dst.Abbrev == tz.std.Abbrev:
		return tz.std.Abbrev
	}
	return tz.std.Abbrev + "/" + tz.dst.Abbrev
}

func (tz *Timezone) String() string { return tz.Name() }

// DST returns the rule that enters daylight time.
func (tz *Timezone) DST() Rule { return tz.dst }

// STD returns the rule that returns to standard time.
func (tz *Timezone) STD() Rule { return tz.std }

// StandardOffset returns the standard-time offset in minutes east of UTC.
func (tz *Timezone) StandardOffset() int { return tz.std.Offset }

// DaylightOffset returns the daylight-time offset in minutes east of UTC.
func (tz *Timezone) DaylightOffset() int { return tz.dst.Offset }

// ObservesDST reports whether the two rules differ in effect.
func (tz *Timezone) ObservesDST() bool {
	_, _, dstUTC, stdUTC := tz.Transitions(tz.cal.Floor())
	return dstUTC != stdUTC
}

// Transitions returns the moments in year at which daylight time and
// standard time begin, as local wall-clock seconds (dstLocal in
// standard time, stdLocal in daylight time) and as UTC seconds.
func (tz *Timezone) Transitions(year int) (dstLocal, stdLocal, dstUTC, stdUTC int64) {
	dstLocal = tz.transition(tz.dst, year)
	stdLocal = tz.transition(tz.std, year)
	dstUTC = dstLocal - int64(tz.std.Offset)*60
	stdUTC = stdLocal - int64(tz.dst.Offset)*60
	return
}

// transition returns the local wall-clock seconds at which r fires in year.
func (tz *Timezone) transition(r Rule, year int) int64 {
	month, week := int(r.Month), r.Week
	if week == Last {
		// Find the first occurrence in the next month, then step back a week.
		month++
		week = First
	}
	t := tz.cal.Mktime(year, month, 1, r.Hour, 0, 0)
	sunday0 := (tz.cal.Weekday(t) + 1) % 7
	days := (int(r.Weekday)-sunday0+7)%7 + (int(week)-1)*7
	t += int64(days) * calendar.SecondsPerDay
	if r.Week == Last {
		t -= 7 * calendar.SecondsPerDay
	}
	return t
}

// IsUTCDST reports whether the UTC seconds utc fall in daylight time.
func (tz *Timezone) IsUTCDST(utc int64) bool {
	_, _, dstUTC, stdUTC := tz.Transitions(tz.cal.Year(utc))
	switch {
	case dstUTC == stdUTC:
		return false
	case stdUTC > dstUTC:
		return utc >= dstUTC && utc < stdUTC
	default:
		return !(utc >= stdUTC && utc < dstUTC)
	}
}

// IsLocalDST reports whether the local wall-clock seconds local fall in
// daylight time. Local times repeated when clocks fall back are taken
// as daylight time; skipped local times when clocks spring forward are
// also taken as daylight time.
func (tz *Timezone) IsLocalDST(local int64) bool {
	dstLocal, stdLocal, dstUTC, stdUTC := tz.Transitions(tz.cal.Year(local))
	switch {
	case dstUTC == stdUTC:
		return false
	case stdLocal > dstLocal:
		return local >= dstLocal && local < stdLocal
	default:
		return !(local >= stdLocal && local < dstLocal)
	}
}

// ToLocal converts UTC seconds to local wall-clock seconds.
func (tz *Timezone) ToLocal(utc int64) int64 {
	if tz.IsUTCDST(utc) {
		return utc + int64(tz.dst.Offset)*60
	}
	return utc + int64(tz.std.Offset)*60
}

// ToUTC converts local wall-clock seconds to UTC seconds.
func (tz *Timezone) ToUTC(local int64) int64 {
	if tz.IsLocalDST(local) {
		return local - int64(tz.dst.Offset)*60
	}
	return local - int64(tz.std.Offset)*60
}

// Abbrev returns the abbreviation in effect at local wall-clock seconds local.
func (tz *Timezone) Abbrev(local int64) string {
	if tz.IsLocalDST(local) {
		return tz.dst.Abbrev
	}
	return tz.std.Abbrev
}
