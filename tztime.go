// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tztime provides Instant, an immutable, timezone-aware point in
// time for runtimes without a full calendar or timezone database.
//
// An Instant is a count of seconds since the epoch of Platform,
// optionally paired with a Timezone. Without a Timezone the count is
// UTC. With one, the count is the local wall-clock equivalent: the
// value whose decomposition yields the local calendar fields. ToUTC
// and ToTimezone reconcile the two, and every comparison goes through
// ToUTC, so two Instants are equal when they denote the same moment
// whatever their zones.
//
// Every method that derives a new value returns a new Instant; the
// receiver is never modified. Calendar arithmetic operates on the
// decomposed fields and renormalizes them, so PlusMonths and PlusDays
// respect month lengths rather than adding a fixed number of seconds.
//
// Instants are made by Now, New, FromValue and Create.
package tztime // import "go.tztime.net"

import (
	"math"
	"sync"

	"go.tztime.net/calendar"
)

// A Timezone supplies UTC offsets and daylight-saving rules.
// Instants share Timezones by reference and never modify them, so
// implementations must be safe for concurrent reads.
//
// All second counts are relative to the epoch of Platform.
type Timezone interface {
	// IsLocalDST reports whether local wall-clock seconds fall in daylight time.
	IsLocalDST(local int64) bool
	// ToUTC converts local wall-clock seconds to UTC seconds.
	ToUTC(local int64) int64
	// ToLocal converts UTC seconds to local wall-clock seconds.
	ToLocal(utc int64) int64
	// StandardOffset is the standard-time offset in minutes east of UTC.
	StandardOffset() int
	// DaylightOffset is the daylight-time offset in minutes east of UTC.
	DaylightOffset() int
}

// Platform is the calendar system against which all Instants are
// interpreted. Set it once, before creating Instants; Timezones in use
// must be built for the same system.
var Platform = calendar.Unix

// An Instant is an immutable point in time.
// Use *Instant; an Instant must not be copied after first use.
type Instant struct {
	secs int64
	tz   Timezone

	once   sync.Once
	fields calendar.Fields // valid after once
}

// New returns the Instant secs seconds after the epoch of Platform.
// A nil tz means UTC; otherwise secs is a local wall-clock count in tz.
func New(secs int64, tz Timezone) *Instant {
	return &Instant{secs: secs, tz: tz}
}

// FromValue is like New but accepts any Go integer type.
// It returns an *InvalidArgumentError for non-integral values and for
// unsigned values beyond the int64 range.
func FromValue(v interface{}, tz Timezone) (*Instant, error) {
	var secs int64
	switch v := v.(type) {
	case int:
		secs = int64(v)
	case int8:
		secs = int64(v)
	case int16:
		secs = int64(v)
	case int32:
		secs = int64(v)
	case int64:
		secs = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, &InvalidArgumentError{Value: v}
		}
		secs = int64(v)
	case uint8:
		secs = int64(v)
	case uint16:
		secs = int64(v)
	case uint32:
		secs = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return nil, &InvalidArgumentError{Value: v}
		}
		secs = int64(v)
	default:
		return nil, &InvalidArgumentError{Value: v}
	}
	return New(secs, tz), nil
}

// Create returns the Instant with the given calendar fields in tz
// (nil for UTC). Fields outside their usual range are normalized, as
// by calendar.System.Mktime. Create fails with an *UnsupportedYearError
// if year precedes the epoch year of Platform.
func Create(year, month, day, hour, min, sec int, tz Timezone) (*Instant, error) {
	if floor := Platform.Floor(); year < floor {
		return nil, &UnsupportedYearError{Year: year, Floor: floor}
	}
	return New(Platform.Mktime(year, month, day, hour, min, sec), tz), nil
}

// Seconds returns the raw second count: UTC if the Instant has no
// Timezone, local wall-clock otherwise.
func (x *Instant) Seconds() int64 { return x.secs }

// Timezone returns the attached Timezone, or nil for UTC.
func (x *Instant) Timezone() Timezone { return x.tz }

// WithTimezone returns an Instant with the same second count and a
// different Timezone. The count is not reinterpreted; use ToTimezone
// to convert.
func (x *Instant) WithTimezone(tz Timezone) *Instant { return New(x.secs, tz) }

// Fields returns the calendar decomposition of the Instant's own
// (local) second count. It is computed once.
func (x *Instant) Fields() calendar.Fields {
	x.once.Do(func() {
		x.fields = Platform.Localtime(x.secs)
	})
	return x.fields
}

// Year returns the calendar year, such as 2024.
func (x *Instant) Year() int { return x.Fields().Year }

// Month returns the month of the year, 1-12.
func (x *Instant) Month() int { return x.Fields().Month }

// Day returns the day of the month, 1-31.
func (x *Instant) Day() int { return x.Fields().Day }

// Hour returns the hour of the day, 0-23.
func (x *Instant) Hour() int { return x.Fields().Hour }

// Minute returns the minute of the hour, 0-59.
func (x *Instant) Minute() int { return x.Fields().Minute }

// Second returns the second of the minute, 0-59.
func (x *Instant) Second() int { return x.Fields().Second }

// DayOfWeek returns the day of the week, 0-6 with Monday == 0.
func (x *Instant) DayOfWeek() int { return x.Fields().Weekday }

// IsDST reports whether the Instant is in daylight time in its
// Timezone. It is false without a Timezone.
func (x *Instant) IsDST() bool {
	if x.tz == nil {
		return false
	}
	return x.tz.IsLocalDST(x.secs)
}

// IsSTD reports whether the Instant is in standard time.
func (x *Instant) IsSTD() bool { return !x.IsDST() }

// ToUTC returns the same moment as a UTC Instant.
func (x *Instant) ToUTC() *Instant {
	if x.tz == nil {
		return New(x.secs, nil)
	}
	return New(x.tz.ToUTC(x.secs), nil)
}

// ToTimezone returns the same moment expressed in tz.
// A nil tz converts to UTC.
func (x *Instant) ToTimezone(tz Timezone) *Instant {
	z := x.ToUTC()
	if tz == nil {
		return z
	}
	return New(tz.ToLocal(z.secs), tz)
}

// SecondsBetween returns the number of seconds from x to y,
// positive when y is later.
func (x *Instant) SecondsBetween(y *Instant) int64 {
	return y.utc() - x.utc()
}

// utc returns the UTC second count without allocating.
func (x *Instant) utc() int64 {
	if x.tz == nil {
		return x.secs
	}
	return x.tz.ToUTC(x.secs)
}
