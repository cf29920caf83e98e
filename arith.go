// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

// The plus and with methods change one calendar field of the local
// decomposition and renormalize all six through Platform.Mktime, so an
// out-of-range result carries into the larger fields (hour 25 is 01h the
// next day; month 0 is December of the previous year). They never fail:
// a year before the platform floor is raised to the floor and a result
// before the epoch is raised to the epoch. The Timezone is kept as is.

func (x *Instant) derive(year, month, day, hour, min, sec int) *Instant {
	return New(Platform.Mktime(year, month, day, hour, min, sec), x.tz)
}

// PlusYears returns x with n years added to its year field.
// February 29 in a non-leap target year becomes March 1.
func (x *Instant) PlusYears(n int) *Instant {
	f := x.Fields()
	return x.derive(f.Year+n, f.Month, f.Day, f.Hour, f.Minute, f.Second)
}

// PlusMonths returns x with n months added to its month field.
// A day beyond the end of the target month spills into the next month,
// so January 31 plus one month is March 2 (or March 1 in a leap year).
func (x *Instant) PlusMonths(n int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month+n, f.Day, f.Hour, f.Minute, f.Second)
}

// PlusDays returns x with n days added to its day field.
func (x *Instant) PlusDays(n int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, f.Day+n, f.Hour, f.Minute, f.Second)
}

// PlusHours returns x with n hours added to its hour field.
func (x *Instant) PlusHours(n int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, f.Day, f.Hour+n, f.Minute, f.Second)
}

// PlusMinutes returns x with n minutes added to its minute field.
func (x *Instant) PlusMinutes(n int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, f.Day, f.Hour, f.Minute+n, f.Second)
}

// PlusSeconds returns x with n seconds added to its second field.
func (x *Instant) PlusSeconds(n int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second+n)
}

// WithYear returns x with its year field replaced.
func (x *Instant) WithYear(year int) *Instant {
	f := x.Fields()
	return x.derive(year, f.Month, f.Day, f.Hour, f.Minute, f.Second)
}

// WithMonth returns x with its month field replaced.
// Values outside 1-12 adjust the year.
func (x *Instant) WithMonth(month int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, month, f.Day, f.Hour, f.Minute, f.Second)
}

// WithDay returns x with its day-of-month field replaced.
// Values outside the month adjust the month.
func (x *Instant) WithDay(day int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, day, f.Hour, f.Minute, f.Second)
}

// WithHour returns x with its hour field replaced.
// Values outside 0-23 adjust the day.
func (x *Instant) WithHour(hour int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, f.Day, hour, f.Minute, f.Second)
}

// WithMinute returns x with its minute field replaced.
func (x *Instant) WithMinute(min int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, f.Day, f.Hour, min, f.Second)
}

// WithSecond returns x with its second field replaced.
func (x *Instant) WithSecond(sec int) *Instant {
	f := x.Fields()
	return x.derive(f.Year, f.Month, f.Day, f.Hour, f.Minute, sec)
}
