// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.tztime.net"
	"go.tztime.net/calendar"
	"go.tztime.net/timezone"
)

// fixed is a Timezone with a constant offset in minutes and no DST.
type fixed int

func (f fixed) IsLocalDST(int64) bool   { return false }
func (f fixed) ToUTC(local int64) int64 { return local - int64(f)*60 }
func (f fixed) ToLocal(utc int64) int64 { return utc + int64(f)*60 }
func (f fixed) StandardOffset() int     { return int(f) }
func (f fixed) DaylightOffset() int     { return int(f) }

// ambiguous reports whether utc falls in the hour tz repeats when its
// clocks fall back. Local counts in that hour do not round-trip.
func ambiguous(tz tztime.Timezone, utc int64) bool {
	z, ok := tz.(*timezone.Timezone)
	if !ok {
		return false
	}
	_, _, _, stdUTC := z.Transitions(calendar.Unix.Year(utc))
	fold := int64(z.DaylightOffset()-z.StandardOffset()) * 60
	return utc >= stdUTC && utc < stdUTC+fold
}

func mustCreate(t *testing.T, year, month, day, hour, min, sec int, tz tztime.Timezone) *tztime.Instant {
	t.Helper()
	x, err := tztime.Create(year, month, day, hour, min, sec, tz)
	if err != nil {
		t.Fatal(err)
	}
	return x
}

func mustZone(t *testing.T, name string) *timezone.Timezone {
	t.Helper()
	tz, err := timezone.Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return tz
}

func setPlatform(t *testing.T, sys calendar.System) {
	old := tztime.Platform
	tztime.Platform = sys
	t.Cleanup(func() { tztime.Platform = old })
}

func TestCreate(t *testing.T) {
	x := mustCreate(t, 2024, 3, 15, 10, 30, 0, nil)
	if got, want := x.ISO8601(), "2024-03-15T10:30:00Z"; got != want {
		t.Errorf("ISO8601() = %s, want %s", got, want)
	}
	if got, want := x.Seconds(), int64(1710498600); got != want {
		t.Errorf("Seconds() = %d, want %d", got, want)
	}
	want := calendar.Fields{Year: 2024, Month: 3, Day: 15, Hour: 10, Minute: 30, Second: 0, Weekday: 4, YearDay: 75}
	if diff := cmp.Diff(want, x.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
	if x.Year() != 2024 || x.Month() != 3 || x.Day() != 15 || x.Hour() != 10 ||
		x.Minute() != 30 || x.Second() != 0 || x.DayOfWeek() != 4 {
		t.Errorf("field accessors disagree with Fields(): %+v", x.Fields())
	}
	if x.Timezone() != nil {
		t.Errorf("Timezone() = %v, want nil", x.Timezone())
	}
}

func TestCreateNormalizes(t *testing.T) {
	x := mustCreate(t, 2024, 13, 1, 0, 0, 0, nil)
	if got, want := x.ISO8601(), "2025-01-01T00:00:00Z"; got != want {
		t.Errorf("Create(2024, 13, 1) = %s, want %s", got, want)
	}
}

func TestUnsupportedYear(t *testing.T) {
	setPlatform(t, calendar.MicroPython)
	_, err := tztime.Create(1999, 12, 31, 0, 0, 0, nil)
	var yerr *tztime.UnsupportedYearError
	if !errors.As(err, &yerr) {
		t.Fatalf("Create(1999) error = %v, want UnsupportedYearError", err)
	}
	if yerr.Year != 1999 || yerr.Floor != 2000 {
		t.Errorf("UnsupportedYearError = %+v", yerr)
	}
	x := mustCreate(t, 2000, 1, 1, 0, 0, 0, nil)
	if x.Seconds() != 0 {
		t.Errorf("Create(2000, 1, 1).Seconds() = %d, want 0", x.Seconds())
	}
}

func TestFromValue(t *testing.T) {
	for _, v := range []interface{}{int(7), int32(7), int64(7), uint8(7), uint64(7)} {
		x, err := tztime.FromValue(v, nil)
		if err != nil || x.Seconds() != 7 {
			t.Errorf("FromValue(%T) = %v, %v", v, x, err)
		}
	}
	for _, v := range []interface{}{7.5, "7", nil, uint64(1) << 63} {
		_, err := tztime.FromValue(v, nil)
		var aerr *tztime.InvalidArgumentError
		if !errors.As(err, &aerr) {
			t.Errorf("FromValue(%#v) error = %v, want InvalidArgumentError", v, err)
		}
	}
}

func TestNow(t *testing.T) {
	old := tztime.NowFunc
	defer func() { tztime.NowFunc = old }()
	tztime.NowFunc = func() int64 { return 946684800 + 60 }

	if got := tztime.Now().Seconds(); got != 946684860 {
		t.Errorf("Now() on Unix = %d, want 946684860", got)
	}
	setPlatform(t, calendar.MicroPython)
	now := tztime.Now()
	if now.Seconds() != 60 || now.Timezone() != nil {
		t.Errorf("Now() on MicroPython = %d %v, want 60 UTC", now.Seconds(), now.Timezone())
	}
	if got, want := now.ISO8601(), "2000-01-01T00:01:00Z"; got != want {
		t.Errorf("Now().ISO8601() = %s, want %s", got, want)
	}
}

func TestSystemClock(t *testing.T) {
	if tztime.Now().Year() < 2024 {
		t.Errorf("system clock reads %s", tztime.Now())
	}
}

func TestArithmetic(t *testing.T) {
	for _, test := range []struct {
		name string
		got  func() *tztime.Instant
		want string
	}{
		{"plus day across month", func() *tztime.Instant { return mustCreate(t, 2024, 1, 31, 0, 0, 0, nil).PlusDays(1) }, "2024-02-01T00:00:00Z"},
		{"plus hours across day", func() *tztime.Instant { return mustCreate(t, 2024, 1, 1, 23, 0, 0, nil).PlusHours(2) }, "2024-01-02T01:00:00Z"},
		{"plus month overflows short month", func() *tztime.Instant { return mustCreate(t, 2024, 1, 31, 0, 0, 0, nil).PlusMonths(1) }, "2024-03-02T00:00:00Z"},
		{"plus month non-leap", func() *tztime.Instant { return mustCreate(t, 2023, 1, 31, 0, 0, 0, nil).PlusMonths(1) }, "2023-03-03T00:00:00Z"},
		{"minus months across year", func() *tztime.Instant { return mustCreate(t, 2024, 2, 10, 0, 0, 0, nil).PlusMonths(-3) }, "2023-11-10T00:00:00Z"},
		{"plus year from leap day", func() *tztime.Instant { return mustCreate(t, 2024, 2, 29, 0, 0, 0, nil).PlusYears(1) }, "2025-03-01T00:00:00Z"},
		{"minus minute across year", func() *tztime.Instant { return mustCreate(t, 2024, 1, 1, 0, 0, 0, nil).PlusMinutes(-1) }, "2023-12-31T23:59:00Z"},
		{"plus seconds", func() *tztime.Instant { return mustCreate(t, 2024, 1, 1, 0, 0, 0, nil).PlusSeconds(3661) }, "2024-01-01T01:01:01Z"},
		{"with year", func() *tztime.Instant { return mustCreate(t, 2024, 6, 1, 0, 0, 0, nil).WithYear(2030) }, "2030-06-01T00:00:00Z"},
		{"with month 13", func() *tztime.Instant { return mustCreate(t, 2024, 6, 1, 0, 0, 0, nil).WithMonth(13) }, "2025-01-01T00:00:00Z"},
		{"with month 0", func() *tztime.Instant { return mustCreate(t, 2024, 6, 1, 0, 0, 0, nil).WithMonth(0) }, "2023-12-01T00:00:00Z"},
		{"with day 0", func() *tztime.Instant { return mustCreate(t, 2024, 3, 10, 0, 0, 0, nil).WithDay(0) }, "2024-02-29T00:00:00Z"},
		{"with hour 25", func() *tztime.Instant { return mustCreate(t, 2024, 3, 10, 0, 0, 0, nil).WithHour(25) }, "2024-03-11T01:00:00Z"},
		{"with minute 60", func() *tztime.Instant { return mustCreate(t, 2024, 3, 10, 5, 0, 0, nil).WithMinute(60) }, "2024-03-10T06:00:00Z"},
		{"with second -1", func() *tztime.Instant { return mustCreate(t, 2024, 3, 10, 5, 0, 0, nil).WithSecond(-1) }, "2024-03-10T04:59:59Z"},
		{"clamped at epoch", func() *tztime.Instant { return tztime.New(0, nil).PlusSeconds(-1) }, "1970-01-01T00:00:00Z"},
		{"year clamped at floor", func() *tztime.Instant { return mustCreate(t, 1975, 5, 5, 0, 0, 0, nil).WithYear(1960) }, "1970-05-05T00:00:00Z"},
	} {
		if got := test.got().ISO8601(); got != test.want {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
	}
}

func TestArithmeticKeepsTimezone(t *testing.T) {
	tz := mustZone(t, "Europe/Central")
	x := mustCreate(t, 2024, 1, 15, 12, 0, 0, tz)
	y := x.PlusMonths(6)
	if y.Timezone() != tz {
		t.Errorf("PlusMonths dropped the timezone")
	}
	// Fields are local: noon stays noon across the DST change.
	if got, want := y.ISO8601(), "2024-07-15T12:00:00+02:00"; got != want {
		t.Errorf("PlusMonths(6) = %s, want %s", got, want)
	}
	if got := x.SecondsBetween(y); got != 182*86400-3600 {
		t.Errorf("SecondsBetween = %d, want %d", got, 182*86400-3600)
	}
	if got, want := x.ISO8601(), "2024-01-15T12:00:00+01:00"; got != want {
		t.Errorf("receiver modified: %s, want %s", got, want)
	}
}

func TestISO8601Offsets(t *testing.T) {
	for _, test := range []struct {
		tz   tztime.Timezone
		want string
	}{
		{nil, "2024-07-04T12:00:00Z"},
		{mustZone(t, "US/Eastern"), "2024-07-04T12:00:00-04:00"},
		{mustZone(t, "US/Arizona"), "2024-07-04T12:00:00-07:00"},
		{mustZone(t, "Australia/Eastern"), "2024-07-04T12:00:00+10:00"},
		{mustZone(t, "UTC"), "2024-07-04T12:00:00+00:00"},
		{fixed(330), "2024-07-04T12:00:00+05:30"},
		{fixed(-30), "2024-07-04T12:00:00-00:30"},
		{fixed(-570), "2024-07-04T12:00:00-09:30"},
	} {
		x := mustCreate(t, 2024, 7, 4, 12, 0, 0, test.tz)
		if got := x.ISO8601(); got != test.want {
			t.Errorf("ISO8601() = %s, want %s", got, test.want)
		}
		if got := x.String(); got != test.want {
			t.Errorf("String() = %s, want %s", got, test.want)
		}
	}
	winter := mustCreate(t, 2024, 1, 4, 12, 0, 0, mustZone(t, "US/Eastern"))
	if got, want := winter.ISO8601(), "2024-01-04T12:00:00-05:00"; got != want {
		t.Errorf("ISO8601() = %s, want %s", got, want)
	}
}

func TestDST(t *testing.T) {
	tz := mustZone(t, "US/Eastern")
	summer := mustCreate(t, 2024, 7, 4, 12, 0, 0, tz)
	winter := mustCreate(t, 2024, 1, 4, 12, 0, 0, tz)
	utc := mustCreate(t, 2024, 7, 4, 12, 0, 0, nil)
	if !summer.IsDST() || summer.IsSTD() {
		t.Error("July in US/Eastern is not DST")
	}
	if winter.IsDST() || !winter.IsSTD() {
		t.Error("January in US/Eastern is DST")
	}
	if utc.IsDST() || !utc.IsSTD() {
		t.Error("UTC instant reports DST")
	}
	if summer.Offset() != -240 || winter.Offset() != -300 || utc.Offset() != 0 {
		t.Errorf("Offset() = %d, %d, %d", summer.Offset(), winter.Offset(), utc.Offset())
	}
}

func TestConversion(t *testing.T) {
	eastern := mustZone(t, "US/Eastern")
	x := mustCreate(t, 2024, 7, 4, 16, 0, 0, nil)

	local := x.ToTimezone(eastern)
	if got, want := local.ISO8601(), "2024-07-04T12:00:00-04:00"; got != want {
		t.Errorf("ToTimezone = %s, want %s", got, want)
	}
	if !local.Equal(x) || local.Seconds() == x.Seconds() {
		t.Errorf("ToTimezone changed the moment or kept the count: %d vs %d", local.Seconds(), x.Seconds())
	}
	if got := local.ToUTC(); got.Seconds() != x.Seconds() || got.Timezone() != nil {
		t.Errorf("ToUTC = %d %v, want %d UTC", got.Seconds(), got.Timezone(), x.Seconds())
	}
	if got := local.ToTimezone(nil); got.Seconds() != x.Seconds() || got.Timezone() != nil {
		t.Errorf("ToTimezone(nil) = %d %v", got.Seconds(), got.Timezone())
	}
	if got := local.ToTimezone(eastern); got.Seconds() != local.Seconds() {
		t.Errorf("ToTimezone(same) = %d, want %d", got.Seconds(), local.Seconds())
	}

	central := mustZone(t, "Europe/Central")
	if got, want := local.ToTimezone(central).ISO8601(), "2024-07-04T18:00:00+02:00"; got != want {
		t.Errorf("ToTimezone(Europe/Central) = %s, want %s", got, want)
	}

	w := local.WithTimezone(central)
	if w.Seconds() != local.Seconds() || w.Timezone() != central {
		t.Errorf("WithTimezone reinterpreted the count")
	}
	if w.Equal(local) {
		t.Errorf("WithTimezone kept the moment")
	}
}

func TestToUTCBeforeEpoch(t *testing.T) {
	local := tztime.New(3600, fixed(600))
	if got, want := local.ISO8601(), "1970-01-01T01:00:00+10:00"; got != want {
		t.Errorf("ISO8601() = %s, want %s", got, want)
	}
	utc := local.ToUTC()
	if got, want := utc.Seconds(), int64(-32400); got != want {
		t.Errorf("ToUTC().Seconds() = %d, want %d", got, want)
	}
	if got, want := utc.ISO8601(), "1969-12-31T15:00:00Z"; got != want {
		t.Errorf("ToUTC() = %s, want %s", got, want)
	}
	if utc.Year() != 1969 || utc.DayOfWeek() != 2 {
		t.Errorf("ToUTC() year %d weekday %d, want 1969 and Wednesday (2)", utc.Year(), utc.DayOfWeek())
	}
}

func TestComparison(t *testing.T) {
	eastern := mustZone(t, "US/Eastern")
	a := mustCreate(t, 2024, 7, 4, 16, 0, 0, nil)
	b := a.ToTimezone(eastern)
	c := a.PlusSeconds(1)

	for _, test := range []struct {
		x, y *tztime.Instant
		op   tztime.Op
		want bool
	}{
		{a, b, tztime.EQL, true},
		{a, b, tztime.NEQ, false},
		{a, b, tztime.LE, true},
		{a, b, tztime.GE, true},
		{a, b, tztime.LT, false},
		{b, c, tztime.LT, true},
		{c, b, tztime.GT, true},
		{c, b, tztime.NEQ, true},
		{c, b, tztime.LE, false},
	} {
		if got := test.x.Cmp(test.op, test.y); got != test.want {
			t.Errorf("%s %s %s = %t, want %t", test.x, test.op, test.y, got, test.want)
		}
	}
	if !a.Equal(b) || !b.Before(c) || !c.After(a) || a.Compare(c) != -1 {
		t.Error("typed comparisons disagree with Cmp")
	}
}

func TestComparisonForeign(t *testing.T) {
	x := mustCreate(t, 2024, 7, 4, 16, 0, 0, nil)
	var nilInstant *tztime.Instant
	for _, y := range []interface{}{nil, nilInstant, 1720108800, "2024-07-04T16:00:00Z", struct{}{}} {
		for _, op := range []tztime.Op{tztime.EQL, tztime.NEQ, tztime.LT, tztime.LE, tztime.GT, tztime.GE} {
			if x.Cmp(op, y) {
				t.Errorf("x %s %#v = true, want false", op, y)
			}
		}
	}
	if x.Cmp(tztime.Op(42), x) {
		t.Error("unknown operator compared true")
	}
	if got := tztime.Op(42).String(); got != "Op(42)" {
		t.Errorf("Op(42).String() = %q", got)
	}
}

func TestProperties(t *testing.T) {
	zones := []tztime.Timezone{nil, fixed(330), fixed(-480)}
	for _, name := range timezone.Names() {
		zones = append(zones, mustZone(t, name))
	}
	rng := rand.New(rand.NewSource(1))
	start := mustCreate(t, 2020, 1, 1, 0, 0, 0, nil).Seconds()
	random := func() *tztime.Instant {
		for {
			secs := start + rng.Int63n(10*365*86400)
			ok := true
			for _, tz := range zones {
				ok = ok && !ambiguous(tz, secs)
			}
			if ok {
				return tztime.New(secs, nil).ToTimezone(zones[rng.Intn(len(zones))])
			}
		}
	}

	for i := 0; i < 2000; i++ {
		a, b := random(), random()

		if u := a.ToUTC(); u.ToUTC().Seconds() != u.Seconds() {
			t.Fatalf("ToUTC not idempotent for %s", a)
		}
		for _, tz := range zones {
			if got, want := a.ToTimezone(tz).ToUTC().Seconds(), a.ToUTC().Seconds(); got != want {
				t.Fatalf("%s.ToTimezone(%v).ToUTC() = %d, want %d", a, tz, got, want)
			}
		}
		n := 0
		for _, op := range []tztime.Op{tztime.LT, tztime.EQL, tztime.GT} {
			if a.Cmp(op, b) {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("%s vs %s: %d of <, ==, > hold", a, b, n)
		}
		if a.SecondsBetween(b) != -b.SecondsBetween(a) {
			t.Fatalf("SecondsBetween not antisymmetric for %s, %s", a, b)
		}
	}
}

func TestFieldsCached(t *testing.T) {
	old := tztime.Platform
	x := mustCreate(t, 2024, 3, 15, 10, 30, 0, nil)
	first := x.Fields()
	tztime.Platform = calendar.MicroPython
	second := x.Fields()
	tztime.Platform = old
	if first != second {
		t.Errorf("Fields recomputed: %+v then %+v", first, second)
	}
}
