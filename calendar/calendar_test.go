// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.tztime.net/calendar"
)

func TestUnixOffset(t *testing.T) {
	for _, test := range []struct {
		sys  calendar.System
		want int64
	}{
		{calendar.Unix, 0},
		{calendar.System{}, 0},
		{calendar.MicroPython, 946684800},
	} {
		if got := test.sys.UnixOffset(); got != test.want {
			t.Errorf("%+v.UnixOffset() = %d, want %d", test.sys, got, test.want)
		}
	}
}

func TestMktime(t *testing.T) {
	u := calendar.Unix
	for _, test := range []struct {
		name string
		got  int64
		want int64
	}{
		{"plain", u.Mktime(2024, 1, 1, 0, 0, 0), 1704067200},
		{"month 13", u.Mktime(2024, 13, 1, 0, 0, 0), u.Mktime(2025, 1, 1, 0, 0, 0)},
		{"month 0", u.Mktime(2024, 0, 15, 0, 0, 0), u.Mktime(2023, 12, 15, 0, 0, 0)},
		{"day 0", u.Mktime(2024, 3, 0, 0, 0, 0), u.Mktime(2024, 2, 29, 0, 0, 0)},
		{"day 32", u.Mktime(2024, 1, 32, 0, 0, 0), u.Mktime(2024, 2, 1, 0, 0, 0)},
		{"hour 25", u.Mktime(2024, 1, 1, 25, 0, 0), u.Mktime(2024, 1, 2, 1, 0, 0)},
		{"minute -1", u.Mktime(2024, 1, 1, 0, -1, 0), u.Mktime(2023, 12, 31, 23, 59, 0)},
		{"second 3600", u.Mktime(2024, 1, 1, 0, 0, 3600), u.Mktime(2024, 1, 1, 1, 0, 0)},
		{"year below floor", u.Mktime(1969, 12, 31, 0, 0, 0), u.Mktime(1970, 12, 31, 0, 0, 0)},
		{"negative result", u.Mktime(1970, 1, 1, -1, 0, 0), 0},
		{"micropython epoch", calendar.MicroPython.Mktime(2000, 1, 1, 0, 0, 0), 0},
		{"micropython day", calendar.MicroPython.Mktime(2000, 1, 2, 0, 0, 0), calendar.SecondsPerDay},
	} {
		if test.got != test.want {
			t.Errorf("%s: got %d, want %d", test.name, test.got, test.want)
		}
	}
}

func TestLocaltime(t *testing.T) {
	for _, test := range []struct {
		sys  calendar.System
		secs int64
		want calendar.Fields
	}{
		{calendar.Unix, 0, calendar.Fields{1970, 1, 1, 0, 0, 0, 3, 1}},
		{calendar.Unix, -5, calendar.Fields{1969, 12, 31, 23, 59, 55, 2, 365}},
		{calendar.Unix, 1710498600, calendar.Fields{2024, 3, 15, 10, 30, 0, 4, 75}},
		{calendar.MicroPython, 0, calendar.Fields{2000, 1, 1, 0, 0, 0, 5, 1}},
		{calendar.MicroPython, 86399, calendar.Fields{2000, 1, 1, 23, 59, 59, 5, 1}},
		{calendar.MicroPython, -3600, calendar.Fields{1999, 12, 31, 23, 0, 0, 4, 365}},
	} {
		got := test.sys.Localtime(test.secs)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Localtime(%d) mismatch (-want +got):\n%s", test.secs, diff)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, sys := range []calendar.System{calendar.Unix, calendar.MicroPython} {
		for _, secs := range []int64{0, 1, 59, 86400, 951782400, 1709164800, 4102444799} {
			f := sys.Localtime(secs)
			if got := sys.Mktime(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second); got != secs {
				t.Errorf("epoch %d: Mktime(Localtime(%d)) = %d", sys.EpochYear, secs, got)
			}
		}
	}
}

func TestUnixConversion(t *testing.T) {
	mp := calendar.MicroPython
	if got := mp.FromUnix(946684800 + 10); got != 10 {
		t.Errorf("FromUnix = %d, want 10", got)
	}
	if got := mp.FromUnix(5); got != 0 {
		t.Errorf("FromUnix(before epoch) = %d, want 0", got)
	}
	if got := mp.ToUnix(10); got != 946684810 {
		t.Errorf("ToUnix = %d, want 946684810", got)
	}
	if got := mp.Floor(); got != 2000 {
		t.Errorf("Floor = %d, want 2000", got)
	}
}
