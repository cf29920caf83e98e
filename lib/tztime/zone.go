// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

import (
	"fmt"
	"strings"
	"time"

	"go.starlark.net/starlark"
	"go.tztime.net"
	"go.tztime.net/timezone"
)

// Zone is a Starlark representation of a tztime.Timezone.
type Zone struct {
	tz tztime.Timezone
}

// MakeZone returns the Starlark value for tz; None if tz is nil.
func MakeZone(tz tztime.Timezone) starlark.Value { return makeZone(tz) }

func makeZone(tz tztime.Timezone) starlark.Value {
	if tz == nil {
		return starlark.None
	}
	return Zone{tz}
}

// Timezone returns the underlying tztime.Timezone.
func (z Zone) Timezone() tztime.Timezone { return z.tz }

func (z Zone) String() string {
	if s, ok := z.tz.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("UTC%+d/%+d", z.tz.StandardOffset(), z.tz.DaylightOffset())
}

// Type returns "tztime.timezone".
func (z Zone) Type() string          { return "tztime.timezone" }
func (z Zone) Freeze()               {} // immutable
func (z Zone) Truth() starlark.Bool  { return starlark.True }
func (z Zone) Hash() (uint32, error) { return starlark.String(z.String()).Hash() }

// Attr implements starlark.HasAttrs.
func (z Zone) Attr(name string) (starlark.Value, error) {
	switch name {
	case "name":
		return starlark.String(z.String()), nil
	case "std_offset":
		return starlark.MakeInt(z.tz.StandardOffset()), nil
	case "dst_offset":
		return starlark.MakeInt(z.tz.DaylightOffset()), nil
	case "observes_dst":
		if tz, ok := z.tz.(*timezone.Timezone); ok {
			return starlark.Bool(tz.ObservesDST()), nil
		}
		return starlark.Bool(z.tz.StandardOffset() != z.tz.DaylightOffset()), nil
	}
	return builtinAttr(z, name, zoneMethods)
}

// AttrNames implements starlark.HasAttrs.
func (z Zone) AttrNames() []string {
	return append(builtinAttrNames(zoneMethods), "dst_offset", "name", "observes_dst", "std_offset")
}

var zoneMethods = map[string]builtinMethod{
	"is_dst": zoneIsDST,
}

// zoneIsDST reports whether the moment of an instant falls in daylight
// time in the receiver zone.
func zoneIsDST(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t Instant
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &t); err != nil {
		return nil, err
	}
	return starlark.Bool(t.x.ToTimezone(recV.(Zone).tz).IsDST()), nil
}

// zoneArg unpacks an optional timezone argument, where None means UTC.
type zoneArg struct {
	tz tztime.Timezone
}

func (a *zoneArg) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case starlark.NoneType:
		a.tz = nil
	case Zone:
		a.tz = v.tz
	default:
		return fmt.Errorf("got %s, want tztime.timezone or None", v.Type())
	}
	return nil
}

// Rule is a Starlark representation of a timezone.Rule.
type Rule struct {
	rule timezone.Rule
}

var weeks = map[string]timezone.Week{
	"last":   timezone.Last,
	"first":  timezone.First,
	"second": timezone.Second,
	"third":  timezone.Third,
	"fourth": timezone.Fourth,
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func newRule(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		abbrev, week, weekday string
		month, hour, offset   int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"abbrev", &abbrev, "week", &week, "weekday", &weekday,
		"month", &month, "hour", &hour, "offset", &offset); err != nil {
		return nil, err
	}
	w, ok := weeks[strings.ToLower(week)]
	if !ok {
		return nil, fmt.Errorf("%s: unknown week %q", b.Name(), week)
	}
	d, ok := weekdays[strings.ToLower(weekday)]
	if !ok {
		return nil, fmt.Errorf("%s: unknown weekday %q", b.Name(), weekday)
	}
	r := timezone.Rule{
		Abbrev:  abbrev,
		Week:    w,
		Weekday: d,
		Month:   time.Month(month),
		Hour:    hour,
		Offset:  offset,
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	return Rule{r}, nil
}

func (r Rule) String() string        { return r.rule.String() }
func (r Rule) Type() string          { return "tztime.rule" }
func (r Rule) Freeze()               {} // immutable
func (r Rule) Truth() starlark.Bool  { return starlark.True }
func (r Rule) Hash() (uint32, error) { return starlark.String(r.String()).Hash() }

func (r Rule) AttrNames() []string {
	return []string{"abbrev", "hour", "month", "offset", "week", "weekday"}
}

func (r Rule) Attr(name string) (starlark.Value, error) {
	switch name {
	case "abbrev":
		return starlark.String(r.rule.Abbrev), nil
	case "week":
		return starlark.String(strings.ToLower(r.rule.Week.String())), nil
	case "weekday":
		return starlark.String(strings.ToLower(r.rule.Weekday.String())), nil
	case "month":
		return starlark.MakeInt(int(r.rule.Month)), nil
	case "hour":
		return starlark.MakeInt(r.rule.Hour), nil
	case "offset":
		return starlark.MakeInt(r.rule.Offset), nil
	}
	return nil, nil
}

// Unpack lets builtins accept a rule argument.
func (r *Rule) Unpack(v starlark.Value) error {
	x, ok := v.(Rule)
	if !ok {
		return fmt.Errorf("got %s, want tztime.rule", v.Type())
	}
	*r = x
	return nil
}
