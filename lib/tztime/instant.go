// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.tztime.net"
)

// Instant is a Starlark representation of a tztime.Instant.
type Instant struct {
	x *tztime.Instant
}

// MakeInstant returns the Starlark value for x.
func MakeInstant(x *tztime.Instant) Instant { return Instant{x} }

// Instant returns the underlying tztime.Instant.
func (t Instant) Instant() *tztime.Instant { return t.x }

var (
	_ starlark.Comparable = Instant{}
	_ starlark.HasAttrs   = Instant{}
	_ starlark.HasBinary  = Instant{}
)

// String returns the ISO 8601 form of the instant.
func (t Instant) String() string { return t.x.ISO8601() }

// Type returns "tztime.instant".
func (t Instant) Type() string { return "tztime.instant" }

// Freeze renders the instant immutable. required by starlark.Value
// interface because Instant is already immutable this is a no-op.
func (t Instant) Freeze() {}

// Hash returns a function of the UTC moment, so that instants that
// compare equal hash alike whatever their timezones.
func (t Instant) Hash() (uint32, error) {
	utc := t.x.ToUTC().Seconds()
	return uint32(utc) ^ uint32(utc>>32), nil
}

// Truth reports true; every instant is a valid moment.
func (t Instant) Truth() starlark.Bool { return starlark.True }

// Attr gets a value for a string attribute, implementing dot expression
// support in starlark. required by starlark.HasAttrs interface.
func (t Instant) Attr(name string) (starlark.Value, error) {
	switch name {
	case "year":
		return starlark.MakeInt(t.x.Year()), nil
	case "month":
		return starlark.MakeInt(t.x.Month()), nil
	case "day":
		return starlark.MakeInt(t.x.Day()), nil
	case "hour":
		return starlark.MakeInt(t.x.Hour()), nil
	case "minute":
		return starlark.MakeInt(t.x.Minute()), nil
	case "second":
		return starlark.MakeInt(t.x.Second()), nil
	case "day_of_week":
		return starlark.MakeInt(t.x.DayOfWeek()), nil
	case "seconds":
		return starlark.MakeInt64(t.x.Seconds()), nil
	case "offset":
		return starlark.MakeInt(t.x.Offset()), nil
	case "tz":
		return makeZone(t.x.Timezone()), nil
	}
	return builtinAttr(t, name, instantMethods)
}

// AttrNames lists available dot expression strings for instants.
// required by starlark.HasAttrs interface.
func (t Instant) AttrNames() []string {
	return append(builtinAttrNames(instantMethods),
		"day",
		"day_of_week",
		"hour",
		"minute",
		"month",
		"offset",
		"second",
		"seconds",
		"tz",
		"year",
	)
}

// CompareSameType compares two instants by their UTC moments.
// required by starlark.Comparable interface.
func (t Instant) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	cmpOp, ok := ops[op]
	if !ok {
		return false, fmt.Errorf("%s %s %s not implemented", t.Type(), op, yV.Type())
	}
	return t.x.Cmp(cmpOp, yV.(Instant).x), nil
}

var ops = map[syntax.Token]tztime.Op{
	syntax.EQL: tztime.EQL,
	syntax.NEQ: tztime.NEQ,
	syntax.LT:  tztime.LT,
	syntax.LE:  tztime.LE,
	syntax.GT:  tztime.GT,
	syntax.GE:  tztime.GE,
}

// Binary implements binary operators, which satisfies the starlark.HasBinary
// interface
//    instant + int = instant
//    int + instant = instant
//    instant - int = instant
//    instant - instant = int
func (t Instant) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	switch op {
	case syntax.PLUS:
		if n, ok := yV.(starlark.Int); ok {
			secs, err := starlark.AsInt32(n)
			if err != nil {
				return nil, err
			}
			return Instant{t.x.PlusSeconds(secs)}, nil
		}
	case syntax.MINUS:
		switch y := yV.(type) {
		case starlark.Int:
			if side == starlark.Right {
				return nil, nil // int - instant
			}
			secs, err := starlark.AsInt32(y)
			if err != nil {
				return nil, err
			}
			return Instant{t.x.PlusSeconds(-secs)}, nil
		case Instant:
			if side == starlark.Left {
				return starlark.MakeInt64(y.x.SecondsBetween(t.x)), nil
			}
			return starlark.MakeInt64(t.x.SecondsBetween(y.x)), nil
		}
	}
	return nil, nil
}

var instantMethods = map[string]builtinMethod{
	"is_dst":          instantIsDST,
	"is_std":          instantIsSTD,
	"to_utc":          instantToUTC,
	"to_timezone":     instantToTimezone,
	"with_timezone":   instantWithTimezone,
	"seconds_between": instantSecondsBetween,
	"iso8601":         instantISO8601,

	"plus_years":   fieldMethod((*tztime.Instant).PlusYears),
	"plus_months":  fieldMethod((*tztime.Instant).PlusMonths),
	"plus_days":    fieldMethod((*tztime.Instant).PlusDays),
	"plus_hours":   fieldMethod((*tztime.Instant).PlusHours),
	"plus_minutes": fieldMethod((*tztime.Instant).PlusMinutes),
	"plus_seconds": fieldMethod((*tztime.Instant).PlusSeconds),
	"with_year":    fieldMethod((*tztime.Instant).WithYear),
	"with_month":   fieldMethod((*tztime.Instant).WithMonth),
	"with_day":     fieldMethod((*tztime.Instant).WithDay),
	"with_hour":    fieldMethod((*tztime.Instant).WithHour),
	"with_minute":  fieldMethod((*tztime.Instant).WithMinute),
	"with_second":  fieldMethod((*tztime.Instant).WithSecond),
}

// fieldMethod adapts one of the plus or with methods, which take a
// single int argument.
func fieldMethod(f func(*tztime.Instant, int) *tztime.Instant) builtinMethod {
	return func(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return Instant{f(recV.(Instant).x, n)}, nil
	}
}

func instantIsDST(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.Bool(recV.(Instant).x.IsDST()), nil
}

func instantIsSTD(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.Bool(recV.(Instant).x.IsSTD()), nil
}

func instantToUTC(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Instant{recV.(Instant).x.ToUTC()}, nil
}

func instantToTimezone(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var tz zoneArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &tz); err != nil {
		return nil, err
	}
	return Instant{recV.(Instant).x.ToTimezone(tz.tz)}, nil
}

func instantWithTimezone(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var tz zoneArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &tz); err != nil {
		return nil, err
	}
	return Instant{recV.(Instant).x.WithTimezone(tz.tz)}, nil
}

func instantSecondsBetween(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other Instant
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &other); err != nil {
		return nil, err
	}
	return starlark.MakeInt64(recV.(Instant).x.SecondsBetween(other.x)), nil
}

func instantISO8601(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.String(recV.(Instant).x.ISO8601()), nil
}

// Unpack lets builtins accept an instant argument.
func (t *Instant) Unpack(v starlark.Value) error {
	x, ok := v.(Instant)
	if !ok {
		return fmt.Errorf("got %s, want tztime.instant", v.Type())
	}
	*t = x
	return nil
}
