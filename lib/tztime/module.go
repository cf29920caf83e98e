// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.tztime.net"
	"go.tztime.net/timezone"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "tztime"

// Module tztime is a Starlark module of timezone-aware instants.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"now":      starlark.NewBuiltin("now", now),
		"create":   starlark.NewBuiltin("create", create),
		"instant":  starlark.NewBuiltin("instant", newInstant),
		"timezone": starlark.NewBuiltin("timezone", lookupZone),
		"zones":    starlark.NewBuiltin("zones", zones),
		"rule":     starlark.NewBuiltin("rule", newRule),
		"zone":     starlark.NewBuiltin("zone", newZone),
		"utc":      starlark.None,
	},
}

// LoadModule loads the tztime module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

const nowKey = "go.tztime.net/lib/tztime.now"

// SetNow sets the thread-local function used by now. It returns the
// current time in seconds since the Unix epoch. Without it, now uses
// tztime.NowFunc.
func SetNow(thread *starlark.Thread, nowFunc func() (int64, error)) {
	thread.SetLocal(nowKey, nowFunc)
}

func now(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	nowFunc, _ := thread.Local(nowKey).(func() (int64, error))
	if nowFunc == nil {
		return Instant{tztime.Now()}, nil
	}
	secs, err := nowFunc()
	if err != nil {
		return nil, err
	}
	return Instant{tztime.New(tztime.Platform.FromUnix(secs), nil)}, nil
}

func create(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		year, month, day     int
		hour, minute, second int
		tz                   zoneArg
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"year", &year, "month", &month, "day", &day,
		"hour?", &hour, "minute?", &minute, "second?", &second, "tz?", &tz); err != nil {
		return nil, err
	}
	x, err := tztime.Create(year, month, day, hour, minute, second, tz.tz)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	return Instant{x}, nil
}

func newInstant(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		seconds starlark.Value
		tz      zoneArg
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "seconds", &seconds, "tz?", &tz); err != nil {
		return nil, err
	}
	var v interface{} = seconds
	if i, ok := seconds.(starlark.Int); ok {
		secs, ok := i.Int64()
		if !ok {
			return nil, fmt.Errorf("%s: int value out of range (want signed 64-bit value)", b.Name())
		}
		v = secs
	}
	x, err := tztime.FromValue(v, tz.tz)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	return Instant{x}, nil
}

func lookupZone(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	tz, err := timezone.Lookup(name, timezone.WithCalendar(tztime.Platform))
	if err != nil {
		return nil, err
	}
	return Zone{tz}, nil
}

func zones(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	names := timezone.Names()
	elems := make([]starlark.Value, len(names))
	for i, name := range names {
		elems[i] = starlark.String(name)
	}
	return starlark.NewList(elems), nil
}

func newZone(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		dst, std Rule
		name     string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "dst", &dst, "std", &std, "name?", &name); err != nil {
		return nil, err
	}
	opts := []timezone.Option{timezone.WithCalendar(tztime.Platform)}
	if name != "" {
		opts = append(opts, timezone.WithName(name))
	}
	tz, err := timezone.NewChecked(dst.rule, std.rule, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	return Zone{tz}, nil
}

type builtinMethod func(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	// Allocate a closure over 'method'.
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
