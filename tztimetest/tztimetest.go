// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tztimetest defines utilities for testing Starlark programs
// that use the tztime module.
//
// Clients can call LoadAssertModule to load a module named assert that
// defines several functions useful for testing.
//
// The assert functions report failures to the current Go testing.T,
// which requires that clients call SetReporter(thread, t) before use.
package tztimetest // import "go.tztime.net/tztimetest"

import (
	"fmt"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

const localKey = "Reporter"

// A Reporter is a value to which errors may be reported.
// It is satisfied by *testing.T.
type Reporter interface {
	Error(args ...interface{})
}

// SetReporter associates an error reporter (such as a testing.T in
// a Go test) with the Starlark thread so that Starlark programs may
// report errors to it.
func SetReporter(thread *starlark.Thread, r Reporter) {
	thread.SetLocal(localKey, r)
}

// GetReporter returns the Starlark thread's error reporter.
// It must be preceded by a call to SetReporter.
func GetReporter(thread *starlark.Thread) Reporter {
	r, ok := thread.Local(localKey).(Reporter)
	if !ok {
		panic("internal error: tztimetest.SetReporter was not called")
	}
	return r
}

// Assert is the assert module.
var Assert = &starlarkstruct.Module{
	Name: "assert",
	Members: starlark.StringDict{
		"eq":      starlark.NewBuiltin("assert.eq", eq),
		"ne":      starlark.NewBuiltin("assert.ne", ne),
		"lt":      starlark.NewBuiltin("assert.lt", lt),
		"true":    starlark.NewBuiltin("assert.true", true_),
		"fails":   starlark.NewBuiltin("assert.fails", fails),
		"catch":   starlark.NewBuiltin("assert.catch", catch),
		"matches": starlark.NewBuiltin("assert.matches", matches),
	},
}

// LoadAssertModule loads the assert module.
// It is concurrency-safe and idempotent.
func LoadAssertModule() (starlark.StringDict, error) {
	return starlark.StringDict{"assert": Assert}, nil
}

// report sends a failure message, prefixed by the Starlark call stack
// of the assertion, to the thread's reporter.
func report(thread *starlark.Thread, msg string) {
	buf := new(strings.Builder)
	stk := thread.CallStack()
	stk.Pop()
	fmt.Fprintf(buf, "%sError: %s", stk, msg)
	GetReporter(thread).Error(buf.String())
}

func failure(thread *starlark.Thread, msg string, format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	if msg != "" {
		s = msg + ": " + s
	}
	report(thread, s)
}

// eq(x, y, msg="") reports an error unless x == y.
func eq(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x, y starlark.Value
		msg  string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y, "msg?", &msg); err != nil {
		return nil, err
	}
	ok, err := starlark.Equal(x, y)
	if err != nil {
		return nil, err
	}
	if !ok {
		failure(thread, msg, "%s != %s", x, y)
	}
	return starlark.None, nil
}

// ne(x, y, msg="") reports an error if x == y.
func ne(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x, y starlark.Value
		msg  string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y, "msg?", &msg); err != nil {
		return nil, err
	}
	ok, err := starlark.Equal(x, y)
	if err != nil {
		return nil, err
	}
	if ok {
		failure(thread, msg, "%s == %s", x, y)
	}
	return starlark.None, nil
}

// lt(x, y, msg="") reports an error unless x < y.
func lt(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x, y starlark.Value
		msg  string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y, "msg?", &msg); err != nil {
		return nil, err
	}
	ok, err := starlark.Compare(syntax.LT, x, y)
	if err != nil {
		return nil, err
	}
	if !ok {
		failure(thread, msg, "%s is not less than %s", x, y)
	}
	return starlark.None, nil
}

// true(cond, msg="") reports an error unless cond is truthy.
func true_(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		cond starlark.Value
		msg  = "assertion failed"
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "cond", &cond, "msg?", &msg); err != nil {
		return nil, err
	}
	if !cond.Truth() {
		report(thread, msg)
	}
	return starlark.None, nil
}

// fails(fn, pattern) reports an error unless fn() fails with a message
// matching the regular expression pattern.
func fails(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		fn      starlark.Callable
		pattern string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "fn", &fn, "pattern", &pattern); err != nil {
		return nil, err
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	if _, err := starlark.Call(thread, fn, nil, nil); err == nil {
		report(thread, fmt.Sprintf("evaluation succeeded unexpectedly (want error matching %q)", pattern))
	} else if msg := errorMessage(err); !rx.MatchString(msg) {
		report(thread, fmt.Sprintf("regular expression (%s) did not match error (%s)", pattern, msg))
	}
	return starlark.None, nil
}

// catch(fn) evaluates fn() and returns its evaluation error message
// if it failed or None if it succeeded.
func catch(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fn starlark.Callable
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "fn", &fn); err != nil {
		return nil, err
	}
	if _, err := starlark.Call(thread, fn, nil, nil); err != nil {
		return starlark.String(errorMessage(err)), nil
	}
	return starlark.None, nil
}

// matches(pattern, str) reports whether string str matches the regular expression pattern.
func matches(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern, str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "str", &str); err != nil {
		return nil, err
	}
	ok, err := regexp.MatchString(pattern, str)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", b.Name(), err)
	}
	return starlark.Bool(ok), nil
}

// errorMessage strips the call stack that EvalError adds.
func errorMessage(err error) string {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		return evalErr.Msg
	}
	return err.Error()
}
