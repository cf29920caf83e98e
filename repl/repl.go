// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop for Starlark programs
// that use the tztime module.
//
// On a terminal it supports readline-style command editing and
// interrupts through Control-C. Otherwise, as when input is piped,
// it reads plain lines and prints no prompts.
//
// If an input line can be parsed as an expression,
// the REPL parses and evaluates it and prints its result.
// Otherwise the REPL reads lines until a blank line,
// then tries again to parse the multi-line input as an
// expression. If the input still cannot be parsed as an expression,
// the REPL parses and executes it as a file (a list of statements),
// for side effects.
package repl // import "go.tztime.net/repl"

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/term"
)

var interrupted = make(chan os.Signal, 1)

// lineReader is the part of *readline.Instance used by the loop.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// plainReader reads lines from a non-terminal input.
type plainReader struct {
	sc *bufio.Scanner
}

func (r plainReader) Readline() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (plainReader) SetPrompt(string) {}
func (plainReader) Close() error     { return nil }

func newReader() (lineReader, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return plainReader{bufio.NewScanner(os.Stdin)}, nil
	}
	return readline.New(">>> ")
}

// REPL executes a read, eval, print loop over standard input.
// globals should hold the predeclared values, such as the tztime module;
// bindings made by the session are added to it.
//
// Before evaluating each expression, it sets the Starlark thread local
// variable named "context" to a context.Context that is cancelled by a
// SIGINT (Control-C). Client-supplied global functions may use this
// context to make long-running operations interruptable.
func REPL(thread *starlark.Thread, globals starlark.StringDict) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	rl, err := newReader()
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	loop(rl, os.Stdout, thread, globals)
	fmt.Println()
}

func loop(rl lineReader, out io.Writer, thread *starlark.Thread, globals starlark.StringDict) {
	for {
		if err := rep(rl, out, thread, globals); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Fprintln(out, err)
				continue
			}
			break
		}
	}
}

// rep reads, evaluates, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if reading failed. Starlark errors are printed.
func rep(rl lineReader, out io.Writer, thread *starlark.Thread, globals starlark.StringDict) error {
	f, err := read(rl)
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}

	// Control-C during evaluation cancels the item's context. During
	// Readline it makes Readline return ErrInterrupt instead.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()
	thread.SetLocal("context", ctx)

	if err := eval(out, thread, f, globals); err != nil {
		PrintError(err)
	}
	return nil
}

// read parses one item, prompting ">>> " for its first line and "... "
// for continuations. A syntax error is printed and yields a nil file.
func read(rl lineReader) (*syntax.File, error) {
	var readErr error
	rl.SetPrompt(">>> ")
	next := func() ([]byte, error) {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			readErr = err
			return nil, err
		}
		return []byte(line + "\n"), nil
	}
	f, err := syntax.ParseCompoundStmt("<stdin>", next)
	if err != nil {
		if readErr != nil {
			return nil, readErr
		}
		PrintError(err)
		return nil, nil
	}
	return f, nil
}

// eval executes f in globals, printing the value of a lone expression
// unless it is None. Load statements bind into globals directly, so
// that a loaded name stays visible to later items.
func eval(out io.Writer, thread *starlark.Thread, f *syntax.File, globals starlark.StringDict) error {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			v, err := starlark.EvalExpr(thread, stmt.X, globals)
			if err != nil {
				return err
			}
			if v != starlark.None {
				fmt.Fprintln(out, v)
			}
			return nil
		}
	}

	rest := f.Stmts[:0:0]
	for _, stmt := range f.Stmts {
		load, ok := stmt.(*syntax.LoadStmt)
		if !ok {
			rest = append(rest, stmt)
			continue
		}
		if err := bindLoad(thread, load, globals); err != nil {
			return err
		}
	}
	if len(rest) == 0 {
		return nil
	}
	f.Stmts = rest
	return starlark.ExecREPLChunk(f, thread, globals)
}

func bindLoad(thread *starlark.Thread, load *syntax.LoadStmt, globals starlark.StringDict) error {
	module, _ := load.Module.Value.(string)
	if thread.Load == nil {
		return fmt.Errorf("load not implemented by this application")
	}
	dict, err := thread.Load(thread, module)
	if err != nil {
		return fmt.Errorf("cannot load %s: %v", module, err)
	}
	for i, from := range load.From {
		v, ok := dict[from.Name]
		if !ok || strings.HasPrefix(from.Name, "_") {
			return fmt.Errorf("load: name %s not found in module %s", from.Name, module)
		}
		globals[load.To[i].Name] = v
	}
	return nil
}

// PrintError prints the error to stderr,
// or its backtrace if it is a Starlark evaluation error.
func PrintError(err error) {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		fmt.Fprintln(os.Stderr, evalErr.Backtrace())
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}

// MakeLoad returns a sequential, caching implementation of module
// loading suitable for use in the REPL. Loaded files see predeclared.
// Each function returned by MakeLoad has its own cache.
func MakeLoad(predeclared starlark.StringDict) func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	l := &loader{predeclared: predeclared, cache: make(map[string]*loaded)}
	return l.load
}

type loaded struct {
	globals starlark.StringDict
	err     error
}

type loader struct {
	predeclared starlark.StringDict
	cache       map[string]*loaded // nil entry: load in progress
}

func (l *loader) load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	if e, ok := l.cache[module]; ok {
		if e == nil {
			return nil, fmt.Errorf("cycle in load graph")
		}
		return e.globals, e.err
	}
	l.cache[module] = nil
	child := &starlark.Thread{Name: "exec " + module, Load: thread.Load}
	globals, err := starlark.ExecFile(child, module, nil, l.predeclared)
	l.cache[module] = &loaded{globals, err}
	return globals, err
}
