// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The tztime command interprets a Starlark file with the tztime module
// predeclared. With no arguments, it starts a read-eval-print loop (REPL).
//
//	tztime -zone US/Eastern -c 'print(tztime.now().to_timezone(local))'
package main // import "go.tztime.net/cmd/tztime"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"go.starlark.net/starlark"
	"go.tztime.net"
	"go.tztime.net/calendar"
	tztimelib "go.tztime.net/lib/tztime"
	"go.tztime.net/repl"
	"go.tztime.net/timezone"
	"golang.org/x/term"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	memprofile = flag.String("memprofile", "", "gather Go memory profile in this file")
	profile    = flag.String("profile", "", "gather Starlark time profile in this file")
	showenv    = flag.Bool("showenv", false, "on success, print final global environment")
	execprog   = flag.String("c", "", "execute program `prog`")
	epoch      = flag.Int("epoch", calendar.Unix.EpochYear, "count seconds from January 1 of `year` (1970 Unix, 2000 MicroPython)")
	zone       = flag.String("zone", "", "predeclare `local` as the named timezone (see tztime.zones())")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("tztime: ")
	log.SetFlags(0)
	flag.Parse()

	stop, err := startProfiles(*cpuprofile, *memprofile, *profile)
	check(err)
	defer func() { check(stop()) }()

	predeclared, err := setup(*epoch, *zone)
	if err != nil {
		log.Print(err)
		return 2
	}

	thread := &starlark.Thread{Load: repl.MakeLoad(predeclared)}
	var globals starlark.StringDict

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      interface{}
		)
		if *execprog != "" {
			// Execute provided program.
			filename = "cmdline"
			src = *execprog
		} else {
			// Execute specified file.
			filename = flag.Arg(0)
		}
		thread.Name = "exec " + filename
		globals, err = starlark.ExecFile(thread, filename, src, predeclared)
		if err != nil {
			repl.PrintError(err)
			return 1
		}
	case flag.NArg() == 0:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Printf("Welcome to tztime (epoch %d)\n", tztime.Platform.EpochYear)
		}
		thread.Name = "REPL"
		globals = make(starlark.StringDict, len(predeclared))
		for name, v := range predeclared {
			globals[name] = v
		}
		repl.REPL(thread, globals)
		for name := range predeclared {
			delete(globals, name)
		}
	default:
		log.Print("want at most one Starlark file name")
		return 1
	}

	// Print the global environment.
	if *showenv {
		for _, name := range globals.Keys() {
			if !strings.HasPrefix(name, "_") {
				fmt.Fprintf(os.Stderr, "%s = %s\n", name, globals[name])
			}
		}
	}

	return 0
}

// setup installs the platform calendar for epochYear and returns the
// predeclared environment: the tztime module, and local if zoneName
// is set.
func setup(epochYear int, zoneName string) (starlark.StringDict, error) {
	if epochYear < 1 {
		return nil, fmt.Errorf("invalid -epoch %d: want a positive year", epochYear)
	}
	tztime.Platform = calendar.System{EpochYear: epochYear}

	predeclared := starlark.StringDict{
		tztimelib.ModuleName: tztimelib.Module,
	}
	if zoneName != "" {
		tz, err := timezone.Lookup(zoneName, timezone.WithCalendar(tztime.Platform))
		if err != nil {
			return nil, fmt.Errorf("invalid -zone: %w", err)
		}
		predeclared["local"] = tztimelib.MakeZone(tz)
	}
	return predeclared, nil
}

// startProfiles starts the Go CPU profile and the Starlark time profile
// for each non-empty file name. The returned stop function ends them,
// writes the heap profile if memFile is set, and closes the files.
func startProfiles(cpuFile, memFile, starFile string) (_ func() error, err error) {
	var stops []func() error
	stop := func() error {
		var first error
		for i := len(stops) - 1; i >= 0; i-- {
			if err := stops[i](); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	defer func() {
		if err != nil {
			stop()
		}
	}()

	if cpuFile != "" {
		f, err := os.Create(cpuFile)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, err
		}
		stops = append(stops, func() error {
			pprof.StopCPUProfile()
			return f.Close()
		})
	}
	if memFile != "" {
		f, err := os.Create(memFile)
		if err != nil {
			return nil, err
		}
		stops = append(stops, func() error {
			runtime.GC()
			if err := pprof.Lookup("heap").WriteTo(f, 0); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		})
	}
	if starFile != "" {
		f, err := os.Create(starFile)
		if err != nil {
			return nil, err
		}
		if err := starlark.StartProfile(f); err != nil {
			f.Close()
			return nil, err
		}
		stops = append(stops, func() error {
			err := starlark.StopProfile()
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		})
	}
	return stop, nil
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
