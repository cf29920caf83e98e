// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunkedfile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testReporter struct {
	reported []string
}

func (r *testReporter) Errorf(format string, args ...interface{}) {
	r.reported = append(r.reported, fmt.Sprintf(format, args...))
}

func (r *testReporter) check(t *testing.T, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, r.reported); diff != "" {
		t.Errorf("reports mismatch (-want +got):\n%s", diff)
	}
	r.reported = nil
}

const script = `x = tztime.create(1969, 1, 1) ### "precedes"
---
x = 1
y = x + "s"
---
z = 2 ### "never"
`

func TestParse(t *testing.T) {
	r := new(testReporter)
	chunks := Parse("test.star", []byte(script), r)
	r.check(t)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	var lines []int
	for _, c := range chunks {
		lines = append(lines, c.Line)
	}
	if diff := cmp.Diff([]int{1, 3, 6}, lines); diff != "" {
		t.Errorf("chunk lines mismatch (-want +got):\n%s", diff)
	}
	if got, want := chunks[1].Source, "\n\nx = 1\ny = x + \"s\""; got != want {
		t.Errorf("chunk 1 source = %q, want %q", got, want)
	}

	first := &chunks[0]
	if first.Expected() != 1 {
		t.Fatalf("chunk 0 expects %d errors, want 1", first.Expected())
	}
	first.GotError(1, "create: year 1969 precedes the epoch year 1970")
	first.Done()
	r.check(t)

	first.GotError(1, "again")
	r.check(t, "\ntest.star:1: unexpected error: again")

	second := &chunks[1]
	second.GotError(4, "unknown binary op")
	second.Done()
	r.check(t, "\ntest.star:4: unexpected error: unknown binary op")

	third := &chunks[2]
	third.GotError(6, "something else")
	r.check(t, "\ntest.star:6: error \"something else\" does not match pattern \"never\"")
}

func TestParseCRLF(t *testing.T) {
	r := new(testReporter)
	chunks := Parse("crlf.star", []byte("a = 1\r\n---\r\nb = 2 ### \"boom\"\r\n"), r)
	r.check(t)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	chunks[1].Done()
	r.check(t, "\ncrlf.star:3: expected error matching \"boom\"")
}

func TestMalformedExpectation(t *testing.T) {
	r := new(testReporter)
	chunks := Parse("bad.star", []byte("a = 1 ### boom\nb = 2 ### \"(\"\n"), r)
	if len(chunks) != 1 || chunks[0].Expected() != 0 {
		t.Fatalf("malformed expectations were recorded: %+v", chunks)
	}
	if len(r.reported) != 2 {
		t.Fatalf("got %d reports, want 2: %q", len(r.reported), r.reported)
	}
	if want := "\nbad.star:1: not a quoted regexp: boom"; r.reported[0] != want {
		t.Errorf("report = %q, want %q", r.reported[0], want)
	}
}

func TestRead(t *testing.T) {
	r := new(testReporter)
	if chunks := Read(filepath.Join(t.TempDir(), "missing.star"), r); chunks != nil {
		t.Errorf("Read of missing file returned %d chunks", len(chunks))
	}
	if len(r.reported) != 1 {
		t.Fatalf("got %d reports, want 1", len(r.reported))
	}
	r.reported = nil

	name := filepath.Join(t.TempDir(), "ok.star")
	if err := os.WriteFile(name, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if chunks := Read(name, r); len(chunks) != 3 {
		t.Errorf("Read returned %d chunks, want 3", len(chunks))
	}
	r.check(t)
}
