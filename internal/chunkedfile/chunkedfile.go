// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkedfile splits Starlark test scripts into independently
// executed chunks and checks the errors each chunk is expected to raise.
//
// Chunks are separated by "---" lines. A line containing "###" expects
// the chunk to fail at that line; the rest of the line is a Go string
// literal holding a regular expression for the failure message:
//
//	tztime.create(1969, 1, 1) ### "year 1969 precedes"
//	---
//	x = tztime.instant(0)
//	x + "s" ### "unknown binary op"
//
// A test executes each Chunk, calls GotError for the failure it saw,
// and finally Done, which reports expectations that were never met.
package chunkedfile // import "go.tztime.net/internal/chunkedfile"

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

const marker = "###"

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// A Chunk is a portion of a source file with the failures it expects.
type Chunk struct {
	// Source is the chunk text, preceded by enough blank lines that
	// positions within it match the original file.
	Source string
	// Line is the line of the file at which the chunk begins.
	Line int

	filename string
	report   Reporter
	wantErrs map[int]*regexp.Regexp
}

// Read parses the named chunked file. Problems with the file itself are
// sent to report, and a nil slice is returned if it cannot be read.
func Read(filename string, report Reporter) []Chunk {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return nil
	}
	return Parse(filename, data, report)
}

// Parse splits data into chunks. Malformed expectations are reported
// as "\nfile:line: ..." so that the position lands on its own line
// after the one testing.T adds.
func Parse(filename string, data []byte, report Reporter) []Chunk {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	var chunks []Chunk
	line := 1
	for _, body := range strings.Split(text, "\n---\n") {
		c := Chunk{
			Source:   strings.Repeat("\n", line-1) + body,
			Line:     line,
			filename: filename,
			report:   report,
			wantErrs: make(map[int]*regexp.Regexp),
		}
		lines := strings.Split(body, "\n")
		for i, l := range lines {
			c.expect(line+i, l)
		}
		chunks = append(chunks, c)
		line += len(lines) + 1 // the separator
	}
	return chunks
}

func (c *Chunk) expect(linenum int, line string) {
	i := strings.Index(line, marker)
	if i < 0 {
		return
	}
	lit := strings.TrimSpace(line[i+len(marker):])
	pattern, err := strconv.Unquote(lit)
	if err != nil {
		c.report.Errorf("\n%s:%d: not a quoted regexp: %s", c.filename, linenum, lit)
		return
	}
	rx, err := regexp.Compile(pattern)
	if err != nil {
		c.report.Errorf("\n%s:%d: %v", c.filename, linenum, err)
		return
	}
	c.wantErrs[linenum] = rx
}

// Expected reports the number of failures not yet seen.
func (c *Chunk) Expected() int { return len(c.wantErrs) }

// GotError records a failure at the given line, reporting it unless an
// expectation on that line matches msg.
func (c *Chunk) GotError(linenum int, msg string) {
	rx, ok := c.wantErrs[linenum]
	if !ok {
		c.report.Errorf("\n%s:%d: unexpected error: %v", c.filename, linenum, msg)
		return
	}
	delete(c.wantErrs, linenum)
	if !rx.MatchString(msg) {
		c.report.Errorf("\n%s:%d: error %q does not match pattern %q", c.filename, linenum, msg, rx)
	}
}

// Done reports every expected failure that did not happen.
func (c *Chunk) Done() {
	for linenum, rx := range c.wantErrs {
		c.report.Errorf("\n%s:%d: expected error matching %q", c.filename, linenum, rx)
	}
}
