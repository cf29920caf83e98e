// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

import "fmt"

// An Op is a relational operator.
type Op int8

const (
	EQL Op = iota // ==
	NEQ           // !=
	LT            // <
	LE            // <=
	GT            // >
	GE            // >=
)

var opNames = [...]string{
	EQL: "==",
	NEQ: "!=",
	LT:  "<",
	LE:  "<=",
	GT:  ">",
	GE:  ">=",
}

func (op Op) String() string {
	if 0 <= op && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Compare returns -1, 0 or +1 as x is before, at, or after y,
// comparing the UTC moments.
func (x *Instant) Compare(y *Instant) int {
	a, b := x.utc(), y.utc()
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	}
	return 0
}

// Equal reports whether x and y denote the same moment, whatever their Timezones.
func (x *Instant) Equal(y *Instant) bool { return x.Compare(y) == 0 }

// Before reports whether x is earlier than y.
func (x *Instant) Before(y *Instant) bool { return x.Compare(y) < 0 }

// After reports whether x is later than y.
func (x *Instant) After(y *Instant) bool { return x.Compare(y) > 0 }

// Cmp applies the relational operator op to x and y.
//
// Cmp is total: if y is not a non-nil *Instant, or op is unknown, the
// result is false for every operator, NEQ included.
func (x *Instant) Cmp(op Op, y interface{}) bool {
	z, ok := y.(*Instant)
	if !ok || z == nil {
		return false
	}
	return threeway(op, x.Compare(z))
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op Op, cmp int) bool {
	switch op {
	case EQL:
		return cmp == 0
	case NEQ:
		return cmp != 0
	case LE:
		return cmp <= 0
	case LT:
		return cmp < 0
	case GE:
		return cmp >= 0
	case GT:
		return cmp > 0
	}
	return false
}
