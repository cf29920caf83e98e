// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tztime

import "strconv"

// ISO8601 formats x as YYYY-MM-DDTHH:MM:SS followed by a zone
// designator: "Z" without a Timezone, otherwise the offset in effect
// (daylight or standard) as ±HH:MM. The offset only labels the fields;
// they are already local.
func (x *Instant) ISO8601() string {
	f := x.Fields()
	buf := make([]byte, 0, len("2006-01-02T15:04:05+07:00"))
	buf = appendInt(buf, f.Year, 4)
	buf = append(buf, '-')
	buf = appendInt(buf, f.Month, 2)
	buf = append(buf, '-')
	buf = appendInt(buf, f.Day, 2)
	buf = append(buf, 'T')
	buf = appendInt(buf, f.Hour, 2)
	buf = append(buf, ':')
	buf = appendInt(buf, f.Minute, 2)
	buf = append(buf, ':')
	buf = appendInt(buf, f.Second, 2)
	if x.tz == nil {
		return string(append(buf, 'Z'))
	}
	return string(appendOffset(buf, x.Offset()))
}

// String returns the ISO 8601 form of x.
func (x *Instant) String() string { return x.ISO8601() }

// Offset returns the offset in minutes east of UTC in effect at x:
// the daylight offset during DST, the standard offset otherwise,
// and zero without a Timezone.
func (x *Instant) Offset() int {
	switch {
	case x.tz == nil:
		return 0
	case x.IsDST():
		return x.tz.DaylightOffset()
	default:
		return x.tz.StandardOffset()
	}
}

func appendOffset(buf []byte, minutes int) []byte {
	sign := byte('+')
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	buf = append(buf, sign)
	buf = appendInt(buf, minutes/60, 2)
	buf = append(buf, ':')
	return appendInt(buf, minutes%60, 2)
}

// appendInt appends the decimal form of a non-negative v, zero-padded to width.
func appendInt(buf []byte, v, width int) []byte {
	var tmp [20]byte
	s := strconv.AppendInt(tmp[:0], int64(v), 10)
	for i := len(s); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}
