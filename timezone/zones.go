// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timezone

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnknownZone is returned by Lookup for names not in its table.
var ErrUnknownZone = errors.New("unknown time zone")

// zones holds the rule pairs known to Lookup, as of the rules in force
// since 2007 (US) and 1996 (EU). This is not a tz database: historical
// rule changes are not represented.
var zones = map[string][2]Rule{
	"UTC": {
		{"UTC", Last, time.Sunday, time.March, 1, 0},
		{"UTC", Last, time.Sunday, time.March, 1, 0},
	},
	"US/Eastern": {
		{"EDT", Second, time.Sunday, time.March, 2, -240},
		{"EST", First, time.Sunday, time.November, 2, -300},
	},
	"US/Central": {
		{"CDT", Second, time.Sunday, time.March, 2, -300},
		{"CST", First, time.Sunday, time.November, 2, -360},
	},
	"US/Mountain": {
		{"MDT", Second, time.Sunday, time.March, 2, -360},
		{"MST", First, time.Sunday, time.November, 2, -420},
	},
	"US/Arizona": {
		{"MST", First, time.Sunday, time.November, 2, -420},
		{"MST", First, time.Sunday, time.November, 2, -420},
	},
	"US/Pacific": {
		{"PDT", Second, time.Sunday, time.March, 2, -420},
		{"PST", First, time.Sunday, time.November, 2, -480},
	},
	"Europe/London": {
		{"BST", Last, time.Sunday, time.March, 1, 60},
		{"GMT", Last, time.Sunday, time.October, 2, 0},
	},
	"Europe/Central": {
		{"CEST", Last, time.Sunday, time.March, 2, 120},
		{"CET", Last, time.Sunday, time.October, 3, 60},
	},
	"Australia/Eastern": {
		{"AEDT", First, time.Sunday, time.October, 2, 660},
		{"AEST", First, time.Sunday, time.April, 3, 600},
	},
}

// Lookup returns a new Timezone for one of the names reported by Names.
// Options apply as for New; the name is set by Lookup.
func Lookup(name string, opts ...Option) (*Timezone, error) {
	rules, ok := zones[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	tz := New(rules[0], rules[1], opts...)
	tz.name = name
	return tz, nil
}

// Names returns the names known to Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(zones))
	for name := range zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
