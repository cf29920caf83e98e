// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tzpb converts between tztime Instants and the well-known
// google.protobuf.Timestamp message.
//
// A Timestamp counts from the Unix epoch in UTC; an Instant counts from
// the epoch of tztime.Platform, in local time if it has a Timezone.
// Sub-second precision is not representable by an Instant and is
// truncated.
package tzpb // import "go.tztime.net/tzpb"

import (
	"errors"
	"fmt"

	"go.tztime.net"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ToProto returns the moment x as a Timestamp.
func ToProto(x *tztime.Instant) *timestamppb.Timestamp {
	return &timestamppb.Timestamp{Seconds: tztime.Platform.ToUnix(x.ToUTC().Seconds())}
}

// FromProto returns the moment ts as an Instant in tz (nil for UTC).
// It fails for a nil or malformed Timestamp, or one before the epoch
// of tztime.Platform.
func FromProto(ts *timestamppb.Timestamp, tz tztime.Timezone) (*tztime.Instant, error) {
	if ts == nil {
		return nil, errors.New("tzpb: nil timestamp")
	}
	if n := ts.GetNanos(); n < 0 || n >= 1e9 {
		return nil, fmt.Errorf("tzpb: nanos %d out of range", n)
	}
	secs := ts.GetSeconds() - tztime.Platform.UnixOffset()
	if secs < 0 {
		return nil, fmt.Errorf("tzpb: timestamp %d precedes the epoch of %d", ts.GetSeconds(), tztime.Platform.Floor())
	}
	return tztime.New(secs, nil).ToTimezone(tz), nil
}
