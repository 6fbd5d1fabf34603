// Package timestamp provides standardized handling for the wire-format
// timestamps used throughout the frame pipeline.
//
// The on-wire representation is the fixed 19-byte ASCII form
// "YYYY-MM-DD HH:MM:SS" with second precision and no zone designator.
// All conversions in this package go through that canonical form, so a
// value that survives Format/Parse round-trips bit-for-bit.
//
// Zero Value Semantics:
//   - The zero time.Time means "not set" and has no wire form
//   - Encode rejects values whose formatted form is not exactly 19 bytes
package timestamp

import (
	"time"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
)

// Wire layouts for timestamp fields.
const (
	// Layout is the canonical wire form, second precision.
	Layout = "2006-01-02 15:04:05"
	// DateLayout is the date half, used by the plot feed.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day half, used by the plot feed.
	ClockLayout = "15:04:05"

	// WireSize is the byte length of an encoded timestamp.
	WireSize = len(Layout)
)

// Parse converts a canonical wire string to a time.Time.
// The input must match Layout exactly; anything else is a malformed payload.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, errors.WrapInvalid(errors.ErrMalformedPayload, "timestamp", "Parse", err.Error())
	}
	return t, nil
}

// Format converts a time.Time to its canonical wire string.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Date returns the date half of a timestamp ("YYYY-MM-DD").
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Clock returns the time-of-day half of a timestamp ("HH:MM:SS").
func Clock(t time.Time) string {
	return t.Format(ClockLayout)
}

// Truncate drops sub-second precision, matching what the wire form carries.
func Truncate(t time.Time) time.Time {
	return t.Truncate(time.Second)
}

// AppendWire appends the 19-byte wire form of t to dst.
// Fails if the formatted form is not exactly WireSize bytes, which only
// happens for years outside [0, 9999].
func AppendWire(dst []byte, t time.Time) ([]byte, error) {
	s := t.Format(Layout)
	if len(s) != WireSize {
		return nil, errors.WrapInvalid(errors.ErrMalformedPayload, "timestamp", "AppendWire",
			"timestamp does not fit the fixed wire width")
	}
	return append(dst, s...), nil
}

// FromWire decodes the 19-byte wire form.
func FromWire(bs []byte) (time.Time, error) {
	if len(bs) != WireSize {
		return time.Time{}, errors.WrapInvalid(errors.ErrMalformedPayload, "timestamp", "FromWire",
			"timestamp field has wrong byte length")
	}
	return Parse(string(bs))
}
