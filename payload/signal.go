package payload

import (
	"fmt"
	"time"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/pkg/timestamp"
)

// Signal is an actuator control decision.
type Signal uint8

// Signal codes on the wire. Off is representable but never produced by
// derivation; flags that map to "off" simply produce no signal frame.
const (
	SignalOff  Signal = 1
	SignalLow  Signal = 2
	SignalHigh Signal = 3
)

// String returns the string representation of Signal
func (s Signal) String() string {
	switch s {
	case SignalOff:
		return "off"
	case SignalLow:
		return "low"
	case SignalHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Valid reports whether the code is one of the defined signals.
func (s Signal) Valid() bool {
	return s >= SignalOff && s <= SignalHigh
}

// SignalWireSize is the encoded length of a SignalData payload:
// 19 ASCII timestamp bytes plus the 1-byte signal code. The timestamp is
// the originating reading's, so downstream consumers can place the decision
// in time without the sensor frame in hand.
const SignalWireSize = timestamp.WireSize + 1

// SignalData is a derived control decision for the target actuator.
type SignalData struct {
	Timestamp time.Time
	Type      Signal
}

// Kind implements Payload.Kind
func (SignalData) Kind() Kind { return KindSignal }

// WireSize implements Payload.WireSize
func (SignalData) WireSize() int { return SignalWireSize }

// Validate implements Payload.Validate
func (d SignalData) Validate() error {
	if d.Timestamp.IsZero() {
		return errors.WrapInvalid(errors.ErrMalformedPayload, "SignalData", "Validate", "timestamp is required")
	}
	if !d.Type.Valid() {
		return errors.WrapInvalid(errors.ErrMalformedPayload, "SignalData", "Validate",
			fmt.Sprintf("unknown signal code %d", d.Type))
	}
	return nil
}

// MarshalBinary implements Payload.MarshalBinary
func (d SignalData) MarshalBinary() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, errors.Wrap(err, "SignalData", "MarshalBinary", "validate")
	}
	buf := make([]byte, 0, SignalWireSize)
	buf, err := timestamp.AppendWire(buf, d.Timestamp)
	if err != nil {
		return nil, errors.Wrap(err, "SignalData", "MarshalBinary", "timestamp encode")
	}
	return append(buf, byte(d.Type)), nil
}

// DecodeSignal decodes a SignalData payload from its exact wire form.
func DecodeSignal(bs []byte) (SignalData, error) {
	if len(bs) != SignalWireSize {
		return SignalData{}, errors.WrapInvalid(errors.ErrMalformedPayload, "SignalData", "Decode",
			fmt.Sprintf("payload must be exactly %d bytes, got %d", SignalWireSize, len(bs)))
	}

	ts, err := timestamp.FromWire(bs[:timestamp.WireSize])
	if err != nil {
		return SignalData{}, errors.Wrap(err, "SignalData", "Decode", "timestamp parse")
	}

	sig := Signal(bs[SignalWireSize-1])
	if !sig.Valid() {
		return SignalData{}, errors.WrapInvalid(errors.ErrMalformedPayload, "SignalData", "Decode",
			fmt.Sprintf("unknown signal code %d", sig))
	}

	return SignalData{Timestamp: ts, Type: sig}, nil
}

// Equal reports whether two signal payloads carry the same decision.
func (d SignalData) Equal(o SignalData) bool {
	return d.Timestamp.Equal(o.Timestamp) && d.Type == o.Type
}

// String formats the decision for logs.
func (d SignalData) String() string {
	return fmt.Sprintf("%s, %s", timestamp.Format(d.Timestamp), d.Type)
}
