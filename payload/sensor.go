package payload

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/pkg/timestamp"
)

// SensorWireSize is the encoded length of a SensorData payload:
// 19 ASCII timestamp bytes, 8-byte big-endian IEEE-754 temperature,
// 8-byte big-endian IEEE-754 humidity.
const SensorWireSize = timestamp.WireSize + 8 + 8

// SensorData is one periodic environmental reading.
type SensorData struct {
	Timestamp   time.Time
	Temperature float64 // degrees Celsius
	Humidity    float64 // percent relative humidity
}

// Kind implements Payload.Kind
func (SensorData) Kind() Kind { return KindSensor }

// WireSize implements Payload.WireSize
func (SensorData) WireSize() int { return SensorWireSize }

// Validate implements Payload.Validate
func (d SensorData) Validate() error {
	if d.Timestamp.IsZero() {
		return errors.WrapInvalid(errors.ErrMalformedPayload, "SensorData", "Validate", "timestamp is required")
	}
	return nil
}

// MarshalBinary implements Payload.MarshalBinary
func (d SensorData) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, SensorWireSize)
	buf, err := timestamp.AppendWire(buf, d.Timestamp)
	if err != nil {
		return nil, errors.Wrap(err, "SensorData", "MarshalBinary", "timestamp encode")
	}
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.Temperature))
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(d.Humidity))
	return buf, nil
}

// DecodeSensor decodes a SensorData payload from its exact wire form.
func DecodeSensor(bs []byte) (SensorData, error) {
	if len(bs) != SensorWireSize {
		return SensorData{}, errors.WrapInvalid(errors.ErrMalformedPayload, "SensorData", "Decode",
			fmt.Sprintf("payload must be exactly %d bytes, got %d", SensorWireSize, len(bs)))
	}

	ts, err := timestamp.FromWire(bs[:timestamp.WireSize])
	if err != nil {
		return SensorData{}, errors.Wrap(err, "SensorData", "Decode", "timestamp parse")
	}

	off := timestamp.WireSize
	return SensorData{
		Timestamp:   ts,
		Temperature: math.Float64frombits(binary.BigEndian.Uint64(bs[off : off+8])),
		Humidity:    math.Float64frombits(binary.BigEndian.Uint64(bs[off+8 : off+16])),
	}, nil
}

// Equal reports whether two readings are the same observation.
// Timestamps compare by instant, not by location.
func (d SensorData) Equal(o SensorData) bool {
	return d.Timestamp.Equal(o.Timestamp) &&
		d.Temperature == o.Temperature &&
		d.Humidity == o.Humidity
}

// String formats the reading the way the input row format carries it.
func (d SensorData) String() string {
	return fmt.Sprintf("%s, %.2f, %.2f", timestamp.Format(d.Timestamp), d.Temperature, d.Humidity)
}
