package payload

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Vikasg7/PowerAwareIOTProject/errors"
)

func sensorFixture() SensorData {
	return SensorData{
		Timestamp:   time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC),
		Temperature: 24.5,
		Humidity:    61.25,
	}
}

func TestSensorRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data SensorData
	}{
		{"typical reading", sensorFixture()},
		{"negative temperature", SensorData{
			Timestamp:   time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
			Temperature: -7.75,
			Humidity:    98.0,
		}},
		{"zero values", SensorData{
			Timestamp: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		}},
		{"extreme floats", SensorData{
			Timestamp:   time.Date(2023, 6, 1, 6, 0, 0, 0, time.UTC),
			Temperature: math.MaxFloat64,
			Humidity:    math.SmallestNonzeroFloat64,
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bs, err := test.data.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, bs, SensorWireSize)

			back, err := DecodeSensor(bs)
			require.NoError(t, err)
			assert.True(t, test.data.Equal(back), "expected %v, got %v", test.data, back)
		})
	}
}

func TestSensorRoundTripTruncatesToSeconds(t *testing.T) {
	d := sensorFixture()
	d.Timestamp = d.Timestamp.Add(123 * time.Millisecond)

	bs, err := d.MarshalBinary()
	require.NoError(t, err)

	back, err := DecodeSensor(bs)
	require.NoError(t, err)
	assert.True(t, back.Timestamp.Equal(d.Timestamp.Truncate(time.Second)))
}

func TestSensorWireLayout(t *testing.T) {
	bs, err := sensorFixture().MarshalBinary()
	require.NoError(t, err)

	// Timestamp is plain ASCII at the front, floats are big-endian behind it.
	assert.Equal(t, "2023-01-15 12:00:00", string(bs[:19]))
	assert.Equal(t, math.Float64bits(24.5), beUint64(bs[19:27]))
	assert.Equal(t, math.Float64bits(61.25), beUint64(bs[27:35]))
}

func beUint64(bs []byte) uint64 {
	var v uint64
	for _, b := range bs {
		v = v<<8 | uint64(b)
	}
	return v
}

func TestDecodeSensorRejectsBadInput(t *testing.T) {
	valid, err := sensorFixture().MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		bs   []byte
	}{
		{"empty", nil},
		{"short", valid[:SensorWireSize-1]},
		{"long", append(append([]byte{}, valid...), 0x00)},
		{"unparseable timestamp", append([]byte("2023/01/15 12.00.00"), valid[19:]...)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeSensor(test.bs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkgerrors.ErrMalformedPayload))
		})
	}
}

func TestSignalRoundTrip(t *testing.T) {
	for _, sig := range []Signal{SignalOff, SignalLow, SignalHigh} {
		t.Run(sig.String(), func(t *testing.T) {
			d := SignalData{
				Timestamp: time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC),
				Type:      sig,
			}

			bs, err := d.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, bs, SignalWireSize)
			assert.Equal(t, byte(sig), bs[SignalWireSize-1])

			back, err := DecodeSignal(bs)
			require.NoError(t, err)
			assert.True(t, d.Equal(back))
		})
	}
}

func TestSignalCodes(t *testing.T) {
	// Wire codes are fixed; changing them breaks every deployed consumer.
	assert.Equal(t, Signal(1), SignalOff)
	assert.Equal(t, Signal(2), SignalLow)
	assert.Equal(t, Signal(3), SignalHigh)
}

func TestDecodeSignalRejectsUnknownCode(t *testing.T) {
	d := SignalData{Timestamp: time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC), Type: SignalLow}
	bs, err := d.MarshalBinary()
	require.NoError(t, err)

	bs[SignalWireSize-1] = 9
	_, err = DecodeSignal(bs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrMalformedPayload))
}

func TestSignalMarshalRejectsInvalid(t *testing.T) {
	_, err := SignalData{Timestamp: time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC), Type: Signal(0)}.MarshalBinary()
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrMalformedPayload))

	_, err = SignalData{Type: SignalLow}.MarshalBinary()
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrMalformedPayload))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sensorFixture().Validate())
	assert.Error(t, SensorData{}.Validate())
	assert.NoError(t, SignalData{Timestamp: time.Now(), Type: SignalHigh}.Validate())
	assert.Error(t, SignalData{Timestamp: time.Now(), Type: Signal(42)}.Validate())
}
