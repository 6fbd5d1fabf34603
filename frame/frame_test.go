package frame

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
)

func reading() payload.SensorData {
	return payload.SensorData{
		Timestamp:   time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC),
		Temperature: 24.5,
		Humidity:    61.25,
	}
}

func TestNewDefaults(t *testing.T) {
	f, err := New(reading(), 1)
	require.NoError(t, err)

	assert.Equal(t, DefaultSource, f.Source)
	assert.Equal(t, DefaultDestination, f.Destination)
	assert.Equal(t, uint32(1), f.Sequence)
	assert.NoError(t, f.Verify())
}

func TestSensorFrameRoundTrip(t *testing.T) {
	f, err := New(reading(), 42)
	require.NoError(t, err)

	bs, err := f.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, bs, SensorFrameSize)
	require.Len(t, bs, 67)

	back, err := Decode(bs, payload.DecodeSensor)
	require.NoError(t, err)

	assert.Equal(t, f.Source, back.Source)
	assert.Equal(t, f.Destination, back.Destination)
	assert.Equal(t, f.Sequence, back.Sequence)
	assert.True(t, f.Payload.Equal(back.Payload))
	assert.Equal(t, f.Checksum, back.Checksum)
}

func TestSignalFrameRoundTrip(t *testing.T) {
	sig := payload.SignalData{
		Timestamp: time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC),
		Type:      payload.SignalHigh,
	}
	f, err := NewAddressed(sig, 42, DefaultSource, SignalDestination)
	require.NoError(t, err)

	bs, err := f.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, bs, SignalFrameSize)
	require.Len(t, bs, 52)

	back, err := Decode(bs, payload.DecodeSignal)
	require.NoError(t, err)
	assert.Equal(t, SignalDestination, back.Destination)
	assert.True(t, f.Payload.Equal(back.Payload))
}

func TestWireLayoutOffsets(t *testing.T) {
	f, err := New(reading(), 0x01020304)
	require.NoError(t, err)

	bs, err := f.MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, DefaultSource, string(bs[0:6]))
	assert.Equal(t, DefaultDestination, string(bs[6:12]))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, bs[12:16])
	assert.Equal(t, "2023-01-15 12:00:00", string(bs[16:35]))
	assert.Equal(t, f.Checksum[:], bs[51:67])
}

func TestChecksumCoversPayloadOnly(t *testing.T) {
	f, err := New(reading(), 1)
	require.NoError(t, err)

	bs, err := f.MarshalBinary()
	require.NoError(t, err)

	// Corrupting the header must not trip the integrity check; the header
	// is outside the digest. The decoded frame simply carries the altered
	// address.
	bs[0] ^= 0xff
	back, err := Decode(bs, payload.DecodeSensor)
	require.NoError(t, err)
	assert.NotEqual(t, DefaultSource, back.Source)
}

func TestBitFlipInPayloadFailsIntegrity(t *testing.T) {
	f, err := New(reading(), 1)
	require.NoError(t, err)

	valid, err := f.MarshalBinary()
	require.NoError(t, err)

	// Flip a single bit in every byte of the float region in turn; each
	// corrupted copy must be rejected as an invalid frame.
	for i := HeaderSize + 19; i < SensorFrameSize-ChecksumSize; i++ {
		bs := append([]byte{}, valid...)
		bs[i] ^= 0x01

		_, err := Decode(bs, payload.DecodeSensor)
		require.Error(t, err, "corrupted byte %d must not decode", i)
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidFrame))
		assert.True(t, pkgerrors.IsFatal(err))
	}
}

func TestCorruptedChecksumFailsIntegrity(t *testing.T) {
	f, err := New(reading(), 1)
	require.NoError(t, err)

	bs, err := f.MarshalBinary()
	require.NoError(t, err)

	bs[SensorFrameSize-1] ^= 0x80
	_, err = Decode(bs, payload.DecodeSensor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidFrame))
}

func TestSequenceOverflow(t *testing.T) {
	_, err := New(reading(), math.MaxUint32)
	require.NoError(t, err)

	_, err = New(reading(), math.MaxUint32+1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrSequenceOverflow))
}

func TestAddressValidation(t *testing.T) {
	tests := []struct {
		name     string
		src, dst string
	}{
		{"short source", "013A5", DefaultDestination},
		{"long destination", DefaultSource, "014D8E9"},
		{"empty source", "", DefaultDestination},
		{"non-printable destination", DefaultSource, "01\x004D8"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewAddressed(reading(), 1, test.src, test.dst)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkgerrors.ErrInvalidAddress))
		})
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	f, err := New(reading(), 1)
	require.NoError(t, err)

	bs, err := f.MarshalBinary()
	require.NoError(t, err)

	_, err = Decode(bs[:SensorFrameSize-1], payload.DecodeSensor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrMalformedPayload))
}

func TestWireSizeConstants(t *testing.T) {
	assert.Equal(t, 67, WireSize[payload.SensorData]())
	assert.Equal(t, 52, WireSize[payload.SignalData]())
}
