package csvfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
)

func TestReadReadings(t *testing.T) {
	src := strings.Join([]string{
		"2023-01-01 00:00:00,18.0,40.0",
		"2023-01-01 01:00:00,18.5,41.5",
		"2023-01-01 02:00:00,-2.25,98.75",
	}, "\n")

	readings, err := ReadReadings(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, readings, 3)

	assert.True(t, readings[0].Timestamp.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18.0, readings[0].Temperature)
	assert.Equal(t, 40.0, readings[0].Humidity)
	assert.Equal(t, -2.25, readings[2].Temperature)
	assert.Equal(t, 98.75, readings[2].Humidity)
}

func TestReadReadingsEmptySource(t *testing.T) {
	readings, err := ReadReadings(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestReadReadingsMalformedRowAbortsPass(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad timestamp", "2023-01-01T00:00:00,18.0,40.0"},
		{"bad temperature", "2023-01-01 00:00:00,warm,40.0"},
		{"bad humidity", "2023-01-01 00:00:00,18.0,humid"},
		{"missing field", "2023-01-01 00:00:00,18.0"},
		{"extra field", "2023-01-01 00:00:00,18.0,40.0,extra"},
		{"bad row after good rows", "2023-01-01 00:00:00,18.0,40.0\n2023-01-01 01:00:00,nope,41.0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			readings, err := ReadReadings(strings.NewReader(test.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkgerrors.ErrMalformedPayload))
			assert.Nil(t, readings)
		})
	}
}

func TestWriteThenReadBack(t *testing.T) {
	want := []payload.SensorData{
		{Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Temperature: 18.0, Humidity: 40.0},
		{Timestamp: time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC), Temperature: 23.125, Humidity: 61.75},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReadings(&buf, want))

	got, err := ReadReadings(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "row %d", i)
	}
}
