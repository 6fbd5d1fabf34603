// Package csvfile reads and writes the delimited reading-row format the
// weather collaborator produces: one row per reading, three fields in fixed
// order (timestamp, temperature, humidity), no header row.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
	"github.com/Vikasg7/PowerAwareIOTProject/pkg/timestamp"
)

// fields per row: timestamp, temperature, humidity
const rowFields = 3

// ReadReadings parses every row of the source. A malformed row aborts the
// pass; the caller gets either the whole file or nothing.
func ReadReadings(src io.Reader) ([]payload.SensorData, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = rowFields

	var readings []payload.SensorData
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			return readings, nil
		}
		if err != nil {
			return nil, errors.WrapInvalid(errors.ErrMalformedPayload, "csvfile", "ReadReadings",
				fmt.Sprintf("row %d: %v", line, err))
		}

		reading, err := parseRow(row)
		if err != nil {
			return nil, errors.Wrap(err, "csvfile", "ReadReadings", fmt.Sprintf("row %d", line))
		}
		readings = append(readings, reading)
	}
}

func parseRow(row []string) (payload.SensorData, error) {
	ts, err := timestamp.Parse(row[0])
	if err != nil {
		return payload.SensorData{}, err
	}
	temp, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return payload.SensorData{}, errors.WrapInvalid(errors.ErrMalformedPayload, "csvfile", "parseRow",
			fmt.Sprintf("temperature %q: %v", row[1], err))
	}
	humi, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return payload.SensorData{}, errors.WrapInvalid(errors.ErrMalformedPayload, "csvfile", "parseRow",
			fmt.Sprintf("humidity %q: %v", row[2], err))
	}
	return payload.SensorData{Timestamp: ts, Temperature: temp, Humidity: humi}, nil
}

// WriteReadings writes rows in the same three-field order.
func WriteReadings(dst io.Writer, readings []payload.SensorData) error {
	w := csv.NewWriter(dst)
	for _, reading := range readings {
		row := []string{
			timestamp.Format(reading.Timestamp),
			strconv.FormatFloat(reading.Temperature, 'f', -1, 64),
			strconv.FormatFloat(reading.Humidity, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "csvfile", "WriteReadings", "row write")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "csvfile", "WriteReadings", "flush")
	}
	return nil
}
