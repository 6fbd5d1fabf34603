// Package report prepares the plot feed for the external scatter-plot
// consumer: (date, time, value) triples for each output series, plus the
// essential-frame percentage. Rendering stays outside this repository.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/frame"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
	"github.com/Vikasg7/PowerAwareIOTProject/pkg/timestamp"
)

// Point is one plot-feed triple.
type Point struct {
	Date  string
	Time  string
	Value string
}

// SensorPoints derives triples from sensor frames; the value is the
// temperature reading.
func SensorPoints(frames []frame.Frame[payload.SensorData]) []Point {
	points := make([]Point, 0, len(frames))
	for _, f := range frames {
		points = append(points, Point{
			Date:  timestamp.Date(f.Payload.Timestamp),
			Time:  timestamp.Clock(f.Payload.Timestamp),
			Value: fmt.Sprintf("%.2f", f.Payload.Temperature),
		})
	}
	return points
}

// SignalPoints derives triples from signal frames; the value is the signal
// type, which the plot consumer uses to pick a color.
func SignalPoints(frames []frame.Frame[payload.SignalData]) []Point {
	points := make([]Point, 0, len(frames))
	for _, f := range frames {
		points = append(points, Point{
			Date:  timestamp.Date(f.Payload.Timestamp),
			Time:  timestamp.Clock(f.Payload.Timestamp),
			Value: f.Payload.Type.String(),
		})
	}
	return points
}

// EssentialPercentage reports what share of the stream passed the network
// layer. Zero total means zero percent.
func EssentialPercentage(total, essential int) float64 {
	if total == 0 {
		return 0
	}
	return float64(essential) * 100 / float64(total)
}

// WriteCSV writes triples as three-field rows, no header.
func WriteCSV(dst io.Writer, points []Point) error {
	w := csv.NewWriter(dst)
	for _, p := range points {
		if err := w.Write([]string{p.Date, p.Time, p.Value}); err != nil {
			return errors.Wrap(err, "report", "WriteCSV", "row write")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "report", "WriteCSV", "flush")
	}
	return nil
}
