// Package engine implements the self-adjusting threshold classifier that
// decides which sensor frames are essential and derives actuator signals.
//
// The engine carries six running statistics: low, high, and mid values for
// temperature and humidity. They are seeded from a training window and then
// mutated after every classified frame, so the engine is a one-pass online
// tracker, not a static threshold. Classification for a frame always uses
// the statistics as they existed before that frame's update, and updates are
// non-commutative, so frame order changes results. The statistics are
// threaded as an explicit value: Classify reads a Stats, Update consumes one
// and returns the successor.
package engine

import (
	"fmt"
	"math"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/frame"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
)

// BandTolerance is the half-width of the mid band, in the same unit as the
// reading it is compared against. Fixed design constant.
const BandTolerance = 1.5

// Flag identifies which threshold rule a reading matched.
// The zero value means the reading matched no rule and the frame is
// non-essential.
type Flag uint8

// Rule flags. Each name is the temperature band then the humidity band:
// HT/LT/MT for high, low, mid temperature and HH/LH/MH for humidity.
// Numeric values are part of the observable decision record and must not
// be reordered.
const (
	FlagNone Flag = 0
	HTHH     Flag = 1
	HTLH     Flag = 2
	LTLH     Flag = 3
	LTHH     Flag = 4
	MTMH     Flag = 5
	HTMH     Flag = 6
	LTMH     Flag = 7
	MTLH     Flag = 8
	MTHH     Flag = 9
)

// String returns the string representation of Flag
func (f Flag) String() string {
	switch f {
	case HTHH:
		return "HTHH"
	case HTLH:
		return "HTLH"
	case LTLH:
		return "LTLH"
	case LTHH:
		return "LTHH"
	case MTMH:
		return "MTMH"
	case HTMH:
		return "HTMH"
	case LTMH:
		return "LTMH"
	case MTLH:
		return "MTLH"
	case MTHH:
		return "MTHH"
	case FlagNone:
		return "none"
	default:
		return "unknown"
	}
}

// Stats holds the six running thresholds.
type Stats struct {
	LowTemp  float64
	HighTemp float64
	MidTemp  float64
	LowHumi  float64
	HighHumi float64
	MidHumi  float64
}

// String renders the thresholds for logs.
func (s Stats) String() string {
	return fmt.Sprintf("lt: %f ht: %f mt: %f lh: %f hh: %f mh: %f",
		s.LowTemp, s.HighTemp, s.MidTemp, s.LowHumi, s.HighHumi, s.MidHumi)
}

// Train seeds statistics from a window of sensor frames: lows and highs are
// the window minima and maxima, mids the average of the two. The window must
// be non-empty.
func Train(window []frame.Frame[payload.SensorData]) (Stats, error) {
	if len(window) == 0 {
		return Stats{}, errors.WrapInvalid(errors.ErrEmptyTrainingWindow, "engine", "Train",
			"cannot derive thresholds from zero frames")
	}

	s := Stats{
		LowTemp:  math.Inf(1),
		HighTemp: math.Inf(-1),
		LowHumi:  math.Inf(1),
		HighHumi: math.Inf(-1),
	}
	for _, f := range window {
		s.LowTemp = math.Min(s.LowTemp, f.Payload.Temperature)
		s.HighTemp = math.Max(s.HighTemp, f.Payload.Temperature)
		s.LowHumi = math.Min(s.LowHumi, f.Payload.Humidity)
		s.HighHumi = math.Max(s.HighHumi, f.Payload.Humidity)
	}
	s.MidTemp = (s.LowTemp + s.HighTemp) / 2
	s.MidHumi = (s.LowHumi + s.HighHumi) / 2
	return s, nil
}

// Classify evaluates a reading against the thresholds. The checks are not
// mutually exclusive; evaluation order is the tie-break and the first match
// wins. All bounds are inclusive.
func (s Stats) Classify(temp, humi float64) Flag {
	switch {
	case temp >= s.HighTemp && humi >= s.HighHumi:
		return HTHH
	case temp <= s.LowTemp && humi <= s.LowHumi:
		return LTLH
	case temp >= s.HighTemp && humi <= s.LowHumi:
		return HTLH
	case temp <= s.LowTemp && humi >= s.HighHumi:
		return LTHH
	case temp >= s.HighTemp && math.Abs(humi-s.MidHumi) <= BandTolerance:
		return HTMH
	case temp <= s.LowTemp && math.Abs(humi-s.MidHumi) <= BandTolerance:
		return LTMH
	case math.Abs(temp-s.MidTemp) <= BandTolerance && humi <= s.LowHumi:
		return MTLH
	case math.Abs(temp-s.MidTemp) <= BandTolerance && humi >= s.HighHumi:
		return MTHH
	case math.Abs(temp-s.MidTemp) <= BandTolerance && math.Abs(humi-s.MidHumi) <= BandTolerance:
		return MTMH
	default:
		return FlagNone
	}
}

// Update folds a reading into the thresholds and returns the successor
// state. Lows and highs track the running extrema; mids smooth
// exponentially toward the new reading rather than re-deriving a midpoint.
func (s Stats) Update(temp, humi float64) Stats {
	s.LowTemp = math.Min(s.LowTemp, temp)
	s.HighTemp = math.Max(s.HighTemp, temp)
	s.MidTemp = (s.MidTemp + temp) / 2
	s.LowHumi = math.Min(s.LowHumi, humi)
	s.HighHumi = math.Max(s.HighHumi, humi)
	s.MidHumi = (s.MidHumi + humi) / 2
	return s
}

// Toggle maps a rule flag to the actuator signal it implies. The mapping is
// fixed and independent of engine state; flags without an entry produce no
// signal, so an essential frame does not guarantee a signal frame.
func Toggle(f Flag) (payload.Signal, bool) {
	switch f {
	case HTHH, HTMH, LTMH:
		return payload.SignalLow, true
	case LTLH, HTLH, MTLH:
		return payload.SignalHigh, true
	default:
		return 0, false
	}
}

// Engine owns an evolving Stats value and applies the classify-then-update
// cycle to frames in arrival order. It is the sole owner of its statistics
// and must not be driven from two frames concurrently: updates are
// order-dependent.
type Engine struct {
	stats Stats
}

// New creates an engine seeded with trained statistics.
func New(stats Stats) *Engine {
	return &Engine{stats: stats}
}

// Stats returns the current statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Process classifies one frame against the pre-update statistics, then
// folds the reading in. The update runs on every frame, flagged or not.
func (e *Engine) Process(f frame.Frame[payload.SensorData]) Flag {
	temp, humi := f.Payload.Temperature, f.Payload.Humidity
	flag := e.stats.Classify(temp, humi)
	e.stats = e.stats.Update(temp, humi)
	return flag
}
