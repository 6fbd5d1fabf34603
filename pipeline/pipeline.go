// Package pipeline composes the codec, stream, and engine layers into the
// end-to-end run: encode reading rows onto the simulated wire, decode the
// frame stream back, seed the classifier from the leading window, classify
// the full stream in arrival order, and collect the essential and signal
// frame sequences.
//
// The pipeline is strictly sequential. The engine's statistics are mutated
// by each frame and read by the next, so no stage may reorder or
// parallelize the frame walk.
package pipeline

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Vikasg7/PowerAwareIOTProject/config"
	"github.com/Vikasg7/PowerAwareIOTProject/engine"
	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/frame"
	"github.com/Vikasg7/PowerAwareIOTProject/input/csvfile"
	"github.com/Vikasg7/PowerAwareIOTProject/metric"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
	"github.com/Vikasg7/PowerAwareIOTProject/report"
	"github.com/Vikasg7/PowerAwareIOTProject/stream"
)

// Pipeline drives one encode-classify pass over a reading file.
type Pipeline struct {
	cfg     config.PipelineConfig
	logger  *slog.Logger
	metrics *metric.Metrics
}

// Result holds the output sequences of one run.
type Result struct {
	RunID      string
	Frames     []frame.Frame[payload.SensorData]
	Essentials []frame.Frame[payload.SensorData]
	Signals    []frame.Frame[payload.SignalData]
}

// EssentialCount returns the number of essential frames.
func (r *Result) EssentialCount() int { return len(r.Essentials) }

// SignalCount returns the number of derived signal frames.
func (r *Result) SignalCount() int { return len(r.Signals) }

// EssentialPercentage returns the share of frames that passed the
// network layer.
func (r *Result) EssentialPercentage() float64 {
	return report.EssentialPercentage(len(r.Frames), len(r.Essentials))
}

// New creates a pipeline from configuration.
func New(cfg config.PipelineConfig, logger *slog.Logger, metrics *metric.Metrics) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Pipeline", "New", "config validation")
	}
	return &Pipeline{
		cfg:     cfg,
		logger:  logger.With("component", "pipeline"),
		metrics: metrics,
	}, nil
}

// EncodeReadings converts the reading-row file into the binary frame file,
// assigning 1-based sequence numbers in row order. Returns the number of
// frames written.
func (p *Pipeline) EncodeReadings() (int, error) {
	src, err := os.Open(p.cfg.InputCSV)
	if err != nil {
		return 0, errors.Wrap(err, "Pipeline", "EncodeReadings", "open input")
	}
	defer src.Close()

	readings, err := csvfile.ReadReadings(src)
	if err != nil {
		return 0, err
	}

	dst, err := os.Create(p.cfg.FrameFile)
	if err != nil {
		return 0, errors.Wrap(err, "Pipeline", "EncodeReadings", "create frame file")
	}
	defer dst.Close()

	bw := bufio.NewWriter(dst)
	w := stream.NewWriter[payload.SensorData](bw)
	for i, reading := range readings {
		f, err := frame.New(reading, uint64(i)+1)
		if err != nil {
			return 0, errors.Wrap(err, "Pipeline", "EncodeReadings", fmt.Sprintf("row %d", i+1))
		}
		if err := w.Write(f); err != nil {
			return 0, err
		}
		p.metrics.FramesEncoded.Inc()
	}
	if err := bw.Flush(); err != nil {
		return 0, errors.Wrap(err, "Pipeline", "EncodeReadings", "flush")
	}

	p.logger.Info("encoded readings to frame file",
		"input", p.cfg.InputCSV,
		"output", p.cfg.FrameFile,
		"frames", w.Count())
	return w.Count(), nil
}

// Run decodes the frame file, trains on the leading window, classifies
// every frame in arrival order (the training window included), and collects
// the essential and signal sequences. Any decode or training error
// terminates the run before any classification output exists.
func (p *Pipeline) Run() (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	frames, err := p.readFrames()
	if err != nil {
		return nil, err
	}
	logger.Info("frame stream decoded", "frames", len(frames))

	window := frames[:min(p.cfg.TrainingWindow, len(frames))]
	stats, err := engine.Train(window)
	if err != nil {
		return nil, err
	}
	logger.Debug("classifier trained", "window", len(window), "stats", stats.String())

	result := &Result{RunID: runID, Frames: frames}
	eng := engine.New(stats)
	for _, f := range frames {
		flag := eng.Process(f)
		if flag == engine.FlagNone {
			continue
		}
		result.Essentials = append(result.Essentials, f)
		p.metrics.EssentialFrames.Inc()
		p.metrics.FlagsRaised.WithLabelValues(flag.String()).Inc()

		sig, ok := engine.Toggle(flag)
		if !ok {
			continue
		}
		sf, err := frame.NewAddressed(payload.SignalData{
			Timestamp: f.Payload.Timestamp,
			Type:      sig,
		}, uint64(f.Sequence), frame.DefaultSource, frame.SignalDestination)
		if err != nil {
			return nil, errors.Wrap(err, "Pipeline", "Run", fmt.Sprintf("signal for frame %d", f.Sequence))
		}
		result.Signals = append(result.Signals, sf)
		p.metrics.SignalsDerived.WithLabelValues(sig.String()).Inc()
	}

	if p.cfg.SignalFile != "" {
		if err := p.writeSignals(result.Signals); err != nil {
			return nil, err
		}
	}
	if p.cfg.ReportDir != "" {
		if err := p.writeReport(result); err != nil {
			return nil, err
		}
	}

	logger.Info("classification complete",
		"frames", len(result.Frames),
		"essential_frames", result.EssentialCount(),
		"signal_frames", result.SignalCount(),
		"essential_pct", fmt.Sprintf("%.2f", result.EssentialPercentage()))
	return result, nil
}

// readFrames decodes the whole frame file, counting integrity failures
// before propagating them.
func (p *Pipeline) readFrames() ([]frame.Frame[payload.SensorData], error) {
	src, err := os.Open(p.cfg.FrameFile)
	if err != nil {
		return nil, errors.Wrap(err, "Pipeline", "readFrames", "open frame file")
	}
	defer src.Close()

	r := stream.NewSensorReader(bufio.NewReader(src))
	frames, err := stream.ReadAll(r)
	p.metrics.FramesRead.Add(float64(r.Count()))
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidFrame) {
			p.metrics.ChecksumFailures.Inc()
		}
		return nil, err
	}
	return frames, nil
}

// writeSignals forwards the derived signal frames to the signal file.
func (p *Pipeline) writeSignals(signals []frame.Frame[payload.SignalData]) error {
	dst, err := os.Create(p.cfg.SignalFile)
	if err != nil {
		return errors.Wrap(err, "Pipeline", "writeSignals", "create signal file")
	}
	defer dst.Close()

	bw := bufio.NewWriter(dst)
	w := stream.NewWriter[payload.SignalData](bw)
	for _, f := range signals {
		if err := w.Write(f); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "Pipeline", "writeSignals", "flush")
	}
	return nil
}

// writeReport emits the plot-feed triples for all three series.
func (p *Pipeline) writeReport(result *Result) error {
	if err := os.MkdirAll(p.cfg.ReportDir, 0o755); err != nil {
		return errors.Wrap(err, "Pipeline", "writeReport", "create report dir")
	}

	files := []struct {
		name   string
		points []report.Point
	}{
		{"sensors.csv", report.SensorPoints(result.Frames)},
		{"essentials.csv", report.SensorPoints(result.Essentials)},
		{"signals.csv", report.SignalPoints(result.Signals)},
	}
	for _, file := range files {
		dst, err := os.Create(filepath.Join(p.cfg.ReportDir, file.name))
		if err != nil {
			return errors.Wrap(err, "Pipeline", "writeReport", file.name)
		}
		if err := report.WriteCSV(dst, file.points); err != nil {
			dst.Close()
			return err
		}
		if err := dst.Close(); err != nil {
			return errors.Wrap(err, "Pipeline", "writeReport", file.name)
		}
	}
	return nil
}
