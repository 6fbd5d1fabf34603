// Package powerawareiot implements a power-aware transmission pipeline for
// environmental sensor readings.
//
// # Architecture
//
// The pipeline is a straight line from readings to signals:
//
//	┌──────────────┐   ┌──────────────┐   ┌──────────────┐
//	│  readings    │ → │  frame codec │ → │  classifier  │
//	│ (CSV rows)   │   │ (binary wire)│   │  (engine)    │
//	└──────────────┘   └──────────────┘   └──────────────┘
//	                                            ↓
//	                            essential frames + power signals
//
// Readings (timestamp, temperature, humidity) are encoded into fixed-size
// checksummed binary frames, the simulated sensor wire. On the receiving
// side the frames are decoded, verified against their MD5 payload checksum,
// and fed in arrival order to a self-adjusting threshold classifier. The
// classifier seeds its thresholds from a leading training window, flags the
// frames worth transmitting (the essential frames), derives Low/High power
// signals from the flags, and nudges its thresholds toward every flagged
// reading so the bands track the climate.
//
// # Packages
//
//   - payload: sensor and signal payload types and their wire codecs
//   - frame: addressed, checksummed frames generic over the payload type
//   - stream: frame readers and writers over byte streams
//   - engine: threshold training, classification rules, and signal toggles
//   - pipeline: the end-to-end encode-train-classify run
//   - weather: historic-observation fetch producing the input readings
//   - input/csvfile: the delimited reading-row codec
//   - report: plot-feed triples for the external scatter-plot consumer
//   - config, errors, metric, pkg/timestamp: ambient infrastructure
//
// The cmd/framegate CLI wires the packages together.
package powerawareiot
