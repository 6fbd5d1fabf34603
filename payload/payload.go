// Package payload defines the closed set of payload variants a frame can
// carry and their fixed-size binary codecs.
//
// Each variant has a compile-time wire size and a deterministic field order.
// Decoding is strict: a variant decodes from exactly its wire size, and any
// shorter, longer, or unparseable input is a malformed payload. There is no
// partial or streaming decode.
package payload

// Kind tags the payload variants.
type Kind uint8

const (
	// KindSensor is a periodic environmental reading.
	KindSensor Kind = iota + 1
	// KindSignal is a derived actuator control decision.
	KindSignal
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindSensor:
		return "sensor"
	case KindSignal:
		return "signal"
	default:
		return "unknown"
	}
}

// Payload is the behavior every frame payload variant provides.
// Variants are immutable value types once constructed.
type Payload interface {
	// Kind returns the variant tag.
	Kind() Kind

	// WireSize returns the fixed encoded length in bytes.
	WireSize() int

	// Validate checks the payload data for correctness.
	Validate() error

	// MarshalBinary returns the deterministic wire form.
	// The same payload always produces the same bytes.
	MarshalBinary() ([]byte, error)
}

// Variant is the closed union of payload types. Frames are generic over
// this constraint, so the set of payloads cannot be extended outside this
// package.
type Variant interface {
	SensorData | SignalData
	Payload
}

// DecodeFunc decodes one payload variant from its exact wire form.
// Each variant exposes its decoder (DecodeSensor, DecodeSignal); the frame
// and stream layers select one by type parameter instead of by inspecting
// bytes, since the wire form carries no tag.
type DecodeFunc[P Variant] func([]byte) (P, error)
