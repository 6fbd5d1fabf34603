// Package frame implements the fixed-layout binary unit that carries a
// payload between the sensor and the network layer.
//
// On-wire layout (sensor frame, 67 bytes total):
//
//	offset  length  field
//	0       6       source address, fixed ASCII
//	6       6       destination address, fixed ASCII
//	12      4       sequence number, big-endian unsigned
//	16      35      payload (SensorData)
//	51      16      MD5 digest of the payload bytes
//
// The checksum covers the encoded payload only, never the header. It is a
// corruption check, not a security control. A mismatch on decode is
// unrecoverable: the frame, and the stream it came from, are rejected.
package frame

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
)

// Header field widths and defaults.
const (
	AddrSize     = 6
	SeqSize      = 4
	ChecksumSize = md5.Size
	HeaderSize   = 2*AddrSize + SeqSize

	// DefaultSource is the originating sensor's address.
	DefaultSource = "013A5B"
	// DefaultDestination is the network layer's address.
	DefaultDestination = "014D8E"
	// SignalDestination is the target actuator's address, used for
	// derived signal frames.
	SignalDestination = "025C8H"
)

// Fixed on-wire sizes per payload variant.
const (
	SensorFrameSize = HeaderSize + payload.SensorWireSize + ChecksumSize
	SignalFrameSize = HeaderSize + payload.SignalWireSize + ChecksumSize
)

// WireSize returns the fixed frame size for a payload variant.
func WireSize[P payload.Variant]() int {
	var p P
	return HeaderSize + p.WireSize() + ChecksumSize
}

// Checksum computes the MD5 integrity digest over encoded payload bytes.
func Checksum(payloadBytes []byte) [ChecksumSize]byte {
	return md5.Sum(payloadBytes)
}

// ChecksumString renders a digest for logs.
func ChecksumString(sum [ChecksumSize]byte) string {
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Frame is the on-wire unit: header, one payload variant, checksum.
// Frames are immutable value objects once constructed or decoded.
type Frame[P payload.Variant] struct {
	Source      string
	Destination string
	Sequence    uint32
	Payload     P
	Checksum    [ChecksumSize]byte
}

// New builds a frame with the default source and destination addresses.
// Sequence numbers are 1-based; values beyond the 4-byte field width fail
// with ErrSequenceOverflow.
func New[P payload.Variant](p P, seq uint64) (Frame[P], error) {
	return NewAddressed(p, seq, DefaultSource, DefaultDestination)
}

// NewAddressed builds a frame with explicit addresses, computing the
// payload checksum.
func NewAddressed[P payload.Variant](p P, seq uint64, src, dst string) (Frame[P], error) {
	if seq > math.MaxUint32 {
		return Frame[P]{}, errors.WrapInvalid(errors.ErrSequenceOverflow, "Frame", "New",
			fmt.Sprintf("sequence %d does not fit in %d bytes", seq, SeqSize))
	}
	if err := checkAddr(src); err != nil {
		return Frame[P]{}, errors.Wrap(err, "Frame", "New", "source address")
	}
	if err := checkAddr(dst); err != nil {
		return Frame[P]{}, errors.Wrap(err, "Frame", "New", "destination address")
	}

	pb, err := p.MarshalBinary()
	if err != nil {
		return Frame[P]{}, errors.Wrap(err, "Frame", "New", "payload encode")
	}

	return Frame[P]{
		Source:      src,
		Destination: dst,
		Sequence:    uint32(seq),
		Payload:     p,
		Checksum:    Checksum(pb),
	}, nil
}

func checkAddr(addr string) error {
	if len(addr) != AddrSize {
		return errors.WrapInvalid(errors.ErrInvalidAddress, "Frame", "checkAddr",
			fmt.Sprintf("got %d bytes", len(addr)))
	}
	for i := 0; i < len(addr); i++ {
		if addr[i] < 0x20 || addr[i] > 0x7e {
			return errors.WrapInvalid(errors.ErrInvalidAddress, "Frame", "checkAddr",
				"address contains non-printable bytes")
		}
	}
	return nil
}

// MarshalBinary encodes the frame to its fixed wire form:
// source, destination, sequence, payload, checksum.
func (f Frame[P]) MarshalBinary() ([]byte, error) {
	if err := checkAddr(f.Source); err != nil {
		return nil, errors.Wrap(err, "Frame", "MarshalBinary", "source address")
	}
	if err := checkAddr(f.Destination); err != nil {
		return nil, errors.Wrap(err, "Frame", "MarshalBinary", "destination address")
	}

	pb, err := f.Payload.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "Frame", "MarshalBinary", "payload encode")
	}

	buf := make([]byte, 0, HeaderSize+len(pb)+ChecksumSize)
	buf = append(buf, f.Source...)
	buf = append(buf, f.Destination...)
	buf = binary.BigEndian.AppendUint32(buf, f.Sequence)
	buf = append(buf, pb...)
	buf = append(buf, f.Checksum[:]...)
	return buf, nil
}

// Decode parses exactly one frame's worth of bytes for the variant P,
// splitting at fixed offsets. The checksum is recomputed over the decoded
// payload's re-encoded bytes and compared against the trailing digest;
// a mismatch fails with ErrInvalidFrame and is not recoverable.
func Decode[P payload.Variant](bs []byte, dec payload.DecodeFunc[P]) (Frame[P], error) {
	want := WireSize[P]()
	if len(bs) != want {
		return Frame[P]{}, errors.WrapInvalid(errors.ErrMalformedPayload, "Frame", "Decode",
			fmt.Sprintf("frame must be exactly %d bytes, got %d", want, len(bs)))
	}

	p, err := dec(bs[HeaderSize : len(bs)-ChecksumSize])
	if err != nil {
		return Frame[P]{}, errors.Wrap(err, "Frame", "Decode", "payload decode")
	}

	f := Frame[P]{
		Source:      string(bs[0:AddrSize]),
		Destination: string(bs[AddrSize : 2*AddrSize]),
		Sequence:    binary.BigEndian.Uint32(bs[2*AddrSize : HeaderSize]),
		Payload:     p,
	}
	copy(f.Checksum[:], bs[len(bs)-ChecksumSize:])

	pb, err := p.MarshalBinary()
	if err != nil {
		return Frame[P]{}, errors.Wrap(err, "Frame", "Decode", "payload re-encode")
	}
	if sum := Checksum(pb); !bytes.Equal(sum[:], f.Checksum[:]) {
		return Frame[P]{}, errors.WrapFatal(errors.ErrInvalidFrame, "Frame", "Decode",
			fmt.Sprintf("sequence %d: computed %s, frame carries %s",
				f.Sequence, ChecksumString(sum), ChecksumString(f.Checksum)))
	}

	return f, nil
}

// Verify recomputes the payload checksum and compares it to the stored one.
func (f Frame[P]) Verify() error {
	pb, err := f.Payload.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "Frame", "Verify", "payload encode")
	}
	if sum := Checksum(pb); !bytes.Equal(sum[:], f.Checksum[:]) {
		return errors.WrapFatal(errors.ErrInvalidFrame, "Frame", "Verify",
			fmt.Sprintf("sequence %d: checksum mismatch", f.Sequence))
	}
	return nil
}

// String renders the frame for logs.
func (f Frame[P]) String() string {
	return fmt.Sprintf("Frame %d: %s -> %s, %v, checksum %s",
		f.Sequence, f.Source, f.Destination, f.Payload, ChecksumString(f.Checksum))
}
