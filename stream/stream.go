// Package stream reads and writes flat concatenations of fixed-size frames.
//
// A frame file is records back to back: no separators, no length prefixes,
// no trailer. The reader decodes one frame's worth of bytes at a time, in
// order, validating each checksum as it goes. Any decode failure is terminal
// for the whole pass; the reader never skips a bad frame and keeps returning
// the same error once it has failed. Re-opening the source restarts the
// iteration from the beginning.
package stream

import (
	"fmt"
	"io"

	"github.com/Vikasg7/PowerAwareIOTProject/errors"
	"github.com/Vikasg7/PowerAwareIOTProject/frame"
	"github.com/Vikasg7/PowerAwareIOTProject/payload"
)

// Reader produces frames of one payload variant from a byte source.
type Reader[P payload.Variant] struct {
	src   io.Reader
	dec   payload.DecodeFunc[P]
	size  int
	buf   []byte
	count int
	err   error // sticky; set on first failure
}

// NewReader wraps a byte source holding frames of the variant P.
func NewReader[P payload.Variant](src io.Reader, dec payload.DecodeFunc[P]) *Reader[P] {
	size := frame.WireSize[P]()
	return &Reader[P]{
		src:  src,
		dec:  dec,
		size: size,
		buf:  make([]byte, size),
	}
}

// NewSensorReader wraps a byte source holding sensor frames.
func NewSensorReader(src io.Reader) *Reader[payload.SensorData] {
	return NewReader(src, payload.DecodeSensor)
}

// Next returns the next frame in the stream. It returns io.EOF when the
// source is cleanly exhausted. A remainder shorter than one frame fails
// with ErrTruncatedStream, and any failure is sticky: every later call
// returns the same error.
func (r *Reader[P]) Next() (frame.Frame[P], error) {
	if r.err != nil {
		return frame.Frame[P]{}, r.err
	}

	n, err := io.ReadFull(r.src, r.buf)
	if err == io.EOF {
		r.err = io.EOF
		return frame.Frame[P]{}, io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		r.err = errors.WrapFatal(errors.ErrTruncatedStream, "Reader", "Next",
			fmt.Sprintf("frame %d: %d trailing bytes, need %d", r.count+1, n, r.size))
		return frame.Frame[P]{}, r.err
	}
	if err != nil {
		r.err = errors.Wrap(err, "Reader", "Next", "read")
		return frame.Frame[P]{}, r.err
	}

	f, err := frame.Decode(r.buf, r.dec)
	if err != nil {
		r.err = errors.Wrap(err, "Reader", "Next", fmt.Sprintf("frame %d", r.count+1))
		return frame.Frame[P]{}, r.err
	}

	r.count++
	return f, nil
}

// Count returns the number of frames decoded so far.
func (r *Reader[P]) Count() int {
	return r.count
}

// ReadAll drains the reader, returning every remaining frame.
// On any failure it returns no frames: a stream with one bad frame yields
// nothing, matching the all-or-nothing propagation policy.
func ReadAll[P payload.Variant](r *Reader[P]) ([]frame.Frame[P], error) {
	var frames []frame.Frame[P]
	for {
		f, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
}

// Writer appends frames of one payload variant to a byte sink.
type Writer[P payload.Variant] struct {
	dst   io.Writer
	count int
}

// NewWriter wraps a byte sink.
func NewWriter[P payload.Variant](dst io.Writer) *Writer[P] {
	return &Writer[P]{dst: dst}
}

// Write encodes one frame and appends it to the sink.
func (w *Writer[P]) Write(f frame.Frame[P]) error {
	bs, err := f.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "Writer", "Write", fmt.Sprintf("frame %d encode", f.Sequence))
	}
	if _, err := w.dst.Write(bs); err != nil {
		return errors.Wrap(err, "Writer", "Write", fmt.Sprintf("frame %d write", f.Sequence))
	}
	w.count++
	return nil
}

// Count returns the number of frames written so far.
func (w *Writer[P]) Count() int {
	return w.count
}
