// Package stream decodes a godivoom animation stream frame by frame: it
// ties together internal/container's frame iteration, internal/palette's
// persistent palette state, and internal/raster's per-kind pixel decoders
// into the single stateful handle a host actually drives.
package stream

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fabkury/godivoom/internal/container"
	"github.com/fabkury/godivoom/internal/palette"
	"github.com/fabkury/godivoom/internal/pool"
	"github.com/fabkury/godivoom/internal/raster"
)

// Decoder is the decoder handle: a borrowed (or owned) input stream, the
// frame cursor, and the persistent palette that carries across
// palette-continuation frames. A Decoder is not safe for concurrent use;
// multiple Decoders over independent inputs may run on separate
// goroutines freely.
type Decoder struct {
	parser     *container.Parser
	palette    palette.Store
	canvas     int
	ownedInput bool
}

// NewDecoder creates a Decoder over data, which must remain valid and
// unmodified for the Decoder's lifetime. canvas is the output raster side
// the host wants every frame upscaled to; it must be one of 16, 32, 64, 128.
func NewDecoder(data []byte, canvas int) (*Decoder, error) {
	if err := validateCanvas(canvas); err != nil {
		return nil, err
	}
	return &Decoder{
		parser: container.NewParser(data),
		canvas: canvas,
	}, nil
}

// NewDecoderCopy is NewDecoder over a private copy of data, for callers
// that cannot guarantee the input's lifetime outlives the Decoder.
func NewDecoderCopy(data []byte, canvas int) (*Decoder, error) {
	owned := make([]byte, len(data))
	copy(owned, data)
	d, err := NewDecoder(owned, canvas)
	if err != nil {
		return nil, err
	}
	d.ownedInput = true
	return d, nil
}

func validateCanvas(canvas int) error {
	switch canvas {
	case 16, 32, 64, 128:
		return nil
	default:
		return fmt.Errorf("stream: invalid canvas size %d", canvas)
	}
}

// Cursor returns the byte offset of the next frame to be decoded.
func (d *Decoder) Cursor() int { return d.parser.Cursor() }

// Len returns the total stream length in bytes.
func (d *Decoder) Len() int { return d.parser.Len() }

// Done reports whether the stream has been fully consumed.
func (d *Decoder) Done() bool { return d.parser.Done() }

// Reset rewinds the cursor to the start of the stream. The palette is left
// untouched, matching the decoder handle's documented lifecycle: a reset
// decoder still has whatever palette state the host built up, only frame
// iteration restarts.
func (d *Decoder) Reset() { d.parser.Seek(0) }

// Next decodes the next frame. It returns io.EOF once the stream is
// exhausted cleanly. When a frame's pixel data fails to decode, the cursor
// is already past that frame and PassReview then skips any following
// frames of skipped kinds, so a subsequent Next call resumes at the next
// plausible frame boundary. When the framing itself fails (truncated
// frame, stream corruption), PassReview runs from the failing offset; a
// truncated frame of a decodable kind leaves the cursor at its start.
func (d *Decoder) Next() (Frame, error) {
	fr, ok, err := d.parser.Next()
	if err != nil {
		d.parser.PassReview()
		return Frame{}, err
	}
	if !ok {
		return Frame{}, io.EOF
	}

	delay := time.Duration(fr.Delay) * time.Millisecond

	if fr.Kind.IsOpaque() {
		return Frame{Delay: delay, Kind: fr.Kind, Opaque: fr.Payload}, nil
	}

	size := fr.Kind.CanvasSize()
	if size == 0 {
		return Frame{}, fmt.Errorf("stream: %w: kind 0x%02x", container.ErrUnsupportedKind, byte(fr.Kind))
	}
	if size > d.canvas {
		return Frame{}, container.ErrOutputSizeMismatch
	}

	intrinsic, _, decErr := d.decodeBody(fr)
	if decErr != nil {
		d.parser.PassReview()
		return Frame{}, decErr
	}

	out := pool.Get(d.canvas * d.canvas * 3)
	copy(out, intrinsic)
	raster.Upscale(out, size, d.canvas)

	return Frame{Delay: delay, Kind: fr.Kind, Pixels: out, pooled: true}, nil
}

func (d *Decoder) decodeBody(fr container.Frame) ([]byte, int, error) {
	if fr.Kind.Base() == container.KindFix64 {
		return raster.DecodeFix(fr.Payload, &d.palette)
	}
	return raster.DecodeBlock(fr.Kind, fr.Payload, &d.palette, fr.Kind.CanvasSize())
}

// DecodeAll decodes every remaining frame, preallocating the result slice
// with container.CountFrames rather than growing it frame by frame.
func (d *Decoder) DecodeAll() ([]Frame, error) {
	n := container.CountFrames(d.parser.RemainingData())
	frames := make([]Frame, 0, n)
	for {
		f, err := d.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}
