package stream

import (
	"time"

	"github.com/fabkury/godivoom/internal/container"
	"github.com/fabkury/godivoom/internal/pool"
)

// Frame is one decoded animation frame, or an opaque passthrough record for
// kinds whose payload the codec does not interpret (word_info, effect).
type Frame struct {
	// Delay is the frame's display duration.
	Delay time.Duration

	// Kind is the frame's raw wire kind byte (variant bit included).
	Kind container.Kind

	// Pixels is the decoded RGB raster, canvas*canvas*3 bytes, row-major,
	// no padding. Empty for opaque frames.
	Pixels []byte

	// Opaque holds the raw payload for word_info/effect frames, whose
	// semantic schema is out of scope for this codec (spec §9 Open
	// Question). Empty for pixel frames.
	Opaque []byte

	pooled bool
}

// HasPixels reports whether this frame carries a decoded raster, as
// opposed to an opaque passthrough payload.
func (f *Frame) HasPixels() bool { return f.Pixels != nil }

// Release returns the frame's pixel buffer to the internal pool. Callers
// that retain a Frame past its next Decoder.Next call (e.g. to composite
// several frames) should not call Release until they're done with Pixels;
// callers that copy Pixels out immediately should call Release right away
// to let the buffer be reused.
func (f *Frame) Release() {
	if f.pooled && f.Pixels != nil {
		pool.Put(f.Pixels)
		f.Pixels = nil
		f.pooled = false
	}
}
