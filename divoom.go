package divoom

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fabkury/godivoom/internal/container"
	"github.com/fabkury/godivoom/stream"
)

// Features describes an animation stream's properties without decoding any
// pixel data, the Divoom equivalent of the teacher's GetFeatures: cheap
// enough to run before committing to a full Decode.
type Features struct {
	FrameCount int           // number of frames, from a length+magic-only walk
	CanvasSize int           // largest intrinsic canvas size any frame declares
	HasFix     bool          // true if any frame is a kind 0x15 "fix" quadtree
	TotalDelay time.Duration // sum of every frame's display delay
}

// GetFeatures walks data's frame chain counting frames and inspecting kind
// bytes, without decoding palettes or pixels — the "frame counting without
// full decode" supplemented feature of SPEC_FULL.md §4.
func GetFeatures(data []byte) (*Features, error) {
	if data == nil {
		return nil, ErrNullInput
	}
	p := container.NewParser(data)
	f := &Features{}
	for {
		fr, ok, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("divoom: GetFeatures: %w", err)
		}
		if !ok {
			break
		}
		f.FrameCount++
		f.TotalDelay += time.Duration(fr.Delay) * time.Millisecond
		if fr.Kind.Base() == container.KindFix64 {
			f.HasFix = true
		}
		if size := fr.Kind.CanvasSize(); size > f.CanvasSize {
			f.CanvasSize = size
		}
	}
	return f, nil
}

// Decode decodes every frame in data, upscaling each to canvas x canvas
// (one of 16, 32, 64, 128). It is a thin wrapper over stream.Decoder for
// callers that don't need incremental iteration or a persistent Decoder
// handle.
//
// Decode errors wrap the point of failure as a *DecodeError carrying the
// stream offset the bad frame started at, so a host can locate it the way
// the original's printf diagnostic pointed at a source line.
func Decode(data []byte, canvas int) ([]stream.Frame, error) {
	if data == nil {
		return nil, ErrNullInput
	}
	d, err := stream.NewDecoder(data, canvas)
	if err != nil {
		return nil, err
	}

	frames := make([]stream.Frame, 0, container.CountFrames(data))
	for {
		offset := d.Cursor()
		f, err := d.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, &DecodeError{Kind: peekKind(data, offset), Offset: offset, Err: err}
		}
		frames = append(frames, f)
	}
}

// peekKind reads the kind byte at a frame offset for diagnostic purposes,
// tolerating an offset too close to the end of data to hold a full header
// (the truncation that would itself be the reported error).
func peekKind(data []byte, offset int) container.Kind {
	if offset+container.FrameHeaderSize > len(data) {
		return 0
	}
	return container.Kind(data[offset+5])
}
