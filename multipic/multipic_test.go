package multipic

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/image/colornames"

	"github.com/fabkury/godivoom/pic"
)

// namedColor truncates a named 8-bit-per-channel color to pic's 4-bit
// channels, for readable frame fixtures instead of magic RGB tuples.
func namedColor(name string) pic.Color {
	c := colornames.Map[name]
	return pic.Color{R: c.R >> 4, G: c.G >> 4, B: c.B >> 4}
}

func solidFrame(c pic.Color) []pic.Color {
	out := make([]pic.Color, pic.PixelCount)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestEncodeDecodeThreeDistinctFrames(t *testing.T) {
	c := qt.New(t)
	frames := [][]pic.Color{
		solidFrame(namedColor("crimson")),
		solidFrame(namedColor("forestgreen")),
		solidFrame(namedColor("royalblue")),
	}

	data, err := Encode(frames)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(3))
	c.Assert(data[1], qt.Equals, byte(3)) // master palette: 3 distinct colors

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, frames)
}

func TestEncodeDecodeSharedMasterPaletteWithSubPalettes(t *testing.T) {
	c := qt.New(t)
	// 20 distinct colors spread across the master palette; each frame uses
	// only a couple of them, so the per-frame sub-palette should be chosen
	// over direct master indexing.
	palette := make([]pic.Color, 20)
	for i := range palette {
		palette[i] = pic.Color{R: uint8(i % 16), G: uint8(i / 16), B: uint8((i * 5) % 16)}
	}

	// Each frame uses a disjoint slice of 5 colors, so the union across all
	// 4 frames is the full 20-color master palette while any single
	// frame's sub-palette stays small.
	frames := make([][]pic.Color, 4)
	for fi := range frames {
		shade := palette[fi*5 : fi*5+5]
		frame := make([]pic.Color, pic.PixelCount)
		for i := range frame {
			frame[i] = shade[i%len(shade)]
		}
		frames[fi] = frame
	}

	data, err := Encode(frames)
	c.Assert(err, qt.IsNil)
	c.Assert(data[1], qt.Equals, byte(20))

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, frames)
}

func TestEncodeDecodeSingleFrame(t *testing.T) {
	c := qt.New(t)
	frame := make([]pic.Color, pic.PixelCount)
	for i := range frame {
		frame[i] = pic.Color{R: uint8(i % 16), G: uint8((i * 7) % 16), B: uint8((i * 11) % 16)}
	}
	frames := [][]pic.Color{frame}

	data, err := Encode(frames)
	c.Assert(err, qt.IsNil)

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, frames)
}

func TestEncodeNoFrames(t *testing.T) {
	c := qt.New(t)
	_, err := Encode(nil)
	c.Assert(err, qt.ErrorIs, ErrNoFrames)
}

func TestEncodeWrongPixelCount(t *testing.T) {
	c := qt.New(t)
	_, err := Encode([][]pic.Color{make([]pic.Color, 10)})
	c.Assert(err, qt.ErrorIs, pic.ErrPixelCount)
}

func TestDecodeTruncatedHeader(t *testing.T) {
	c := qt.New(t)
	_, err := Decode([]byte{1})
	c.Assert(err, qt.ErrorIs, ErrTruncated)
}

func TestDecodeBadFrameMode(t *testing.T) {
	c := qt.New(t)
	frames := [][]pic.Color{solidFrame(pic.Color{R: 1, G: 2, B: 3})}
	data, err := Encode(frames)
	c.Assert(err, qt.IsNil)

	// Corrupt the first frame's mode byte (right after the 1-color master
	// palette: 2-byte header + 2-byte packed palette).
	data[4] = 0x7F

	_, err = Decode(data)
	c.Assert(err, qt.ErrorIs, ErrBadMode)
}
