package pic

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/image/colornames"
)

func solidFrame(c Color) []Color {
	out := make([]Color, PixelCount)
	for i := range out {
		out[i] = c
	}
	return out
}

// fromNamed truncates a named 8-bit-per-channel color to the codec's 4-bit
// channels, giving test fixtures readable names instead of bare nibbles.
func fromNamed(name string) Color {
	c := colornames.Map[name]
	return Color{R: c.R >> 4, G: c.G >> 4, B: c.B >> 4}
}

func TestEncodeDecodeNamedColorBitmap(t *testing.T) {
	c := qt.New(t)
	bg := fromNamed("navy")
	fg := fromNamed("gold")
	pixels := solidFrame(bg)
	pixels[0] = fg
	pixels[60] = fg

	data, err := Encode(pixels)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(ModeBitmap2))

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, pixels)
}

func TestEncodeDecodeSolid(t *testing.T) {
	c := qt.New(t)
	pixels := solidFrame(Color{R: 15, G: 0, B: 0})

	data, err := Encode(pixels)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(ModeSolid))
	c.Assert(data[1], qt.Equals, byte(1))

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, pixels)
}

func TestEncodeDecodeTwoColorBitmap(t *testing.T) {
	c := qt.New(t)
	pixels := solidFrame(Color{R: 1, G: 1, B: 1})
	pixels[0] = Color{R: 9, G: 9, B: 9}
	pixels[120] = Color{R: 9, G: 9, B: 9}

	data, err := Encode(pixels)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(ModeBitmap2))
	c.Assert(data[1], qt.Equals, byte(2))

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, pixels)
}

func TestEncodeDecodeRunLengthSmallPalette(t *testing.T) {
	c := qt.New(t)
	// Five long runs (not five alternating colors): each group of ~24
	// pixels shares a color, so the run-length body (a handful of tokens,
	// each run capped at 13) is far smaller than the 61-byte direct-4 body.
	pixels := make([]Color, PixelCount)
	for i := range pixels {
		v := uint8(i / 25)
		pixels[i] = Color{R: v, G: v, B: v}
	}

	data, err := Encode(pixels)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(ModeRunLength))

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, pixels)
}

func TestEncodeDecodeDirect4FallbackOnIncompressibleNoise(t *testing.T) {
	c := qt.New(t)
	// A 9-color palette (fits ModeRunLength's <=16 bucket) with no two
	// adjacent pixels equal: the run-length body is 121 bytes (no run ever
	// compresses), larger than the 61-byte direct-4 body, so Encode must
	// fall back to ModeDirect4.
	colors := make([]Color, 9)
	for i := range colors {
		colors[i] = Color{R: uint8(i), G: uint8(i), B: uint8(i)}
	}
	pixels := make([]Color, PixelCount)
	for i := range pixels {
		pixels[i] = colors[i%len(colors)]
	}

	data, err := Encode(pixels)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(ModeDirect4))

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, pixels)
}

func TestEncodeDecodeBitPackedMediumPalette(t *testing.T) {
	c := qt.New(t)
	// The first 30 pixels each get a distinct color (R and G together
	// distinguish them); the rest repeat pixels[0]. Palette size lands at
	// exactly 30, inside ModeBitPacked's 17..128 bucket.
	const distinctColors = 30
	pixels := make([]Color, PixelCount)
	for i := range pixels {
		if i < distinctColors {
			pixels[i] = Color{R: uint8(i % 16), G: uint8((i / 16) % 16), B: uint8(i % 16)}
		} else {
			pixels[i] = pixels[0]
		}
	}

	data, err := Encode(pixels)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(ModeBitPacked))

	got, err := Decode(data)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, pixels)
}

func TestPackUnpackPixelsRoundTrip(t *testing.T) {
	c := qt.New(t)
	pixels := make([]Color, PixelCount)
	for i := range pixels {
		pixels[i] = Color{R: uint8(i % 16), G: uint8((i * 3) % 16), B: uint8((i * 7) % 16)}
	}

	packed, err := PackPixels(pixels)
	c.Assert(err, qt.IsNil)

	got, err := UnpackPixels(packed)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, pixels)
}

func TestEncodeWrongPixelCount(t *testing.T) {
	c := qt.New(t)
	_, err := Encode(make([]Color, 10))
	c.Assert(err, qt.ErrorIs, ErrPixelCount)
}

func TestDecodeBadMode(t *testing.T) {
	c := qt.New(t)
	data := []byte{0xFF, 1, 0, 0}
	_, err := Decode(data)
	c.Assert(err, qt.ErrorIs, ErrBadMode)
}

func TestDecodeTruncatedHeader(t *testing.T) {
	c := qt.New(t)
	_, err := Decode([]byte{0})
	c.Assert(err, qt.ErrorIs, ErrTruncated)
}
