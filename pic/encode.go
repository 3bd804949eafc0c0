package pic

import (
	"fmt"

	"github.com/fabkury/godivoom/internal/bitio"
)

// maxRunLength bounds a single run-length token's length field to 13
// (spec.md §4.7 step 3), leaving the values 0, 14 and 15 of the 4-bit
// field unused by this encoder.
const maxRunLength = 13

// directPackedSize is mode 1's fixed body size: 121 indices at 4 bits each.
const directPackedSize = (PixelCount*4 + 7) / 8

// Encode builds a palette from pixels by order of first appearance, picks
// one of the six wire modes for the resulting index stream by the rules
// below, and emits header + palette + body.
//
// Mode selection by palette size n: n==1 is ModeSolid (no body); n==2 is
// ModeBitmap2; 3<=n<=16 tries ModeRunLength and falls back to ModeDirect4
// only if the run-length body would be larger than the fixed 4-bit-direct
// size; 17<=n<=128 is ModeBitPacked at bits_per_index(n) bits; 129<=n<=256
// is ModeDirect8, since bits_per_index(n) is 8 there and bit-packing buys
// nothing over a flat byte per index.
func Encode(pixels []Color) ([]byte, error) {
	if len(pixels) != PixelCount {
		return nil, fmt.Errorf("pic: %w: want %d pixels, got %d", ErrPixelCount, PixelCount, len(pixels))
	}

	palette, indices := buildPalette(pixels)
	n := len(palette)

	var mode byte
	var body []byte
	switch {
	case n == 1:
		mode = ModeSolid
	case n == 2:
		mode = ModeBitmap2
		body = encodeBitmap2(indices)
	case n <= 16:
		rle := encodeRunLength(indices)
		if len(rle) <= directPackedSize {
			mode = ModeRunLength
			body = rle
		} else {
			mode = ModeDirect4
			body = packNibbles(indices)
		}
	case n <= 128:
		mode = ModeBitPacked
		body = encodeBitPacked(indices, int(bitio.BitsPerIndex[n]))
	default:
		mode = ModeDirect8
		body = append([]byte(nil), indices...)
	}

	out := make([]byte, 0, 2+PackedPaletteSize(n)+len(body))
	out = append(out, mode, byte(n))
	out = append(out, packColors(palette)...)
	out = append(out, body...)
	return out, nil
}

// buildPalette assigns each distinct color the index of its first
// occurrence in pixels, and returns the resulting palette alongside the
// per-pixel index stream.
func buildPalette(pixels []Color) ([]Color, []uint8) {
	palette := make([]Color, 0, PixelCount)
	seen := make(map[Color]uint8, PixelCount)
	indices := make([]uint8, PixelCount)
	for i, p := range pixels {
		idx, ok := seen[p]
		if !ok {
			idx = uint8(len(palette))
			seen[p] = idx
			palette = append(palette, p)
		}
		indices[i] = idx
	}
	return palette, indices
}

func encodeRunLength(indices []uint8) []byte {
	out := make([]byte, 0, len(indices))
	for i := 0; i < len(indices); {
		run := 1
		for run < maxRunLength && i+run < len(indices) && indices[i+run] == indices[i] {
			run++
		}
		out = append(out, indices[i]|uint8(run)<<4)
		i += run
	}
	return out
}

func encodeBitmap2(indices []uint8) []byte {
	out := make([]byte, (PixelCount+7)/8)
	for i, idx := range indices {
		if idx != 0 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func encodeBitPacked(indices []uint8, bpi int) []byte {
	w := bitio.NewWriter()
	for _, idx := range indices {
		w.Write(idx, bpi)
	}
	return w.Bytes()
}
