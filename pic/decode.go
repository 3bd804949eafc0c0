package pic

import (
	"fmt"

	"github.com/fabkury/godivoom/internal/bitio"
)

// Decode is the necessary mirror of Encode: it is not part of spec.md's
// component table (which budgets only the encoder) but is required by the
// round-trip property in spec.md §8.1.
func Decode(data []byte) ([]Color, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("pic: %w: header", ErrTruncated)
	}
	mode := data[0]
	n := int(data[1])
	if n == 0 || n > 256 {
		return nil, fmt.Errorf("pic: %w: palette size %d", ErrBadMode, n)
	}

	paletteBytes := PackedPaletteSize(n)
	if len(data) < 2+paletteBytes {
		return nil, fmt.Errorf("pic: %w: palette", ErrTruncated)
	}
	palette := unpackColors(data[2:2+paletteBytes], n)
	body := data[2+paletteBytes:]

	indices, err := decodeIndices(mode, body, n)
	if err != nil {
		return nil, err
	}

	pixels := make([]Color, PixelCount)
	for i, idx := range indices {
		if int(idx) >= n {
			return nil, fmt.Errorf("pic: %w: index %d >= palette size %d", ErrPaletteOverflow, idx, n)
		}
		pixels[i] = palette[idx]
	}
	return pixels, nil
}

func decodeIndices(mode byte, body []byte, n int) ([]uint8, error) {
	switch mode {
	case ModeSolid:
		return make([]uint8, PixelCount), nil
	case ModeBitmap2:
		return decodeBitmap2(body)
	case ModeRunLength:
		return decodeRunLength(body, n)
	case ModeDirect4:
		if len(body) < directPackedSize {
			return nil, fmt.Errorf("pic: %w: direct4 body", ErrTruncated)
		}
		return unpackNibbles(body, PixelCount), nil
	case ModeBitPacked:
		return decodeBitPacked(body, int(bitio.BitsPerIndex[n]))
	case ModeDirect8:
		if len(body) < PixelCount {
			return nil, fmt.Errorf("pic: %w: direct8 body", ErrTruncated)
		}
		return body[:PixelCount], nil
	default:
		return nil, fmt.Errorf("pic: %w: mode %d", ErrBadMode, mode)
	}
}

func decodeRunLength(body []byte, paletteSize int) ([]uint8, error) {
	indices := make([]uint8, 0, PixelCount)
	for _, b := range body {
		idx := b & 0x0f
		run := int(b >> 4)
		if run == 0 {
			run = 1
		}
		if int(idx) >= paletteSize {
			return nil, fmt.Errorf("pic: %w: index %d >= palette size %d", ErrPaletteOverflow, idx, paletteSize)
		}
		for k := 0; k < run && len(indices) < PixelCount; k++ {
			indices = append(indices, idx)
		}
		if len(indices) >= PixelCount {
			break
		}
	}
	if len(indices) != PixelCount {
		return nil, fmt.Errorf("pic: %w: run-length body covered %d of %d pixels", ErrTruncated, len(indices), PixelCount)
	}
	return indices, nil
}

func decodeBitmap2(body []byte) ([]uint8, error) {
	need := (PixelCount + 7) / 8
	if len(body) < need {
		return nil, fmt.Errorf("pic: %w: bitmap body too short", ErrTruncated)
	}
	indices := make([]uint8, PixelCount)
	for i := range indices {
		if body[i/8]>>uint(i%8)&1 != 0 {
			indices[i] = 1
		}
	}
	return indices, nil
}

func decodeBitPacked(body []byte, bpi int) ([]uint8, error) {
	need := (PixelCount*bpi + 7) / 8
	if len(body) < need {
		return nil, fmt.Errorf("pic: %w: bit-packed body too short", ErrTruncated)
	}
	r := bitio.NewReader(body)
	indices := make([]uint8, PixelCount)
	for i := range indices {
		indices[i] = r.Read(bpi)
	}
	return indices, nil
}
