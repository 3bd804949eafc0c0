package multipic

import (
	"fmt"

	"github.com/fabkury/godivoom/internal/bitio"
	"github.com/fabkury/godivoom/pic"
)

// Decode is the necessary mirror of Encode, required by the multipic
// round-trip property in spec.md §8.1/§8's scenario 5.
func Decode(data []byte) ([][]pic.Color, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: header", ErrTruncated)
	}
	n := int(data[0])
	pMaster := int(data[1])
	if pMaster == 0 {
		pMaster = 256
	}

	paletteBytes := pic.PackedPaletteSize(pMaster)
	if len(data) < 2+paletteBytes {
		return nil, fmt.Errorf("%w: master palette", ErrTruncated)
	}
	master, err := pic.UnpackColors(data[2:2+paletteBytes], pMaster)
	if err != nil {
		return nil, err
	}
	bpiMaster := int(bitio.BitsPerIndex[pMaster])

	cursor := 2 + paletteBytes
	frames := make([][]pic.Color, n)
	for i := 0; i < n; i++ {
		frame, consumed, err := decodeFrameBody(data[cursor:], master, pMaster, bpiMaster)
		if err != nil {
			return nil, fmt.Errorf("multipic: frame %d: %w", i, err)
		}
		frames[i] = frame
		cursor += consumed
	}
	return frames, nil
}

func decodeFrameBody(data []byte, master []pic.Color, pMaster, bpiMaster int) ([]pic.Color, int, error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("%w: mode byte", ErrTruncated)
	}
	switch data[0] {
	case ModeDirect:
		need := 1 + (pic.PixelCount*bpiMaster+7)/8
		if len(data) < need {
			return nil, 0, fmt.Errorf("%w: direct body", ErrTruncated)
		}
		indices := bitUnpack(data[1:need], pic.PixelCount, bpiMaster)
		frame, err := resolvePixels(indices, master)
		if err != nil {
			return nil, 0, err
		}
		return frame, need, nil

	case ModeIndirect:
		if len(data) < 2 {
			return nil, 0, fmt.Errorf("%w: sub-palette header", ErrTruncated)
		}
		p := int(data[1])
		if p == 0 {
			return nil, 0, fmt.Errorf("%w: sub-palette size 0", ErrBadSubPalette)
		}
		bitmapBytes := (pMaster + 7) / 8
		bpiSub := int(bitio.BitsPerIndex[p])
		bodyBytes := (pic.PixelCount*bpiSub + 7) / 8
		need := 2 + bitmapBytes + bodyBytes
		if len(data) < need {
			return nil, 0, fmt.Errorf("%w: indirect body", ErrTruncated)
		}

		bitmap := data[2 : 2+bitmapBytes]
		subPalette, err := resolveBitmap(bitmap, master, p)
		if err != nil {
			return nil, 0, err
		}
		subIndices := bitUnpack(data[2+bitmapBytes:need], pic.PixelCount, bpiSub)
		frame, err := resolvePixels(subIndices, subPalette)
		if err != nil {
			return nil, 0, err
		}
		return frame, need, nil

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrBadMode, data[0])
	}
}

// resolveBitmap reads the master-palette membership bitmap and returns the
// selected colors in ascending master-index order — matching
// buildSubPalette's ordering on the encode side exactly, so sub-index i
// always refers to the same color on both ends.
func resolveBitmap(bitmap []byte, master []pic.Color, p int) ([]pic.Color, error) {
	sub := make([]pic.Color, 0, p)
	for i := range master {
		if bitmap[i/8]>>uint(i%8)&1 != 0 {
			sub = append(sub, master[i])
		}
	}
	if len(sub) != p {
		return nil, fmt.Errorf("%w: bitmap selects %d colors, header says %d", ErrBadSubPalette, len(sub), p)
	}
	return sub, nil
}

func resolvePixels(indices []uint8, palette []pic.Color) ([]pic.Color, error) {
	out := make([]pic.Color, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(palette) {
			return nil, fmt.Errorf("%w: index %d >= palette size %d", ErrPaletteOverflow, idx, len(palette))
		}
		out[i] = palette[idx]
	}
	return out, nil
}
