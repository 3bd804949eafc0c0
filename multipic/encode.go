package multipic

import (
	"fmt"

	"github.com/fabkury/godivoom/internal/bitio"
	"github.com/fabkury/godivoom/pic"
)

// Encode packs frames — each exactly pic.PixelCount colors — into a
// container: header (frame count, master palette size), the master
// palette, then one body per frame.
//
// Per frame, Encode picks whichever of direct or indirect encoding is
// smaller: direct indexes the master palette at bits_per_index(P_master)
// bits per pixel with no extra overhead; indirect spends a byte on the
// sub-palette size, a bitmap over the master palette selecting the
// sub-palette's members, and a body indexed at bits_per_index(p) bits
// where p is the frame's distinct-color count. Ties favor direct, since it
// carries no per-frame bitmap overhead.
func Encode(frames [][]pic.Color) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if len(frames) > 255 {
		return nil, fmt.Errorf("%w: %d frames", ErrTooManyFrames, len(frames))
	}
	for i, f := range frames {
		if len(f) != pic.PixelCount {
			return nil, fmt.Errorf("multipic: frame %d: %w: want %d pixels, got %d", i, pic.ErrPixelCount, pic.PixelCount, len(f))
		}
	}

	master, frameIndices := buildMasterPalette(frames)
	pMaster := len(master)
	if pMaster > 256 {
		return nil, fmt.Errorf("%w: %d distinct colors", ErrMasterPaletteOverflow, pMaster)
	}
	bpiMaster := int(bitio.BitsPerIndex[pMaster])

	out := make([]byte, 0, 2+pic.PackedPaletteSize(pMaster)+len(frames)*64)
	out = append(out, byte(len(frames)), masterCountByte(pMaster))
	out = append(out, pic.PackColors(master)...)

	for _, indices := range frameIndices {
		out = append(out, encodeFrameBody(indices, pMaster, bpiMaster)...)
	}
	return out, nil
}

// masterCountByte stores the master palette size in one byte, 0 meaning
// 256 — the same "zero means the full range" convention internal/raster's
// block palette count and fix-node bitmaps use, since a literal 256 does
// not fit a byte.
func masterCountByte(pMaster int) byte {
	if pMaster == 256 {
		return 0
	}
	return byte(pMaster)
}

func encodeFrameBody(masterIndices []uint8, pMaster, bpiMaster int) []byte {
	subPalette, subIndices := buildSubPalette(masterIndices)
	p := len(subPalette)
	bpiSub := int(bitio.BitsPerIndex[p])

	bitmapBytes := (pMaster + 7) / 8
	indirectCost := 1 + bitmapBytes + (pic.PixelCount*bpiSub+7)/8
	directCost := (pic.PixelCount*bpiMaster + 7) / 8

	if directCost <= indirectCost {
		body := bitPack(masterIndices, bpiMaster)
		out := make([]byte, 0, 1+len(body))
		out = append(out, ModeDirect)
		return append(out, body...)
	}

	bitmap := make([]byte, bitmapBytes)
	for _, mi := range subPalette {
		bitmap[mi/8] |= 1 << uint(mi%8)
	}
	body := bitPack(subIndices, bpiSub)
	out := make([]byte, 0, 2+bitmapBytes+len(body))
	out = append(out, ModeIndirect, byte(p))
	out = append(out, bitmap...)
	return append(out, body...)
}
