// Package raster turns a frame's kind-specific payload into a packed RGB
// raster: the flat palette-indexed decoder, the recursive "fix" quadtree
// decoder, and the in-place canvas upscaler.
package raster

import (
	"github.com/fabkury/godivoom/internal/bitio"
	"github.com/fabkury/godivoom/internal/container"
	"github.com/fabkury/godivoom/internal/palette"
)

// DecodeBlock decodes a flat palette-indexed (or raw truecolor) frame body
// into a size*size*3 RGB raster, per spec.md §4.4. pal is the decoder's
// palette store, already updated (reset or extended) by the caller before
// this call for indexed kinds; raw-truecolor kinds ignore pal entirely.
//
// Returns the raster and the number of payload bytes consumed.
func DecodeBlock(k container.Kind, payload []byte, pal *palette.Store, size int) ([]byte, int, error) {
	if k.IsRawTruecolor() {
		n := size * size * 3
		if len(payload) < n {
			return nil, 0, container.ErrTruncatedFrame
		}
		out := make([]byte, n)
		copy(out, payload[:n])
		return out, n, nil
	}

	countWidth := 1
	if k.IsBig() {
		countWidth = 2
	}
	if len(payload) < countWidth {
		return nil, 0, container.ErrTruncatedFrame
	}

	paletteCount := int(payload[0])
	if countWidth == 2 {
		paletteCount = int(payload[0]) | int(payload[1])<<8
	}
	if paletteCount == 0 {
		paletteCount = 256
	}

	paletteBytesStart := countWidth
	paletteBytesEnd := paletteBytesStart + paletteCount*3
	if len(payload) < paletteBytesEnd {
		return nil, 0, container.ErrTruncatedFrame
	}
	entries := payload[paletteBytesStart:paletteBytesEnd]

	switch k.PaletteOp() {
	case container.PaletteReset:
		pal.Reset(paletteCount, entries)
	case container.PaletteExtend:
		pal.Extend(paletteCount, entries)
	}

	bitstreamOffset := paletteBytesEnd
	bitsPerIndex := int(bitio.BitsPerIndex[pal.Count()])

	totalPixels := size * size
	totalBits := totalPixels * bitsPerIndex
	bitstreamBytes := (totalBits + 7) / 8
	if len(payload) < bitstreamOffset+bitstreamBytes {
		return nil, 0, container.ErrTruncatedFrame
	}

	r := bitio.NewReader(payload[bitstreamOffset:])
	out := make([]byte, totalPixels*3)
	for i := 0; i < totalPixels; i++ {
		idx := int(r.Read(bitsPerIndex))
		if idx >= pal.Count() {
			return nil, 0, container.ErrPaletteOverflow
		}
		red, green, blue := pal.Entry(idx)
		o := i * 3
		out[o] = red
		out[o+1] = green
		out[o+2] = blue
	}

	return out, bitstreamOffset + bitstreamBytes, nil
}
