package raster

import (
	"github.com/fabkury/godivoom/internal/bitio"
	"github.com/fabkury/godivoom/internal/container"
	"github.com/fabkury/godivoom/internal/palette"
)

// fixCanvasSize is the intrinsic canvas side of every kind-0x15 "fix" frame
// (spec.md §4.5); unlike Block kinds, Fix never varies its canvas size.
const fixCanvasSize = 64

// DecodeFix decodes a kind-0x15 recursive quadtree frame into a 64x64 RGB
// raster. The frame owns its palette header outright (a 2-byte count
// distinct from Block's 1-/2-byte split), so unlike DecodeBlock's callers,
// DecodeFix resets pal itself before walking the tree.
func DecodeFix(payload []byte, pal *palette.Store) ([]byte, int, error) {
	if len(payload) < 2 {
		return nil, 0, container.ErrTruncatedFrame
	}
	paletteCount := int(payload[0]) | int(payload[1])<<8
	headerEnd := 2 + paletteCount*3
	if len(payload) < headerEnd {
		return nil, 0, container.ErrTruncatedFrame
	}
	pal.Reset(paletteCount, payload[2:headerEnd])

	d := &fixDecoder{
		pal: pal,
		out: make([]byte, fixCanvasSize*fixCanvasSize*3),
	}

	consumed, err := d.decodeNode(payload[headerEnd:], fixCanvasSize, 0, 0, nil)
	if err != nil {
		return nil, 0, err
	}
	return d.out, headerEnd + consumed, nil
}

// fixDecoder carries the master palette and output raster across one
// frame's recursive descent. It holds no per-node state: every node's
// local sub-palette cache is a plain slice passed down the call stack,
// not a shared scratch buffer — the original decoder's 0x820-byte scratch
// allocation (spec.md §9) collapses here to ordinary Go slices sized to
// what each node actually selects.
type fixDecoder struct {
	pal *palette.Store
	out []byte
}

// decodeNode decodes one quadtree node covering an n*n tile at block
// coordinates (blockCol, blockRow) in units of n pixels, and returns the
// number of payload bytes the node (and, for a split node, its whole
// subtree) consumed.
//
// scope is the index space inherited from the nearest ancestor split node:
// nil means "index the frame's master palette directly" (only possible at
// the root); non-nil is the ancestor's selected subset of master-palette
// indices, addressed by the local index this node reads from its own
// bitstream. A node of kind 1 (split) or 2 (remapped leaf) always builds
// its own fresh subset against the absolute master palette and ignores
// scope; only kind 0 (direct) consults it.
func (d *fixDecoder) decodeNode(data []byte, n, blockCol, blockRow int, scope []int) (int, error) {
	if len(data) < 1 {
		return 0, container.ErrTruncatedFrame
	}
	if n == 8 {
		return d.decodeLeaf8(data, blockCol, blockRow, scope)
	}
	switch data[0] {
	case 0:
		return d.decodeDirect(data, n, blockCol, blockRow, scope)
	case 2:
		return d.decodeRemap(data, n, blockCol, blockRow)
	default:
		return d.decodeSplit(data, n, blockCol, blockRow)
	}
}

// fixHeaderWidthCount reads the 1-byte candidate count following a node's
// flag byte (levels 64/32/16 only — level 8 packs its count into the flag
// byte's low 7 bits instead, see decodeLeaf8). A count byte of 0 means 256
// candidates, matching the Block palette-count convention.
func fixHeaderWidthCount(data []byte) (count, bitmapBytes int, err error) {
	if len(data) < 2 {
		return 0, 0, container.ErrTruncatedFrame
	}
	count = int(data[1])
	if count == 0 {
		count = 256
	}
	return count, (count + 7) / 8, nil
}

// fixBitmap returns the absolute master-palette indices (ascending) whose
// bit is set in a width-bit candidate-selection bitmap.
func fixBitmap(bitmap []byte, width int) []int {
	out := make([]int, 0, width)
	for i := 0; i < width; i++ {
		if bitmap[i>>3]>>(uint(i)&7)&1 != 0 {
			out = append(out, i)
		}
	}
	return out
}

// decodeDirect handles node kind 0: fill the tile using the index space
// already in scope (the inherited subset, or the full master palette at
// the root) with no new header beyond the flag byte.
func (d *fixDecoder) decodeDirect(data []byte, n, blockCol, blockRow int, scope []int) (int, error) {
	effectiveCount := d.pal.Count()
	if scope != nil {
		effectiveCount = len(scope)
	}
	bpi := int(bitio.BitsPerIndex[effectiveCount])
	byteLen := (n*n*bpi + 7) / 8
	if len(data)-1 < byteLen {
		return 0, container.ErrTruncatedFrame
	}

	r := bitio.NewReader(data[1:])
	resolve := func(localIdx int) (int, error) {
		if scope == nil {
			return localIdx, nil
		}
		if localIdx >= len(scope) {
			return 0, container.ErrPaletteOverflow
		}
		return scope[localIdx], nil
	}
	if err := d.fillTile(n, blockCol, blockRow, r, bpi, resolve); err != nil {
		return 0, err
	}
	return 1 + byteLen, nil
}

// decodeRemap handles node kind 2: a terminal leaf that narrows to its own
// fresh sub-palette (selected from the absolute master palette) and fills
// the tile immediately.
func (d *fixDecoder) decodeRemap(data []byte, n, blockCol, blockRow int) (int, error) {
	count, bitmapBytes, err := fixHeaderWidthCount(data)
	if err != nil {
		return 0, err
	}
	header := 2 + bitmapBytes
	if len(data) < header {
		return 0, container.ErrTruncatedFrame
	}
	cache := fixBitmap(data[2:header], count)
	bpi := int(bitio.BitsPerIndex[len(cache)])
	byteLen := (n*n*bpi + 7) / 8
	if len(data)-header < byteLen {
		return 0, container.ErrTruncatedFrame
	}

	r := bitio.NewReader(data[header:])
	resolve := func(localIdx int) (int, error) {
		if localIdx >= len(cache) {
			return 0, container.ErrPaletteOverflow
		}
		return cache[localIdx], nil
	}
	if err := d.fillTile(n, blockCol, blockRow, r, bpi, resolve); err != nil {
		return 0, err
	}
	return header + byteLen, nil
}

// decodeSplit handles node kind 1 (any flag byte other than 0 or 2):
// builds a fresh sub-palette scope and recurses into four half-size
// children, top-left, top-right, bottom-left, bottom-right.
func (d *fixDecoder) decodeSplit(data []byte, n, blockCol, blockRow int) (int, error) {
	count, bitmapBytes, err := fixHeaderWidthCount(data)
	if err != nil {
		return 0, err
	}
	header := 2 + bitmapBytes
	if len(data) < header {
		return 0, container.ErrTruncatedFrame
	}
	scope := fixBitmap(data[2:header], count)

	child := n / 2
	consumed := header
	for _, off := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if consumed > len(data) {
			return 0, container.ErrTruncatedFrame
		}
		nConsumed, err := d.decodeNode(data[consumed:], child, blockCol*2+off[0], blockRow*2+off[1], scope)
		if err != nil {
			return 0, err
		}
		consumed += nConsumed
	}
	return consumed, nil
}

// decodeLeaf8 handles the base 8x8 tile, which is always terminal: the
// flag byte's high bit selects remap-and-fill (candidate count packed in
// the low 7 bits, no separate count byte) versus direct fill from the
// inherited scope.
func (d *fixDecoder) decodeLeaf8(data []byte, blockCol, blockRow int, scope []int) (int, error) {
	flag := data[0]
	if flag&0x80 != 0 {
		width := int(flag & 0x7f)
		bitmapBytes := (width + 7) / 8
		header := 1 + bitmapBytes
		if len(data) < header {
			return 0, container.ErrTruncatedFrame
		}
		cache := fixBitmap(data[1:header], width)
		bpi := int(bitio.BitsPerIndex[len(cache)])
		byteLen := (8*8*bpi + 7) / 8
		if len(data)-header < byteLen {
			return 0, container.ErrTruncatedFrame
		}

		r := bitio.NewReader(data[header:])
		resolve := func(localIdx int) (int, error) {
			if localIdx >= len(cache) {
				return 0, container.ErrPaletteOverflow
			}
			return cache[localIdx], nil
		}
		if err := d.fillTile(8, blockCol, blockRow, r, bpi, resolve); err != nil {
			return 0, err
		}
		return header + byteLen, nil
	}

	bpi := int(bitio.BitsPerIndex[len(scope)])
	byteLen := (8*8*bpi + 7) / 8
	if len(data)-1 < byteLen {
		return 0, container.ErrTruncatedFrame
	}

	r := bitio.NewReader(data[1:])
	resolve := func(localIdx int) (int, error) {
		if localIdx >= len(scope) {
			return 0, container.ErrPaletteOverflow
		}
		return scope[localIdx], nil
	}
	if err := d.fillTile(8, blockCol, blockRow, r, bpi, resolve); err != nil {
		return 0, err
	}
	return 1 + byteLen, nil
}

// fillTile paints an n*n tile at block coordinates (blockCol, blockRow)
// from r, one bpi-bit local index per pixel, resolved to a master-palette
// index by resolve. The scan order is row-major over an 8x8 sub-block
// grid (spec.md §4.5.2): within the tile, 8x8 blocks are visited left to
// right then top to bottom, and within each block pixels are visited row
// 0..7, column 0..7 — this holds even when n==8 and the tile is a single
// block.
func (d *fixDecoder) fillTile(n, blockCol, blockRow int, r *bitio.Reader, bpi int, resolve func(int) (int, error)) error {
	baseRow := blockRow * n
	baseCol := blockCol * n
	blocks := n / 8

	for band := 0; band < blocks; band++ {
		for super := 0; super < blocks; super++ {
			for rr := 0; rr < 8; rr++ {
				for cc := 0; cc < 8; cc++ {
					localIdx := int(r.Read(bpi))
					masterIdx, err := resolve(localIdx)
					if err != nil {
						return err
					}
					if masterIdx >= d.pal.Count() {
						return container.ErrPaletteOverflow
					}
					red, green, blue := d.pal.Entry(masterIdx)
					row := baseRow + band*8 + rr
					col := baseCol + super*8 + cc
					o := (row*fixCanvasSize + col) * 3
					d.out[o] = red
					d.out[o+1] = green
					d.out[o+2] = blue
				}
			}
		}
	}
	return nil
}
