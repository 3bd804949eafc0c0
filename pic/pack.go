package pic

import "fmt"

// PackedPaletteSize is the byte length of n color entries packed two
// 4-bit-channel nibbles per byte (spec.md §4.7 step 4: "3-bytes-per-entry
// palette, packed two entries per 3 bytes" — equivalent to packing the
// flat nibble stream of 3n channel values two per byte). multipic's master
// palette uses the same layout, hence exported.
func PackedPaletteSize(n int) int {
	return (n*3 + 1) / 2
}

// packNibbles packs a flat sequence of 4-bit values two per byte, low
// nibble first. Both the palette (3 nibbles per color) and the raw pixel
// frame PicEncoder consumes (3 nibbles per pixel) use this layout, so an
// odd total nibble count is handled once, here, rather than at each call
// site.
func packNibbles(vals []uint8) []byte {
	out := make([]byte, (len(vals)+1)/2)
	for i, v := range vals {
		if i%2 == 0 {
			out[i/2] |= v & 0x0f
		} else {
			out[i/2] |= (v & 0x0f) << 4
		}
	}
	return out
}

// unpackNibbles reads count 4-bit values back out of data.
func unpackNibbles(data []byte, count int) []uint8 {
	out := make([]uint8, count)
	for i := 0; i < count; i++ {
		b := data[i/2]
		if i%2 == 0 {
			out[i] = b & 0x0f
		} else {
			out[i] = b >> 4
		}
	}
	return out
}

func packColors(colors []Color) []byte {
	nibbles := make([]uint8, 0, len(colors)*3)
	for _, c := range colors {
		nibbles = append(nibbles, c.R, c.G, c.B)
	}
	return packNibbles(nibbles)
}

func unpackColors(data []byte, n int) []Color {
	nibbles := unpackNibbles(data, n*3)
	out := make([]Color, n)
	for i := range out {
		out[i] = Color{R: nibbles[3*i], G: nibbles[3*i+1], B: nibbles[3*i+2]}
	}
	return out
}

// PackColors packs an arbitrary-length color list using the same
// two-nibbles-per-byte layout as a pic palette. multipic's master palette
// (up to 256 entries, not fixed at 121 like a pic frame) uses this directly.
func PackColors(colors []Color) []byte {
	return packColors(colors)
}

// UnpackColors reads n colors back out of data packed by PackColors.
func UnpackColors(data []byte, n int) ([]Color, error) {
	need := PackedPaletteSize(n)
	if len(data) < need {
		return nil, fmt.Errorf("pic: %w: need %d packed bytes for %d colors, got %d", ErrTruncated, need, n, len(data))
	}
	return unpackColors(data, n), nil
}

// PackPixels packs a 121-color frame into the flat, two-pixels-per-3-bytes
// 4-bit RGB layout (the same layout as a packed palette). Encode itself
// takes the unpacked []Color.
func PackPixels(pixels []Color) ([]byte, error) {
	if len(pixels) != PixelCount {
		return nil, fmt.Errorf("pic: %w: want %d pixels, got %d", ErrPixelCount, PixelCount, len(pixels))
	}
	return packColors(pixels), nil
}

// UnpackPixels is the inverse of PackPixels.
func UnpackPixels(data []byte) ([]Color, error) {
	need := PackedPaletteSize(PixelCount)
	if len(data) < need {
		return nil, fmt.Errorf("pic: %w: need %d packed bytes, got %d", ErrTruncated, need, len(data))
	}
	return unpackColors(data, PixelCount), nil
}
