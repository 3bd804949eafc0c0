package bitio

// BitsPerIndex maps a palette size (0..256) to the number of bits needed to
// index it, per the fixed table in the wire format's design:
//
//	0,1 -> 1   2 -> 1   3,4 -> 2   5..8 -> 3   9..16 -> 4
//	17..32 -> 5   33..64 -> 6   65..128 -> 7   129..256 -> 8
//
// This mirrors the original decoder's gdivoom_image_bits_table: a 257-entry
// table indexed directly by palette count, built once at package init
// rather than recomputed per frame.
var BitsPerIndex = buildBitsPerIndexTable()

func buildBitsPerIndexTable() [257]uint8 {
	var t [257]uint8
	for n := 0; n <= 256; n++ {
		switch {
		case n <= 2:
			t[n] = 1
		case n <= 4:
			t[n] = 2
		case n <= 8:
			t[n] = 3
		case n <= 16:
			t[n] = 4
		case n <= 32:
			t[n] = 5
		case n <= 64:
			t[n] = 6
		case n <= 128:
			t[n] = 7
		default:
			t[n] = 8
		}
	}
	return t
}
