package raster

// Upscale grows a srcSize*srcSize RGB raster in place to dstSize*dstSize by
// replacing each source pixel with a k*k block of copies, k = dstSize/srcSize
// (2 or 4 per spec.md §4.6). buf must have length dstSize*dstSize*3 with the
// source raster already packed tightly (stride srcSize*3) at the start of
// the slice; on return buf holds the full dstSize-stride raster.
//
// Traversal runs bottom-right to top-left: every destination block lies at
// or past the address of the next (smaller) source pixel still to be read,
// so a later write can never clobber a source pixel before it's consumed.
func Upscale(buf []byte, srcSize, dstSize int) {
	if srcSize == dstSize {
		return
	}
	k := dstSize / srcSize

	for sy := srcSize - 1; sy >= 0; sy-- {
		for sx := srcSize - 1; sx >= 0; sx-- {
			so := (sy*srcSize + sx) * 3
			r, g, b := buf[so], buf[so+1], buf[so+2]

			for dy := k - 1; dy >= 0; dy-- {
				destRow := sy*k + dy
				for dx := k - 1; dx >= 0; dx-- {
					destCol := sx*k + dx
					do := (destRow*dstSize + destCol) * 3
					buf[do] = r
					buf[do+1] = g
					buf[do+2] = b
				}
			}
		}
	}
}
