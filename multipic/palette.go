package multipic

import "github.com/fabkury/godivoom/pic"

// buildMasterPalette assigns every distinct color across all frames an
// index by order of first appearance (scanning frame by frame, pixel by
// pixel), mirroring pic.buildPalette's per-frame version at container
// scope. It returns the shared palette and, per frame, each pixel's master
// index.
func buildMasterPalette(frames [][]pic.Color) ([]pic.Color, [][]uint8) {
	master := make([]pic.Color, 0, 256)
	seen := make(map[pic.Color]uint8, 256)
	frameIndices := make([][]uint8, len(frames))

	for fi, frame := range frames {
		indices := make([]uint8, len(frame))
		for i, c := range frame {
			idx, ok := seen[c]
			if !ok {
				idx = uint8(len(master))
				seen[c] = idx
				master = append(master, c)
			}
			indices[i] = idx
		}
		frameIndices[fi] = indices
	}
	return master, frameIndices
}

// buildSubPalette narrows a frame's master-palette indices down to the
// subset it actually uses, ordered ascending by master index — the same
// order a membership bitmap scanned low-bit-first naturally yields, so
// Decode's resolveBitmap can reconstruct the identical sub-palette without
// also needing the frame's pixel scan order.
func buildSubPalette(masterIndices []uint8) (subPalette []uint8, subIndices []uint8) {
	used := make([]bool, 256)
	for _, mi := range masterIndices {
		used[mi] = true
	}
	subPalette = make([]uint8, 0, len(masterIndices))
	pos := make(map[uint8]uint8, len(masterIndices))
	for mi := 0; mi < 256; mi++ {
		if used[mi] {
			pos[uint8(mi)] = uint8(len(subPalette))
			subPalette = append(subPalette, uint8(mi))
		}
	}

	subIndices = make([]uint8, len(masterIndices))
	for i, mi := range masterIndices {
		subIndices[i] = pos[mi]
	}
	return subPalette, subIndices
}
