// Package multipic packs a sequence of pic-sized (11x11, 4-bit RGB) frames
// into one container sharing a single master palette, with each frame
// choosing between a direct master-indexed body and a cheaper per-frame
// sub-palette, whichever is smaller (spec.md §4.8).
package multipic

// Per-frame mode bytes.
const (
	ModeDirect   = 0 // body indexes the master palette directly
	ModeIndirect = 1 // body indexes a per-frame sub-palette; a bitmap over
	// the master palette selects which master entries belong to it
)
