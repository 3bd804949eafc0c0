// Package container defines the wire-format constants and the frame-stream
// parser for the godivoom animation stream: magic byte, header layout, the
// frame-kind table, and the errors every layer above reports.
package container

import "errors"

// Magic is the mandatory first byte of every frame.
const Magic = 0xAA

// FrameHeaderSize is the number of bytes in the fixed frame header
// (magic, length, delay, kind) before the kind-specific payload begins.
const FrameHeaderSize = 6

// Kind identifies a frame's decode path. The low 7 bits select the
// decoder/canvas combination (see the Kind* constants below); the high bit
// (0x80) is a variant flag whose meaning is not documented upstream and is
// preserved as-observed rather than normalized (spec.md §9 Open Question).
type Kind uint8

// Base returns the kind with the variant bit masked off, the value used
// for dispatch.
func (k Kind) Base() Kind { return k & 0x7F }

// Variant reports whether the high bit (0x80) is set.
func (k Kind) Variant() bool { return k&0x80 != 0 }

// Frame kind constants (low 7 bits), per the canonical table.
const (
	KindBlock16New      Kind = 0x00 // 16x16 indexed, new palette
	KindBlock16Extend   Kind = 0x01 // 16x16 indexed, extend palette
	KindBlock32Raw      Kind = 0x02 // 32x32 raw truecolor
	KindBlock32Extend   Kind = 0x03 // 32x32 indexed, extend
	KindBlock32ExtendBig Kind = 0x04 // 32x32 indexed, extend (big)
	KindWordInfo        Kind = 0x05 // word/text metadata block (opaque)
	KindEffect          Kind = 0x06 // effect header (opaque)
	KindBlock64RawA     Kind = 0x0B // 64x64 raw truecolor
	KindBlock64NewA     Kind = 0x0C // 64x64 indexed, new palette
	KindBlock64ExtendA  Kind = 0x0D // 64x64 indexed, extend
	KindBlock64RawB     Kind = 0x0E // 64x64 raw truecolor
	KindBlock64NewB     Kind = 0x0F // 64x64 indexed, new palette
	KindBlock64ExtendB  Kind = 0x10 // 64x64 indexed, extend
	KindBlock128Raw     Kind = 0x11 // 128x128 raw truecolor
	KindBlock128NewA    Kind = 0x12 // 128x128 indexed, new palette
	KindBlock128Extend  Kind = 0x13 // 128x128 indexed, extend
	KindBlock128NewB    Kind = 0x14 // 128x128 indexed, new palette
	KindFix64           Kind = 0x15 // 64x64 "fix" quadtree
)

// CanvasSize returns the intrinsic canvas side for a frame kind, or 0 for
// kinds with no canvas (word_info, effect).
func (k Kind) CanvasSize() int {
	switch k.Base() {
	case KindBlock16New, KindBlock16Extend:
		return 16
	case KindBlock32Raw, KindBlock32Extend, KindBlock32ExtendBig:
		return 32
	case KindBlock64RawA, KindBlock64NewA, KindBlock64ExtendA,
		KindBlock64RawB, KindBlock64NewB, KindBlock64ExtendB, KindFix64:
		return 64
	case KindBlock128Raw, KindBlock128NewA, KindBlock128Extend, KindBlock128NewB:
		return 128
	default:
		return 0
	}
}

// PaletteOp describes what a frame kind does to the decoder's palette.
type PaletteOp int

const (
	PaletteNone   PaletteOp = iota // opaque payload (word_info, effect), no palette touched
	PaletteReset                   // discard and rebuild from this frame's entries
	PaletteExtend                  // append this frame's entries to the existing palette
)

// PaletteOp returns how a frame kind affects the palette.
func (k Kind) PaletteOp() PaletteOp {
	switch k.Base() {
	case KindBlock16New, KindBlock64NewA, KindBlock64NewB,
		KindBlock128Raw, KindBlock128NewA, KindBlock128NewB, KindFix64:
		return PaletteReset
	case KindBlock16Extend, KindBlock32Extend, KindBlock32ExtendBig,
		KindBlock64ExtendA, KindBlock64ExtendB, KindBlock128Extend:
		return PaletteExtend
	case KindBlock32Raw, KindBlock64RawA, KindBlock64RawB:
		return PaletteReset // classed as reset; raster.DecodeBlock copies raw pixels without touching the palette
	default:
		return PaletteNone
	}
}

// IsRawTruecolor reports whether the frame body is 3-bytes-per-pixel RGB
// with no palette indirection.
func (k Kind) IsRawTruecolor() bool {
	switch k.Base() {
	case KindBlock32Raw, KindBlock64RawA, KindBlock64RawB, KindBlock128Raw:
		return true
	default:
		return false
	}
}

// IsOpaque reports whether the frame's payload is passed through without
// codec interpretation (word_info, effect — spec.md §9 Open Question).
func (k Kind) IsOpaque() bool {
	switch k.Base() {
	case KindWordInfo, KindEffect:
		return true
	default:
		return false
	}
}

// IsBig reports whether a block-indexed frame uses the 2-byte ("big"/"128")
// palette-count header instead of the 1-byte form, per spec.md §4.4.
func (k Kind) IsBig() bool {
	switch k.Base() {
	case KindBlock32ExtendBig,
		KindBlock64RawA, KindBlock64NewA, KindBlock64ExtendA,
		KindBlock64RawB, KindBlock64NewB, KindBlock64ExtendB,
		KindBlock128Raw, KindBlock128NewA, KindBlock128Extend, KindBlock128NewB:
		return true
	default:
		return false
	}
}

// Errors reported by the container parser and the decoders built on it.
var (
	ErrNullInput         = errors.New("divoom: null input")
	ErrBadMagic          = errors.New("divoom: first frame byte is not 0xAA")
	ErrUnsupportedKind   = errors.New("divoom: frame kind byte outside the known tables")
	ErrTruncatedFrame    = errors.New("divoom: declared frame length exceeds remaining bytes")
	ErrPaletteOverflow   = errors.New("divoom: palette index >= palette count")
	ErrOutputSizeMismatch = errors.New("divoom: frame's intrinsic size exceeds requested canvas")
	ErrAllocFailed       = errors.New("divoom: palette or scratch allocation failed")
	ErrStreamCorruption  = errors.New("divoom: frame offset collides with a previously computed boundary")
)
