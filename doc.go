// Package divoom decodes the Divoom pixel-animation stream format: a
// sequence of self-delimited frames, each either a flat palette-indexed
// block, a raw truecolor block, or a recursive "fix" quadtree, all sharing
// one palette that persists across palette-continuation frames.
//
// The frame-stream decoder itself lives in the stream subpackage; divoom is
// a thin convenience layer — Decode and GetFeatures — plus the error
// taxonomy re-exported from internal/container, so callers never need to
// import an internal package to do an errors.Is check.
//
// The two related fixed-size image codecs, pic (a single 11x11 frame) and
// multipic (a shared-palette container of several), live in their own
// top-level packages since they are wire formats in their own right, not
// members of the animation stream.
package divoom
