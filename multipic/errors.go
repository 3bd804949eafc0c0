package multipic

import "errors"

var (
	ErrNoFrames              = errors.New("multipic: no frames given")
	ErrTooManyFrames         = errors.New("multipic: too many frames")
	ErrMasterPaletteOverflow = errors.New("multipic: master palette exceeds 256 colors")
	ErrTruncated             = errors.New("multipic: truncated data")
	ErrBadMode               = errors.New("multipic: unrecognized frame mode")
	ErrBadSubPalette         = errors.New("multipic: malformed sub-palette bitmap")
	ErrPaletteOverflow       = errors.New("multipic: palette index out of range")
)
