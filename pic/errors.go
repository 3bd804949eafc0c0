package pic

import "errors"

var (
	ErrPixelCount      = errors.New("pic: wrong pixel count")
	ErrTruncated       = errors.New("pic: truncated data")
	ErrBadMode         = errors.New("pic: unrecognized mode")
	ErrPaletteOverflow = errors.New("pic: palette index out of range")
)
