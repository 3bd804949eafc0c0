package divoom

import (
	"fmt"

	"github.com/fabkury/godivoom/internal/container"
)

// Errors returned by the decoder. These re-export internal/container's
// sentinel errors so callers can do errors.Is(err, divoom.ErrBadMagic)
// without importing an internal package, mirroring how the teacher keeps
// its own ErrUnsupported/ErrNoFrames at the root while deeper decode
// errors live in internal/container.
var (
	ErrNullInput          = container.ErrNullInput
	ErrBadMagic           = container.ErrBadMagic
	ErrUnsupportedKind    = container.ErrUnsupportedKind
	ErrTruncatedFrame     = container.ErrTruncatedFrame
	ErrPaletteOverflow    = container.ErrPaletteOverflow
	ErrOutputSizeMismatch = container.ErrOutputSizeMismatch
	ErrAllocFailed        = container.ErrAllocFailed
	ErrStreamCorruption   = container.ErrStreamCorruption
)

// DecodeError carries the frame kind and stream offset a decode failure
// occurred at — the Go equivalent of the host's printf-style diagnostic
// channel, which in the original pointed at a source line. There is no
// source file to point at here, so the byte offset into the stream is the
// coordinate that lets a host locate the bad frame.
type DecodeError struct {
	Kind   container.Kind
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("divoom: frame kind 0x%02x at offset %d: %v", byte(e.Kind), e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
