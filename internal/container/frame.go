package container

import "encoding/binary"

// Frame is one self-delimited record of the animation stream: the fixed
// header fields plus the kind-specific payload that follows byte 6.
type Frame struct {
	Offset  int    // byte offset of the 0xAA magic byte in the stream
	Length  int    // total frame length in bytes, including the 6-byte header
	Delay   uint16 // display delay in milliseconds
	Kind    Kind
	Payload []byte // bytes from offset+6 through offset+Length (kind-specific body)
}

// Parser walks a byte slice yielding frames, one 0xAA-delimited record at a
// time. Its only state is the cursor and whether a frame has been returned
// yet: Parser does not own a palette or
// any decode state, matching spec.md §4.3's separation between framing and
// decoding.
type Parser struct {
	data     []byte
	cursor   int
	sawFrame bool // true once Next has returned at least one real frame
}

// NewParser creates a Parser over data. The first byte is not validated
// here: a stream whose first byte isn't 0xAA is treated the same as an
// empty stream (Next reports a clean end, ok=false, no error), per the
// lenient counting walk spec.md §4.3 describes. ErrBadMagic exists for
// callers layered above Parser that want to distinguish "no frames" from
// "this isn't a divoom stream at all" by checking data[0] themselves.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Cursor returns the current byte offset of the next frame to be returned
// by Next.
func (p *Parser) Cursor() int { return p.cursor }

// Len returns the total stream length.
func (p *Parser) Len() int { return len(p.data) }

// RemainingData returns the unconsumed tail of the stream, from the
// current cursor to the end.
func (p *Parser) RemainingData() []byte { return p.data[p.cursor:] }

// Done reports whether iteration has reached the end of the stream.
func (p *Parser) Done() bool { return p.cursor >= len(p.data) }

// Next returns the frame starting at the current cursor and advances past
// it. It returns (Frame{}, false, nil) when iteration ends normally: cursor
// at or past the stream end, or the next byte is not 0xAA at the very start
// of the stream (no frame has been decoded yet, so there is no boundary to
// collide with). It returns a non-nil error for genuine stream corruption:
// a truncated length field, or a non-0xAA byte sitting exactly at the
// offset a prior frame's length field computed as the next frame's start
// (spec.md §3's "stream corruption signal" — the cursor only ever lands
// there by walking a previous frame's declared length, so a wrong byte
// there means that length lied).
func (p *Parser) Next() (Frame, bool, error) {
	if p.cursor >= len(p.data) {
		return Frame{}, false, nil
	}
	if p.cursor+FrameHeaderSize > len(p.data) {
		return Frame{}, false, ErrTruncatedFrame
	}

	base := p.data[p.cursor:]
	if base[0] != Magic {
		if p.sawFrame {
			return Frame{}, false, ErrStreamCorruption
		}
		return Frame{}, false, nil
	}

	length := int(binary.LittleEndian.Uint16(base[1:3]))
	if length < FrameHeaderSize {
		return Frame{}, false, ErrTruncatedFrame
	}
	if p.cursor+length > len(p.data) {
		return Frame{}, false, ErrTruncatedFrame
	}

	f := Frame{
		Offset:  p.cursor,
		Length:  length,
		Delay:   binary.LittleEndian.Uint16(base[3:5]),
		Kind:    Kind(base[5]),
		Payload: base[FrameHeaderSize:length],
	}
	p.cursor += length
	p.sawFrame = true
	return f, true, nil
}

// Seek repositions the cursor, e.g. after PassReview locates the next
// plausible frame boundary.
func (p *Parser) Seek(offset int) {
	p.cursor = offset
}

// CountFrames walks the chain purely off magic+length, never touching
// palette or pixel state — a frame-counting pass cheap enough to run
// before allocating a frame slice (spec.md §8's "frame count stability"
// property, and the original decoder's frame-counting walk in
// decompiled_code.c's first_frame/count routine).
func CountFrames(data []byte) int {
	p := NewParser(data)
	n := 0
	for {
		_, ok, err := p.Next()
		if err != nil || !ok {
			return n
		}
		n++
	}
}

// PassReview skips frames whose kind byte matches one of the original
// decoder's "forbidden" bit patterns, without decoding them, until it finds
// a plausible decodable frame boundary or runs out of stream. It is used
// for recovery after a corrupted or unrecognized frame, per spec.md §4.3;
// the exact bit patterns are carried over from decompiled_code.c's
// divoom_image_decode_decode_pass_review (kinds 5, 6, 7, 9, 10 are always
// skipped; kinds 0 and 0x0B..0x10 always stop; any other kind stops unless
// its high bit (0x80) is set, in which case it is skipped).
func (p *Parser) PassReview() {
	for p.cursor < len(p.data) {
		if p.cursor+FrameHeaderSize > len(p.data) {
			return
		}
		base := p.data[p.cursor:]
		if base[0] != Magic {
			p.advancePastUnrecognized(base)
			continue
		}

		kind := base[5]
		if kind < 0x11 {
			switch kind {
			case 5, 6, 7, 9, 10:
				p.advancePastUnrecognized(base)
				continue
			case 0, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10:
				return
			}
		}

		if kind&0x80 == 0 {
			return
		}
		p.advancePastUnrecognized(base)
	}
}

// advancePastUnrecognized moves the cursor forward by the frame's declared
// length (trusting the length field even though the kind looks
// unrecognized), or by one byte if the length field itself looks bogus.
func (p *Parser) advancePastUnrecognized(base []byte) {
	length := int(binary.LittleEndian.Uint16(base[1:3]))
	if length < FrameHeaderSize {
		p.cursor++
		return
	}
	p.cursor += length
}
