package bitio

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestReadWithinByte(t *testing.T) {
	c := qt.New(t)
	// 0b1011_0010: reading 4 then 4 should recover the nibbles LSB-first.
	r := NewReader([]byte{0xB2})
	c.Assert(r.Read(4), qt.Equals, uint8(0x2))
	c.Assert(r.Read(4), qt.Equals, uint8(0xB))
}

func TestReadSpansByteBoundary(t *testing.T) {
	c := qt.New(t)
	// bytes: 0b1010_1010, 0b0000_0011 ; reading 3 bits at a time.
	r := NewReader([]byte{0xAA, 0x03})
	got := make([]uint8, 0, 5)
	for i := 0; i < 5; i++ {
		got = append(got, r.Read(3))
	}
	// Bits in read order (LSB of 0xAA first, then 0x03): 010 101 011 100 000.
	// Each group's first bit is its value's bit 0, so the values are:
	want := []uint8{0b010, 0b101, 0b110, 0b001, 0b000}
	c.Assert(got, qt.DeepEquals, want)
}

func TestReadSingleBit(t *testing.T) {
	c := qt.New(t)
	r := NewReader([]byte{0b0000_0101})
	c.Assert(r.Read(1), qt.Equals, uint8(1))
	c.Assert(r.Read(1), qt.Equals, uint8(0))
	c.Assert(r.Read(1), qt.Equals, uint8(1))
}

func TestBytesConsumed(t *testing.T) {
	c := qt.New(t)
	r := NewReader([]byte{0xFF, 0xFF, 0xFF})
	r.Read(8)
	c.Assert(r.BytesConsumed(), qt.Equals, 1)
	r.Read(4)
	c.Assert(r.BytesConsumed(), qt.Equals, 2)
}

func TestAlign(t *testing.T) {
	c := qt.New(t)
	r := NewReader([]byte{0xFF, 0xAB})
	r.Read(3)
	r.Align()
	bi, biB := r.Offset()
	c.Assert(bi, qt.Equals, 1)
	c.Assert(biB, qt.Equals, 0)
	c.Assert(r.Read(8), qt.Equals, uint8(0xAB))
}

func TestBitsPerIndexTable(t *testing.T) {
	c := qt.New(t)
	cases := map[int]uint8{
		0: 1, 1: 1, 2: 1,
		3: 2, 4: 2,
		5: 3, 8: 3,
		9: 4, 16: 4,
		17: 5, 32: 5,
		33: 6, 64: 6,
		65: 7, 128: 7,
		129: 8, 256: 8,
	}
	for n, want := range cases {
		c.Assert(BitsPerIndex[n], qt.Equals, want, qt.Commentf("n=%d", n))
	}
}
