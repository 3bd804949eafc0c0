package palette

import "unsafe"

// rangesOverlap reports whether the byte ranges [aPtr, aPtr+aLen) and
// [bPtr, bPtr+bLen) share any address. Both slices are known to live in
// normal Go heap/stack memory (never mmap'd or otherwise split), so
// comparing converted uintptrs is safe and is the standard idiom for
// alias detection across two independently-obtained slices.
func rangesOverlap(aPtr *byte, aLen int, bPtr *byte, bLen int) bool {
	a := uintptr(unsafe.Pointer(aPtr))
	b := uintptr(unsafe.Pointer(bPtr))
	aEnd := a + uintptr(aLen)
	bEnd := b + uintptr(bLen)
	return a < bEnd && b < aEnd
}
