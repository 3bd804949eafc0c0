// Package pool provides bucketed sync.Pool instances for the RGB raster
// buffers stream.Decoder hands out per frame, sized to the four canvas
// classes the codec supports, so an output buffer handed back through
// Frame.Release is reused by a later frame instead of reallocated.
package pool

import "sync"

// Canvas side lengths the decoder ever upscales to (spec's 16/32/64/128
// table), expressed as RGB byte-buffer sizes (side*side*3).
const (
	Canvas16  = 16 * 16 * 3
	Canvas32  = 32 * 32 * 3
	Canvas64  = 64 * 64 * 3
	Canvas128 = 128 * 128 * 3
)

// bucketIndex returns the pool index for a given buffer size. Sizes larger
// than Canvas128 still land in the last bucket; Get falls back to a plain
// allocation for them since the pool's own buffers are too small to reuse.
func bucketIndex(size int) int {
	switch {
	case size <= Canvas16:
		return 0
	case size <= Canvas32:
		return 1
	case size <= Canvas64:
		return 2
	default:
		return 3
	}
}

var sizes = [4]int{Canvas16, Canvas32, Canvas64, Canvas128}

var pools [4]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// Get returns a byte slice of at least the requested size from the pool.
// The returned slice has length == size and may have a larger capacity.
// The caller must call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get. Slices smaller than Canvas16 are not pooled.
func Put(b []byte) {
	c := cap(b)
	if c < Canvas16 {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}
