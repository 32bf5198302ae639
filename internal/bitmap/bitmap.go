// Package bitmap provides a dense one-bit-per-pixel mask.
//
// The blob detector uses a Bitmap to remember which pixels already belong
// to a blob. Bits are addressed by absolute image coordinates and stored
// row-major in 64-bit words without per-row padding.
package bitmap

import "math/bits"

// Bitmap is a width × height bit mask, all bits initially clear.
//
// A Bitmap is not safe for concurrent use.
type Bitmap struct {
	width  int
	height int
	words  []uint64
}

// WordsFor returns the number of 64-bit words a width × height bitmap uses.
func WordsFor(width, height int) int {
	return (width*height + 63) >> 6
}

// Bytes returns the memory, in bytes, a width × height bitmap uses.
func Bytes(width, height int) int {
	return WordsFor(width, height) * 8
}

// New returns a cleared bitmap. Width and height must be positive.
func New(width, height int) *Bitmap {
	return &Bitmap{
		width:  width,
		height: height,
		words:  make([]uint64, WordsFor(width, height)),
	}
}

// Width returns the bitmap width in bits.
func (m *Bitmap) Width() int { return m.width }

// Height returns the bitmap height in bits.
func (m *Bitmap) Height() int { return m.height }

// Index returns the linear bit index of (x, y).
func (m *Bitmap) Index(x, y int) int { return y*m.width + x }

// Test reports whether the bit at (x, y) is set.
// Coordinates must be inside the bitmap.
func (m *Bitmap) Test(x, y int) bool {
	return m.TestIndex(m.Index(x, y))
}

// TestIndex reports whether the bit at linear index i is set.
func (m *Bitmap) TestIndex(i int) bool {
	return m.words[i>>6]&(1<<(uint(i)&63)) != 0
}

// Set sets the bit at (x, y).
func (m *Bitmap) Set(x, y int) {
	i := m.Index(x, y)
	m.words[i>>6] |= 1 << (uint(i) & 63)
}

// SetRun sets the bits x0..x1 (inclusive) on row y.
func (m *Bitmap) SetRun(y, x0, x1 int) {
	lo := m.Index(x0, y)
	hi := m.Index(x1, y)
	for lo <= hi {
		w := lo >> 6
		first := uint(lo) & 63
		last := uint(63)
		if hi>>6 == w {
			last = uint(hi) & 63
		}
		// bits first..last of word w
		mask := (^uint64(0) >> (63 - last)) &^ (1<<first - 1)
		m.words[w] |= mask
		lo = (w + 1) << 6
	}
}

// Count returns the number of set bits.
func (m *Bitmap) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clear clears every bit.
func (m *Bitmap) Clear() {
	clear(m.words)
}
