package imlib

import (
	"unsafe"

	"github.com/gogpu/imlib/internal/bitmap"
)

// span is a run waiting to be resumed: the seed (x, y) and the run's
// extent left..right on row y.
type span struct {
	x, y        int32
	left, right int32
}

// spanBytes is the scratch cost of one stack entry.
const spanBytes = int(unsafe.Sizeof(span{}))

// tracer holds the per-call state of the scanline flood fill.
type tracer struct {
	roi     Rect
	visited *bitmap.Bitmap

	// stack grows on demand up to limit entries; limit is what the
	// scratch budget reserved for it.
	stack []span
	limit int

	// saturated counts probes skipped because the stack was full.
	saturated int
}

// free reports whether (x, y) is unclaimed and matches.
func free[M pixelMatcher](t *tracer, m M, x, y int) bool {
	return !t.visited.Test(x, y) && m.match(x, y)
}

// probe returns the first free pixel of row y in left..right.
func probe[M pixelMatcher](t *tracer, m M, y, left, right int) (int, bool) {
	for x := left; x <= right; x++ {
		if free(t, m, x, y) {
			return x, true
		}
	}
	return 0, false
}

// trace flood-fills the region containing the free seed (x, y) and returns
// its moments. Every pixel of the region is marked visited.
//
// Each step extends the current run left and right, claims it, then looks
// for a free pixel on the row above and, failing that, the row below. On a
// hit the current run is pushed and the fill continues from the new pixel.
// Otherwise a run is popped and its neighbours are probed again. While the
// stack is full no probing happens, so the fill drains the stack and stops;
// the region is then undercounted.
func trace[M pixelMatcher](t *tracer, m M, x, y int) moments {
	xMin, xMax := t.roi.X, t.roi.X+t.roi.W-1
	yMin, yMax := t.roi.Y, t.roi.Y+t.roi.H-1

	mo := newMoments(x, y)
	t.stack = t.stack[:0]

	for {
		left, right := x, x
		for left > xMin && free(t, m, left-1, y) {
			left--
		}
		for right < xMax && free(t, m, right+1, y) {
			right++
		}
		t.visited.SetRun(y, left, right)
		mo.addRun(y, left, right)

		descended := false
		for {
			if len(t.stack) < t.limit {
				nx, ny, ok := 0, 0, false
				if y > yMin {
					nx, ok = probe(t, m, y-1, left, right)
					ny = y - 1
				}
				if !ok && y < yMax {
					nx, ok = probe(t, m, y+1, left, right)
					ny = y + 1
				}
				if ok {
					//nolint:gosec // G115: image coordinates fit in int32
					t.stack = append(t.stack, span{int32(x), int32(y), int32(left), int32(right)})
					x, y = nx, ny
					descended = true
					break
				}
			} else {
				t.saturated++
			}

			if len(t.stack) == 0 {
				break
			}
			top := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			x, y = int(top.x), int(top.y)
			left, right = int(top.left), int(top.right)
		}

		if !descended {
			return mo
		}
	}
}
