package color

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// labTables holds one entry per RGB565 value. 192KB in total, so the
// tables are built on first use rather than at init.
type labTables struct {
	l [1 << 16]int8
	a [1 << 16]int8
	b [1 << 16]int8
}

var (
	labOnce sync.Once
	lab     *labTables
)

func labLUT() *labTables {
	labOnce.Do(func() {
		t := new(labTables)
		for p := range 1 << 16 {
			//nolint:gosec // G115: p < 1<<16
			r, g, b := UnpackRGB565(uint16(p))
			c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
			// go-colorful scales L to [0, 1] and a, b by 1/100 (D65).
			l, a, bb := c.Lab()
			//nolint:gosec // G115: values clamped to int8 range
			t.l[p] = int8(clampRound(l*100, 0, 100))
			//nolint:gosec // G115: values clamped to int8 range
			t.a[p] = int8(clampRound(a*100, math.MinInt8, math.MaxInt8))
			//nolint:gosec // G115: values clamped to int8 range
			t.b[p] = int8(clampRound(bb*100, math.MinInt8, math.MaxInt8))
		}
		lab = t
	})
	return lab
}

// RGB565ToLAB returns the L, a and b channels of an RGB565 pixel.
func RGB565ToLAB(p uint16) (l, a, b int) {
	t := labLUT()
	return int(t.l[p]), int(t.a[p]), int(t.b[p])
}

// clampRound rounds v to the nearest integer and clamps it to [lo, hi].
func clampRound(v float64, lo, hi int) int {
	i := int(math.Round(v))
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
