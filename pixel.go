package imlib

import (
	"github.com/gogpu/imlib/internal/cache"
	"github.com/gogpu/imlib/internal/color"
)

// pixelMatcher tests one pixel against the active threshold.
// Implementations are small value types so the tracer, which is generic
// over them, compiles to a direct call per pixel.
type pixelMatcher interface {
	match(x, y int) bool
}

// binaryMatcher matches set bits of a packed LSB-first binary image.
type binaryMatcher struct {
	data   []byte
	stride int
	invert bool
}

func (m binaryMatcher) match(x, y int) bool {
	on := m.data[y*m.stride+x>>3]>>(uint(x)&7)&1 != 0
	return on != m.invert
}

// grayMatcher matches 8-bit values inside [lo, hi].
type grayMatcher struct {
	data   []byte
	stride int
	lo, hi int
	invert bool
}

func (m grayMatcher) match(x, y int) bool {
	v := int(m.data[y*m.stride+x])
	return (v >= m.lo && v <= m.hi) != m.invert
}

// rgb565Matcher looks each little-endian RGB565 pixel up in a precomputed
// table that already folds in the threshold and the invert flag.
type rgb565Matcher struct {
	data   []byte
	stride int
	table  *matchTable
}

func (m rgb565Matcher) match(x, y int) bool {
	i := y*m.stride + x*2
	return m.table.test(uint16(m.data[i]) | uint16(m.data[i+1])<<8)
}

// matchTable holds one bit per RGB565 value.
type matchTable [1 << 16 / 64]uint64

func (t *matchTable) test(p uint16) bool {
	return t[p>>6]&(1<<(p&63)) != 0
}

// matchKey identifies a match table. Thresholds are normalised first.
type matchKey struct {
	threshold Threshold
	invert    bool
}

// matchTableCacheSize bounds the number of resident tables (8 KiB each).
const matchTableCacheSize = 32

var matchTables = cache.New[matchKey, *matchTable](matchTableCacheSize)

// rgb565Table returns the match table for t and invert, building it on
// first use.
func rgb565Table(t Threshold, invert bool) *matchTable {
	key := matchKey{threshold: t.normalize(), invert: invert}
	built := false
	table := matchTables.GetOrCreate(key, func() *matchTable {
		built = true
		return buildMatchTable(key.threshold, invert)
	})
	if built {
		// Stats takes the cache lock, so it is read outside GetOrCreate.
		st := matchTables.Stats()
		Logger().Debug("imlib: built RGB565 match table",
			"threshold", key.threshold, "invert", invert,
			"cached", st.Len, "hits", st.Hits, "misses", st.Misses)
	}
	return table
}

func buildMatchTable(t Threshold, invert bool) *matchTable {
	table := new(matchTable)
	for p := range 1 << 16 {
		//nolint:gosec // G115: p < 1<<16
		l, a, b := color.RGB565ToLAB(uint16(p))
		if t.matchLAB(l, a, b) != invert {
			table[p>>6] |= 1 << (uint(p) & 63)
		}
	}
	return table
}

// newMatcher is the non-generic entry used by tests and tools that need
// a single pixel test without running the tracer.
func newMatcher(img *Image, t Threshold, invert bool) (pixelMatcher, error) {
	t = t.normalize()
	data, stride := img.Data(), img.Stride()
	switch img.Format() {
	case FormatBinary:
		return binaryMatcher{data: data, stride: stride, invert: invert}, nil
	case FormatGray8:
		return grayMatcher{data: data, stride: stride, lo: t.LMin, hi: t.LMax, invert: invert}, nil
	case FormatRGB565:
		return rgb565Matcher{data: data, stride: stride, table: rgb565Table(t, invert)}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Match reports whether pixel (x, y) of img satisfies t, taking invert
// into account. Coordinates outside the image never match.
func Match(img *Image, t Threshold, invert bool, x, y int) (bool, error) {
	if img == nil {
		return false, ErrNilImage
	}
	m, err := newMatcher(img, t, invert)
	if err != nil {
		return false, err
	}
	if x < 0 || y < 0 || x >= img.Width() || y >= img.Height() {
		return false, nil
	}
	return m.match(x, y), nil
}
