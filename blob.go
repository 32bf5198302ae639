package imlib

import (
	"fmt"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/mat"
)

// maxCount is the largest value Blob.Count takes.
const maxCount = math.MaxUint16

// Blob is one connected region found by FindBlobs, or the union of several
// regions after merging.
type Blob struct {
	// Rect is the bounding box.
	Rect Rect

	// Pixels is the number of pixels in the region.
	Pixels int

	// CX and CY are the centroid.
	CX, CY float64

	// Rotation is the angle of the principal axis in radians, in
	// (-π/2, π/2]. It is 0 for shapes without a preferred direction.
	Rotation float64

	// Code has bit i set when threshold i contributed to the blob.
	Code uint64

	// Count is the number of traced regions merged into this blob,
	// saturating at 65535.
	Count int

	m moments
}

// Centroid returns the centroid rounded to the nearest pixel.
func (b Blob) Centroid() (x, y int) {
	return int(math.Round(b.CX)), int(math.Round(b.CY))
}

// Area returns the area of the bounding box.
func (b Blob) Area() int {
	return b.Rect.Area()
}

// Density returns the fraction of the bounding box covered by the blob.
func (b Blob) Density() float64 {
	area := b.Rect.Area()
	if area == 0 {
		return 0
	}
	return float64(b.Pixels) / float64(area)
}

// Codes returns the indices of the thresholds that contributed to b, in
// increasing order.
func (b Blob) Codes() []int {
	codes := make([]int, 0, bits.OnesCount64(b.Code))
	for c := b.Code; c != 0; c &= c - 1 {
		codes = append(codes, bits.TrailingZeros64(c))
	}
	return codes
}

// Axes returns the full lengths of the major and minor axes of the ellipse
// with the same second moments as the blob. Both are 0 for blobs built
// without moments, such as literals passed to MergeBlobs.
func (b Blob) Axes() (major, minor float64) {
	if b.m.n == 0 {
		return 0, 0
	}
	a, bb, c := b.m.central()
	n := float64(b.m.n)
	cov := mat.NewSymDense(2, []float64{
		a / n, bb / n,
		bb / n, c / n,
	})

	var es mat.EigenSym
	if !es.Factorize(cov, false) {
		return 0, 0
	}
	vals := es.Values(nil) // ascending
	return 4 * math.Sqrt(max(vals[1], 0)), 4 * math.Sqrt(max(vals[0], 0))
}

// Elongation returns 1 - minor/major: 0 for round or square blobs,
// approaching 1 for thin lines.
func (b Blob) Elongation() float64 {
	major, minor := b.Axes()
	if major == 0 {
		return 0
	}
	return 1 - minor/major
}

// String returns a short description of the blob.
func (b Blob) String() string {
	return fmt.Sprintf("Blob{rect=%v pixels=%d centroid=(%.2f,%.2f) rotation=%.3f code=%#x count=%d}",
		b.Rect, b.Pixels, b.CX, b.CY, b.Rotation, b.Code, b.Count)
}

// merge folds o into b: bounding box union, pixel-weighted centroid,
// circular mean of the rotations, summed pixels and OR-ed codes.
func (b Blob) merge(o Blob) Blob {
	wa, wb := float64(b.Pixels), float64(o.Pixels)
	if wa+wb == 0 {
		wa, wb = 1, 1
	}
	w := wa + wb

	out := b
	out.Rect = b.Rect.Union(o.Rect)
	out.CX = (b.CX*wa + o.CX*wb) / w
	out.CY = (b.CY*wa + o.CY*wb) / w
	out.Rotation = math.Atan2(
		(math.Sin(b.Rotation)*wa+math.Sin(o.Rotation)*wb)/w,
		(math.Cos(b.Rotation)*wa+math.Cos(o.Rotation)*wb)/w,
	)
	out.Pixels = b.Pixels + o.Pixels
	out.Code = b.Code | o.Code
	out.Count = clampInt(b.Count+o.Count, 0, maxCount)
	out.m = b.m.add(o.m)
	return out
}

// moments accumulates the bounding box and raw coordinate sums of a region.
type moments struct {
	n                     int64
	sx, sy, sxx, sxy, syy int64
	x1, y1, x2, y2        int
}

func newMoments(x, y int) moments {
	return moments{x1: x, y1: y, x2: x, y2: y}
}

// addRun folds the pixels left..right of row y into m.
func (m *moments) addRun(y, left, right int) {
	k := int64(right - left + 1)
	l, r, yy := int64(left), int64(right), int64(y)

	sumX := (l + r) * k / 2
	sumXX := sumSquares(r) - sumSquares(l-1)

	m.n += k
	m.sx += sumX
	m.sy += yy * k
	m.sxx += sumXX
	m.sxy += yy * sumX
	m.syy += yy * yy * k

	m.x1 = min(m.x1, left)
	m.x2 = max(m.x2, right)
	m.y1 = min(m.y1, y)
	m.y2 = max(m.y2, y)
}

// sumSquares returns 0² + 1² + ... + n². It is 0 for n == -1.
func sumSquares(n int64) int64 {
	return n * (n + 1) * (2*n + 1) / 6
}

func (m moments) add(o moments) moments {
	if m.n == 0 {
		return o
	}
	if o.n == 0 {
		return m
	}
	return moments{
		n:   m.n + o.n,
		sx:  m.sx + o.sx,
		sy:  m.sy + o.sy,
		sxx: m.sxx + o.sxx,
		sxy: m.sxy + o.sxy,
		syy: m.syy + o.syy,
		x1:  min(m.x1, o.x1),
		y1:  min(m.y1, o.y1),
		x2:  max(m.x2, o.x2),
		y2:  max(m.y2, o.y2),
	}
}

// central returns the second moments about the centroid.
func (m moments) central() (a, b, c float64) {
	n := float64(m.n)
	mx := float64(m.sx) / n
	my := float64(m.sy) / n
	sx, sy := float64(m.sx), float64(m.sy)

	a = float64(m.sxx) - 2*mx*sx + n*mx*mx
	b = float64(m.sxy) - mx*sy - my*sx + n*mx*my
	c = float64(m.syy) - 2*my*sy + n*my*my
	return a, b, c
}

// blob turns the accumulated sums into a Blob record for threshold code.
func (m moments) blob(code uint64) Blob {
	n := float64(m.n)
	a, b, c := m.central()

	rotation := 0.0
	if a != c {
		rotation = math.Atan2(2*b, a-c) / 2
	}

	return Blob{
		Rect:     Rect{X: m.x1, Y: m.y1, W: m.x2 - m.x1 + 1, H: m.y2 - m.y1 + 1},
		Pixels:   int(m.n),
		CX:       float64(m.sx) / n,
		CY:       float64(m.sy) / n,
		Rotation: rotation,
		Code:     code,
		Count:    1,
		m:        m,
	}
}
