package imlib

import (
	"testing"
)

// grayLevels maps the characters used in test pictures to gray values.
var grayLevels = map[byte]uint16{
	'.': 0,
	'a': 100,
	'b': 150,
	'c': 200,
	'#': 255,
}

// newGrayImage builds a grayscale image from rows of characters.
func newGrayImage(t testing.TB, rows []string) *Image {
	t.Helper()
	img, err := NewImage(len(rows[0]), len(rows), FormatGray8)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	for y, row := range rows {
		for x := range len(row) {
			v, ok := grayLevels[row[x]]
			if !ok {
				t.Fatalf("unknown pixel %q at (%d,%d)", row[x], x, y)
			}
			if err := img.SetPixel(x, y, v); err != nil {
				t.Fatalf("SetPixel: %v", err)
			}
		}
	}
	return img
}

// newBinaryImage builds a binary image; '#' is set, anything else clear.
func newBinaryImage(t testing.TB, rows []string) *Image {
	t.Helper()
	img, err := NewImage(len(rows[0]), len(rows), FormatBinary)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	for y, row := range rows {
		for x := range len(row) {
			if row[x] == '#' {
				if err := img.SetPixel(x, y, 1); err != nil {
					t.Fatalf("SetPixel: %v", err)
				}
			}
		}
	}
	return img
}

// blankImage returns a zeroed w×h image.
func blankImage(t testing.TB, w, h int, format Format) *Image {
	t.Helper()
	img, err := NewImage(w, h, format)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	return img
}

func mustFind(t testing.TB, img *Image, thresholds []Threshold, opts ...FindBlobsOption) []Blob {
	t.Helper()
	blobs, err := FindBlobs(img, thresholds, opts...)
	if err != nil {
		t.Fatalf("FindBlobs: %v", err)
	}
	return blobs
}

func pixelCounts(blobs []Blob) []int {
	counts := make([]int, len(blobs))
	for i, b := range blobs {
		counts[i] = b.Pixels
	}
	return counts
}

func approxEqual(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}

// eightByEight returns the 8×8 binary test picture with a 3×3 block at
// (2,2)-(4,4).
func eightByEight(t testing.TB) *Image {
	return newBinaryImage(t, []string{
		"........",
		"........",
		"..###...",
		"..###...",
		"..###...",
		"........",
		"........",
		"........",
	})
}

// twoBlocks returns the 8×8 binary test picture with 2×2 blocks at (0,0)
// and (5,5).
func twoBlocks(t testing.TB) *Image {
	return newBinaryImage(t, []string{
		"##......",
		"##......",
		"........",
		"........",
		"........",
		".....##.",
		".....##.",
		"........",
	})
}
