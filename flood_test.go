package imlib

import (
	"context"
	"slices"
	"testing"
)

func TestMoments_AddRunMatchesPixelSums(t *testing.T) {
	runs := []struct{ y, left, right int }{
		{0, 0, 0},
		{3, 2, 9},
		{4, 5, 5},
		{7, 0, 63},
	}
	mo := newMoments(runs[0].left, runs[0].y)
	var want moments
	want.x1, want.y1, want.x2, want.y2 = runs[0].left, runs[0].y, runs[0].left, runs[0].y
	for _, r := range runs {
		mo.addRun(r.y, r.left, r.right)
		for x := r.left; x <= r.right; x++ {
			want.n++
			want.sx += int64(x)
			want.sy += int64(r.y)
			want.sxx += int64(x * x)
			want.sxy += int64(x * r.y)
			want.syy += int64(r.y * r.y)
			want.x1, want.x2 = min(want.x1, x), max(want.x2, x)
			want.y1, want.y2 = min(want.y1, r.y), max(want.y2, r.y)
		}
	}
	if mo != want {
		t.Errorf("moments = %+v, want %+v", mo, want)
	}
}

// runDetector runs a detector and returns it with its bitmap still held.
func runDetector(t *testing.T, img *Image, thresholds []Threshold, opts ...FindBlobsOption) (*detector, []Blob) {
	t.Helper()
	o := defaultFindOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d, err := newDetector(img, len(thresholds), o)
	if err != nil {
		t.Fatalf("newDetector: %v", err)
	}
	blobs, err := d.run(context.Background(), thresholds)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	t.Cleanup(d.release)
	return d, blobs
}

func TestTrace_StackLimitUndercounts(t *testing.T) {
	img := newBinaryImage(t, []string{
		"........",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
		"........",
		"........",
	})
	th := []Threshold{BinaryThreshold()}

	d, blobs := runDetector(t, img, th, WithStackLimit(1))
	if got, want := pixelCounts(blobs), []int{2, 2, 1}; !slices.Equal(got, want) {
		t.Errorf("pixels with stack limit 1 = %v, want %v", got, want)
	}
	if d.tracer.saturated == 0 {
		t.Error("saturation was not recorded")
	}

	_, blobs = runDetector(t, img, th)
	if got, want := pixelCounts(blobs), []int{5}; !slices.Equal(got, want) {
		t.Errorf("pixels without stack limit = %v, want %v", got, want)
	}
}

func TestTrace_StackLimitOnBlock(t *testing.T) {
	d, blobs := runDetector(t, eightByEight(t), []Threshold{BinaryThreshold()}, WithStackLimit(1))
	if got, want := pixelCounts(blobs), []int{6, 3}; !slices.Equal(got, want) {
		t.Errorf("pixels = %v, want %v", got, want)
	}
	if d.tracer.visited.Count() != 9 {
		t.Errorf("visited %d pixels, want 9", d.tracer.visited.Count())
	}
}

func TestVisitedBitmap_MatchesTracedRuns(t *testing.T) {
	img := newGrayImage(t, []string{
		"##....#.",
		"##......",
		"......##",
		"..#...##",
		"........",
		"#......#",
	})
	d, blobs := runDetector(t, img, []Threshold{GrayThreshold(128, 255)},
		WithPixelsThreshold(3))

	// Only the two 2×2 blocks are accepted, but every matching pixel is
	// claimed.
	if got, want := pixelCounts(blobs), []int{4, 4}; !slices.Equal(got, want) {
		t.Errorf("accepted pixels = %v, want %v", got, want)
	}
	for y := range img.Height() {
		for x := range img.Width() {
			want := img.Pixel(x, y) == 255
			if got := d.tracer.visited.Test(x, y); got != want {
				t.Errorf("visited(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestVisitedBitmap_UnreachedPixelsStayClear(t *testing.T) {
	img := newGrayImage(t, []string{
		"#...",
		"..#.",
		"....",
	})
	d, blobs := runDetector(t, img, []Threshold{GrayThreshold(128, 255)}, WithStride(1, 2))
	if len(blobs) != 1 {
		t.Fatalf("got %d blobs, want 1", len(blobs))
	}
	if d.tracer.visited.Test(2, 1) {
		t.Error("pixel on a skipped row was marked visited")
	}
}

func BenchmarkTrace(b *testing.B) {
	img := blankImage(b, 320, 240, FormatGray8)
	img.FillRect(20, 20, 200, 150, 255)
	th := []Threshold{GrayThreshold(128, 255)}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := FindBlobs(img, th); err != nil {
			b.Fatal(err)
		}
	}
}
