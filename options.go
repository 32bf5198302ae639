package imlib

// DefaultMemoryLimit is the scratch budget of one FindBlobs call when
// WithMemoryLimit is not given. It covers the visited bitmap and the
// flood-fill stack.
const DefaultMemoryLimit = 64 << 20

// FindBlobsOption configures a FindBlobs call.
//
// Example:
//
//	blobs, err := imlib.FindBlobs(img, thresholds,
//	    imlib.WithROI(imlib.R(0, 0, 320, 120)),
//	    imlib.WithPixelsThreshold(20),
//	    imlib.WithMerge(4),
//	)
type FindBlobsOption func(*findOptions)

// findOptions holds the configuration of one FindBlobs call.
type findOptions struct {
	roi    Rect
	hasROI bool

	xStride int
	yStride int
	invert  bool

	areaThreshold   int
	pixelsThreshold int

	merge       bool
	margin      int
	mergeFilter func(a, b Blob) bool

	thresholdFilter func(Blob) bool

	stackLimit  int
	memoryLimit int
}

// defaultFindOptions returns the default options: whole image, exhaustive
// scan, no filtering and no merging.
func defaultFindOptions() findOptions {
	return findOptions{
		xStride:     1,
		yStride:     1,
		memoryLimit: DefaultMemoryLimit,
	}
}

// WithROI restricts the scan to r. r must lie inside the image.
func WithROI(r Rect) FindBlobsOption {
	return func(o *findOptions) {
		o.roi = r
		o.hasROI = true
	}
}

// WithStride sets the sampling step between seed pixels. Rows advance by
// y; columns advance by x starting at roi.X + row%x, so consecutive rows
// sample staggered columns. Blobs are still traced at full resolution.
func WithStride(x, y int) FindBlobsOption {
	return func(o *findOptions) {
		o.xStride = x
		o.yStride = y
	}
}

// WithInvert inverts every threshold test.
func WithInvert(invert bool) FindBlobsOption {
	return func(o *findOptions) {
		o.invert = invert
	}
}

// WithAreaThreshold discards blobs whose bounding box covers fewer than
// area pixels.
func WithAreaThreshold(area int) FindBlobsOption {
	return func(o *findOptions) {
		o.areaThreshold = area
	}
}

// WithPixelsThreshold discards blobs with fewer than pixels pixels.
func WithPixelsThreshold(pixels int) FindBlobsOption {
	return func(o *findOptions) {
		o.pixelsThreshold = pixels
	}
}

// WithMerge enables the merge pass. Two blobs merge when one overlaps the
// other's bounding box grown by margin pixels; margin may be negative.
func WithMerge(margin int) FindBlobsOption {
	return func(o *findOptions) {
		o.merge = true
		o.margin = margin
	}
}

// WithThresholdFilter sets a callback that sees every blob surviving the
// area and pixel thresholds. Returning false discards the blob; its pixels
// stay claimed.
func WithThresholdFilter(fn func(Blob) bool) FindBlobsOption {
	return func(o *findOptions) {
		o.thresholdFilter = fn
	}
}

// WithMergeFilter sets a callback consulted for each pair the merge pass
// would combine. Returning false keeps the pair apart. It has no effect
// without WithMerge.
func WithMergeFilter(fn func(a, b Blob) bool) FindBlobsOption {
	return func(o *findOptions) {
		o.mergeFilter = fn
	}
}

// WithStackLimit caps the number of pending runs the flood fill may hold.
// When the stack is full the fill stops descending into new rows, which
// can undercount convoluted shapes. n <= 0 leaves the cap to the memory
// budget.
func WithStackLimit(n int) FindBlobsOption {
	return func(o *findOptions) {
		o.stackLimit = n
	}
}

// WithMemoryLimit sets the scratch budget in bytes.
func WithMemoryLimit(bytes int) FindBlobsOption {
	return func(o *findOptions) {
		o.memoryLimit = bytes
	}
}
