package imlib

import (
	"context"
	"fmt"

	"github.com/gogpu/imlib/internal/bitmap"
	"github.com/gogpu/imlib/internal/scratch"
)

// maxThresholds is the number of distinct code bits in Blob.Code.
const maxThresholds = 64

// bitmaps recycles visited bitmaps between calls on same-sized images.
var bitmaps = bitmap.NewPool(4)

// FindBlobs finds the connected regions of img that match thresholds.
//
// Thresholds are applied in order and threshold i sets bit 1<<i of
// Blob.Code. A pixel claimed by one threshold is not available to later
// ones. Blobs are returned in discovery order; with WithMerge the order is
// unspecified.
//
// An empty threshold list yields no blobs and no error. On error the
// returned slice is nil.
func FindBlobs(img *Image, thresholds []Threshold, opts ...FindBlobsOption) ([]Blob, error) {
	return FindBlobsContext(context.Background(), img, thresholds, opts...)
}

// FindBlobsContext is like FindBlobs but stops with ctx.Err() when ctx is
// cancelled. Cancellation is checked once per scanned row.
func FindBlobsContext(ctx context.Context, img *Image, thresholds []Threshold, opts ...FindBlobsOption) ([]Blob, error) {
	o := defaultFindOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d, err := newDetector(img, len(thresholds), o)
	if err != nil {
		return nil, err
	}
	if len(thresholds) == 0 {
		return nil, nil
	}

	blobs, err := d.run(ctx, thresholds)
	d.release()
	if err != nil {
		return nil, err
	}

	if o.merge {
		blobs = MergeBlobs(blobs, o.margin, o.mergeFilter)
	}
	return blobs, nil
}

// detector runs one FindBlobs call.
type detector struct {
	img  *Image
	opts findOptions
	roi  Rect

	arena     *scratch.Arena
	bitmapMk  scratch.Mark
	stackMk   scratch.Mark
	acquired  bool
	tracer    tracer
	blobs     []Blob
	candidate int // blobs traced, accepted or not
}

// newDetector validates the call arguments.
func newDetector(img *Image, nThresholds int, o findOptions) (*detector, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	switch img.Format() {
	case FormatBinary, FormatGray8, FormatRGB565:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, img.Format())
	}
	if o.xStride < 1 || o.yStride < 1 {
		return nil, fmt.Errorf("%w: x=%d y=%d", ErrInvalidStride, o.xStride, o.yStride)
	}
	if nThresholds > maxThresholds {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyThresholds, nThresholds, maxThresholds)
	}

	bounds := R(0, 0, img.Width(), img.Height())
	roi := bounds
	if o.hasROI {
		roi = o.roi
	}
	if !roi.In(bounds) {
		return nil, fmt.Errorf("%w: %v not inside %v", ErrInvalidROI, roi, bounds)
	}

	return &detector{img: img, opts: o, roi: roi}, nil
}

// acquire reserves the visited bitmap and then the flood-fill stack.
func (d *detector) acquire() error {
	w, h := d.img.Width(), d.img.Height()
	d.arena = scratch.New(d.opts.memoryLimit)

	mk, err := d.arena.Alloc("visited bitmap", bitmap.Bytes(w, h))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	d.bitmapMk = mk

	// No fill can have more pending runs than the ROI has pixels.
	want := d.roi.Area()
	if d.opts.stackLimit > 0 {
		want = min(want, d.opts.stackLimit)
	}
	n, mk, err := d.arena.AllocUpTo("flood-fill stack", want, spanBytes)
	if err != nil {
		_ = d.arena.Release(d.bitmapMk)
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	d.stackMk = mk
	d.acquired = true

	d.tracer = tracer{
		roi:     d.roi,
		visited: bitmaps.Get(w, h),
		stack:   make([]span, 0, min(n, 256)),
		limit:   n,
	}

	Logger().Debug("imlib: scratch acquired",
		"width", w, "height", h, "roi", d.roi,
		"stack_entries", n, "scratch", d.arena.Stats().String())
	return nil
}

// release frees the stack and then the bitmap.
func (d *detector) release() {
	if !d.acquired {
		return
	}
	d.acquired = false

	if err := d.arena.Release(d.stackMk); err != nil {
		Logger().Warn("imlib: releasing stack", "err", err)
	}
	if err := d.arena.Release(d.bitmapMk); err != nil {
		Logger().Warn("imlib: releasing bitmap", "err", err)
	}
	bitmaps.Put(d.tracer.visited)
	d.tracer = tracer{}
}

// run acquires scratch memory and scans every threshold. The caller must
// call release afterwards.
func (d *detector) run(ctx context.Context, thresholds []Threshold) ([]Blob, error) {
	if err := d.acquire(); err != nil {
		return nil, err
	}

	for i, th := range thresholds {
		before := len(d.blobs)
		if err := d.scanThreshold(ctx, i, th.normalize()); err != nil {
			return nil, err
		}
		Logger().Debug("imlib: threshold scanned",
			"index", i, "threshold", th, "blobs", len(d.blobs)-before)
	}

	Logger().Debug("imlib: scan done",
		"candidates", d.candidate, "accepted", len(d.blobs))
	if d.tracer.saturated > 0 {
		Logger().Warn("imlib: flood-fill stack saturated, blobs may be undercounted",
			"stack_entries", d.tracer.limit, "skipped_probes", d.tracer.saturated)
	}
	return d.blobs, nil
}

// scanThreshold picks the matcher for the image format and scans the ROI.
func (d *detector) scanThreshold(ctx context.Context, i int, th Threshold) error {
	code := uint64(1) << uint(i)
	data, stride := d.img.Data(), d.img.Stride()
	invert := d.opts.invert

	switch d.img.Format() {
	case FormatBinary:
		return scan(ctx, d, binaryMatcher{data: data, stride: stride, invert: invert}, code)
	case FormatGray8:
		return scan(ctx, d, grayMatcher{data: data, stride: stride, lo: th.LMin, hi: th.LMax, invert: invert}, code)
	case FormatRGB565:
		return scan(ctx, d, rgb565Matcher{data: data, stride: stride, table: rgb565Table(th, invert)}, code)
	default:
		return ErrUnsupportedFormat
	}
}

// scan visits the seed grid of the ROI and traces every free seed.
func scan[M pixelMatcher](ctx context.Context, d *detector, m M, code uint64) error {
	t := &d.tracer
	roi := d.roi
	xs, ys := d.opts.xStride, d.opts.yStride

	for y := roi.Y; y < roi.Y+roi.H; y += ys {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := roi.X + y%xs; x < roi.X+roi.W; x += xs {
			if !free(t, m, x, y) {
				continue
			}
			d.candidate++
			b := trace(t, m, x, y).blob(code)
			if d.accept(b) {
				d.blobs = append(d.blobs, b)
			}
		}
	}
	return nil
}

// accept applies the area, pixel and callback filters. Rejected blobs
// keep their pixels marked visited.
func (d *detector) accept(b Blob) bool {
	if b.Rect.Area() < d.opts.areaThreshold {
		return false
	}
	if b.Pixels < d.opts.pixelsThreshold {
		return false
	}
	if d.opts.thresholdFilter != nil && !d.opts.thresholdFilter(b) {
		return false
	}
	return true
}
