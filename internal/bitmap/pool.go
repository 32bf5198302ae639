package bitmap

import "sync"

// Pool is a thread-safe pool for reusing Bitmap instances.
//
// Pool groups bitmaps by their dimensions so repeated detection on frames
// of one size reuses the same words instead of allocating per call.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Bitmap
	maxSize int // max bitmaps per bucket
}

// poolKey identifies a bucket of identically sized bitmaps.
type poolKey struct {
	width  int
	height int
}

// NewPool creates a new bitmap pool with the given maximum bitmaps per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Bitmap),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a cleared bitmap from the pool or creates a new one.
func (p *Pool) Get(width, height int) *Bitmap {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		m := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		m.Clear()
		return m
	}
	p.mu.Unlock()

	return New(width, height)
}

// Put returns a bitmap to the pool for reuse.
// If m is nil or the bucket is at max capacity, the bitmap is discarded.
func (p *Pool) Put(m *Bitmap) {
	if m == nil {
		return
	}

	key := poolKey{width: m.width, height: m.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, m)
}

// Len returns the number of pooled bitmaps across all buckets.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
