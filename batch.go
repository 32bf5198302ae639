package imlib

import (
	"context"
	"fmt"
	"sync"

	"github.com/gogpu/imlib/internal/parallel"
)

var (
	batchPoolOnce sync.Once
	batchPool     *parallel.WorkerPool
)

// workers returns the shared pool used by FindBlobsBatch, one worker per
// GOMAXPROCS.
func workers() *parallel.WorkerPool {
	batchPoolOnce.Do(func() {
		batchPool = parallel.NewWorkerPool(0)
	})
	return batchPool
}

// FindBlobsBatch runs FindBlobsContext on every image concurrently with
// the same thresholds and options. results[i] holds the blobs of
// images[i]. Filter callbacks set through opts may be called from several
// goroutines at once.
//
// If any image fails, FindBlobsBatch returns nil and the error of the
// lowest-indexed failing image.
func FindBlobsBatch(ctx context.Context, images []*Image, thresholds []Threshold, opts ...FindBlobsOption) ([][]Blob, error) {
	results := make([][]Blob, len(images))
	errs := make([]error, len(images))

	workers().ForEach(len(images), func(i int) {
		results[i], errs[i] = FindBlobsContext(ctx, images[i], thresholds, opts...)
	})

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("imlib: image %d: %w", i, err)
		}
	}
	Logger().Debug("imlib: batch done",
		"images", len(images), "completed", workers().Completed())
	return results, nil
}
