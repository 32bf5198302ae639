package imlib

import "errors"

// Errors returned by FindBlobs and its variants. Callers should test for
// them with errors.Is; the returned errors carry extra context.
var (
	// ErrNilImage is returned when the image argument is nil.
	ErrNilImage = errors.New("imlib: nil image")

	// ErrUnsupportedFormat is returned for pixel formats the detector
	// cannot threshold.
	ErrUnsupportedFormat = errors.New("imlib: unsupported pixel format")

	// ErrInvalidROI is returned when the region of interest is empty or
	// extends past the image bounds.
	ErrInvalidROI = errors.New("imlib: invalid region of interest")

	// ErrInvalidStride is returned when a scan stride is less than 1.
	ErrInvalidStride = errors.New("imlib: invalid stride")

	// ErrTooManyThresholds is returned when more thresholds are passed than
	// there are bits in Blob.Code.
	ErrTooManyThresholds = errors.New("imlib: too many thresholds")

	// ErrOutOfMemory is returned when the visited bitmap or the flood-fill
	// stack does not fit in the memory budget.
	ErrOutOfMemory = errors.New("imlib: out of memory")
)
