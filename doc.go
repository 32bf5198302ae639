// Package imlib finds blobs, the connected regions of an image whose
// pixels match a color threshold.
//
// # Overview
//
// FindBlobs scans an image in one of three pixel formats (packed binary,
// 8-bit grayscale or RGB565) with an ordered list of thresholds. Every
// matching pixel that no earlier blob has claimed seeds a scanline flood
// fill; the fill marks the region in a visited bitmap and accumulates its
// bounding box, centroid and second moments on the way.
//
//	img, err := imlib.LoadImage("frame.png", imlib.FormatRGB565)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blobs, err := imlib.FindBlobs(img,
//	    []imlib.Threshold{imlib.LABThreshold(30, 100, 15, 127, 15, 127)},
//	    imlib.WithPixelsThreshold(50),
//	    imlib.WithMerge(10),
//	)
//
// # Thresholds
//
// Grayscale images use LMin..LMax. RGB565 pixels are projected to L*a*b*
// through a lookup table and must fall inside all three ranges. Binary
// images ignore the ranges. Threshold i sets bit 1<<i of Blob.Code, and a
// pixel claimed by threshold i is not available to later thresholds.
//
// # Memory
//
// Each call reserves a visited bitmap for the whole image and a bounded
// flood-fill stack from a scratch budget (see WithMemoryLimit). A budget
// too small for the bitmap fails with ErrOutOfMemory. A full stack is not
// an error: the fill stops exploring new rows and the blob may come out
// smaller than the true region.
//
// # Merging
//
// WithMerge runs MergeBlobs on the result, combining blobs whose bounding
// boxes overlap after growing one of them by a margin, until nothing more
// merges.
//
// # Logging
//
// imlib is silent by default. SetLogger installs a log/slog logger.
package imlib

// Version information.
const (
	// Version is the current version of the library.
	Version = "0.3.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 3

	// VersionPatch is the patch version number.
	VersionPatch = 0
)
