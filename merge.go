package imlib

import "slices"

// MergeBlobs repeatedly combines blobs until no pair can be merged.
//
// Each pass takes the first blob a off the list and compares it against
// every blob b still on the list. b is merged into a when a overlaps b's
// bounding box grown by margin and filter, if set, accepts (a, b).
// Blobs that do not merge go back on the list; a goes to the output. Only
// b is grown, so the result can depend on the order of blobs.
//
// The input slice is not modified.
func MergeBlobs(blobs []Blob, margin int, filter func(a, b Blob) bool) []Blob {
	list := slices.Clone(blobs)

	for pass := 1; ; pass++ {
		merged := 0
		out := make([]Blob, 0, len(list))

		for len(list) > 0 {
			a := list[0]
			list = list[1:]

			for range len(list) {
				b := list[0]
				list = list[1:]

				if a.Rect.Overlaps(b.Rect.Grow(margin)) && (filter == nil || filter(a, b)) {
					a = a.merge(b)
					merged++
				} else {
					list = append(list, b)
				}
			}
			out = append(out, a)
		}

		list = out
		Logger().Debug("imlib: merge pass", "pass", pass, "merged", merged, "blobs", len(list))
		if merged == 0 {
			return list
		}
	}
}
