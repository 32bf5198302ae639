package imlib

// Threshold selects the pixels that belong to one color class.
//
// Grayscale images compare the pixel value against LMin..LMax. RGB565
// images project each pixel to L*a*b* and require all three channels to
// fall in their ranges. Binary images ignore the ranges: a set bit
// matches. All bounds are inclusive.
type Threshold struct {
	LMin, LMax int
	AMin, AMax int
	BMin, BMax int
}

// GrayThreshold returns a threshold matching gray values lo..hi.
func GrayThreshold(lo, hi int) Threshold {
	return Threshold{LMin: lo, LMax: hi}
}

// LABThreshold returns a threshold for RGB565 images. L is clamped to
// 0..100, a and b to -128..127.
func LABThreshold(lMin, lMax, aMin, aMax, bMin, bMax int) Threshold {
	return Threshold{
		LMin: clampInt(lMin, 0, 100),
		LMax: clampInt(lMax, 0, 100),
		AMin: clampInt(aMin, -128, 127),
		AMax: clampInt(aMax, -128, 127),
		BMin: clampInt(bMin, -128, 127),
		BMax: clampInt(bMax, -128, 127),
	}
}

// BinaryThreshold returns the threshold for binary images. Any threshold
// works on a binary image; this one documents the intent.
func BinaryThreshold() Threshold {
	return Threshold{LMin: 1, LMax: 1}
}

// normalize swaps reversed min/max pairs.
func (t Threshold) normalize() Threshold {
	if t.LMin > t.LMax {
		t.LMin, t.LMax = t.LMax, t.LMin
	}
	if t.AMin > t.AMax {
		t.AMin, t.AMax = t.AMax, t.AMin
	}
	if t.BMin > t.BMax {
		t.BMin, t.BMax = t.BMax, t.BMin
	}
	return t
}

// matchLAB reports whether (l, a, b) lies inside all three ranges.
func (t Threshold) matchLAB(l, a, b int) bool {
	return l >= t.LMin && l <= t.LMax &&
		a >= t.AMin && a <= t.AMax &&
		b >= t.BMin && b <= t.BMax
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
