// Package color provides the color conversions used by pixel threshold tests.
//
// The RGB565 → L*a*b* tables give every 16-bit pixel its three threshold
// channels in O(1): L in [0, 100], a and b in [-128, 127].
package color

// PackRGB565 packs 8-bit r, g, b into a 16-bit RGB565 value.
// The low bits of each channel are dropped.
func PackRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// UnpackRGB565 expands a 16-bit RGB565 value to 8-bit channels.
// The high bits are replicated into the low bits so that full-scale
// channels map to 255.
func UnpackRGB565(p uint16) (r, g, b uint8) {
	r5 := uint8(p >> 11 & 0x1f)
	g6 := uint8(p >> 5 & 0x3f)
	b5 := uint8(p & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Luminance returns the Rec. 601 luma of an 8-bit RGB triple in [0, 255].
// Standard luminance: 0.299*R + 0.587*G + 0.114*B
func Luminance(r, g, b uint8) uint8 {
	//nolint:gosec // G115: weighted mean of 8-bit values stays in [0,255]
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}
