package image

import "strings"

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatBinary is 1 bit per pixel, packed LSB-first into bytes.
	// Each row starts on a byte boundary.
	FormatBinary Format = iota

	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8

	// FormatRGB565 is 16-bit RGB (2 bytes per pixel, little-endian,
	// red in the top 5 bits, green in the middle 6, blue in the low 5).
	FormatRGB565

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BitsPerPixel is the number of bits used by one pixel.
	BitsPerPixel int

	// Channels is the number of color channels.
	Channels int

	// IsGrayscale indicates if this is a single-channel format.
	IsGrayscale bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatBinary: {
		BitsPerPixel: 1,
		Channels:     1,
		IsGrayscale:  true,
	},
	FormatGray8: {
		BitsPerPixel: 8,
		Channels:     1,
		IsGrayscale:  true,
	},
	FormatRGB565: {
		BitsPerPixel: 16,
		Channels:     3,
		IsGrayscale:  false,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BitsPerPixel returns the number of bits per pixel for this format.
func (f Format) BitsPerPixel() int {
	return f.Info().BitsPerPixel
}

// Channels returns the number of color channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// IsGrayscale returns true if this is a single-channel format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "Binary"
	case FormatGray8:
		return "Gray8"
	case FormatRGB565:
		return "RGB565"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
// Binary rows are rounded up to whole bytes.
func (f Format) RowBytes(width int) int {
	return (width*f.BitsPerPixel() + 7) / 8
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// ParseFormat returns the format named by s. Accepted names are the
// String values and the short forms "binary", "gray", "grayscale" and
// "rgb565", matched case-insensitively.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "binary", "bin", "1":
		return FormatBinary, true
	case "gray8", "gray", "grayscale", "8":
		return FormatGray8, true
	case "rgb565", "rgb", "16":
		return FormatRGB565, true
	default:
		return 0, false
	}
}
