package imlib

import (
	"image"
	"io"

	intImage "github.com/gogpu/imlib/internal/image"
)

// Image is the pixel buffer FindBlobs scans. It is read-only to the
// detector.
type Image = intImage.ImageBuf

// Format is the pixel encoding of an Image.
type Format = intImage.Format

// Pixel formats understood by FindBlobs.
const (
	// FormatBinary packs eight pixels per byte, least significant bit first.
	FormatBinary = intImage.FormatBinary

	// FormatGray8 stores one 8-bit luma value per pixel.
	FormatGray8 = intImage.FormatGray8

	// FormatRGB565 stores 16-bit little-endian RGB565 pixels.
	FormatRGB565 = intImage.FormatRGB565
)

// DefaultBinaryCutoff is the luma at or above which a pixel is set when
// converting to FormatBinary.
const DefaultBinaryCutoff = 128

// NewImage returns a zeroed image.
func NewImage(width, height int, format Format) (*Image, error) {
	return intImage.NewImageBuf(width, height, format)
}

// NewImageFromData wraps existing pixel data without copying.
func NewImageFromData(data []byte, width, height int, format Format, stride int) (*Image, error) {
	return intImage.FromRaw(data, width, height, format, stride)
}

// ParseFormat returns the format named by s, such as "gray" or "rgb565".
func ParseFormat(s string) (Format, bool) {
	return intImage.ParseFormat(s)
}

// LoadImage decodes the image file at path (PNG, JPEG, GIF, BMP, TIFF or
// WebP) into the given format.
func LoadImage(path string, format Format) (*Image, error) {
	return intImage.LoadImage(path, format, DefaultBinaryCutoff)
}

// DecodeImage decodes an encoded image from r into the given format.
// Binary pixels are set where luma >= cutoff.
func DecodeImage(r io.Reader, format Format, cutoff uint8) (*Image, error) {
	return intImage.Decode(r, format, cutoff)
}

// FromStdImage converts img to the given format. Binary pixels are set
// where luma >= cutoff.
func FromStdImage(img image.Image, format Format, cutoff uint8) *Image {
	return intImage.FromStdImage(img, format, cutoff)
}

// Resize returns img resampled to width × height.
func Resize(img image.Image, width, height int) image.Image {
	return intImage.Scale(img, width, height)
}
