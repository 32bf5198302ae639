// Package image provides image buffer management for gogpu/imlib.
//
// This package implements the three pixel encodings the blob detector
// understands: packed 1-bit binary, 8-bit grayscale and 16-bit RGB565.
package image

import (
	"errors"

	"github.com/gogpu/imlib/internal/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is an image buffer in one of the supported pixel formats.
//
// ImageBuf stores pixel data in a contiguous byte slice with optional stride
// for memory alignment. Binary images pack eight pixels per byte, least
// significant bit first; RGB565 pixels are stored little-endian.
//
// Thread safety: ImageBuf is safe for concurrent read access. Write operations
// (Set*, Clear, Fill) require external synchronization.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewImageBuf creates a new image buffer with the given dimensions and format.
// Returns an error if dimensions are invalid or format is unknown.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	data := make([]byte, stride*height)

	return &ImageBuf{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// NewImageBufWithStride creates a new image buffer with custom stride for alignment.
// Stride must be at least format.RowBytes(width).
func NewImageBufWithStride(width, height int, format Format, stride int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	minStride := format.RowBytes(width)
	if stride < minStride {
		return nil, ErrInvalidStride
	}

	data := make([]byte, stride*height)

	return &ImageBuf{
		data:   data,
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw creates an ImageBuf from existing data without copying.
// The caller must ensure data remains valid for the lifetime of the ImageBuf.
// Stride must be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	minStride := format.RowBytes(width)
	if stride < minStride {
		return nil, ErrInvalidStride
	}

	requiredSize := stride * height
	if len(data) < requiredSize {
		return nil, ErrDataTooSmall
	}

	return &ImageBuf{
		data:   data[:requiredSize],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	newData := make([]byte, len(b.data))
	copy(newData, b.data)

	return &ImageBuf{
		data:   newData,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		format: b.format,
	}
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	end := start + b.format.RowBytes(b.width)
	return b.data[start:end]
}

// inBounds reports whether (x, y) addresses a pixel.
func (b *ImageBuf) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Pixel returns the raw value of pixel (x, y): 0 or 1 for binary images,
// 0-255 for grayscale and the packed 16-bit value for RGB565.
// Returns 0 if coordinates are out of bounds.
func (b *ImageBuf) Pixel(x, y int) uint16 {
	if !b.inBounds(x, y) {
		return 0
	}
	row := y * b.stride
	switch b.format {
	case FormatBinary:
		return uint16(b.data[row+x>>3]>>(uint(x)&7)) & 1
	case FormatGray8:
		return uint16(b.data[row+x])
	case FormatRGB565:
		i := row + x*2
		return uint16(b.data[i]) | uint16(b.data[i+1])<<8
	default:
		return 0
	}
}

// SetPixel sets the raw value of pixel (x, y). See Pixel for the value range
// of each format; binary images treat any non-zero value as set.
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetPixel(x, y int, v uint16) error {
	if !b.inBounds(x, y) {
		return ErrOutOfBounds
	}
	row := y * b.stride
	switch b.format {
	case FormatBinary:
		i := row + x>>3
		mask := byte(1) << (uint(x) & 7)
		if v != 0 {
			b.data[i] |= mask
		} else {
			b.data[i] &^= mask
		}
	case FormatGray8:
		//nolint:gosec // G115: grayscale values are 8-bit by contract
		b.data[row+x] = byte(v)
	case FormatRGB565:
		i := row + x*2
		b.data[i] = byte(v)
		b.data[i+1] = byte(v >> 8)
	}
	return nil
}

// GetRGBA returns the color at (x, y) as (r, g, b, a) in 0-255 range.
// For grayscale formats, r=g=b=gray. Alpha is always 255.
// Returns (0,0,0,0) if coordinates are out of bounds.
func (b *ImageBuf) GetRGBA(x, y int) (r, g, bl, a uint8) {
	if !b.inBounds(x, y) {
		return 0, 0, 0, 0
	}

	p := b.Pixel(x, y)
	switch b.format {
	case FormatBinary:
		if p != 0 {
			return 255, 255, 255, 255
		}
		return 0, 0, 0, 255
	case FormatGray8:
		//nolint:gosec // G115: grayscale pixels are 8-bit
		v := uint8(p)
		return v, v, v, 255
	case FormatRGB565:
		r, g, bl = color.UnpackRGB565(p)
		return r, g, bl, 255
	default:
		return 0, 0, 0, 0
	}
}

// SetRGBA sets the color at (x, y) from (r, g, b, a) in 0-255 range.
// Alpha is ignored. For grayscale formats, uses standard luminance weights;
// binary pixels are set when the luminance is at least 128.
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetRGBA(x, y int, r, g, bl, _ uint8) error {
	switch b.format {
	case FormatBinary:
		return b.SetPixel(x, y, boolPixel(color.Luminance(r, g, bl) >= 128))
	case FormatGray8:
		return b.SetPixel(x, y, uint16(color.Luminance(r, g, bl)))
	case FormatRGB565:
		return b.SetPixel(x, y, color.PackRGB565(r, g, bl))
	default:
		return ErrInvalidFormat
	}
}

func boolPixel(on bool) uint16 {
	if on {
		return 1
	}
	return 0
}

// Clear sets all pixels to zero.
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// Fill sets every pixel to the raw value v.
func (b *ImageBuf) Fill(v uint16) {
	for y := range b.height {
		for x := range b.width {
			_ = b.SetPixel(x, y, v)
		}
	}
}

// FillRect sets every pixel of the rectangle [x, x+w) × [y, y+h) that lies
// inside the image to the raw value v.
func (b *ImageBuf) FillRect(x, y, w, h int, v uint16) {
	for py := max(y, 0); py < min(y+h, b.height); py++ {
		for px := max(x, 0); px < min(x+w, b.width); px++ {
			_ = b.SetPixel(px, py, v)
		}
	}
}

// ByteSize returns the total size of the image data in bytes.
func (b *ImageBuf) ByteSize() int {
	return len(b.data)
}

// IsEmpty returns true if the image has zero dimensions.
func (b *ImageBuf) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}
