package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// LoadImage loads an image from the given file path and converts it to
// format. The file format is detected from content; PNG, JPEG, GIF, BMP,
// TIFF and WebP are supported. cutoff is the luminance at or above which a
// pixel is set when format is FormatBinary.
func LoadImage(path string, format Format, cutoff uint8) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, format, cutoff)
}

// LoadImageFromBytes decodes an image from a byte slice, auto-detecting the
// file format. See LoadImage for format and cutoff.
func LoadImageFromBytes(data []byte, format Format, cutoff uint8) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data), format, cutoff)
}

// Decode decodes an image from the given reader, auto-detecting the file
// format, and converts it to format.
func Decode(r io.Reader, format Format, cutoff uint8) (*ImageBuf, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("image: decode: %w", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img, format, cutoff), nil
}

// Save writes the image to path. The encoding is chosen from the file
// extension: .png, .jpg/.jpeg or .bmp.
func (b *ImageBuf) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	var enc func(io.Writer) error
	switch ext {
	case ".png":
		enc = b.EncodePNG
	case ".jpg", ".jpeg":
		enc = func(w io.Writer) error { return b.EncodeJPEG(w, 90) }
	case ".bmp":
		enc = b.EncodeBMP
	default:
		return fmt.Errorf("image: save %q: %w", ext, ErrUnsupportedFormat)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := enc(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes the image as JPEG to the given writer.
func (b *ImageBuf) EncodeJPEG(w io.Writer, quality int) error {
	quality = max(1, min(quality, 100))
	if err := jpeg.Encode(w, b.ToStdImage(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("image: encode JPEG: %w", err)
	}
	return nil
}

// EncodeBMP encodes the image as BMP to the given writer.
func (b *ImageBuf) EncodeBMP(w io.Writer) error {
	if err := bmp.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode BMP: %w", err)
	}
	return nil
}
