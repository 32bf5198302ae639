package image

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/imlib/internal/color"
)

// FromStdImage converts a standard library image.Image to an ImageBuf in
// the given format. Grayscale uses Rec. 601 luma; a binary pixel is set when
// its luma is at least cutoff. Alpha is ignored.
func FromStdImage(img image.Image, format Format, cutoff uint8) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf, err := NewImageBuf(width, height, format)
	if err != nil {
		return nil
	}

	// Fast path for gray sources going to gray or binary.
	if gray, ok := img.(*image.Gray); ok && format != FormatRGB565 {
		for y := range height {
			src := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			buf.setGrayRow(y, src, cutoff)
		}
		return buf
	}

	nrgba := toNRGBA(img)
	row := make([]byte, width)
	for y := range height {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		if format == FormatRGB565 {
			for x := range width {
				p := color.PackRGB565(src[x*4], src[x*4+1], src[x*4+2])
				_ = buf.SetPixel(x, y, p)
			}
			continue
		}
		for x := range width {
			row[x] = color.Luminance(src[x*4], src[x*4+1], src[x*4+2])
		}
		buf.setGrayRow(y, row, cutoff)
	}
	return buf
}

// setGrayRow stores one row of 8-bit luma values. Binary images threshold
// them against cutoff.
func (b *ImageBuf) setGrayRow(y int, src []byte, cutoff uint8) {
	switch b.format {
	case FormatGray8:
		copy(b.RowBytes(y), src)
	case FormatBinary:
		dst := b.RowBytes(y)
		clear(dst)
		for x, v := range src {
			if v >= cutoff {
				dst[x>>3] |= 1 << (uint(x) & 7)
			}
		}
	}
}

// toNRGBA returns img as a zero-origin *image.NRGBA, converting if needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Scale returns a copy of img resampled to width × height with bilinear
// filtering.
func Scale(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// ToStdImage converts the ImageBuf to a standard library image.Image.
// Returns *image.Gray for binary and grayscale images and *image.NRGBA
// for RGB565.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray

	case FormatBinary:
		gray := image.NewGray(rect)
		for y := range b.height {
			dst := gray.Pix[y*gray.Stride:]
			for x := range b.width {
				if b.Pixel(x, y) != 0 {
					dst[x] = 255
				}
			}
		}
		return gray

	default:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			for x := range b.width {
				r, g, bl, a := b.GetRGBA(x, y)
				off := y*nrgba.Stride + x*4
				nrgba.Pix[off] = r
				nrgba.Pix[off+1] = g
				nrgba.Pix[off+2] = bl
				nrgba.Pix[off+3] = a
			}
		}
		return nrgba
	}
}
