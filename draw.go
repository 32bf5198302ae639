package imlib

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// blobPalette colors blobs by their lowest contributing threshold.
var blobPalette = []color.RGBA{
	{R: 255, G: 64, B: 64, A: 255},
	{R: 64, G: 220, B: 64, A: 255},
	{R: 64, G: 128, B: 255, A: 255},
	{R: 255, G: 200, B: 0, A: 255},
	{R: 255, G: 64, B: 255, A: 255},
	{R: 0, G: 220, B: 220, A: 255},
}

// BlobColor returns the annotation color of b.
func BlobColor(b Blob) color.RGBA {
	codes := b.Codes()
	if len(codes) == 0 {
		return blobPalette[0]
	}
	return blobPalette[codes[0]%len(blobPalette)]
}

// DrawBlobs outlines the bounding box of each blob on dst and marks its
// centroid with a small cross.
func DrawBlobs(dst draw.Image, blobs []Blob) {
	for _, b := range blobs {
		src := image.NewUniform(BlobColor(b))
		r := b.Rect.ToImageRect()

		// Outline, one pixel wide.
		drawRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src)
		drawRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src)
		drawRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src)
		drawRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src)

		cx, cy := b.Centroid()
		const arm = 2
		drawRect(dst, image.Rect(cx-arm, cy, cx+arm+1, cy+1), src)
		drawRect(dst, image.Rect(cx, cy-arm, cx+1, cy+arm+1), src)
	}
}

func drawRect(dst draw.Image, r image.Rectangle, src image.Image) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, src, image.Point{}, draw.Over)
}

// Annotate returns an RGBA copy of img with blobs drawn on top.
func Annotate(img *Image, blobs []Blob) *image.RGBA {
	src := img.ToStdImage()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	DrawBlobs(dst, blobs)
	return dst
}
