package main

import (
	"encoding/json"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/imlib"
)

// report is the output for one image.
type report struct {
	Path   string       `json:"path"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Format string       `json:"format"`
	Blobs  []blobReport `json:"blobs"`
}

type blobReport struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	W          int     `json:"w"`
	H          int     `json:"h"`
	Pixels     int     `json:"pixels"`
	CX         float64 `json:"cx"`
	CY         float64 `json:"cy"`
	Rotation   float64 `json:"rotation"`
	Code       uint64  `json:"code"`
	Count      int     `json:"count"`
	Density    float64 `json:"density"`
	Elongation float64 `json:"elongation"`
}

func newReport(path string, img *imlib.Image, blobs []imlib.Blob) report {
	r := report{
		Path:   path,
		Width:  img.Width(),
		Height: img.Height(),
		Format: img.Format().String(),
		Blobs:  make([]blobReport, len(blobs)),
	}
	for i, b := range blobs {
		r.Blobs[i] = blobReport{
			X:          b.Rect.X,
			Y:          b.Rect.Y,
			W:          b.Rect.W,
			H:          b.Rect.H,
			Pixels:     b.Pixels,
			CX:         b.CX,
			CY:         b.CY,
			Rotation:   b.Rotation,
			Code:       b.Code,
			Count:      b.Count,
			Density:    b.Density(),
			Elongation: b.Elongation(),
		}
	}
	return r
}

func writeJSON(w io.Writer, reports []report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// writeTable prints one line per blob with grouped pixel counts.
func writeTable(w io.Writer, reports []report) error {
	p := message.NewPrinter(language.English)
	for _, r := range reports {
		if _, err := p.Fprintf(w, "%s (%dx%d %s): %d blobs\n",
			r.Path, r.Width, r.Height, r.Format, len(r.Blobs)); err != nil {
			return err
		}
		for i, b := range r.Blobs {
			_, err := p.Fprintf(w, "  #%-3d rect=(%d,%d %dx%d) pixels=%d centroid=(%.1f,%.1f) rotation=%.3f code=%#x count=%d\n",
				i, b.X, b.Y, b.W, b.H, b.Pixels, b.CX, b.CY, b.Rotation, b.Code, b.Count)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
