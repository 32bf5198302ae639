// Command findblobs runs blob detection over image files and prints the
// blobs it finds.
//
// Usage:
//
//	findblobs -format gray -t 200,255 -merge -margin 4 frame.png
//	findblobs -format rgb565 -t 30,100,15,127,15,127 -json -annotate out/ *.jpg
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/imlib"
)

func main() {
	var (
		format     = flag.String("format", "gray", "pixel format: binary, gray or rgb565")
		thresholds thresholdList
		roi        rectFlag
		xStride    = flag.Int("xstride", 1, "column step between seed pixels")
		yStride    = flag.Int("ystride", 1, "row step between seed pixels")
		invert     = flag.Bool("invert", false, "invert every threshold")
		area       = flag.Int("area", 0, "minimum bounding box area")
		pixels     = flag.Int("pixels", 0, "minimum pixel count")
		merge      = flag.Bool("merge", false, "merge overlapping blobs")
		margin     = flag.Int("margin", 0, "merge margin in pixels")
		stack      = flag.Int("stack", 0, "flood-fill stack limit (0 = memory budget)")
		memory     = flag.Int("mem", imlib.DefaultMemoryLimit, "scratch memory budget in bytes")
		cutoff     = flag.Uint("cutoff", imlib.DefaultBinaryCutoff, "luma cutoff for binary images")
		scale      = flag.Float64("scale", 1, "resample images by this factor before detection")
		asJSON     = flag.Bool("json", false, "print JSON instead of a table")
		annotate   = flag.String("annotate", "", "directory for annotated PNG copies")
		verbose    = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Var(&thresholds, "t", "threshold `min,max` or `lmin,lmax,amin,amax,bmin,bmax` (repeatable)")
	flag.Var(&roi, "roi", "region of interest `x,y,w,h`")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] image...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	imlib.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	f, ok := imlib.ParseFormat(*format)
	if !ok {
		log.Fatalf("unknown format %q", *format)
	}
	if *cutoff > 255 {
		log.Fatalf("cutoff %d out of range", *cutoff)
	}
	if len(thresholds) == 0 {
		thresholds = append(thresholds, defaultThreshold(f))
	}

	paths := flag.Args()
	images := make([]*imlib.Image, len(paths))
	for i, path := range paths {
		//nolint:gosec // G115: checked above
		img, err := load(path, f, uint8(*cutoff), *scale)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		images[i] = img
	}

	opts := []imlib.FindBlobsOption{
		imlib.WithStride(*xStride, *yStride),
		imlib.WithInvert(*invert),
		imlib.WithAreaThreshold(*area),
		imlib.WithPixelsThreshold(*pixels),
		imlib.WithStackLimit(*stack),
		imlib.WithMemoryLimit(*memory),
	}
	if roi.set {
		opts = append(opts, imlib.WithROI(roi.r))
	}
	if *merge {
		opts = append(opts, imlib.WithMerge(*margin))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := imlib.FindBlobsBatch(ctx, images, thresholds, opts...)
	if err != nil {
		log.Fatalf("find blobs: %v", err)
	}

	reports := make([]report, len(paths))
	for i, path := range paths {
		reports[i] = newReport(path, images[i], results[i])
	}
	if *asJSON {
		err = writeJSON(os.Stdout, reports)
	} else {
		err = writeTable(os.Stdout, reports)
	}
	if err != nil {
		log.Fatalf("write report: %v", err)
	}

	if *annotate != "" {
		for i, path := range paths {
			if err := saveAnnotated(*annotate, path, images[i], results[i]); err != nil {
				log.Fatalf("%s: %v", path, err)
			}
		}
	}
}

// load decodes path into format, resampling when scale != 1.
func load(path string, format imlib.Format, cutoff uint8, scale float64) (*imlib.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale %v must be positive", scale)
	}

	fh, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	if scale == 1 {
		return imlib.DecodeImage(fh, format, cutoff)
	}

	src, err := imlib.DecodeImage(fh, imlib.FormatRGB565, cutoff)
	if err != nil {
		return nil, err
	}
	w := max(int(float64(src.Width())*scale), 1)
	h := max(int(float64(src.Height())*scale), 1)
	return imlib.FromStdImage(imlib.Resize(src.ToStdImage(), w, h), format, cutoff), nil
}

// defaultThreshold picks a threshold that finds bright regions.
func defaultThreshold(f imlib.Format) imlib.Threshold {
	switch f {
	case imlib.FormatRGB565:
		return imlib.LABThreshold(50, 100, -128, 127, -128, 127)
	case imlib.FormatBinary:
		return imlib.BinaryThreshold()
	default:
		return imlib.GrayThreshold(128, 255)
	}
}

func saveAnnotated(dir, path string, img *imlib.Image, blobs []imlib.Blob) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out, err := os.Create(filepath.Join(dir, base+"_blobs.png"))
	if err != nil {
		return err
	}
	if err := png.Encode(out, imlib.Annotate(img, blobs)); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
