package imlib

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs did not return a nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup did not return a nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	img := newGrayImage(t, []string{
		"#.",
		"..",
	})
	if _, err := FindBlobs(img, []Threshold{GrayThreshold(200, 255)}); err != nil {
		t.Fatalf("FindBlobs: %v", err)
	}
	if !strings.Contains(buf.String(), "imlib:") {
		t.Errorf("expected debug output from FindBlobs, got %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			} else {
				_ = Logger()
			}
		}()
	}
	wg.Wait()
}

func TestDebugLogFields(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// Bounds no other test uses, so the table is built here.
	rgb565Table(LABThreshold(3, 97, -61, 59, -41, 43), true)
	for _, field := range []string{"cached=", "hits=", "misses="} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("match table log missing %q: %q", field, buf.String())
		}
	}

	buf.Reset()
	images := []*Image{eightByEight(t), twoBlocks(t)}
	if _, err := FindBlobsBatch(context.Background(), images, []Threshold{BinaryThreshold()}); err != nil {
		t.Fatalf("FindBlobsBatch: %v", err)
	}
	if !strings.Contains(buf.String(), "completed=") {
		t.Errorf("batch log missing completed count: %q", buf.String())
	}
}
