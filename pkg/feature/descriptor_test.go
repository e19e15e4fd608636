package feature

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeTestImage encodes a solid-colored PNG into dir and returns its path.
func writeTestImage(t *testing.T, dir, name string, c color.RGBA, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestHistogramNormalized(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}

	e := NewHistogramExtractor(4, 0)
	hist, err := e.histogram(img)
	if err != nil {
		t.Fatalf("histogram error: %v", err)
	}
	if len(hist) != 4*4*4 {
		t.Fatalf("descriptor length = %d, want %d", len(hist), 4*4*4)
	}

	var sum float64
	for _, v := range hist {
		if v < 0 {
			t.Fatalf("negative bin value %v", v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("descriptor mass = %v, want 1", sum)
	}
}

func TestHistogramSolidColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	e := NewHistogramExtractor(2, 0)
	hist, err := e.histogram(img)
	if err != nil {
		t.Fatalf("histogram error: %v", err)
	}

	// Every pixel is pure red, so exactly one bin holds all the mass.
	nonZero := 0
	for _, v := range hist {
		if v != 0 {
			nonZero++
			if v != 1 {
				t.Errorf("bin value = %v, want 1", v)
			}
		}
	}
	if nonZero != 1 {
		t.Errorf("%d non-zero bins, want 1", nonZero)
	}
}

func TestHistogramEmptyImage(t *testing.T) {
	e := NewHistogramExtractor(4, 0)
	if _, err := e.histogram(image.NewRGBA(image.Rect(0, 0, 0, 0))); err != ErrEmptyImage {
		t.Errorf("histogram of empty image error = %v, want ErrEmptyImage", err)
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	red := writeTestImage(t, dir, "red.png", color.RGBA{R: 255, A: 255}, 16, 16)
	blue := writeTestImage(t, dir, "blue.png", color.RGBA{B: 255, A: 255}, 32, 8)

	e := NewHistogramExtractor(8, 64)
	ctx := context.Background()

	dRed, err := e.Extract(ctx, red)
	if err != nil {
		t.Fatalf("Extract(red) error: %v", err)
	}
	dBlue, err := e.Extract(ctx, blue)
	if err != nil {
		t.Fatalf("Extract(blue) error: %v", err)
	}

	// Solid red and solid blue land in different bins, so every metric must
	// separate them.
	if d := Bhattacharyya(dRed, dBlue); d < 0.5 {
		t.Errorf("Bhattacharyya(red, blue) = %v, want close to 1", d)
	}
	// Two extractions of the same file are identical.
	dRed2, err := e.Extract(ctx, red)
	if err != nil {
		t.Fatalf("Extract(red) error: %v", err)
	}
	if d := Bhattacharyya(dRed, dRed2); d > 1e-9 {
		t.Errorf("repeated extraction diverged: %v", d)
	}
}

func TestExtractMissingFile(t *testing.T) {
	e := NewHistogramExtractor(0, 0)
	if _, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Extract of a missing file should fail")
	}
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewHistogramExtractor(0, 0)
	if _, err := e.Extract(ctx, "whatever.png"); err != context.Canceled {
		t.Errorf("Extract with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestSignature(t *testing.T) {
	a := NewHistogramExtractor(16, 256)
	b := NewHistogramExtractor(8, 256)
	c := NewHistogramExtractor(16, 128)
	if a.Signature() == b.Signature() || a.Signature() == c.Signature() {
		t.Error("different configurations must have different signatures")
	}
	if a.Signature() != NewHistogramExtractor(16, 256).Signature() {
		t.Error("same configuration must have the same signature")
	}
	if a.Bins() != 16 {
		t.Errorf("Bins() = %d, want 16", a.Bins())
	}

	// Non-positive arguments fall back to the defaults.
	d := NewHistogramExtractor(0, -1)
	if d.Bins() != DefaultBins {
		t.Errorf("Bins() = %d, want %d", d.Bins(), DefaultBins)
	}
}
