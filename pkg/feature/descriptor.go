package feature

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultBins is the number of buckets per color channel.
const DefaultBins = 16

// DefaultResize is the edge length images are downscaled to before binning.
// Histograms are resolution-agnostic, so a small working size keeps extraction
// cheap without changing the result much.
const DefaultResize = 256

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Descriptor is a flattened, L1-normalized RGB histogram with bins³ entries.
// Its values sum to 1 for any non-empty image, so descriptors from images of
// different sizes are directly comparable.
type Descriptor []float64

// Extractor produces a descriptor for the item at path. Implementations may
// fail per item (unreadable file, unsupported format); the caller is expected
// to drop the item from the batch rather than abort.
type Extractor interface {
	Extract(ctx context.Context, path string) (Descriptor, error)

	// Signature identifies the extractor's configuration. Descriptors cached
	// under one signature must not be reused under another.
	Signature() string
}

// HistogramExtractor extracts a color histogram from an image file.
// The zero value is not usable; use NewHistogramExtractor.
type HistogramExtractor struct {
	bins   int
	resize int
}

// NewHistogramExtractor creates an extractor with bins buckets per channel and
// a working size of resize pixels on the longer edge. Non-positive arguments
// fall back to the defaults.
func NewHistogramExtractor(bins, resize int) *HistogramExtractor {
	if bins <= 0 {
		bins = DefaultBins
	}
	if resize <= 0 {
		resize = DefaultResize
	}
	return &HistogramExtractor{bins: bins, resize: resize}
}

// Bins returns the number of buckets per channel.
func (e *HistogramExtractor) Bins() int { return e.bins }

// Signature implements Extractor.
func (e *HistogramExtractor) Signature() string {
	return fmt.Sprintf("hist:bins=%d:resize=%d", e.bins, e.resize)
}

// Extract loads the image at path, downscales it, and bins every pixel's RGB
// triple into a bins³ histogram normalized to unit mass.
func (e *HistogramExtractor) Extract(ctx context.Context, path string) (Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	img = imaging.Fit(img, e.resize, e.resize, imaging.Box)

	return e.histogram(img)
}

func (e *HistogramExtractor) histogram(img image.Image) (Descriptor, error) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return nil, ErrEmptyImage
	}

	hist := make(Descriptor, e.bins*e.bins*e.bins)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels; bucket on the top bits.
			ri := int(r) * e.bins >> 16
			gi := int(g) * e.bins >> 16
			bi := int(b) * e.bins >> 16
			hist[(ri*e.bins+gi)*e.bins+bi]++
		}
	}

	inv := 1 / float64(total)
	for i := range hist {
		hist[i] *= inv
	}
	return hist, nil
}
