// Package pipeline orchestrates a complete imgsort run.
//
// A run has five stages:
//
//  1. Scan: enumerate candidate images in the source directory
//  2. Extract: compute (or fetch from cache) a descriptor per image
//  3. Distances: fill the pairwise distance table
//  4. Order: build the spanning tree and linearize it
//  5. Materialize: write numbered links into the output directory
//
// Extraction and the distance fill fan out across workers; the tree build and
// traversal are inherently sequential. The distance table is released as soon
// as the tree exists, before traversal, to bound peak memory on large batches.
//
// Both the CLI and an embedding application drive runs through a Runner, which
// centralizes caching and logging:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source: "./photos",
//	    Output: "./sorted",
//	})
package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lennoxho/img-sort/pkg/feature"
	"github.com/lennoxho/img-sort/pkg/mst"
)

// Link modes for the materialize stage.
const (
	LinkHard    = "hard"
	LinkSymlink = "symlink"
	LinkCopy    = "copy"
)

// ValidLinkModes is the set of supported link modes.
var ValidLinkModes = map[string]bool{
	LinkHard:    true,
	LinkSymlink: true,
	LinkCopy:    true,
}

// DefaultExtensions are the file extensions treated as images.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".jfif"}

// DefaultCacheTTL is how long cached descriptors stay valid. Descriptor keys
// already include the file's size and mtime, so the TTL only bounds growth of
// the cache itself.
const DefaultCacheTTL = 30 * 24 * time.Hour

var (
	// ErrNoImages is returned when the source directory contains no files
	// with a recognized image extension.
	ErrNoImages = errors.New("no images found")

	// ErrNoDescriptors is returned when every image in the batch failed
	// extraction.
	ErrNoDescriptors = errors.New("no descriptors could be extracted")
)

// Options configures a pipeline run.
type Options struct {
	// Source is the directory to scan for images. Required.
	Source string `json:"source"`

	// Output is the directory to materialize the ordered links into.
	// Empty means skip materialization (order-only run).
	Output string `json:"output,omitempty"`

	// Metric selects the descriptor comparison; see feature.MetricNames.
	Metric string `json:"metric,omitempty"`

	// Bins and Resize configure the histogram extractor.
	Bins   int `json:"bins,omitempty"`
	Resize int `json:"resize,omitempty"`

	// Workers bounds the extraction and distance fan-out. Defaults to the
	// number of CPUs.
	Workers int `json:"workers,omitempty"`

	// Extensions overrides the recognized image extensions (with dot,
	// case-insensitive).
	Extensions []string `json:"extensions,omitempty"`

	// LinkMode selects how outputs are materialized: hard, symlink, or copy.
	LinkMode string `json:"link_mode,omitempty"`

	// Refresh bypasses the descriptor cache for reads (results are still
	// written back).
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL bounds descriptor cache entry lifetime.
	CacheTTL time.Duration `json:"cache_ttl,omitempty"`

	// Runtime options (not serialized).
	Logger    *log.Logger       `json:"-"`
	Extractor feature.Extractor `json:"-"`

	// metric is resolved during validation.
	metric    feature.Metric
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It must be called (directly or via Runner.Execute) before a run.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" {
		return fmt.Errorf("source directory is required")
	}
	if o.Metric == "" {
		o.Metric = feature.DefaultMetric
	}
	m, err := feature.Lookup(o.Metric)
	if err != nil {
		return err
	}
	o.metric = m

	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	for i, ext := range o.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.Extensions[i] = ext
	}
	if o.LinkMode == "" {
		o.LinkMode = LinkHard
	}
	if !ValidLinkModes[o.LinkMode] {
		return fmt.Errorf("invalid link mode %q (must be one of: hard, symlink, copy)", o.LinkMode)
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Extractor == nil {
		o.Extractor = feature.NewHistogramExtractor(o.Bins, o.Resize)
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Files are the images that survived extraction, in scan order. The
	// indices in Order refer to this slice.
	Files []string

	// Skipped are the images dropped because extraction failed.
	Skipped []string

	// Order is the similarity ordering: a permutation of [0, len(Files)).
	Order []int

	// Tree is the spanning tree the order was derived from. Nil when the
	// batch had fewer than two survivors.
	Tree *mst.Tree

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks descriptor cache effectiveness.
	CacheInfo CacheInfo
}

// OrderedFiles returns Files permuted into the final order.
func (r *Result) OrderedFiles() []string {
	out := make([]string, len(r.Order))
	for i, idx := range r.Order {
		out[i] = r.Files[idx]
	}
	return out
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Found   int // images discovered by the scan
	Items   int // images with a descriptor (the n the tree is built over)
	Pairs   int // distance cells computed, n·(n−1)/2
	Written int // links/copies materialized

	ScanTime        time.Duration
	ExtractTime     time.Duration
	DistanceTime    time.Duration
	BuildTime       time.Duration
	TraverseTime    time.Duration
	MaterializeTime time.Duration
}

// CacheInfo tracks descriptor cache hits and misses for a run.
type CacheInfo struct {
	Hits   int
	Misses int
}
