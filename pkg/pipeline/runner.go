package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lennoxho/img-sort/pkg/cache"
	"github.com/lennoxho/img-sort/pkg/feature"
	"github.com/lennoxho/img-sort/pkg/mst"
	"github.com/lennoxho/img-sort/pkg/observability"
	"github.com/lennoxho/img-sort/pkg/pairwise"
)

// Runner executes ordering runs with caching. It is stateless apart from the
// cache and logger, so one Runner can serve concurrent runs with different
// options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache), a nil
// keyer selects the default keyer, and a nil logger falls back to log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete scan → extract → distances → order → materialize
// pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, fmt.Errorf("invalid options: %w", err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{}

	// Stage 1: Scan
	scanStart := time.Now()
	items, err := scanImages(opts.Source, opts.Extensions)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	result.Stats.Found = len(items)
	result.Stats.ScanTime = time.Since(scanStart)
	observability.Pipeline().OnScanComplete(ctx, opts.Source, len(items), result.Stats.ScanTime)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, opts.Source)
	}
	logger.Info("scanned source", "dir", opts.Source, "images", len(items), "duration", result.Stats.ScanTime)

	// Stage 2: Extract
	extractStart := time.Now()
	descriptors, err := r.extract(ctx, items, &opts, result, logger)
	result.Stats.ExtractTime = time.Since(extractStart)
	observability.Pipeline().OnExtractComplete(ctx, len(result.Files), len(result.Skipped), result.Stats.ExtractTime, err)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	n := len(descriptors)
	result.Stats.Items = n
	logger.Info("extracted descriptors",
		"items", n,
		"skipped", len(result.Skipped),
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.ExtractTime)

	switch n {
	case 0:
		return nil, ErrNoDescriptors
	case 1:
		// A single survivor needs no tree; the order is trivially itself.
		result.Order = []int{0}
	default:
		// Stage 3: Distances
		distStart := time.Now()
		table, err := r.distances(ctx, descriptors, &opts)
		result.Stats.Pairs = n * (n - 1) / 2
		result.Stats.DistanceTime = time.Since(distStart)
		observability.Pipeline().OnDistancesComplete(ctx, result.Stats.Pairs, result.Stats.DistanceTime, err)
		if err != nil {
			return nil, fmt.Errorf("distances: %w", err)
		}
		descriptors = nil
		logger.Info("computed distances", "pairs", result.Stats.Pairs, "duration", result.Stats.DistanceTime)

		// Stage 4: Order
		buildStart := time.Now()
		tree, err := mst.Build(n, table)
		result.Stats.BuildTime = time.Since(buildStart)
		observability.Pipeline().OnTreeBuilt(ctx, n, treeEdges(tree), result.Stats.BuildTime, err)
		if err != nil {
			return nil, fmt.Errorf("build tree: %w", err)
		}
		result.Tree = tree

		// The table dominates peak memory; drop it before traversal.
		table.Release()

		traverseStart := time.Now()
		order, err := mst.Preorder(tree)
		result.Stats.TraverseTime = time.Since(traverseStart)
		if err != nil {
			return nil, fmt.Errorf("traverse: %w", err)
		}
		result.Order = order
		logger.Info("computed order",
			"edges", tree.Edges(),
			"build", result.Stats.BuildTime,
			"traverse", result.Stats.TraverseTime)
	}

	// Stage 5: Materialize
	if opts.Output != "" {
		matStart := time.Now()
		written, err := materialize(ctx, result.Files, result.Order, opts.Output, opts.LinkMode)
		result.Stats.Written = written
		result.Stats.MaterializeTime = time.Since(matStart)
		observability.Pipeline().OnMaterializeComplete(ctx, opts.Output, written, result.Stats.MaterializeTime, err)
		if err != nil {
			return nil, fmt.Errorf("materialize: %w", err)
		}
		logger.Info("materialized output",
			"dir", opts.Output,
			"written", written,
			"mode", opts.LinkMode,
			"duration", result.Stats.MaterializeTime)
	}

	return result, nil
}

// extract computes one descriptor per scanned item, in parallel, consulting
// the descriptor cache first. Items whose extraction fails are logged and
// dropped; the survivors (result.Files) keep their scan order.
func (r *Runner) extract(ctx context.Context, items []item, opts *Options, result *Result, logger *log.Logger) ([]feature.Descriptor, error) {
	observability.Pipeline().OnExtractStart(ctx, len(items))

	descriptors := make([]feature.Descriptor, len(items))
	var hits, misses atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range items {
		g.Go(func() error {
			desc, hit, err := r.descriptor(gctx, items[i], opts)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn("skipping image", "path", items[i].path, "err", err)
				return nil
			}
			if hit {
				hits.Add(1)
			} else {
				misses.Add(1)
			}
			descriptors[i] = desc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.CacheInfo.Hits = int(hits.Load())
	result.CacheInfo.Misses = int(misses.Load())

	// Compact, preserving scan order.
	kept := descriptors[:0]
	for i, desc := range descriptors {
		if desc == nil {
			result.Skipped = append(result.Skipped, items[i].path)
			continue
		}
		result.Files = append(result.Files, items[i].path)
		kept = append(kept, desc)
	}
	return kept, nil
}

// descriptor returns the descriptor for one item, via cache when possible.
// The second result reports whether it was a cache hit.
func (r *Runner) descriptor(ctx context.Context, it item, opts *Options) (feature.Descriptor, bool, error) {
	key := r.Keyer.DescriptorKey(it.path, it.size, it.modTime, opts.Extractor.Signature())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var desc feature.Descriptor
			if err := json.Unmarshal(data, &desc); err == nil {
				observability.Cache().OnCacheHit(ctx)
				return desc, true, nil
			}
			// Undecodable entry: fall through to recompute and overwrite.
		}
		observability.Cache().OnCacheMiss(ctx)
	}

	desc, err := opts.Extractor.Extract(ctx, it.path)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(desc); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, len(data))
		}
	}
	return desc, false, nil
}

// distances fills the pairwise table. Workers split the table by destination
// index, so every cell has exactly one writer and no locking is needed.
func (r *Runner) distances(ctx context.Context, descriptors []feature.Descriptor, opts *Options) (*pairwise.Table, error) {
	n := len(descriptors)
	observability.Pipeline().OnDistancesStart(ctx, n, n*(n-1)/2)

	table, err := pairwise.New(n, 0)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for y := 1; y < n; y++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for x := 0; x < y; x++ {
				d := opts.metric.Distance(descriptors[x], descriptors[y])
				if err := table.Set(x, y, d); err != nil {
					return fmt.Errorf("pair (%d,%d): %w", x, y, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}

func treeEdges(t *mst.Tree) int {
	if t == nil {
		return 0
	}
	return t.Edges()
}
