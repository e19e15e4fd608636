package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lennoxho/img-sort/pkg/pipeline"
)

// sortCommand creates the sort command: the full scan → order → materialize
// pipeline.
func (c *CLI) sortCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
		showStats  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "sort SOURCE OUTPUT",
		Short: "Order images by similarity into an output directory",
		Long: `Order the images in SOURCE by visual similarity and populate OUTPUT with
one link per image, named with a zero-padded position prefix so any
name-sorted view (file manager, slideshow, ls) shows the similarity order.

The source files are never modified. By default OUTPUT receives hard links;
use --link symlink or --link copy when the output lives on another filesystem.

Examples:
  imgsort sort ./photos ./photos-sorted
  imgsort sort --metric intersection --link copy ./scans /mnt/nas/scans-sorted`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source, opts.Output = args[0], args[1]

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := applyConfig(cmd, cfg, &opts); err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			runner, err := c.newRunner(ctx, noCache, cfg)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			opts.Logger = logger

			result, err := runner.Execute(ctx, opts)
			if errors.Is(err, pipeline.ErrNoImages) {
				printInfo("%s contains no images. Nothing to do", opts.Source)
				return nil
			}
			if err != nil {
				return err
			}

			printSuccess("Sorted %d images", result.Stats.Written)
			printDetail("Output: %s (%s links)", opts.Output, opts.LinkMode)
			if len(result.Skipped) > 0 {
				printWarning("Skipped %d unreadable images", len(result.Skipped))
			}
			if showStats {
				printStatsTable(result)
			}
			return nil
		},
	}

	addPipelineFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.LinkMode, "link", pipeline.LinkHard, "output mode: hard, symlink, copy")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print per-stage statistics")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/imgsort/imgsort.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the descriptor cache")

	return cmd
}

// addPipelineFlags registers the flags shared by sort, order, and graph.
func addPipelineFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Metric, "metric", "m", "", "distance metric: bhattacharyya (default), intersection, correlation")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "worker count for extraction and distances (default: CPUs)")
	cmd.Flags().IntVar(&opts.Bins, "bins", 0, "histogram buckets per color channel")
	cmd.Flags().IntVar(&opts.Resize, "resize", 0, "working image size in pixels")
	cmd.Flags().StringSliceVar(&opts.Extensions, "ext", nil, "image extensions to include")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute descriptors, bypassing the cache")
}

// printStatsTable renders the per-stage statistics of a finished run.
func printStatsTable(result *pipeline.Result) {
	s := result.Stats
	rows := [][]string{
		{"scan", fmt.Sprintf("%d found", s.Found), fmtDuration(s.ScanTime)},
		{"extract", fmt.Sprintf("%d descriptors, %d cached", s.Items, result.CacheInfo.Hits), fmtDuration(s.ExtractTime)},
		{"distances", fmt.Sprintf("%d pairs", s.Pairs), fmtDuration(s.DistanceTime)},
		{"tree", fmt.Sprintf("%d edges", treeStatEdges(result)), fmtDuration(s.BuildTime)},
		{"traverse", fmt.Sprintf("%d items", len(result.Order)), fmtDuration(s.TraverseTime)},
		{"materialize", fmt.Sprintf("%d written", s.Written), fmtDuration(s.MaterializeTime)},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHighlight.PaddingLeft(1).PaddingRight(1)
			}
			return styleValue.PaddingLeft(1).PaddingRight(1)
		}).
		Rows(rows...)

	fmt.Println(t)
}

func fmtDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func treeStatEdges(result *pipeline.Result) int {
	if result.Tree == nil {
		return 0
	}
	return result.Tree.Edges()
}
