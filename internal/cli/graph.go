package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/lennoxho/img-sort/pkg/mst"
	"github.com/lennoxho/img-sort/pkg/pipeline"
)

// graphCommand creates the graph command: render the similarity spanning tree
// itself, which is useful for understanding (and debugging) why a particular
// order came out.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "graph SOURCE",
		Short: "Render the similarity spanning tree as DOT, SVG, or PNG",
		Long: `Compute the similarity spanning tree for the images in SOURCE and render
it. The output format follows the --output extension: .dot writes Graphviz
DOT text, .svg and .png render via Graphviz. Without --output the DOT text
goes to stdout.

Examples:
  imgsort graph ./photos                 # DOT on stdout
  imgsort graph -o tree.svg ./photos`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := applyConfig(cmd, cfg, &opts); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache, cfg)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()
			opts.Logger = loggerFromContext(ctx)

			spinner := newSpinner(ctx, "building similarity tree...")
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			spinner.Stop()
			if err != nil {
				return err
			}
			if result.Tree == nil {
				return fmt.Errorf("need at least 2 usable images to build a tree (got %d)", result.Stats.Items)
			}

			labels := make([]string, len(result.Files))
			for i, path := range result.Files {
				labels[i] = filepath.Base(path)
			}
			dot := mst.ToDOT(result.Tree, labels)

			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			switch format {
			case "", "dot":
				if output == "" {
					fmt.Print(dot)
					return nil
				}
				if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
					return err
				}
			case "svg", "png":
				data, err := renderDOT(cmd, dot, format)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported output format %q (use .dot, .svg, or .png)", format)
			}

			printSuccess("Wrote similarity tree")
			printFile(output)
			return nil
		},
	}

	addPipelineFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; format follows the extension")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/imgsort/imgsort.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the descriptor cache")

	return cmd
}

// renderDOT rasterizes a DOT graph with Graphviz.
func renderDOT(cmd *cobra.Command, dot, format string) ([]byte, error) {
	ctx := cmd.Context()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	gvFormat := graphviz.SVG
	if format == "png" {
		gvFormat = graphviz.PNG
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
