package cli

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lennoxho/img-sort/pkg/pipeline"
)

// orderManifest is the JSON shape emitted by "order --json".
type orderManifest struct {
	Source  string          `json:"source"`
	Metric  string          `json:"metric"`
	Items   []manifestEntry `json:"items"`
	Skipped []string        `json:"skipped,omitempty"`
}

type manifestEntry struct {
	Position int    `json:"position"`
	Path     string `json:"path"`
}

// orderCommand creates the order command: compute and display the similarity
// order without touching the filesystem.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		configPath  string
		noCache     bool
		asJSON      bool
		interactive bool
		output      string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "order SOURCE",
		Short: "Print the similarity order without writing any files",
		Long: `Compute the similarity order of the images in SOURCE and print it, one
path per line in final order. Use --json for a manifest suitable for
scripting, or --interactive to browse the result in the terminal.

Examples:
  imgsort order ./photos
  imgsort order --json -o manifest.json ./photos
  imgsort order -i ./photos`,
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

			spinner := newSpinner(ctx, "computing similarity order...")
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			if interactive {
				model := newOrderListModel(result.OrderedFiles())
				_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
				return err
			}

			if asJSON {
				return writeManifest(result, &opts, output)
			}
			return writeLines(result.OrderedFiles(), output)
		},
	}

	addPipelineFlags(cmd, &opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit a JSON manifest instead of plain paths")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the order in the terminal")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/imgsort/imgsort.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the descriptor cache")

	return cmd
}

func writeManifest(result *pipeline.Result, opts *pipeline.Options, output string) error {
	manifest := orderManifest{
		Source:  opts.Source,
		Metric:  opts.Metric,
		Skipped: result.Skipped,
	}
	for pos, path := range result.OrderedFiles() {
		manifest.Items = append(manifest.Items, manifestEntry{Position: pos, Path: path})
	}

	w, closeFn, err := outputWriter(output)
	if err != nil {
		return err
	}
	defer closeFn()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(manifest)
}

func writeLines(paths []string, output string) error {
	w, closeFn, err := outputWriter(output)
	if err != nil {
		return err
	}
	defer closeFn()

	for _, path := range paths {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}
	return nil
}

// outputWriter opens output for writing, or stdout when output is empty.
func outputWriter(output string) (*os.File, func(), error) {
	if output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", output, err)
	}
	return f, func() { _ = f.Close() }, nil
}
