package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moltext/moltext/pkg/pipeline"
)

// vizOpts holds the command-line flags for the viz command.
type vizOpts struct {
	output   string  // output file (single format) or base path (multiple)
	detailed bool    // show bond order labels on edges
	scale    float64 // raster scale factor for PNG output
	noCache  bool    // disable the artifact cache
	refresh  bool    // recompute even when cached artifacts exist
}

// vizCommand creates the viz command for rendering bond graph diagrams.
//
// It supports DOT, SVG, PNG, and PDF output. PNG and PDF conversion
// require rsvg-convert to be installed.
func (c *CLI) vizCommand() *cobra.Command {
	var formatsStr string
	opts := vizOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "viz [file]",
		Short: "Render a molecule document as a bond graph diagram",
		Long: `Render a molecule structure document as a bond graph diagram.

Examples:
  moltext viz caffeine.json                      # caffeine.svg
  moltext viz caffeine.json -f png -o out.png
  moltext viz caffeine.json -f svg,png,pdf       # one file per format`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runViz(cmd.Context(), args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with bond order")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached artifacts")

	return cmd
}

// runViz renders the requested artifact formats and writes one file per format.
func (c *CLI) runViz(ctx context.Context, input string, formats []string, opts *vizOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spin := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input))
	spin.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:    input,
		Formats:  formats,
		Detailed: opts.detailed,
		Scale:    opts.scale,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", result.Name))

	printSuccess("Rendered %s", result.Name)

	base := vizBasePath(opts.output, input)
	for _, format := range formats {
		path := opts.output
		if path == "" || len(formats) > 1 {
			path = base + "." + format
		}
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(result.Stats.ComponentCount, len(result.Notation), result.CacheInfo.RenderHit)
	return nil
}

// vizBasePath derives the base output path from the output and input paths.
// If output is empty, the input file's extension is stripped. If output
// carries a known format extension, that extension is stripped so each
// requested format gets its own file.
func vizBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
