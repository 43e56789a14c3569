package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moltext/moltext/pkg/pipeline"
)

// encodeOpts holds the command-line flags for the encode command.
type encodeOpts struct {
	output  string // output file path (stdout if empty)
	name    string // override molecule name from the document
	noCache bool   // disable the notation cache
	refresh bool   // recompute even when a cached notation exists
	quiet   bool   // print the notation only, no status lines
}

// encodeCommand creates the encode command.
//
// It reads a molecule document (JSON) and prints its SMILES notation.
// Results are cached by document hash; --refresh forces recomputation.
func (c *CLI) encodeCommand() *cobra.Command {
	var opts encodeOpts

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a molecule document to SMILES notation",
		Long: `Encode a molecule structure document to SMILES line notation.

Examples:
  moltext encode ethanol.json
  moltext encode ethanol.json -o ethanol.smi
  moltext encode benzene.json --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEncode(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "molecule name (overrides the document)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the notation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached notations")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print the notation only")

	return cmd
}

// runEncode executes the encode pipeline and writes the result.
func (c *CLI) runEncode(ctx context.Context, input string, opts *encodeOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:   input,
		Name:    opts.name,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Encoded %s", result.Name))

	if opts.quiet && opts.output == "" {
		fmt.Println(result.Notation)
		return nil
	}

	if opts.output != "" {
		out, err := openOutput(opts.output)
		if err != nil {
			return err
		}
		defer out.Close()
		if _, err := io.WriteString(out, result.Notation+"\n"); err != nil {
			return err
		}
		printSuccess("Encoded %s", result.Name)
		printFile(opts.output)
	} else {
		printSuccess("Encoded %s", result.Name)
		fmt.Println("  " + StyleNotation.Render(result.Notation))
	}

	printStats(result.Stats.ComponentCount, len(result.Notation), result.CacheInfo.EncodeHit)
	return nil
}

// nopCloser wraps a writer so stdout can be used where a WriteCloser is needed.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openOutput opens the output file, or returns stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
