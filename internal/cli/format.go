package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmeyer/cascade/pkg/chartfile"
)

// formatOpts holds the command-line flags for the format command.
type formatOpts struct {
	output string // output file path; empty writes to stdout
	pretty bool   // indent the JSON output
	series bool   // include running start/end positions per item
}

// newFormatCmd creates the format command. It loads a chart file, runs the
// conditional formatting pass, and emits the annotated items as JSON.
func newFormatCmd() *cobra.Command {
	var opts formatOpts

	cmd := &cobra.Command{
		Use:   "format [chart.toml]",
		Short: "Apply conditional formatting to a chart file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&opts.series, "series", false, "include running totals per item")
	return cmd
}

// formatOutput is the JSON document the format command emits.
type formatOutput struct {
	Title  string `json:"title,omitempty"`
	Items  any    `json:"items"`
	Series any    `json:"series,omitempty"`
}

func runFormat(ctx context.Context, path string, opts *formatOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := chartfile.Load(path)
	if err != nil {
		return err
	}
	c := doc.Build()
	logger.Debug("loaded chart",
		"items", len(c.Items),
		"rules", len(c.Engine().Rules()),
		"thresholds", len(c.Engine().Thresholds()))

	formatted := c.Format()

	out := formatOutput{Title: c.Title, Items: formatted}
	if opts.series {
		out.Series = c.Series()
	}

	var data []byte
	if opts.pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0644); err != nil {
			return err
		}
	} else {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	}

	metrics := c.Engine().Metrics()
	prog.done(fmt.Sprintf("Formatted %d items (engine pass %s)", len(formatted), metrics.ProcessingTime))
	return nil
}
