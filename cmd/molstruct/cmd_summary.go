package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andrew-torda/molstruct/pkg/stats"
	"github.com/andrew-torda/molstruct/pkg/summary"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var format, endpoint, outfile string
	var promptOnly bool

	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Ask a text model for a plain language summary of a structure",
		Args:  nArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readStructure(args[0], format)
			if err != nil {
				return err
			}
			warn(cmd, r)
			rec := stats.Calc(r.Structure).Record()
			if promptOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), summary.Prompt(rec))
				return err
			}
			if !cmd.Flags().Changed("endpoint") {
				endpoint = cfg.SummaryEndpoint
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SummaryTimeout())
			defer cancel()
			client := summary.NewClient(endpoint, cfg.SummaryTimeout())
			text := summary.ExportTxt(summary.Generate(ctx, client, rec)) + "\n"
			if outfile == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			return os.WriteFile(outfile, []byte(text), 0o644)
		},
	}

	formatFlag(cmd, &format)
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "text model endpoint, default from the config")
	cmd.Flags().StringVarP(&outfile, "output", "o", "", "write the summary here instead of stdout")
	cmd.Flags().BoolVar(&promptOnly, "prompt", false, "only print the prompt, do not ask the model")

	return cmd
}
