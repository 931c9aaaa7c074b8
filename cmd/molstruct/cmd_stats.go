package main

import (
	"encoding/json"

	"github.com/andrew-torda/molstruct/pkg/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var format string
	var frac, asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Count residues by secondary structure in each chain",
		Args:  nArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readStructure(args[0], format)
			if err != nil {
				return err
			}
			warn(cmd, r)
			st := stats.Calc(r.Structure)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st.Record())
			}
			if frac {
				st.Frac()
			}
			return st.Write(cmd.OutOrStdout())
		},
	}

	formatFlag(cmd, &format)
	cmd.Flags().BoolVar(&frac, "frac", false, "fractions of each chain instead of counts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the summary record as JSON")

	return cmd
}
