package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var format string
	var withRaw bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a structure file and write it as JSON",
		Args:  nArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readStructure(args[0], format)
			if err != nil {
				return err
			}
			warn(cmd, r)
			s := r.Structure
			if !withRaw {
				s = s.WithRawContent("")
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(s); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return nil
		},
	}

	formatFlag(cmd, &format)
	cmd.Flags().BoolVar(&withRaw, "raw", false, "include the original file text")

	return cmd
}
