package main

import (
	"errors"

	"github.com/andrew-torda/molstruct/molfile/pdb"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Read any supported format and write PDB records",
		Args:  nArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readStructure(args[0], format)
			if err != nil {
				return err
			}
			warn(cmd, r)
			if r.Structure.IsDegenerate() {
				return errors.New("no atoms to write")
			}
			return pdb.Write(cmd.OutOrStdout(), r.Structure)
		},
	}

	formatFlag(cmd, &format)

	return cmd
}
