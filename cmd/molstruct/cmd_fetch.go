package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/andrew-torda/molstruct/molfile"
	"github.com/andrew-torda/molstruct/pkg/load"
	"github.com/spf13/cobra"
)

// httpClient is replaced in tests.
var httpClient = http.DefaultClient

func newFetchCmd() *cobra.Command {
	var outfile string
	var siteNum int

	cmd := &cobra.Command{
		Use:   "fetch <pdb code>",
		Short: "Download the mmCIF file for a PDB code",
		Args:  nArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := load.Fetch(cmd.Context(), httpClient, args[0], siteNum)
			if err != nil {
				return err
			}
			if _, err := molfile.Parse(f.Content, f.Name); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if outfile == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), f.Content)
				return err
			}
			return os.WriteFile(outfile, []byte(f.Content), 0o644)
		},
	}

	cmd.Flags().StringVarP(&outfile, "output", "o", "", "write the file here instead of stdout")
	cmd.Flags().IntVar(&siteNum, "site", 0, "which mirror to use, 0 is RCSB")

	return cmd
}
