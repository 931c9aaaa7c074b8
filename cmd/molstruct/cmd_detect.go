package main

import (
	"fmt"

	"github.com/andrew-torda/molstruct/molfile/detect"
	"github.com/andrew-torda/molstruct/pkg/load"
	"github.com/spf13/cobra"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>...",
		Short: "Say which format each file is in",
		Args:  usage(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			nUnknown := 0
			for _, fname := range args {
				f, err := load.Read(fname)
				if err != nil {
					return err
				}
				ff, ok := detect.Detect(f.Content, f.Name)
				switch {
				case !ok:
					nUnknown++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tunknown\n", fname)
				case !detect.Validate(f.Content, ff):
					nUnknown++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s (does not validate)\n", fname, ff)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", fname, ff)
				}
			}
			if nUnknown > 0 {
				return fmt.Errorf("%d of %d files not recognised", nUnknown, len(args))
			}
			return nil
		},
	}
}
