// molstruct reads molecular structure files (PDB, mmCIF, MOL, MOL2)
// and reports on them. Each job is a sub-command:
//
//	molstruct detect f1 f2 ...   say what format files are in
//	molstruct parse  file        write the structure as JSON
//	molstruct dump   file        write the structure as PDB
//	molstruct stats  file        per chain secondary structure counts
//	molstruct view   file        messages for an embedded viewer
//	molstruct summary file       plain language summary from a text model
//	molstruct fetch  code        download a file from the PDB
//	molstruct lsp                language server on stdin/stdout
//
// A file name of "-" means standard input. Gzipped files are fine.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// usageError is a mistake on the command line, as opposed to a file
// we could not deal with.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// usage marks errors from an argument check as usage problems.
func usage(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func nArgs(n int) cobra.PositionalArgs { return usage(cobra.ExactArgs(n)) }

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "molstruct",
		Short:             "Read molecular structure files",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
	addGlobalFlags(rootCmd)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newLSPCmd())
	return rootCmd
}

// exitCode maps an error from a command to the process status.
func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ue):
		return ExitUsageError
	}
	return ExitFailure
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "molstruct:", err)
	}
	os.Exit(exitCode(err))
}
