package main

import (
	"github.com/andrew-torda/molstruct/pkg/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdin/stdout",
		Args:  nArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.New(version).RunStdio()
		},
	}
}
