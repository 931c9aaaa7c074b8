package main

import (
	"fmt"

	"github.com/andrew-torda/molstruct/pkg/viewer"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	var format, representation, colorScheme, background string
	var synthesize, reset bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Write the JSON messages that load a structure into the viewer",
		Args:  nArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := cfg.Viewer()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("representation") {
				set.Representation = viewer.Representation(representation)
			}
			if flags.Changed("color") {
				set.ColorScheme = viewer.ColorScheme(colorScheme)
			}
			if flags.Changed("background") {
				set.BackgroundColor = background
			}
			if flags.Changed("synthesize") {
				set.SynthesizePDB = synthesize
			}
			if err := set.Check(); err != nil {
				return usageError{err}
			}
			r, err := readStructure(args[0], format)
			if err != nil {
				return err
			}
			warn(cmd, r)
			msgs := append([]viewer.Message{viewer.Load(r.Structure, set)}, viewer.Update(set)...)
			if reset {
				msgs = append(msgs, viewer.Reset())
			}
			for _, m := range msgs {
				js, err := m.Encode()
				if err != nil {
					return fmt.Errorf("encode %s: %w", m.Type, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), js)
			}
			return nil
		},
	}

	formatFlag(cmd, &format)
	flags := cmd.Flags()
	flags.StringVar(&representation, "representation", "", "cartoon, ball-and-stick, space-filling or ribbon")
	flags.StringVar(&colorScheme, "color", "", "colour by chain, residue, structure or custom")
	flags.StringVar(&background, "background", "", "background colour")
	flags.BoolVar(&synthesize, "synthesize", false, "send atoms written as PDB instead of the raw file")
	flags.BoolVar(&reset, "reset", false, "finish with a resetView message")

	return cmd
}
