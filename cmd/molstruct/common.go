package main

import (
	"fmt"

	"github.com/andrew-torda/molstruct/molfile"
	"github.com/andrew-torda/molstruct/molfile/cmmn"
	"github.com/andrew-torda/molstruct/pkg/config"
	"github.com/andrew-torda/molstruct/pkg/load"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// Set by the global flags and the config file.
var (
	verbosity  int
	logFile    string
	configPath string
	cfg        *config.Config
)

func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", "more logging, repeat for more")
	pf.StringVar(&logFile, "log", "", "log to this file instead of stderr")
	pf.StringVar(&configPath, "config", "", "JSON config file (default "+config.DefaultPath+" if present)")
}

// setup reads the config and starts logging. Flags win over the file.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log") {
		c.LogFile = logFile
	}
	if cmd.Flags().Changed("verbose") {
		c.LogVerbosity = verbosity
	}
	cfg = c
	commonlog.Configure(cfg.LogVerbosity, cfg.LogPath())
	return nil
}

// readStructure loads fname and parses it. An empty format means
// detect it.
func readStructure(fname, format string) (*molfile.Result, error) {
	f, err := load.Read(fname)
	if err != nil {
		return nil, err
	}
	var r *molfile.Result
	if format == "" {
		r, err = molfile.Parse(f.Content, f.Name)
	} else {
		ff := cmmn.Format(format)
		if !ff.Valid() {
			return nil, usageError{fmt.Errorf("unknown format %q, want one of %v", format, cmmn.Formats)}
		}
		r, err = molfile.ParseAs(f.Content, f.Name, ff)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return r, nil
}

// formatFlag adds --format to a command reading one structure.
func formatFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "format", "f", "", "file format (pdb, cif, mol, mol2), detected if not given")
}

// warn reports a parse warning on the command's stderr.
func warn(cmd *cobra.Command, r *molfile.Result) {
	if r.Warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", r.Warning)
	}
}
