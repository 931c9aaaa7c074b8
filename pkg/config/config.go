// Package config reads the JSON settings file. A missing file is not
// an error. It just means defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/andrew-torda/molstruct/pkg/summary"
	"github.com/andrew-torda/molstruct/pkg/viewer"
)

// DefaultPath is looked for in the working directory.
const DefaultPath = "molstruct.json"

const dfltTimeout = 60

type Config struct {
	LogFile               string `json:"log_file"`
	LogVerbosity          int    `json:"log_verbosity"`
	Representation        string `json:"representation"`
	ColorScheme           string `json:"color_scheme"`
	BackgroundColor       string `json:"background_color"`
	SynthesizePDB         bool   `json:"synthesize_pdb"`
	SummaryEndpoint       string `json:"summary_endpoint"`
	SummaryTimeoutSeconds int    `json:"summary_timeout_seconds"`
}

// Default is the configuration with no file.
func Default() *Config {
	v := viewer.DefaultSettings()
	return &Config{
		Representation:        string(v.Representation),
		ColorScheme:           string(v.ColorScheme),
		BackgroundColor:       v.BackgroundColor,
		SummaryEndpoint:       summary.DefaultEndpoint,
		SummaryTimeoutSeconds: dfltTimeout,
	}
}

// Load reads path, or DefaultPath if path is empty. Fields missing
// from the file keep their default values. Only a missing default
// file is quietly ignored. If the caller named a file, it has to be
// there.
func Load(path string) (*Config, error) {
	named := path != ""
	if !named {
		path = DefaultPath
	}
	c := Default()
	f, err := os.Open(path)
	if err != nil {
		if !named && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := c.Viewer(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if c.SummaryTimeoutSeconds <= 0 {
		c.SummaryTimeoutSeconds = dfltTimeout
	}
	return c, nil
}

// Viewer gives the drawing settings.
func (c *Config) Viewer() (viewer.Settings, error) {
	s := viewer.Settings{
		Representation:  viewer.Representation(c.Representation),
		ColorScheme:     viewer.ColorScheme(c.ColorScheme),
		BackgroundColor: c.BackgroundColor,
		SynthesizePDB:   c.SynthesizePDB,
	}
	return s, s.Check()
}

// LogPath is nil if we log to the terminal.
func (c *Config) LogPath() *string {
	if c.LogFile == "" {
		return nil
	}
	return &c.LogFile
}

// SummaryTimeout is the time allowed for a summary request.
func (c *Config) SummaryTimeout() time.Duration {
	return time.Duration(c.SummaryTimeoutSeconds) * time.Second
}
