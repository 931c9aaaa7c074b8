// Package viewer builds the messages sent to an embedded molecular
// viewer. The viewer itself is someone else's. It is given either the
// raw file or, if asked and there are atoms, the structure written
// back out as PDB.
package viewer

import (
	"encoding/json"
	"fmt"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
	"github.com/andrew-torda/molstruct/molfile/pdb"
)

// Representation is how the viewer draws the molecule.
type Representation string

const (
	Cartoon      Representation = "cartoon"
	BallAndStick Representation = "ball-and-stick"
	SpaceFilling Representation = "space-filling"
	Ribbon       Representation = "ribbon"
)

// ColorScheme is what the colours mean.
type ColorScheme string

const (
	ByChain     ColorScheme = "chain"
	ByResidue   ColorScheme = "residue"
	ByStructure ColorScheme = "structure"
	Custom      ColorScheme = "custom"
)

// Message types.
const (
	TypeLoad           = "loadStructure"
	TypeRepresentation = "updateRepresentation"
	TypeBackground     = "updateBackground"
	TypeReset          = "resetView"
)

// DefaultBackground is a very light grey.
const DefaultBackground = "#F8F9FA"

// Settings are the user's choices for drawing.
type Settings struct {
	Representation  Representation `json:"representation"`
	ColorScheme     ColorScheme    `json:"colorScheme"`
	BackgroundColor string         `json:"backgroundColor"`
	SynthesizePDB   bool           `json:"synthesizePdb"`
}

// DefaultSettings are what the viewer starts with.
func DefaultSettings() Settings {
	return Settings{
		Representation:  Cartoon,
		ColorScheme:     ByStructure,
		BackgroundColor: DefaultBackground,
	}
}

// Check complains about representations and colour schemes the viewer
// does not know.
func (s Settings) Check() error {
	switch s.Representation {
	case Cartoon, BallAndStick, SpaceFilling, Ribbon:
	default:
		return fmt.Errorf("unknown representation %q", s.Representation)
	}
	switch s.ColorScheme {
	case ByChain, ByResidue, ByStructure, Custom:
	default:
		return fmt.Errorf("unknown colour scheme %q", s.ColorScheme)
	}
	return nil
}

// Message is one message to the viewer. Which fields are set depends
// on Type.
type Message struct {
	Type           string         `json:"type"`
	Content        string         `json:"content,omitempty"`
	Format         cmmn.Format    `json:"format,omitempty"`
	Representation Representation `json:"representation,omitempty"`
	ColorScheme    ColorScheme    `json:"colorScheme,omitempty"`
	Color          string         `json:"color,omitempty"`
}

// Content decides what text the viewer gets. The raw file is used
// unless the settings ask for PDB and there is something to write.
// When PDB is written, the returned structure is a copy holding it and
// s is not touched.
func Content(s *cmmn.Structure, set Settings) (*cmmn.Structure, cmmn.Format) {
	if set.SynthesizePDB && len(s.Atoms) > 0 {
		return s.WithRawContent(pdb.Dump(s)), cmmn.PDB
	}
	return s, s.FileFormat
}

// Load is the message giving the viewer a structure.
func Load(s *cmmn.Structure, set Settings) Message {
	t, f := Content(s, set)
	return Message{
		Type:           TypeLoad,
		Content:        t.RawContent,
		Format:         f,
		Representation: set.Representation,
		ColorScheme:    set.ColorScheme,
	}
}

// Update is the pair of messages sent when settings change.
func Update(set Settings) []Message {
	return []Message{
		{Type: TypeRepresentation, Representation: set.Representation, ColorScheme: set.ColorScheme},
		{Type: TypeBackground, Color: set.BackgroundColor},
	}
}

// Reset asks the viewer to go back to its starting view.
func Reset() Message { return Message{Type: TypeReset} }

// Encode gives the JSON text of a message.
func (m Message) Encode() (string, error) {
	b, err := json.Marshal(m)
	return string(b), err
}
