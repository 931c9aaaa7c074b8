// Package molfile/cmmn has the structural model shared by the
// format parsers and by everything downstream of them.
// A Structure is built once per file by a Builder and is not
// changed afterwards. Nothing here does I/O.
package cmmn

import (
	"github.com/google/uuid"
)

// Format is one of the four file formats we understand.
type Format string

const (
	PDB  Format = "pdb"
	CIF  Format = "cif"
	MOL  Format = "mol"
	MOL2 Format = "mol2"
)

// Formats lists the known formats in the order the detector
// reports them in messages.
var Formats = []Format{PDB, CIF, MOL, MOL2}

// Valid says if f is one of the four known tags.
func (f Format) Valid() bool {
	switch f {
	case PDB, CIF, MOL, MOL2:
		return true
	}
	return false
}

// Name is the label we use in messages, like "mmCIF".
func (f Format) Name() string {
	switch f {
	case PDB:
		return "PDB"
	case CIF:
		return "mmCIF"
	case MOL:
		return "MOL"
	case MOL2:
		return "MOL2"
	}
	return "unknown"
}

// SecStruct is the backbone conformation class of a residue.
type SecStruct string

const (
	Helix SecStruct = "helix"
	Sheet SecStruct = "sheet"
	Loop  SecStruct = "loop"
)

// FuncBinding is the functional type set by SITE records.
const FuncBinding = "binding"

// Defaults used when a file does not say.
const (
	DfltChain    = "A"
	DfltResName  = "UNK"
	DfltProtName = "Unknown Protein"
	DfltMolName  = "Unknown Molecule"
)

// Atom is one point with an element. Residue and chain are kept
// on the atom as well, so the flat atom list can be used alone.
type Atom struct {
	ID            int     `json:"id"`
	Element       string  `json:"element"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Residue       string  `json:"residue"`
	ResidueNumber int     `json:"residueNumber"`
	Chain         string  `json:"chain"`
}

// Residue is one monomer. Atoms are in parse order.
type Residue struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	Chain              string    `json:"chain"`
	Atoms              []Atom    `json:"atoms"`
	SecondaryStructure SecStruct `json:"secondaryStructure"`
	IsFunctional       bool      `json:"isFunctional,omitempty"`
	FunctionalType     string    `json:"functionalType,omitempty"`
}

// Chain holds residues sorted by ascending residue id.
type Chain struct {
	ID       string    `json:"id"`
	Residues []Residue `json:"residues"`
}

// Structure is the result of parsing one file.
// Chains are in order of first appearance. Atoms is the flat list in
// parse order. RawContent is always the input text, even when
// parsing failed.
type Structure struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Code             string  `json:"code,omitempty"`
	Source           string  `json:"source,omitempty"`
	Resolution       float64 `json:"resolution,omitempty"`
	ExperimentMethod string  `json:"experimentMethod,omitempty"`
	ReleaseDate      string  `json:"releaseDate,omitempty"`
	Chains           []Chain `json:"chains"`
	Atoms            []Atom  `json:"atoms"`
	FileFormat       Format  `json:"fileFormat"`
	RawContent       string  `json:"rawContent,omitempty"`
}

// Header is the descriptive part of a structure, filled in by a
// parser before the builder is finished.
type Header struct {
	Name             string
	Description      string
	Code             string
	Source           string
	Resolution       float64
	ExperimentMethod string
	ReleaseDate      string
}

// NewID returns an opaque, time based identifier.
func NewID() string {
	if u, err := uuid.NewUUID(); err == nil {
		return u.String()
	}
	return uuid.New().String()
}

// Fallback is the structure we hand on when a parser gave up.
// It has no chains and no atoms, only the raw text.
func Fallback(format Format, name, desc, content string) *Structure {
	return &Structure{
		ID:          NewID(),
		Name:        name,
		Description: desc,
		Chains:      []Chain{},
		Atoms:       []Atom{},
		FileFormat:  format,
		RawContent:  content,
	}
}

// WithRawContent returns a copy of s carrying different raw text.
// The receiver is left alone.
func (s *Structure) WithRawContent(raw string) *Structure {
	t := *s
	t.RawContent = raw
	return &t
}

// NResidue is the number of residues summed over chains.
func (s *Structure) NResidue() int {
	n := 0
	for _, c := range s.Chains {
		n += len(c.Residues)
	}
	return n
}

// Chain looks for the chain with identifier id. nil if not there.
func (s *Structure) Chain(id string) *Chain {
	for i := range s.Chains {
		if s.Chains[i].ID == id {
			return &s.Chains[i]
		}
	}
	return nil
}

// Residue returns the residue with the given number, or nil.
func (c *Chain) Residue(id int) *Residue {
	for i := range c.Residues {
		if c.Residues[i].ID == id {
			return &c.Residues[i]
		}
	}
	return nil
}

// IsDegenerate is true for a fallback structure.
func (s *Structure) IsDegenerate() bool {
	return len(s.Chains) == 0 && len(s.Atoms) == 0
}
