package molfile

import (
	"errors"
	"fmt"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
)

// ErrUnknownFormat is returned when neither the content nor the file
// name says what the format is.
var ErrUnknownFormat = errors.New("unknown or unsupported file format, " +
	"supported are PDB (.pdb), mmCIF (.cif, .mmcif), MOL (.mol) and MOL2 (.mol2)")

// ErrFormatMismatch is what a *MismatchError matches with errors.Is.
var ErrFormatMismatch = errors.New("content does not match format")

// MismatchError says the content is clearly not in the format it
// seemed to be in.
type MismatchError struct {
	Format cmmn.Format
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("the file appears to be a %s file but has invalid or corrupted content", e.Format.Name())
}

func (e *MismatchError) Is(target error) bool { return target == ErrFormatMismatch }

// ParseFailure is a parser giving up part way through. Parse never
// returns it. It turns it into a fallback structure and a warning.
type ParseFailure struct {
	Format cmmn.Format
	Err    error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Format.Name(), e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }
