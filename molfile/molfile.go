// Package molfile is the top level for reading molecular structure
// files. Decide what format the text is in, check it is plausible,
// then call the corresponding reader. If the reader gives up, we still
// return a structure, with no atoms but with the text, so a viewer can
// try to show it.
package molfile

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
	"github.com/andrew-torda/molstruct/molfile/detect"
	"github.com/andrew-torda/molstruct/molfile/mmcif"
	"github.com/andrew-torda/molstruct/molfile/mol"
	"github.com/andrew-torda/molstruct/molfile/mol2"
	"github.com/andrew-torda/molstruct/molfile/pdb"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("molstruct.molfile")

// FallbackDescription goes into the structure made when parsing failed.
const FallbackDescription = "This file could not be fully parsed, but the viewer will attempt to render it directly."

// Parser is what we can do with one format.
type Parser interface {
	Format() cmmn.Format
	Validate(content string) bool
	Parse(content string) (*cmmn.Structure, error) // error is a *ParseFailure
}

type fmtParser struct {
	f     cmmn.Format
	parse func(string) (*cmmn.Structure, error)
}

func (p fmtParser) Format() cmmn.Format { return p.f }

func (p fmtParser) Validate(content string) bool { return detect.Validate(content, p.f) }

func (p fmtParser) Parse(content string) (*cmmn.Structure, error) {
	s, err := p.parse(content)
	if err == nil {
		err = cmmn.Check(s)
	}
	if err != nil {
		return nil, &ParseFailure{Format: p.f, Err: err}
	}
	return s, nil
}

// ParserFor returns the parser for a format. ok is false for anything
// but the four known tags.
func ParserFor(f cmmn.Format) (p Parser, ok bool) {
	switch f {
	case cmmn.PDB:
		return fmtParser{f, pdb.Parse}, true
	case cmmn.CIF:
		return fmtParser{f, mmcif.Parse}, true
	case cmmn.MOL:
		return fmtParser{f, mol.Parse}, true
	case cmmn.MOL2:
		return fmtParser{f, mol2.Parse}, true
	}
	return nil, false
}

// Result is a parsed file. If Failure is not nil, Structure is the
// fallback and Warning says what went wrong. A structure read without
// trouble may still carry a warning, if it has no atoms.
type Result struct {
	Structure *cmmn.Structure
	Warning   string
	Failure   *ParseFailure
}

// fallbackName is the name of a structure we could not read.
func fallbackName(fname string, f cmmn.Format) string {
	if fname != "" {
		return filepath.Base(fname)
	}
	return "Unreadable " + f.Name() + " File"
}

// Parse detects the format of content and reads it. fname is only
// used as a hint for the format and as the name of a fallback
// structure. The errors are ErrUnknownFormat and *MismatchError. A
// parser failing is not an error.
func Parse(content, fname string) (*Result, error) {
	f, ok := detect.Detect(content, fname)
	if !ok {
		return nil, ErrUnknownFormat
	}
	log.Debugf("%s: detected %s", fname, f.Name())
	return ParseAs(content, fname, f)
}

// ParseAs is Parse for a format the caller has already decided on.
func ParseAs(content, fname string, f cmmn.Format) (*Result, error) {
	p, ok := ParserFor(f)
	if !ok {
		return nil, ErrUnknownFormat
	}
	if !p.Validate(content) {
		return nil, &MismatchError{Format: f}
	}
	s, err := p.Parse(content)
	if err == nil {
		log.Debugf("%s: %d atoms in %d chains", fname, len(s.Atoms), len(s.Chains))
		r := &Result{Structure: s}
		if len(s.Atoms) == 0 {
			r.Warning = fmt.Sprintf("no atoms found in %s", fallbackName(fname, f))
		}
		return r, nil
	}
	var pf *ParseFailure
	if !errors.As(err, &pf) {
		pf = &ParseFailure{Format: f, Err: err}
	}
	warning := fmt.Sprintf("%s could not be fully parsed as %s (%v), showing the raw file",
		fallbackName(fname, f), f.Name(), pf.Err)
	log.Warningf("%s", warning)
	return &Result{
		Structure: cmmn.Fallback(f, fallbackName(fname, f), FallbackDescription, content),
		Warning:   warning,
		Failure:   pf,
	}, nil
}
