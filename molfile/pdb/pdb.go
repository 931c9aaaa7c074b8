// Package pdb reads and writes the legacy fixed column PDB format.
// Only the records we need are looked at: HEADER, TITLE, EXPDTA,
// SOURCE, REMARK 2, ATOM, HETATM, HELIX, SHEET and SITE.
// Everything else is ignored. Columns are counted from zero, so the
// residue name, which the PDB documents put in columns 18-20, is
// line[17:20] here.
package pdb

import (
	"strings"
	"unicode"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("molstruct.molfile")

// Column ranges, [start, end).
const (
	recStart, recEnd = 0, 6

	hdrNameStart, hdrNameEnd = 10, 50
	hdrDateStart, hdrDateEnd = 50, 59
	hdrCodeStart, hdrCodeEnd = 62, 66
	textStart               = 10

	atIDStart, atIDEnd     = 6, 11
	atNameStart, atNameEnd = 12, 16
	atResStart, atResEnd   = 17, 20
	atChain                = 21
	atNumStart, atNumEnd   = 22, 26
	atXStart, atXEnd       = 30, 38
	atYStart, atYEnd       = 38, 46
	atZStart, atZEnd       = 46, 54
	atElStart, atElEnd     = 76, 78

	hlxChain                 = 19
	hlxStartBeg, hlxStartEnd = 21, 25
	hlxEndBeg, hlxEndEnd     = 33, 37

	shtChain                 = 21
	shtStartBeg, shtStartEnd = 22, 26
	shtEndBeg, shtEndEnd     = 33, 37

	siteChain                = 22
	siteNumStart, siteNumEnd = 23, 27
	siteStride               = 11 // up to four residues per SITE line
	siteMaxRes               = 4
)

// char returns the single character at column i, or "" if the line is
// too short or the column is blank.
func char(line string, i int) string {
	return strings.TrimSpace(cmmn.Col(line, i, i+1))
}

// chainAt is char, but a blank chain is the default chain, as it is
// for atoms.
func chainAt(line string, i int) string {
	if c := char(line, i); c != "" {
		return c
	}
	return cmmn.DfltChain
}

// elementFromName guesses an element from an atom name when the
// element columns are empty. A name that does not start in column 12,
// like " CA " or "1HB ", is a one letter element.
func elementFromName(line string) string {
	raw := cmmn.Col(line, atNameStart, atNameEnd)
	name := strings.TrimFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) })
	if name == "" {
		return ""
	}
	if !unicode.IsLetter(rune(raw[0])) || len(name) == 1 {
		return name[:1]
	}
	return name[:2]
}

// parseAtom turns one ATOM or HETATM line into an atom. ok is false if
// the coordinates or residue number do not parse, and then the line is
// dropped. haveID is false if the serial number is missing or broken,
// so the builder should invent one.
func parseAtom(line string) (a cmmn.Atom, haveID, ok bool) {
	x, y, z, ok := cmmn.Xyz(cmmn.Col(line, atXStart, atXEnd),
		cmmn.Col(line, atYStart, atYEnd), cmmn.Col(line, atZStart, atZEnd))
	if !ok {
		return a, false, false
	}
	resNum, ok := cmmn.Atoi(cmmn.Col(line, atNumStart, atNumEnd))
	if !ok {
		return a, false, false
	}
	a.ID, haveID = cmmn.Atoi(cmmn.Col(line, atIDStart, atIDEnd))
	a.Element = strings.TrimSpace(cmmn.Col(line, atElStart, atElEnd))
	if a.Element == "" {
		a.Element = elementFromName(line)
	}
	a.X, a.Y, a.Z = x, y, z
	a.Residue = strings.TrimSpace(cmmn.Col(line, atResStart, atResEnd))
	a.ResidueNumber = resNum
	a.Chain = char(line, atChain)
	return a, haveID, true
}

// rangeRec is what we take from a HELIX or SHEET line.
type rangeRec struct {
	chain      string
	start, end int
}

// parseRange reads the chain and residue range of a HELIX or SHEET
// record using the column layout of that record.
func parseRange(line string, chainCol, sb, se, eb, ee int) (rangeRec, bool) {
	var r rangeRec
	var ok bool
	r.chain = chainAt(line, chainCol)
	if r.start, ok = cmmn.Atoi(cmmn.Col(line, sb, se)); !ok {
		return r, false
	}
	if r.end, ok = cmmn.Atoi(cmmn.Col(line, eb, ee)); !ok {
		return r, false
	}
	return r, true
}

// siteRes is one residue named on a SITE line.
type siteRes struct {
	chain  string
	resNum int
}

// parseSite returns the residues listed on a SITE line. The first slot
// is at the usual columns, the others follow every siteStride columns.
func parseSite(line string) []siteRes {
	var ret []siteRes
	for i := 0; i < siteMaxRes; i++ {
		off := i * siteStride
		n, ok := cmmn.Atoi(cmmn.Col(line, siteNumStart+off, siteNumEnd+off))
		if !ok {
			continue
		}
		ret = append(ret, siteRes{chain: chainAt(line, siteChain+off), resNum: n})
	}
	return ret
}

// resolution picks the number out of
// "REMARK   2 RESOLUTION.    2.00 ANGSTROMS."
func resolution(line string) (float64, bool) {
	i := strings.Index(line, "RESOLUTION.")
	if i < 0 {
		return 0, false
	}
	f := strings.Fields(line[i+len("RESOLUTION."):])
	if len(f) == 0 {
		return 0, false
	}
	return cmmn.Float(f[0])
}

// organism picks the name out of "SOURCE   2 ORGANISM_SCIENTIFIC: HOMO SAPIENS;"
func organism(line string) (string, bool) {
	const key = "ORGANISM_SCIENTIFIC:"
	i := strings.Index(line, key)
	if i < 0 {
		return "", false
	}
	s := strings.TrimSpace(line[i+len(key):])
	return strings.TrimSpace(strings.TrimSuffix(s, ";")), s != ""
}

// header fields are collected while reading
type hdrAcc struct {
	cmmn.Header
	title strings.Builder
}

// doHeader deals with the records that only describe the structure.
// It returns false if the record was not one of them.
func (h *hdrAcc) doHeader(rec, line string) bool {
	switch rec {
	case "HEADER":
		if s := strings.TrimSpace(cmmn.Col(line, hdrNameStart, hdrNameEnd)); s != "" {
			h.Name = s
		}
		h.ReleaseDate = strings.TrimSpace(cmmn.Col(line, hdrDateStart, hdrDateEnd))
		h.Code = strings.TrimSpace(cmmn.Col(line, hdrCodeStart, hdrCodeEnd))
	case "TITLE":
		h.title.WriteString(strings.TrimSpace(cmmn.Col(line, textStart, -1)))
		h.title.WriteByte(' ')
	case "EXPDTA":
		h.ExperimentMethod = strings.TrimSpace(cmmn.Col(line, textStart, -1))
	case "SOURCE":
		if s, ok := organism(line); ok && h.Source == "" {
			h.Source = s
		}
	case "REMARK":
		if x, ok := resolution(line); ok {
			h.Resolution = x
		}
	default:
		return false
	}
	return true
}

// Parse reads PDB text. A broken ATOM/HETATM line costs only that atom.
// There is no input which makes it fail, so the error is always nil,
// but it keeps the same shape as the other readers.
func Parse(content string) (*cmmn.Structure, error) {
	b := cmmn.NewBuilder()
	h := hdrAcc{Header: cmmn.Header{Name: cmmn.DfltProtName}}
	nIgnored := 0
	for _, line := range cmmn.SplitLines(content) {
		rec := strings.TrimSpace(cmmn.Col(line, recStart, recEnd))
		if h.doHeader(rec, line) {
			continue
		}
		switch rec {
		case "ATOM", "HETATM":
			if a, haveID, ok := parseAtom(line); ok {
				b.AddAtom(a, haveID)
			} else {
				b.Skip()
			}
		case "HELIX":
			if r, ok := parseRange(line, hlxChain, hlxStartBeg, hlxStartEnd, hlxEndBeg, hlxEndEnd); ok {
				if b.TagRange(r.chain, r.start, r.end, cmmn.Helix) < 0 {
					nIgnored++
				}
			}
		case "SHEET":
			if r, ok := parseRange(line, shtChain, shtStartBeg, shtStartEnd, shtEndBeg, shtEndEnd); ok {
				if b.TagRange(r.chain, r.start, r.end, cmmn.Sheet) < 0 {
					nIgnored++
				}
			}
		case "SITE":
			for _, sr := range parseSite(line) {
				if !b.MarkFunctional(sr.chain, sr.resNum, cmmn.FuncBinding) {
					nIgnored++
				}
			}
		}
	}
	h.Description = strings.TrimSpace(h.title.String())
	if b.NSkip() > 0 || nIgnored > 0 {
		log.Debugf("pdb: %d atom records skipped, %d annotations for unseen residues", b.NSkip(), nIgnored)
	}
	return b.Finish(h.Header, cmmn.PDB, content), nil
}
