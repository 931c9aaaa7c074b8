// Package mol reads MDL molfiles. The layout is fixed:
//  line 0     molecule name
//  lines 1, 2 program and comment, ignored
//  line 3     counts line, the number of atoms in [0,3)
//  lines 4..  the atom block, x, y, z in [0,10) [10,20) [20,30),
//             element in [31,34)
// V3000 files keep the atoms between M  V30 BEGIN ATOM and
// M  V30 END ATOM as white space separated fields.
// A molfile has no chains or residues. Everything goes into
// residue 1, called MOL, in chain A.
package mol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
)

const (
	ResName     = "MOL"
	Description = "Imported from MOL format"
	countsLine  = 3
	minLineLen  = 30
)

// ErrTooShort is returned for input without a counts line.
var ErrTooShort = errors.New("mol: fewer than 4 lines, no counts line")

// nAtoms reads the atom count. A count not in the first three
// columns is taken from the first field, as some programs write them
// left justified.
func nAtoms(line string) (int, error) {
	if n, ok := cmmn.Atoi(cmmn.Col(line, 0, 3)); ok {
		return n, nil
	}
	if f := strings.Fields(line); len(f) > 0 {
		if n, ok := cmmn.Atoi(f[0]); ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("mol: cannot read atom count from %q", line)
}

// parseV2000 reads one line of the atom block. ok is false for short
// lines and broken numbers.
func parseV2000(line string) (a cmmn.Atom, ok bool) {
	if len(line) < minLineLen {
		return a, false
	}
	if a.X, a.Y, a.Z, ok = cmmn.Xyz(cmmn.Col(line, 0, 10), cmmn.Col(line, 10, 20), cmmn.Col(line, 20, 30)); !ok {
		return a, false
	}
	a.Element = strings.TrimSpace(cmmn.Col(line, 31, 34))
	return a, true
}

// parseV3000 reads "M  V30 1 C 1.2 3.4 5.6 0". haveID is false if the
// index is not a number.
func parseV3000(line string) (a cmmn.Atom, haveID, ok bool) {
	f := strings.Fields(line)
	if len(f) < 7 {
		return a, false, false
	}
	if a.X, a.Y, a.Z, ok = cmmn.Xyz(f[4], f[5], f[6]); !ok {
		return a, false, false
	}
	a.ID, haveID = cmmn.Atoi(f[2])
	a.Element = f[3]
	return a, haveID, true
}

// inResidue puts the atom into the single residue.
func inResidue(a cmmn.Atom) cmmn.Atom {
	a.Residue = ResName
	a.ResidueNumber = 1
	a.Chain = cmmn.DfltChain
	return a
}

// v3000Atoms reads the atom block of a V3000 file.
func v3000Atoms(lines []string, b *cmmn.Builder) {
	inAtoms := false
	for _, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(t, "M  V30 BEGIN ATOM"):
			inAtoms = true
		case strings.HasPrefix(t, "M  V30 END ATOM"):
			return
		case inAtoms && strings.HasPrefix(t, "M  V30"):
			if a, haveID, ok := parseV3000(t); ok {
				b.AddAtom(inResidue(a), haveID)
			} else {
				b.Skip()
			}
		}
	}
}

// Parse reads molfile text. It fails if there is no counts line, or
// if a V2000 counts line has no atom count.
func Parse(content string) (*cmmn.Structure, error) {
	lines := cmmn.SplitLines(content)
	if len(lines) <= countsLine {
		return nil, ErrTooShort
	}
	h := cmmn.Header{Name: strings.TrimSpace(lines[0]), Description: Description}
	if h.Name == "" {
		h.Name = cmmn.DfltMolName
	}
	b := cmmn.NewBuilder()
	if strings.Contains(lines[countsLine], "V3000") {
		v3000Atoms(lines[countsLine+1:], b)
		return b.Finish(h, cmmn.MOL, content), nil
	}
	n, err := nAtoms(lines[countsLine])
	if err != nil {
		return nil, err
	}
	for i := countsLine + 1; i < countsLine+1+n && i < len(lines); i++ {
		if a, ok := parseV2000(lines[i]); ok {
			a.ID = i - countsLine
			b.AddAtom(inResidue(a), true)
		} else {
			b.Skip()
		}
	}
	return b.Finish(h, cmmn.MOL, content), nil
}
