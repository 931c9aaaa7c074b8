// Package mol2 reads Tripos MOL2 files. Only two sections matter.
// The line after @<TRIPOS>MOLECULE is the name, and the lines of
// @<TRIPOS>ATOM are atoms:
//  atom_id atom_name x y z atom_type [subst_id [subst_name [charge]]]
// The substructure becomes the residue.
package mol2

import (
	"strings"
	"unicode"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
)

const (
	Description = "Imported from MOL2 format"
	tagPrefix   = "@<TRIPOS>"
	tagMolecule = tagPrefix + "MOLECULE"
	tagAtom     = tagPrefix + "ATOM"
	minFields   = 6
)

// element is the atom name without digits, at most two characters.
func element(name string) string {
	e := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, name)
	if len(e) > 2 {
		e = e[:2]
	}
	return e
}

// parseAtom reads one line of the atom section. The ninth field is
// taken as the chain only if it is not a number. In most files it is
// the partial charge.
func parseAtom(line string) (a cmmn.Atom, haveID, ok bool) {
	f := strings.Fields(line)
	if len(f) < minFields {
		return a, false, false
	}
	if a.X, a.Y, a.Z, ok = cmmn.Xyz(f[2], f[3], f[4]); !ok {
		return a, false, false
	}
	a.ID, haveID = cmmn.Atoi(f[0])
	a.Element = element(f[1])
	a.ResidueNumber = 1
	if len(f) > 6 {
		if n, ok := cmmn.Atoi(f[6]); ok {
			a.ResidueNumber = n
		}
	}
	if len(f) > 7 {
		a.Residue = f[7]
	}
	if len(f) > 8 {
		if _, isNum := cmmn.Float(f[8]); !isNum {
			a.Chain = f[8]
		}
	}
	return a, haveID, true
}

// Parse reads MOL2 text. Broken atom lines are skipped. Nothing makes
// it fail.
func Parse(content string) (*cmmn.Structure, error) {
	const (
		none = iota
		molecule
		atoms
	)
	h := cmmn.Header{Name: cmmn.DfltMolName, Description: Description}
	b := cmmn.NewBuilder()
	section := none
	for _, line := range cmmn.SplitLines(content) {
		t := strings.TrimSpace(line)
		switch {
		case t == tagMolecule:
			section = molecule
		case t == tagAtom:
			section = atoms
		case strings.HasPrefix(t, tagPrefix):
			section = none
		case t == "" || t[0] == '#':
		case section == molecule:
			h.Name = t
			section = none
		case section == atoms:
			if a, haveID, ok := parseAtom(t); ok {
				b.AddAtom(a, haveID)
			} else {
				b.Skip()
			}
		}
	}
	return b.Finish(h, cmmn.MOL2, content), nil
}
