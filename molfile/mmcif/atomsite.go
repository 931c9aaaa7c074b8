// This file is for turning atom_site rows into atoms.
package mmcif

import (
	"strings"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
)

// cifCol is one quantity we want from the atom_site table. It can be
// under several names. The first name present in the header wins.
type cifCol struct {
	names []string // like auth_asym_id, label_asym_id
	ndx   []int    // position of each name that was found in the header
}

// acn has the columns we read from the atom site table.
type acn struct {
	id, element, x, y, z, resName, resNum, chain, model cifCol
}

func newAcn() acn {
	return acn{
		id:      cifCol{names: []string{"id", "label_atom_id"}},
		element: cifCol{names: []string{"type_symbol", "label_element"}},
		x:       cifCol{names: []string{"Cartn_x", "x_coord"}},
		y:       cifCol{names: []string{"Cartn_y", "y_coord"}},
		z:       cifCol{names: []string{"Cartn_z", "z_coord"}},
		resName: cifCol{names: []string{"label_comp_id", "comp_id", "auth_comp_id"}},
		resNum:  cifCol{names: []string{"label_seq_id", "seq_id", "auth_seq_id"}},
		chain:   cifCol{names: []string{"auth_asym_id", "label_asym_id", "asym_id"}},
		model:   cifCol{names: []string{"pdbx_PDB_model_num"}},
	}
}

// cols lists everything in acn, so we can loop over the lot.
func (a *acn) cols() []*cifCol {
	return []*cifCol{&a.id, &a.element, &a.x, &a.y, &a.z, &a.resName, &a.resNum, &a.chain, &a.model}
}

// sliceAfterASite turns _atom_site.Cartn_x into Cartn_x.
func sliceAfterASite(h string) string {
	return strings.TrimPrefix(h, "_atom_site.")
}

// findCols looks up where each of our names is in the header.
func (a *acn) findCols(headers []string) {
	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		pos[sliceAfterASite(h)] = i
	}
	for _, c := range a.cols() {
		c.ndx = c.ndx[:0]
		for _, n := range c.names {
			if i, ok := pos[n]; ok {
				c.ndx = append(c.ndx, i)
			}
		}
	}
}

// isDotOrQ is true for the two placeholders "." and "?".
func isDotOrQ(s []byte) bool {
	return len(s) == 1 && (s[0] == '.' || s[0] == '?')
}

// value returns the entry for this column in a row. ok is false if no
// name for the column was in the header, the row is too short or the
// entry is a placeholder.
func (c *cifCol) value(row [][]byte) (string, bool) {
	for _, i := range c.ndx {
		if i < len(row) && !isDotOrQ(row[i]) {
			return string(row[i]), true
		}
	}
	return "", false
}

// present is true if at least one name for the column was found.
func (c *cifCol) present() bool { return len(c.ndx) > 0 }

// hasCoords says if the header has all three coordinate columns. A
// table without them cannot give us atoms.
func (a *acn) hasCoords() bool {
	return a.x.present() && a.y.present() && a.z.present()
}

// atom converts one row. ok is false if the coordinates are missing
// or not finite numbers, and the row should be dropped.
func (a *acn) atom(row [][]byte) (at cmmn.Atom, haveID, ok bool) {
	sx, _ := a.x.value(row)
	sy, _ := a.y.value(row)
	sz, _ := a.z.value(row)
	if at.X, at.Y, at.Z, ok = cmmn.Xyz(sx, sy, sz); !ok {
		return at, false, false
	}
	if s, ok := a.id.value(row); ok {
		at.ID, haveID = cmmn.Atoi(s)
	}
	at.Element = "X"
	if s, ok := a.element.value(row); ok {
		at.Element = s
	}
	at.Residue, _ = a.resName.value(row)
	at.ResidueNumber = 1
	if s, ok := a.resNum.value(row); ok {
		if n, ok := cmmn.Atoi(s); ok {
			at.ResidueNumber = n
		}
	}
	at.Chain, _ = a.chain.value(row)
	return at, haveID, true
}
