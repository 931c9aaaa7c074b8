// Package stats counts things in a parsed structure. For each chain we
// tally residues by secondary structure and how many are functional.
// The tallies live in a matrix, one row per chain, so they can be
// turned into fractions in place.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/molstruct/molfile/cmmn"
)

// Columns of the count matrix.
const (
	ColHelix = iota
	ColSheet
	ColLoop
	ColFunc
	nCol
)

// ColNames labels the columns of the count matrix.
var ColNames = [nCol]string{"helix", "sheet", "loop", "functional"}

// ElemCount is how often one element appears.
type ElemCount struct {
	Element string `json:"element"`
	N       int    `json:"n"`
}

// Stats holds the counts for one structure.
// Counts.Mat looks like [chain][column], columns as in ColNames.
type Stats struct {
	Name        string
	Description string
	Format      cmmn.Format
	NAtom       int
	ChainIDs    []string
	NResidue    []int // per chain
	Counts      *matrix.FMatrix2d
	Elements    []ElemCount // most common first
	fracKnwn    bool
}

// Record is the part of a structure given to a summarizer.
type Record struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Format      string `json:"fileFormat"`
	NChain      int    `json:"chains"`
	NResidue    int    `json:"residues"`
	NAtom       int    `json:"atoms"`
	NHelix      int    `json:"helixResidues"`
	NSheet      int    `json:"sheetResidues"`
	NLoop       int    `json:"loopResidues"`
	NFunctional int    `json:"functionalResidues"`
}

// colOf maps a secondary structure tag to its column. Anything
// unknown is counted as loop.
func colOf(ss cmmn.SecStruct) int {
	switch ss {
	case cmmn.Helix:
		return ColHelix
	case cmmn.Sheet:
		return ColSheet
	}
	return ColLoop
}

// elements counts the atoms of each element. Ties are broken by name.
func elements(atoms []cmmn.Atom) []ElemCount {
	m := make(map[string]int)
	for _, a := range atoms {
		m[a.Element]++
	}
	e := make([]ElemCount, 0, len(m))
	for k, n := range m {
		e = append(e, ElemCount{k, n})
	}
	sort.Slice(e, func(i, j int) bool {
		if e[i].N != e[j].N {
			return e[i].N > e[j].N
		}
		return e[i].Element < e[j].Element
	})
	return e
}

// Calc does the counting.
func Calc(s *cmmn.Structure) *Stats {
	st := &Stats{
		Name:        s.Name,
		Description: s.Description,
		Format:      s.FileFormat,
		NAtom:       len(s.Atoms),
		ChainIDs:    make([]string, len(s.Chains)),
		NResidue:    make([]int, len(s.Chains)),
		Counts:      matrix.NewFMatrix2d(len(s.Chains), nCol),
		Elements:    elements(s.Atoms),
	}
	for i, c := range s.Chains {
		st.ChainIDs[i] = c.ID
		st.NResidue[i] = len(c.Residues)
		row := st.Counts.Mat[i]
		for _, r := range c.Residues {
			row[colOf(r.SecondaryStructure)]++
			if r.IsFunctional {
				row[ColFunc]++
			}
		}
	}
	return st
}

// Total sums a column over chains. After Frac it is meaningless, so we
// go back to the residue counts.
func (st *Stats) Total(col int) int {
	var t float32
	for i, row := range st.Counts.Mat {
		if st.fracKnwn {
			t += row[col] * float32(st.NResidue[i])
		} else {
			t += row[col]
		}
	}
	return int(t + 0.5)
}

// TotalResidue is the number of residues in all chains.
func (st *Stats) TotalResidue() int {
	n := 0
	for _, r := range st.NResidue {
		n += r
	}
	return n
}

// Frac converts counts to the fraction of each chain's residues.
// A chain with no residues is left at zero. Calling it twice does
// nothing more.
func (st *Stats) Frac() {
	if st.fracKnwn {
		return
	}
	for i, row := range st.Counts.Mat {
		if n := st.NResidue[i]; n != 0 {
			for j := range row {
				row[j] /= float32(n)
			}
		}
	}
	st.fracKnwn = true
}

// Record gives the summarizer's view of the counts.
func (st *Stats) Record() Record {
	return Record{
		Name:        st.Name,
		Description: st.Description,
		Format:      string(st.Format),
		NChain:      len(st.ChainIDs),
		NResidue:    st.TotalResidue(),
		NAtom:       st.NAtom,
		NHelix:      st.Total(ColHelix),
		NSheet:      st.Total(ColSheet),
		NLoop:       st.Total(ColLoop),
		NFunctional: st.Total(ColFunc),
	}
}

// Write prints a table, one line per chain.
func (st *Stats) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s (%s) %d atoms\n", st.Name, st.Format.Name(), st.NAtom); err != nil {
		return err
	}
	fmt.Fprintf(w, "%-6s %8s", "chain", "residues")
	for _, c := range ColNames {
		fmt.Fprintf(w, " %10s", c)
	}
	fmt.Fprintln(w)
	vfmt := " %10.0f"
	if st.fracKnwn {
		vfmt = " %10.3f"
	}
	for i, id := range st.ChainIDs {
		fmt.Fprintf(w, "%-6s %8d", id, st.NResidue[i])
		for _, v := range st.Counts.Mat[i] {
			fmt.Fprintf(w, vfmt, v)
		}
		fmt.Fprintln(w)
	}
	var e []string
	for _, ec := range st.Elements {
		e = append(e, fmt.Sprintf("%s %d", ec.Element, ec.N))
	}
	_, err := fmt.Fprintf(w, "elements: %s\n", strings.Join(e, ", "))
	return err
}

// Markdown is a short description for an editor hover.
func (st *Stats) Markdown() string {
	r := st.Record()
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n\n", r.Name, st.Format.Name())
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Description)
	}
	fmt.Fprintf(&b, "| chains | residues | atoms |\n|---|---|---|\n| %d | %d | %d |\n\n",
		r.NChain, r.NResidue, r.NAtom)
	fmt.Fprintf(&b, "helix %d, sheet %d, loop %d, functional %d residues\n",
		r.NHelix, r.NSheet, r.NLoop, r.NFunctional)
	return b.String()
}
