package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
)

// atomFmt puts the fields in the columns parseAtom reads them from.
const atomFmt = "ATOM  %5d %-4s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n"

// clip cuts s to at most n bytes.
func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// atomName makes something for columns 12-15 from the element. One
// letter elements start in column 13 as they do in real files.
func atomName(el string) string {
	if len(el) == 1 {
		return " " + el
	}
	return clip(el, 4)
}

// ssRun is a stretch of consecutive residues with the same tag.
type ssRun struct {
	chain      string
	ss         cmmn.SecStruct
	first, end cmmn.Residue
}

// ssRuns finds stretches of helix or sheet in each chain.
func ssRuns(s *cmmn.Structure) []ssRun {
	var runs []ssRun
	for _, c := range s.Chains {
		var cur *ssRun
		for _, r := range c.Residues {
			if r.SecondaryStructure != cmmn.Helix && r.SecondaryStructure != cmmn.Sheet {
				cur = nil
				continue
			}
			if cur != nil && cur.ss == r.SecondaryStructure {
				cur.end = r
				continue
			}
			runs = append(runs, ssRun{chain: c.ID, ss: r.SecondaryStructure, first: r, end: r})
			cur = &runs[len(runs)-1]
		}
	}
	return runs
}

// Write puts s out as PDB records. Annotation records come after the
// atoms, so that reading the output back sees the chains first.
func Write(w io.Writer, s *cmmn.Structure) error {
	bw := bufio.NewWriter(w)
	if s.Name != "" || s.Code != "" {
		fmt.Fprintf(bw, "HEADER    %-40s%-9s   %-4s\n", clip(s.Name, 40), clip(s.ReleaseDate, 9), clip(s.Code, 4))
	}
	if s.Description != "" {
		fmt.Fprintf(bw, "TITLE     %s\n", s.Description)
	}
	if s.ExperimentMethod != "" {
		fmt.Fprintf(bw, "EXPDTA    %s\n", s.ExperimentMethod)
	}
	if s.Resolution > 0 {
		fmt.Fprintf(bw, "REMARK   2 RESOLUTION.    %.2f ANGSTROMS.\n", s.Resolution)
	}
	for _, a := range s.Atoms {
		fmt.Fprintf(bw, atomFmt, a.ID, atomName(a.Element), clip(a.Residue, 3),
			clip(a.Chain, 1), a.ResidueNumber, a.X, a.Y, a.Z, 1.0, 0.0, clip(a.Element, 2))
	}

	nh, ns := 0, 0
	for _, r := range ssRuns(s) {
		ch := clip(r.chain, 1)
		switch r.ss {
		case cmmn.Helix:
			nh++
			fmt.Fprintf(bw, "HELIX  %3d %3d %-3s %1s %4d  %-3s %1s %4d\n",
				nh, nh, clip(r.first.Name, 3), ch, r.first.ID, clip(r.end.Name, 3), ch, r.end.ID)
		case cmmn.Sheet:
			ns++
			fmt.Fprintf(bw, "SHEET  %3d %3s 1 %-3s %1s%4d  %-3s %1s%4d\n",
				ns, fmt.Sprint("S", ns), clip(r.first.Name, 3), ch, r.first.ID, clip(r.end.Name, 3), ch, r.end.ID)
		}
	}
	nsite := 0
	for _, c := range s.Chains {
		for _, r := range c.Residues {
			if !r.IsFunctional {
				continue
			}
			nsite++
			fmt.Fprintf(bw, "SITE   %3d %3s  1 %-3s %1s%4d\n", nsite, "AC1", clip(r.Name, 3), clip(c.ID, 1), r.ID)
		}
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

// Dump is Write into a string.
func Dump(s *cmmn.Structure) string {
	var sb strings.Builder
	Write(&sb, s) // writing to a strings.Builder cannot fail
	return sb.String()
}
