package pdb_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
	. "github.com/andrew-torda/molstruct/molfile/pdb"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// atomLine makes a correctly laid out ATOM record.
func atomLine(id int, name, res, chain string, num int, x, y, z float64, el string) string {
	return fmt.Sprintf("ATOM  %5d %-4s %-3s %1s%4d    %8.3f%8.3f%8.3f  1.00  0.00          %2s",
		id, name, res, chain, num, x, y, z, el)
}

func TestSmall(t *testing.T) {
	in := "HEADER    TEST\nATOM      1  N   ALA A   1      1.000   2.000   3.000  1.00  0.00           N\nEND\n"
	s, err := Parse(in)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmmn.Check(s); err != nil {
		t.Fatal(err)
	}
	want := cmmn.Atom{ID: 1, Element: "N", X: 1, Y: 2, Z: 3, Residue: "ALA", ResidueNumber: 1, Chain: "A"}
	if len(s.Atoms) != 1 {
		t.Fatal("wanted one atom, got", len(s.Atoms))
	}
	if diff := cmp.Diff(want, s.Atoms[0]); diff != "" {
		t.Error("atom differs (-want +got)\n", diff)
	}
	if len(s.Chains) != 1 || s.Chains[0].ID != "A" || len(s.Chains[0].Residues) != 1 {
		t.Fatalf("bad chains %+v", s.Chains)
	}
	r := s.Chains[0].Residues[0]
	if r.ID != 1 || r.SecondaryStructure != cmmn.Loop {
		t.Errorf("bad residue %+v", r)
	}
	if s.Name != "TEST" || s.FileFormat != cmmn.PDB || s.RawContent != in {
		t.Errorf("header: name %q format %q", s.Name, s.FileFormat)
	}
}

func TestResidueSort(t *testing.T) {
	var lines []string
	for i, n := range []int{5, 1, 3} {
		lines = append(lines, atomLine(i+1, "CA", "GLY", "A", n, 1, 1, 1, "C"))
	}
	s, _ := Parse(strings.Join(lines, "\n"))
	var got []int
	for _, r := range s.Chains[0].Residues {
		got = append(got, r.ID)
	}
	if diff := cmp.Diff([]int{1, 3, 5}, got); diff != "" {
		t.Error(diff)
	}
}

func TestHelixSheetSite(t *testing.T) {
	var lines []string
	for n := 1; n <= 30; n++ {
		lines = append(lines, atomLine(n, "CA", "ALA", "A", n, float64(n), 0, 0, "C"))
	}
	lines = append(lines,
		"HELIX    1   1 ALA A   10  ALA A   15",
		"SHEET    1   A 2 VAL A  20  VAL A  24",
		"HELIX    2   2 ALA Q    1  ALA Q    5", // chain not seen
		"SITE     1 AC1  3 ALA A   3  ALA A   4  ALA B 119",
	)
	s, err := Parse(strings.Join(lines, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cmmn.Check(s); err != nil {
		t.Fatal(err)
	}
	for _, r := range s.Chains[0].Residues {
		want := cmmn.Loop
		switch {
		case r.ID >= 10 && r.ID <= 15:
			want = cmmn.Helix
		case r.ID >= 20 && r.ID <= 24:
			want = cmmn.Sheet
		}
		if r.SecondaryStructure != want {
			t.Errorf("residue %d wanted %s got %s", r.ID, want, r.SecondaryStructure)
		}
		if isSite := r.ID == 3 || r.ID == 4; r.IsFunctional != isSite {
			t.Errorf("residue %d functional %v", r.ID, r.IsFunctional)
		} else if isSite && r.FunctionalType != cmmn.FuncBinding {
			t.Error("functional type", r.FunctionalType)
		}
	}
	if s.Chain("Q") != nil {
		t.Error("HELIX record should not make a chain")
	}
}

// TestHelixBeforeAtoms has the HELIX record before the atoms, as in
// real files. It refers to a chain we have not seen, so is ignored.
func TestHelixBeforeAtoms(t *testing.T) {
	in := "HELIX    1   1 ALA A    1  ALA A    2\n" +
		atomLine(1, "CA", "ALA", "A", 1, 0, 0, 0, "C") + "\n" +
		atomLine(2, "CA", "ALA", "A", 2, 0, 0, 0, "C") + "\n"
	s, _ := Parse(in)
	for _, r := range s.Chains[0].Residues {
		if r.SecondaryStructure != cmmn.Loop {
			t.Error("early HELIX should be ignored, residue", r.ID)
		}
	}
}

func TestBadLines(t *testing.T) {
	good := atomLine(1, "N", "ALA", "A", 1, 1, 2, 3, "N")
	badX := strings.Replace(atomLine(2, "C", "ALA", "A", 1, 1, 2, 3, "C"), "   1.000", "   x.000", 1)
	short := "ATOM      3  C   ALA A   1      1.000"
	noID := "ATOM        " + good[12:]
	dupID := good
	noChain := atomLine(9, "O", "HOH", "", 7, 4, 5, 6, "O")
	s, err := Parse(strings.Join([]string{good, badX, short, noID, dupID, "", "garbage", noChain}, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cmmn.Check(s); err != nil {
		t.Fatal(err)
	}
	var ids []int
	for _, a := range s.Atoms {
		ids = append(ids, a.ID)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 9}, ids); diff != "" {
		t.Error("ids (-want +got)\n", diff)
	}
	if s.Atoms[3].Chain != cmmn.DfltChain {
		t.Error("blank chain should be", cmmn.DfltChain)
	}
}

func TestParseAtom(t *testing.T) {
	line := atomLine(12, " CA", "LYS", "B", -3, -1.5, 22.25, 0.001, "")
	a, haveID, ok := ParseAtom(line)
	if !ok || !haveID {
		t.Fatal("ParseAtom failed on", line)
	}
	want := cmmn.Atom{ID: 12, Element: "C", X: -1.5, Y: 22.25, Z: 0.001, Residue: "LYS", ResidueNumber: -3, Chain: "B"}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Error(diff)
	}
	if _, _, ok := ParseAtom("ATOM      1  N   ALA A   1      1.000   2.000"); ok {
		t.Error("missing z should fail")
	}
	if _, _, ok := ParseAtom("ATOM      1  N   ALA A   x      1.000   2.000   3.000"); ok {
		t.Error("bad residue number should fail")
	}
}

func TestElementFromName(t *testing.T) {
	var nametests = []struct{ name, want string }{
		{" CA ", "C"},
		{"FE  ", "FE"},
		{"1HB ", "H"},
		{" N  ", "N"},
		{"    ", ""},
	}
	for _, nt := range nametests {
		line := "ATOM      1 " + nt.name
		if got := ElementFromName(line); got != nt.want {
			t.Errorf("%q wanted %q got %q", nt.name, nt.want, got)
		}
	}
}

func TestSiteResidues(t *testing.T) {
	chains, nums := SiteResidues("SITE     1 AC1  3 HIS A  94  HIS A  96  HIS B 119")
	if diff := cmp.Diff([]string{"A", "A", "B"}, chains); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]int{94, 96, 119}, nums); diff != "" {
		t.Error(diff)
	}
}

const hdrFile = `HEADER    HYDROLASE                               15-MAY-98   1ABC
TITLE     CRYSTAL STRUCTURE OF A
TITLE    2 SMALL HYDROLASE
SOURCE   2 ORGANISM_SCIENTIFIC: HOMO SAPIENS;
EXPDTA    X-RAY DIFFRACTION
REMARK   2 RESOLUTION.    1.90 ANGSTROMS.
`

func TestMetadata(t *testing.T) {
	s, _ := Parse(hdrFile + atomLine(1, "CA", "ALA", "A", 1, 0, 0, 0, "C"))
	want := cmmn.Header{
		Name:             "HYDROLASE",
		Description:      "CRYSTAL STRUCTURE OF A SMALL HYDROLASE",
		Code:             "1ABC",
		Source:           "HOMO SAPIENS",
		Resolution:       1.9,
		ExperimentMethod: "X-RAY DIFFRACTION",
		ReleaseDate:      "15-MAY-98",
	}
	got := cmmn.Header{Name: s.Name, Description: s.Description, Code: s.Code, Source: s.Source,
		Resolution: s.Resolution, ExperimentMethod: s.ExperimentMethod, ReleaseDate: s.ReleaseDate}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error("header (-want +got)\n", diff)
	}
	if s, _ := Parse("REMARK nothing\n" + atomLine(1, "CA", "ALA", "A", 1, 0, 0, 0, "C")); s.Name != cmmn.DfltProtName {
		t.Error("default name not set, got", s.Name)
	}
}

// TestRoundTrip writes a structure and reads it back.
func TestRoundTrip(t *testing.T) {
	var lines []string
	id := 1
	for _, ch := range []string{"A", "B"} {
		for n := 1; n <= 12; n++ {
			for _, el := range []string{"N", "C", "O"} {
				lines = append(lines, atomLine(id, el, "SER", ch, n, float64(id)*0.5, -float64(n), 1.25, el))
				id++
			}
		}
	}
	lines = append(lines,
		"HELIX    1   1 SER A    2  SER A    6",
		"SHEET    1   A 2 SER B   8  SER B  11",
		"SITE     1 AC1  1 SER A  12",
	)
	s1, _ := Parse(hdrFile + strings.Join(lines, "\n"))
	s2, err := Parse(Dump(s1))
	if err != nil {
		t.Fatal(err)
	}
	opt := cmpopts.IgnoreFields(cmmn.Structure{}, "ID", "RawContent", "Source")
	if diff := cmp.Diff(s1, s2, opt); diff != "" {
		t.Error("round trip (-first +second)\n", diff)
	}
}
