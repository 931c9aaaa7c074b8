package detect_test

import (
	"testing"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
	. "github.com/andrew-torda/molstruct/molfile/detect"
)

const pdbSmall = "HEADER    TEST\nATOM      1  N   ALA A   1      1.000   2.000   3.000  1.00  0.00           N\nEND\n"

const cifRows = `data_1ABC
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
ATOM   1    N N   MET A 1 27.340 24.430 2.614
ATOM   2    C CA  MET A 1 26.266 25.413 2.842
`

var detectTests = []struct {
	name    string
	content string
	fname   string
	want    cmmn.Format
	ok      bool
}{
	{"pdb header", pdbSmall, "", cmmn.PDB, true},
	{"pdb headerless", "ATOM      1  N   ALA A   1      1.000   2.000   3.000\n", "", cmmn.PDB, true},
	{"pdb remark first", "REMARK   1 nothing\nATOM      1  N   ALA B  12      1.000   2.000   3.000\n", "", cmmn.PDB, true},
	{"pdb beats cif", "HEADER    X\n_atom_site.id\nATOM      1  N   ALA A   1      1.000   2.000   3.000\n", "", cmmn.PDB, true},
	{"cif atom rows", cifRows, "", cmmn.CIF, true},
	{"cif entry", "# comment\n_entry.id 1ABC\n", "", cmmn.CIF, true},
	{"cif chem comp", "\n_chem_comp.id ALA\n", "", cmmn.CIF, true},
	{"mol", "benzene\n  prog\n\n  6  6  0  0  0  0  0  0  0  0999 V2000\n", "", cmmn.MOL, true},
	{"mol v3000", "x\n\n\n  0  0  0     0  0            999 V3000\n", "", cmmn.MOL, true},
	{"mol2", "@<TRIPOS>MOLECULE\nlig\n@<TRIPOS>ATOM\n", "", cmmn.MOL2, true},
	{"mol2 other tag", "# c\n@<TRIPOS>BOND\n", "", cmmn.MOL2, true},
	{"ext mol2", "nothing to see here", "a/b/lig.MOL2", cmmn.MOL2, true},
	{"ext mmcif", "nothing to see here", "x.mmcif", cmmn.CIF, true},
	{"ext gz", "nothing to see here", "x.pdb.gz", cmmn.PDB, true},
	{"ext ent", "nothing to see here", "pdb1abc.ent", cmmn.PDB, true},
	{"xyz triple", "3\nwater\nO 0.000 0.000 0.117\n", "", cmmn.PDB, true},
	{"ext before triple", "O 0.000 0.000 0.117\n", "w.mol", cmmn.MOL, true},
	{"unknown", "hello world, nothing here", "readme.txt", "", false},
	{"empty", "", "", "", false},
}

func TestDetect(t *testing.T) {
	for _, dt := range detectTests {
		got, ok := Detect(dt.content, dt.fname)
		if got != dt.want || ok != dt.ok {
			t.Errorf("%s: wanted %q %v got %q %v", dt.name, dt.want, dt.ok, got, ok)
		}
	}
}

var validTests = []struct {
	content string
	f       cmmn.Format
	want    bool
}{
	{pdbSmall, cmmn.PDB, true},
	{"ATOM", cmmn.PDB, false}, // too short
	{"just some 1.0 2.0 junk\n", cmmn.PDB, false},
	{"x\n1.000 2.000 3.000\n", cmmn.PDB, true},
	{cifRows, cmmn.CIF, true},
	{"no underscore loop", cmmn.CIF, false},
	{"_foo 1\n_bar 2\n", cmmn.CIF, false},
	{"name\n\n\n  3  2  0  0\n", cmmn.MOL, true},
	{"name\n\n\nnot counts\n", cmmn.MOL, false},
	{"@<TRIPOS>ATOM\n1 C1 0 0 0 C\n", cmmn.MOL2, true},
	{"@TRIPOS>ATOM broken\n", cmmn.MOL2, false},
	{pdbSmall, cmmn.Format("xyz"), false},
}

func TestValidate(t *testing.T) {
	for i, vt := range validTests {
		if got := Validate(vt.content, vt.f); got != vt.want {
			t.Errorf("case %d (%s): wanted %v got %v", i, vt.f, vt.want, got)
		}
	}
}

func TestAtomShape(t *testing.T) {
	good := "ATOM      1  N   ALA A   1      1.000   2.000   3.000"
	if !IsAtomRecord(good) {
		t.Error("did not recognise", good)
	}
	for _, bad := range []string{
		"ATOM   1    N N   . MET A 1 1 ? 27.340 24.430 2.614",
		"ATOM",
		"HETATM    1  O   HOH A   1",
	} {
		if IsAtomRecord(bad) {
			t.Error("should not match", bad)
		}
	}
}
