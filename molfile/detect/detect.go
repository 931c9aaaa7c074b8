// Package detect guesses which of the molecular formats a piece of
// text is in, and checks that text claimed to be in some format is
// not obviously something else.
// Guessing goes through tiers, first hit wins:
//  1. PDB header word on the first line and an ATOM/HETATM record
//  2. any line shaped like a fixed column ATOM record
//  3. mmCIF signatures
//  4. MOL V2000/V3000
//  5. MOL2 @<TRIPOS> tags
//  6. the file name extension
//  7. any line with three floating point numbers in a row, call it PDB
// PDB checks come before mmCIF, so PDB wins ties.
package detect

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
)

const minLen = 10 // Shorter content is never valid

// atomShape is an ATOM record laid out in the legacy columns:
// serial right justified in 6-10, chain at 21, residue number in 22-25.
var atomShape = regexp.MustCompile(`^ATOM  [ 0-9]{4}[0-9] .{4}.{4} [A-Za-z0-9][ 0-9-]{3}[0-9]`)

// coordTriple is a loose x y z triple anywhere in a line.
var coordTriple = regexp.MustCompile(`-?[0-9]+\.[0-9]+\s+-?[0-9]+\.[0-9]+\s+-?[0-9]+\.[0-9]+`)

// countsShape is the start of a MOL counts line, "  5  4".
var countsShape = regexp.MustCompile(`^\s*[0-9]+\s+[0-9]+`)

// firstLine returns the first line that is not blank, trimmed.
func firstLine(content string) string {
	for _, l := range cmmn.SplitLines(content) {
		if t := strings.TrimSpace(l); t != "" {
			return t
		}
	}
	return ""
}

// anyLine says if match is true for some line of content.
func anyLine(content string, match func(string) bool) bool {
	for _, l := range cmmn.SplitLines(content) {
		if match(l) {
			return true
		}
	}
	return false
}

// hasPrefixAny is true if s starts with one of the words.
func hasPrefixAny(s string, words []string) bool {
	for _, w := range words {
		if strings.HasPrefix(s, w) {
			return true
		}
	}
	return false
}

// containsAny is true if one of the words is in s.
func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// IsAtomRecord says if a line has the fixed column shape of an ATOM record.
func IsAtomRecord(line string) bool { return atomShape.MatchString(line) }

// HasCoordTriple says if a line has three floating point numbers in a row.
func HasCoordTriple(line string) bool { return coordTriple.MatchString(line) }

// FromName guesses the format from a file name alone. A trailing
// .gz is ignored, so a.pdb.gz is PDB.
func FromName(fname string) (cmmn.Format, bool) {
	s := strings.ToLower(filepath.Base(fname))
	s = strings.TrimSuffix(s, ".gz")
	switch filepath.Ext(s) {
	case ".pdb", ".ent":
		return cmmn.PDB, true
	case ".cif", ".mmcif":
		return cmmn.CIF, true
	case ".mol":
		return cmmn.MOL, true
	case ".mol2":
		return cmmn.MOL2, true
	}
	return "", false
}

// Detect returns the format of content. fname may be empty. It is only
// used if nothing in the content is decisive. ok is false if we have no
// idea at all.
func Detect(content, fname string) (f cmmn.Format, ok bool) {
	pdbFirst := []string{"HEADER", "TITLE", "COMPND", "ATOM", "HETATM"}
	cifWords := []string{"_atom_site.", "_entry.id", "_chem_comp."}
	first := firstLine(content)

	switch {
	case hasPrefixAny(first, pdbFirst) && containsAny(content, []string{"ATOM  ", "HETATM"}):
		return cmmn.PDB, true
	case anyLine(content, IsAtomRecord):
		return cmmn.PDB, true
	case strings.HasPrefix(first, "data_") || containsAny(content, cifWords):
		return cmmn.CIF, true
	case containsAny(content, []string{"V2000", "V3000"}):
		return cmmn.MOL, true
	case strings.Contains(content, "@<TRIPOS>"):
		return cmmn.MOL2, true
	}
	if fname != "" {
		if f, ok := FromName(fname); ok {
			return f, true
		}
	}
	if anyLine(content, HasCoordTriple) {
		return cmmn.PDB, true
	}
	return "", false
}

// Validate checks that content is plausible for the claimed format.
// It is generous. It only refuses content that is clearly not in
// that format; the parsers deal with broken records.
func Validate(content string, claimed cmmn.Format) bool {
	if len(content) < minLen {
		return false
	}
	switch claimed {
	case cmmn.PDB:
		return containsAny(content, []string{"ATOM", "HETATM"}) || anyLine(content, HasCoordTriple)
	case cmmn.CIF:
		return strings.Contains(content, "_") &&
			containsAny(content, []string{"loop_", "data_", "_atom"})
	case cmmn.MOL:
		if containsAny(content, []string{"V2000", "V3000"}) {
			return true
		}
		lines := cmmn.SplitLines(content)
		return len(lines) > 3 && countsShape.MatchString(lines[3])
	case cmmn.MOL2:
		return strings.Contains(content, "@<TRIPOS>")
	}
	return false
}
