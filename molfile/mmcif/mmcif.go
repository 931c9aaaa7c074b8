package mmcif

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/andrew-torda/molstruct/molfile/cmmn"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("molstruct.molfile")

const maxLineLen = 1024 * 1024 // Longer lines are an error from the scanner

// Data items that go into the header of the structure. Some files have
// them as single items, some as a one row loop, so the categories
// are in tablesToKeep as well.
const (
	itTitle      = "_struct.title"
	itDescriptor = "_struct.pdbx_descriptor"
	itEntityDesc = "_entity.pdbx_description"
	itEntry      = "_entry.id"
	itMethod     = "_exptl.method"
	itResHigh    = "_refine.ls_d_res_high"
	itReflns     = "_reflns.d_resolution_high"
	itDepDate    = "_pdbx_database_status.recvd_initial_deposition_date"
	itSrcGen     = "_entity_src_gen.pdbx_gene_src_scientific_name"
	itSrcNat     = "_entity_src_nat.pdbx_organism_scientific"
)

var dataToKeep = map[string]bool{
	itTitle: true, itDescriptor: true, itEntityDesc: true, itEntry: true,
	itMethod: true, itResHigh: true, itReflns: true, itDepDate: true,
	itSrcGen: true, itSrcNat: true,
}

var tablesToKeep = map[string]bool{
	"_struct": true, "_entity": true, "_exptl": true, "_refine": true,
	"_reflns": true, "_pdbx_database_status": true,
	"_entity_src_gen": true, "_entity_src_nat": true,
}

// keepTable is a loop we hold on to. Names are the column names
// without the category.
type keepTable struct {
	Names []string
	Vals  [][]string
}

// cmmtScanner is a wrapper around bufio.Scanner that jumps over blank
// lines and lines starting with the comment character, and removes
// leading and trailing space. It counts lines in n, so we can print
// the line number in error messages.
type cmmtScanner struct {
	*bufio.Scanner
	lErr   readError // filled as soon as an error happens
	ctoken []byte    // what cbytes() returns
	n      int       // line number
	cmmt   byte      // comment character
	Ok     bool      // false after an error
}

func newCmmtScanner(r io.Reader, cmmt byte) cmmtScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	return cmmtScanner{Scanner: s, cmmt: cmmt, Ok: true}
}

// cscan moves to the next line with something on it. It returns false
// only on a read error. At the end of input it returns true and
// cbytes() gives nil.
func (s *cmmtScanner) cscan() bool {
	if !s.Ok {
		s.ctoken = nil
		return false
	}
	for s.Scan() {
		s.n++
		b := bytes.TrimSpace(s.Bytes())
		if len(b) == 0 || b[0] == s.cmmt {
			continue
		}
		s.ctoken = b
		return true
	}
	s.ctoken = nil
	if err := s.Err(); err != nil {
		s.fill(err.Error(), true)
		return false
	}
	return true
}

// cbytes is the current line without surrounding space. It is only
// valid until the next cscan.
func (s *cmmtScanner) cbytes() []byte { return s.ctoken }

// reader holds everything while we go through one file.
type reader struct {
	cmmtScanner
	data    map[string]string
	tables  map[string]keepTable
	headers []string
	scrtch  [][]byte
	b       *cmmn.Builder
	model   string // first model number in the atom table
	nShort  int    // atom rows with too few fields
	nModel  int    // atom rows from later models
}

func newReader(r io.Reader) *reader {
	return &reader{
		cmmtScanner: newCmmtScanner(r, '#'),
		data:        make(map[string]string),
		tables:      make(map[string]keepTable),
		scrtch:      make([][]byte, 0, 25),
		b:           cmmn.NewBuilder(),
	}
}

// stateFn is the type of state function. It returns the next state
// function that should act on its input.
type stateFn func(*reader) stateFn

// isSpecial is true if the line is not more of a table. Usually this
// means a new directive is coming. End of input is also special.
func isSpecial(b []byte) bool {
	switch {
	case b == nil:
		return true
	case b[0] == '_':
		return true
	case bytes.HasPrefix(b, []byte("loop_")):
		return true
	case bytes.HasPrefix(b, []byte("data_")):
		return true
	}
	return false
}

// category turns _atom_site.Cartn_x into _atom_site.
func category(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// stateTop looks at the current line and decides where to go next.
func stateTop(mr *reader) stateFn {
	b := mr.cbytes()
	switch {
	case !mr.Ok || b == nil:
		return nil
	case bytes.HasPrefix(b, []byte("loop_")):
		return stateLoop
	case bytes.HasPrefix(b, []byte("data_")):
		return stateSkipLine
	case b[0] == '_':
		return stateDItem
	}
	return stateSkipLine
}

// stateSkipLine jumps over a data block header or a line we cannot
// place, like the remains of a broken table.
func stateSkipLine(mr *reader) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateTop
}

// stateLoop is on a loop_ line. Jump over it and read the headers.
func stateLoop(mr *reader) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateLoopHdr
}

// stateLoopHdr gets the column names of a loop and decides what to do
// with the rows. If any column is from _atom_site, the rows are atoms.
func stateLoopHdr(mr *reader) stateFn {
	mr.headers = mr.headers[:0]
	isAtom := false
	for b := mr.cbytes(); b != nil && b[0] == '_'; b = mr.cbytes() {
		name := string(fields(b, mr.scrtch)[0])
		if strings.HasPrefix(name, "_atom_site.") {
			isAtom = true
		}
		mr.headers = append(mr.headers, name)
		if !mr.cscan() {
			return nil
		}
	}
	switch {
	case len(mr.headers) == 0:
		return stateTop // loop_ with nothing in it
	case isAtom:
		return stateAtomTable
	case tablesToKeep[category(mr.headers[0])]:
		return stateLoopTable
	}
	return stateSkipLoopTable
}

// textField reads a ; delimited text field. The current line starts
// with ';'. The text on the lines is joined with spaces. On return the
// scanner is on the line after the closing ';'.
func textField(mr *reader) (string, bool) {
	parts := []string{string(bytes.TrimSpace(mr.cbytes()[1:]))}
	for {
		if !mr.cscan() {
			return "", false
		}
		b := mr.cbytes()
		if b == nil {
			mr.fill("unterminated text field", true)
			return "", false
		}
		if b[0] == ';' {
			mr.cscan()
			return strings.TrimSpace(strings.Join(parts, " ")), true
		}
		parts = append(parts, string(b))
	}
}

// getNpieces collects n values for one row of a table. Rows may be
// spread over lines and may contain text fields. ok is false if the
// table ended before the row was complete.
func getNpieces(mr *reader, n int) (ret []string, ok bool) {
	for len(ret) < n {
		b := mr.cbytes()
		if isSpecial(b) {
			return nil, false
		}
		if b[0] == ';' {
			s, ok := textField(mr)
			if !ok {
				return nil, false
			}
			ret = append(ret, s)
			continue
		}
		for _, t := range splitRow(b, mr.scrtch) {
			ret = append(ret, string(t))
		}
		if !mr.cscan() {
			return nil, false
		}
	}
	return ret, true
}

// stateLoopTable reads a whole table we want to keep.
func stateLoopTable(mr *reader) stateFn {
	var table keepTable
	tblName := category(mr.headers[0])
	for _, h := range mr.headers {
		table.Names = append(table.Names, strings.TrimPrefix(h, tblName+"."))
	}
	ncol := len(table.Names)
	for {
		row, ok := getNpieces(mr, ncol)
		if !ok {
			break
		}
		table.Vals = append(table.Vals, row[:ncol])
	}
	mr.tables[tblName] = table
	if !mr.Ok {
		return nil
	}
	return stateSkipLoopTable // in case a row was left incomplete
}

// stateAtomTable reads the atom_site rows, one per line.
func stateAtomTable(mr *reader) stateFn {
	acn := newAcn()
	acn.findCols(mr.headers)
	if !acn.hasCoords() {
		return stateSkipLoopTable
	}
	for b := mr.cbytes(); !isSpecial(b); b = mr.cbytes() {
		row := splitRow(b, mr.scrtch)
		switch {
		case len(row) < 5:
			mr.nShort++
		case !mr.firstModel(&acn, row):
			mr.nModel++
		default:
			if a, haveID, ok := acn.atom(row); ok {
				mr.b.AddAtom(a, haveID)
			} else {
				mr.b.Skip()
			}
		}
		if !mr.cscan() {
			return nil
		}
	}
	return stateTop
}

// firstModel says if a row belongs to the first model in the file.
// Without a model column, everything is the first model.
func (mr *reader) firstModel(acn *acn, row [][]byte) bool {
	m, ok := acn.model.value(row)
	if !ok {
		return true
	}
	if mr.model == "" {
		mr.model = m
	}
	return m == mr.model
}

// stateSkipLoopTable reads the rows of a table without saving them.
func stateSkipLoopTable(mr *reader) stateFn {
	for !isSpecial(mr.cbytes()) {
		if mr.cbytes()[0] == ';' {
			if _, ok := textField(mr); !ok {
				return nil
			}
			continue
		}
		if !mr.cscan() {
			return nil
		}
	}
	return stateTop
}

// stateDItem gets a data item. The value is usually on the same line,
// but may be on the next line or in a text field.
func stateDItem(mr *reader) stateFn {
	t, err := splitCifLine(mr.cbytes(), mr.scrtch)
	if err != nil {
		t = fields(mr.cbytes(), mr.scrtch)
	}
	itemName := string(t[0])
	var value string
	if len(t) > 1 {
		parts := make([]string, 0, len(t)-1)
		for _, p := range t[1:] {
			parts = append(parts, string(p))
		}
		value = strings.Join(parts, " ")
		if !mr.cscan() {
			return nil
		}
	} else {
		if !mr.cscan() {
			return nil
		}
		b := mr.cbytes()
		switch {
		case b == nil:
			return nil // item without a value at the end, forget it
		case b[0] == ';':
			var ok bool
			if value, ok = textField(mr); !ok {
				return nil
			}
		case isSpecial(b):
			return stateTop // item without a value, forget it
		default:
			value = string(bytes.Trim(b, `'"`))
			if !mr.cscan() {
				return nil
			}
		}
	}
	if dataToKeep[itemName] {
		if _, seen := mr.data[itemName]; !seen {
			mr.data[itemName] = value
		}
	}
	return stateTop
}

// item returns a data item, either as it was written alone or from the
// first row of its table. Placeholders count as missing.
func (mr *reader) item(name string) (string, bool) {
	v, ok := mr.data[name]
	if !ok {
		tbl, tok := mr.tables[category(name)]
		col := strings.TrimPrefix(name, category(name)+".")
		for i, n := range tbl.Names {
			if tok && n == col && len(tbl.Vals) > 0 {
				v, ok = tbl.Vals[0][i], true
			}
		}
	}
	v = strings.TrimSpace(v)
	if !ok || v == "" || v == "?" || v == "." {
		return "", false
	}
	return v, true
}

// firstItem is item for the first of names that is there.
func (mr *reader) firstItem(names ...string) string {
	for _, n := range names {
		if v, ok := mr.item(n); ok {
			return v
		}
	}
	return ""
}

var unquote = strings.NewReplacer(`'`, "", `"`, "")

// header fills out the descriptive fields from the data items.
func (mr *reader) header() cmmn.Header {
	h := cmmn.Header{
		Name:             cmmn.DfltProtName,
		Description:      mr.firstItem(itDescriptor),
		Code:             mr.firstItem(itEntry),
		Source:           mr.firstItem(itSrcGen, itSrcNat),
		ExperimentMethod: mr.firstItem(itMethod),
		ReleaseDate:      mr.firstItem(itDepDate),
	}
	if s := strings.TrimSpace(unquote.Replace(mr.firstItem(itTitle, itEntityDesc))); s != "" {
		h.Name = s
	}
	if x, ok := cmmn.Float(mr.firstItem(itResHigh, itReflns)); ok {
		h.Resolution = x
	}
	return h
}

// tripleScan is the last resort when the atom table gave nothing. The
// first three numbers in a row on each line are an atom.
func tripleScan(content string, b *cmmn.Builder) {
	for _, line := range cmmn.SplitLines(content) {
		t := strings.TrimSpace(line)
		if t == "" || t[0] == '#' || t[0] == '_' || strings.HasPrefix(t, "loop_") {
			continue
		}
		if x, y, z, ok := cmmn.FirstTriple(strings.Fields(t)); ok {
			b.AddAtom(cmmn.Atom{
				Element: "C", X: x, Y: y, Z: z,
				Residue: cmmn.DfltResName, ResidueNumber: 1, Chain: cmmn.DfltChain,
			}, false)
		}
	}
}

// doFile runs the state machine over the whole input.
func (mr *reader) doFile() error {
	if !mr.cscan() {
		return mr.lErr
	}
	for state := stateTop; state != nil && mr.Ok; {
		state = state(mr)
	}
	if !mr.Ok {
		return mr.lErr
	}
	return nil
}

// Parse reads mmCIF text. The error is a read error with a line number,
// from an over-long line or a text field that never ends.
func Parse(content string) (*cmmn.Structure, error) {
	mr := newReader(strings.NewReader(content))
	if err := mr.doFile(); err != nil {
		return nil, err
	}
	if mr.b.NAtom() == 0 {
		log.Debugf("mmcif: no atoms in atom_site, scanning for coordinates")
		tripleScan(content, mr.b)
	}
	if n := mr.b.NSkip() + mr.nShort; n > 0 || mr.nModel > 0 {
		log.Debugf("mmcif: %d atom rows skipped, %d from later models", n, mr.nModel)
	}
	return mr.b.Finish(mr.header(), cmmn.CIF, content), nil
}
