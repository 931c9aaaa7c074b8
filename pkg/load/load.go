// Package load gets the text of a structure file from disc or from a
// stream. Files are memory mapped, gzip is undone and the bytes are
// turned into a string, even if they are not valid UTF-8. The parsers
// never call this. They only see the string.
package load

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/andrew-torda/molstruct/molfile/zwrap"
	"github.com/edsrzf/mmap-go"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("molstruct.load")

// StdinName is the file name meaning standard input.
const StdinName = "-"

var bom = []byte{0xef, 0xbb, 0xbf}

// File is the text of one structure file.
type File struct {
	Name       string // as given, used as a format hint
	Content    string
	Compressed bool
	NReplaced  int // bytes that were not UTF-8
}

// Decode turns b into a string. Valid UTF-8 is kept as it is. Any
// byte which is not part of a valid sequence is read as Latin-1, so
// column positions in fixed format records stay where they were.
// A leading byte order mark is dropped. nBad counts the odd bytes.
func Decode(b []byte) (s string, nBad int) {
	b = bytes.TrimPrefix(b, bom)
	if utf8.Valid(b) {
		return string(b), 0
	}
	var sb bytes.Buffer
	sb.Grow(len(b) + len(b)/8)
	for len(b) > 0 {
		r, n := utf8.DecodeRune(b)
		if r == utf8.RuneError && n == 1 {
			sb.WriteRune(rune(b[0]))
			nBad++
		} else {
			sb.Write(b[:n])
		}
		b = b[n:]
	}
	return sb.String(), nBad
}

// fromBytes inflates and decodes. b may be a mapping which goes away
// after we return, so everything kept is copied.
func fromBytes(name string, b []byte) (*File, error) {
	f := &File{Name: name, Compressed: zwrap.IsGzip(b)}
	raw, err := zwrap.Inflate(b)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", name, err)
	}
	f.Content, f.NReplaced = Decode(raw)
	if f.NReplaced > 0 {
		log.Warningf("%s: %d bytes were not UTF-8, read as Latin-1", name, f.NReplaced)
	}
	log.Debugf("%s: %d bytes, compressed %v", name, len(f.Content), f.Compressed)
	return f, nil
}

// byMmap maps the file read only. Empty files cannot be mapped.
func byMmap(fname string) (*File, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", fname)
	}
	if fi.Size() == 0 {
		return &File{Name: fname}, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	return fromBytes(fname, mm)
}

// Read gets a file by name. The name "-" means standard input.
func Read(fname string) (*File, error) {
	if fname == StdinName {
		return FromReader(os.Stdin, "")
	}
	return byMmap(fname)
}

// FromReader slurps r. name is only kept as a hint.
func FromReader(r io.Reader, name string) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return fromBytes(name, b)
}
