// Splitting lines at spaces and quotes.

/* from https://www.iucr.org/resources/cif/spec/version1.1/cifsyntax
               character or string role
_ (underscore) identifies data name
#              identifies comment
'              delimits non-simple data values
"              delimits non-simple data values
; at beginning of line of text delimits non-simple data values
data_          identifies data block header (case-insensitive)
*/

package mmcif

import (
	"errors"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// iswhite only works for ascii spaces
func iswhite(b byte) bool { return asciiSpace[b] }

// hasQuote says if we cannot use the simple splitter.
func hasQuote(b []byte) bool {
	for _, c := range b {
		if c == squote || c == dquote {
			return true
		}
	}
	return false
}

// fields breaks s into the space separated words. Unlike the library
// version, it appends to scrtch, so a caller can reuse the storage
// from one line to the next.
func fields(s []byte, scrtch [][]byte) [][]byte {
	ret := scrtch[:0]
	i := 0
	for i < len(s) {
		for i < len(s) && iswhite(s[i]) {
			i++
		}
		if i == len(s) {
			break
		}
		start := i
		for i < len(s) && !iswhite(s[i]) {
			i++
		}
		ret = append(ret, s[start:i])
	}
	return ret
}

type sInfo struct { // Holds the state of the state functions
	err     error
	ret     [][]byte // This is what we will really return
	byteIn  []byte
	nxtIndx int
	qtype   byte // type of quote
}

type sfn func(i int, c byte, s *sInfo) sfn // state function

func sfnInQuote(i int, c byte, si *sInfo) sfn { // in quoted region
	if c == si.qtype {
		return sfnExitQuote
	}
	if c == '\n' {
		si.err = errors.New("unterminated quote: " + string(si.byteIn))
		return sfnWhite
	}
	return sfnInQuote
}

// sfnExitQuote is after a quote character. A quote followed by white
// space ends the region. Anything else, like the ' in 'O5'' is part of
// the value.
func sfnExitQuote(i int, c byte, si *sInfo) sfn {
	if iswhite(c) {
		si.ret = append(si.ret, si.byteIn[si.nxtIndx:i-1])
		return sfnWhite
	}
	if c == si.qtype {
		return sfnExitQuote
	}
	return sfnInQuote
}

func sfnInText(i int, c byte, si *sInfo) sfn {
	if iswhite(c) {
		si.ret = append(si.ret, si.byteIn[si.nxtIndx:i])
		return sfnWhite
	}
	return sfnInText
}

func sfnWhite(i int, c byte, si *sInfo) sfn { // in white space
	switch {
	case iswhite(c):
		return sfnWhite
	case c == squote || c == dquote:
		si.qtype = c
		si.nxtIndx = i + 1
		return sfnInQuote
	default:
		si.nxtIndx = i
		return sfnInText
	}
}

// splitCifLine breaks a line into words separated by spaces, where a
// word may be wrapped in matching quotes. The quotes are removed.
// The returned slices point into byteIn.
func splitCifLine(byteIn []byte, retIn [][]byte) ([][]byte, error) {
	if len(byteIn) < 1 {
		return nil, nil
	}
	si := sInfo{ret: retIn[:0], byteIn: byteIn}
	state := sfnWhite
	for i, c := range byteIn {
		state = state(i, c, &si)
	}
	state(len(byteIn), '\n', &si) // end with newline, catches unterminated quotes
	if si.err != nil {
		return nil, si.err
	}
	return si.ret, nil
}

// splitRow is what we use on table rows. Lines without quotes go
// through fields. If the quotes do not match up, we fall back to plain
// white space splitting rather than losing the line.
func splitRow(b []byte, scrtch [][]byte) [][]byte {
	if !hasQuote(b) {
		return fields(b, scrtch)
	}
	if t, err := splitCifLine(b, scrtch); err == nil {
		return t
	}
	return fields(b, scrtch)
}
