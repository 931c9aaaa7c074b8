package mmcif

import (
	"strings"
)

// Export some internal functions for testing

// SplitCifLine returns the words of a line as strings.
func SplitCifLine(s string) ([]string, error) {
	t, err := splitCifLine([]byte(s), nil)
	return toStrings(t), err
}

// SplitRow is splitRow with strings.
func SplitRow(s string) []string { return toStrings(splitRow([]byte(s), nil)) }

// Fields is fields with strings.
func Fields(s string) []string { return toStrings(fields([]byte(s), nil)) }

func toStrings(t [][]byte) []string {
	var ret []string
	for _, b := range t {
		ret = append(ret, string(b))
	}
	return ret
}

// LineOfError digs the line number out of a read error.
func LineOfError(err error) (int, bool) {
	if e, ok := err.(readError); ok {
		return e.n, true
	}
	return 0, false
}

// CountLines runs the comment scanner over s and returns the lines it
// gives back.
func CountLines(s string) []string {
	sc := newCmmtScanner(strings.NewReader(s), '#')
	var ret []string
	for sc.cscan() && sc.cbytes() != nil {
		ret = append(ret, string(sc.cbytes()))
	}
	return ret
}
