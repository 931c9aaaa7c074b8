// An error implementation that saves the line number and the
// line we were trying to read.
// The key is to call xxxx.fill() where xxxx is the comment
// scanner or the reader which contains it.
package mmcif

import (
	"strconv"
)

const maxMsgLen = 70

type readError struct {
	n      int    // line number
	inline string // The line that provoked the error
	desc   string // Description of error
}

// fill stores the problem we have seen for printing out when it is
// convenient. If there was already an error, we neglected it, so the
// old message is kept in front of the new one.
func (s *cmmtScanner) fill(desc string, saveLine bool) {
	const multErrStr string = "\nNew error, but there was already an error from line "
	if !s.Ok {
		desc = s.lErr.desc + multErrStr + strconv.Itoa(s.lErr.n) + ":\n" + desc
	}
	s.Ok = false
	if saveLine {
		s.lErr.n = s.n
	}
	s.lErr.inline = string(s.cbytes())
	s.lErr.desc = desc
}

func firstPart(s string) string {
	if len(s) > maxMsgLen {
		return s[:maxMsgLen]
	}
	return s
}

// Error returns the line number of the last line read, the description
// and the start of the offending line.
func (e readError) Error() string {
	var errmsg string
	if e.n != 0 {
		errmsg = "line " + strconv.Itoa(e.n) + ": "
	}
	errmsg += e.desc
	if e.n != 0 && e.inline != "" {
		errmsg += "\nline starting with\n" + firstPart(e.inline)
	}
	return errmsg
}
