// Package brokenio wraps a reader so it goes wrong on purpose. It is
// for tests of code which reads structure files from disc or from the
// network. A Reader can pretend the file is empty, or fail with an
// error after a given number of bytes. Until then everything goes
// through as normal.
package brokenio

import (
	"errors"
	"fmt"
	"io"
)

// ErrBroken is the error a Reader makes up.
var ErrBroken = errors.New("brokenio: artificial read failure")

// Reader is the wrapper. The zero value of failAfter means fail at
// once, so NewReader sets it to -1, which means never.
type Reader struct {
	src       io.Reader
	failAfter int
	zeroFile  bool
	nCalled   int
	nByte     int
	verbose   bool
}

// NewReader returns a wrapper which does not break anything yet.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src, failAfter: -1}
}

// FailAfter makes the reader fail once n bytes have been read.
func (r *Reader) FailAfter(n int) *Reader { r.failAfter = n; return r }

// ZeroFile makes the first read say io.EOF, as an empty file does.
func (r *Reader) ZeroFile() *Reader { r.zeroFile = true; return r }

// SetVerbose prints the amount of data on Close.
func (r *Reader) SetVerbose(v bool) { r.verbose = v }

// NByte is how much has gone through.
func (r *Reader) NByte() int { return r.nByte }

// Read passes through to the wrapped reader until it is time to break.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.nCalled++
	if r.zeroFile && r.nCalled == 1 {
		return 0, io.EOF
	}
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, ErrBroken
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err := r.src.Read(p)
	r.nByte += n
	return n, err
}

// Close closes the wrapped reader, if it can be closed.
func (r *Reader) Close() error {
	if r.verbose {
		fmt.Println("Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
