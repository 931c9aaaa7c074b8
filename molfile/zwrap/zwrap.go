// Package zwrap hides gzip compression of structure files. Wrap a
// file (or anything that can be read and closed) and reading from the
// wrapper gives the uncompressed text. Close shuts the decompressor,
// then the file underneath.
package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
)

// magic is the start of every gzip stream.
var magic = []byte{0x1f, 0x8b}

// Reader is what we return. zr is nil for an uncompressed source.
type Reader struct {
	src io.ReadCloser
	zr  *gzip.Reader
}

// Compressed says if we are decompressing.
func (r *Reader) Compressed() bool { return r.zr != nil }

// Read reads from the decompressor if there is one.
func (r *Reader) Read(p []byte) (int, error) {
	if r.zr != nil {
		return r.zr.Read(p)
	}
	return r.src.Read(p)
}

// Close closes the decompressor and then the source. It reports both
// errors if both fail.
func (r *Reader) Close() error {
	if r.zr == nil {
		return r.src.Close()
	}
	return errors.Join(r.zr.Close(), r.src.Close())
}

// Wrap insists that src is gzipped. The error is gzip's, if it is not.
func Wrap(src io.ReadCloser) (*Reader, error) {
	zr, err := gzip.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &Reader{src: src, zr: zr}, nil
}

// WrapMaybe looks at the start of src and only decompresses if it
// is gzipped. Either way, src is rewound first. The Reader cannot
// seek.
func WrapMaybe(src io.ReadSeekCloser) (*Reader, error) {
	if r, err := Wrap(src); err == nil {
		return r, nil
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &Reader{src: src}, nil
}

// IsGzip checks the magic bytes.
func IsGzip(b []byte) bool { return bytes.HasPrefix(b, magic) }

// Inflate returns b uncompressed. If b is not gzipped, it is returned
// as it is.
func Inflate(b []byte) ([]byte, error) {
	if !IsGzip(b) {
		return b, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
