package load_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/molstruct/brokenio"
	. "github.com/andrew-torda/molstruct/pkg/load"
)

const pdbText = "ATOM      1  N   ALA A   1      1.000   2.000   3.000  1.00  0.00           N\nEND\n"

func writeFile(t *testing.T, name string, data []byte) string {
	fname := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fname, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestDecode(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
		nBad int
	}{
		{[]byte("plain"), "plain", 0},
		{[]byte("\xef\xbb\xbfHEADER"), "HEADER", 0},
		{[]byte("1.5 \xc5ngstr\xf6m"), "1.5 Ångström", 2},
		{[]byte("ok Å"), "ok Å", 0},
		{nil, "", 0},
	}
	for _, tt := range tests {
		got, nBad := Decode(tt.in)
		if got != tt.want || nBad != tt.nBad {
			t.Errorf("Decode(%q) = %q, %d want %q, %d", tt.in, got, nBad, tt.want, tt.nBad)
		}
	}
}

func TestRead(t *testing.T) {
	fname := writeFile(t, "x.pdb", []byte(pdbText))
	f, err := Read(fname)
	if err != nil {
		t.Fatal(err)
	}
	if f.Content != pdbText || f.Compressed || f.Name != fname {
		t.Errorf("got %+v", f)
	}
}

func gzipped(s string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(s))
	zw.Close()
	return buf.Bytes()
}

func TestReadGzip(t *testing.T) {
	f, err := Read(writeFile(t, "x.pdb.gz", gzipped(pdbText)))
	if err != nil {
		t.Fatal(err)
	}
	if f.Content != pdbText || !f.Compressed {
		t.Errorf("got %+v", f)
	}
}

func TestReadOdd(t *testing.T) {
	f, err := Read(writeFile(t, "empty.pdb", nil))
	if err != nil || f.Content != "" {
		t.Error("empty file", f, err)
	}
	if _, err := Read(filepath.Join(t.TempDir(), "not_there.pdb")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Read(t.TempDir()); err == nil {
		t.Error("directory should fail")
	}
	if _, err := Read(writeFile(t, "bad.gz", []byte{0x1f, 0x8b, 8, 0, 0})); err == nil {
		t.Error("broken gzip should fail")
	}
}

func TestFromReader(t *testing.T) {
	f, err := FromReader(strings.NewReader(pdbText), "stream")
	if err != nil || f.Content != pdbText || f.Name != "stream" {
		t.Error(f, err)
	}
	r := brokenio.NewReader(strings.NewReader(pdbText)).FailAfter(20)
	if _, err := FromReader(r, "broken"); !errors.Is(err, brokenio.ErrBroken) {
		t.Error("read failure not passed on", err)
	}
	r = brokenio.NewReader(strings.NewReader(pdbText)).ZeroFile()
	if f, err := FromReader(r, "empty"); err != nil || f.Content != "" {
		t.Error("zero length stream", f, err)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func canned(status int, body []byte, gotURL *string) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		*gotURL = r.URL.String()
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Body:       io.NopCloser(bytes.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})}
}

const cifText = "data_1ABC\n_entry.id 1ABC\n"

func TestURL(t *testing.T) {
	u, err := URL("1ABC", 0)
	if err != nil || u != "https://files.rcsb.org/download/1abc.cif.gz" {
		t.Error(u, err)
	}
	u1, _ := URL("1abc", 1)
	u4, _ := URL("1abc", 1+len(Sites))
	if u1 != u4 {
		t.Error("site numbers should wrap", u1, u4)
	}
	for _, code := range []string{"abc", "1abcd", "ABCD", ""} {
		if _, err := URL(code, 0); err == nil {
			t.Errorf("%q should be rejected", code)
		}
	}
}

func TestFetch(t *testing.T) {
	var got string
	f, err := Fetch(context.Background(), canned(200, gzipped(cifText), &got), "1ABC", 0)
	if err != nil {
		t.Fatal(err)
	}
	if f.Content != cifText || f.Name != "1abc.cif" || got != "https://files.rcsb.org/download/1abc.cif.gz" {
		t.Errorf("%+v from %s", f, got)
	}
	f, err = Fetch(context.Background(), canned(200, []byte(cifText), &got), "1abc", 1)
	if err != nil || f.Content != cifText || f.Compressed {
		t.Error("uncompressed site", f, err)
	}
	if _, err := Fetch(context.Background(), canned(404, nil, &got), "1abc", 1); err == nil {
		t.Error("404 should fail")
	}
	if _, err := Fetch(context.Background(), canned(200, []byte(cifText), &got), "1abc", 0); err == nil {
		t.Error("plain text from a gzip site should fail")
	}
}
