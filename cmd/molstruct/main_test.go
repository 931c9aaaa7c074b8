package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pdbText = `HEADER    HYDROLASE                               01-JAN-00   1ABC
TITLE     SMALL TEST
ATOM      1  N   ALA A   1      1.000   2.000   3.000  1.00  0.00           N
ATOM      2  CA  ALA A   1      2.000   2.000   3.000  1.00  0.00           C
ATOM      3  N   GLY A   2      3.000   2.000   3.000  1.00  0.00           N
HELIX    1   1 ALA A    1  GLY A    2  1                                   2
END
`

// run executes the command line and returns stdout, stderr and the
// exit status.
func run(t *testing.T, args ...string) (string, string, int) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", writeFile(t, "c.json", "{}")}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), exitCode(err)
}

func writeFile(t *testing.T, name, text string) string {
	fname := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fname, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestDetectCmd(t *testing.T) {
	good := writeFile(t, "x.pdb", pdbText)
	out, _, code := run(t, "detect", good)
	if code != ExitSuccess || !strings.HasSuffix(strings.TrimSpace(out), "\tpdb") {
		t.Errorf("code %d out %q", code, out)
	}
	bad := writeFile(t, "x.txt", "nothing to see")
	out, _, code = run(t, "detect", good, bad)
	if code != ExitFailure || !strings.Contains(out, bad+"\tunknown") {
		t.Errorf("code %d out %q", code, out)
	}
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{{"parse"}, {"dump", "a", "b"}, {"stats", "--nonsense", "x"}, {"detect"}} {
		if _, _, code := run(t, args...); code != ExitUsageError {
			t.Errorf("%v gave %d", args, code)
		}
	}
	fname := writeFile(t, "x.pdb", pdbText)
	if _, _, code := run(t, "parse", "--format", "xyz", fname); code != ExitUsageError {
		t.Error("bad --format should be a usage error, got", code)
	}
	if _, _, code := run(t, "view", "--representation", "wire", fname); code != ExitUsageError {
		t.Error("bad representation should be a usage error, got", code)
	}
}

func TestParseCmd(t *testing.T) {
	out, _, code := run(t, "parse", writeFile(t, "x.pdb", pdbText))
	if code != ExitSuccess {
		t.Fatal("exit", code)
	}
	for _, s := range []string{`"name": "HYDROLASE"`, `"code": "1ABC"`, `"secondaryStructure": "helix"`} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %s", s)
		}
	}
	if strings.Contains(out, "rawContent") {
		t.Error("raw content without --raw")
	}
	if out, _, _ := run(t, "parse", "--raw", writeFile(t, "x.pdb", pdbText)); !strings.Contains(out, "rawContent") {
		t.Error("--raw lost the raw content")
	}
}

func TestFallbackWarning(t *testing.T) {
	_, errOut, code := run(t, "parse", writeFile(t, "b.mol", "benzene\n  0  0  0  0  0  0  0  0  0  0999 V2000"))
	if code != ExitSuccess || !strings.Contains(errOut, "warning:") {
		t.Errorf("code %d stderr %q", code, errOut)
	}
	_, _, code = run(t, "dump", writeFile(t, "b.mol", "benzene\n  0  0  0  0  0  0  0  0  0  0999 V2000"))
	if code != ExitFailure {
		t.Error("dump of a fallback should fail, got", code)
	}
}

func TestDumpCmd(t *testing.T) {
	out, _, code := run(t, "dump", writeFile(t, "x.pdb", pdbText))
	if code != ExitSuccess {
		t.Fatal("exit", code)
	}
	n := strings.Count(out, "\nATOM  ")
	if n != 3 || !strings.Contains(out, "\nHELIX ") || !strings.HasSuffix(out, "END\n") {
		t.Errorf("%d atoms in\n%s", n, out)
	}
}

func TestStatsCmd(t *testing.T) {
	fname := writeFile(t, "x.pdb", pdbText)
	out, _, _ := run(t, "stats", fname)
	if !strings.Contains(out, "elements: N 2, C 1") {
		t.Error(out)
	}
	out, _, _ = run(t, "stats", "--json", fname)
	if !strings.Contains(out, `"helixResidues": 2`) {
		t.Error(out)
	}
	out, _, _ = run(t, "stats", "--frac", fname)
	if !strings.Contains(out, "1.000") {
		t.Error(out)
	}
}

func TestViewCmd(t *testing.T) {
	out, _, code := run(t, "view", "--synthesize", "--reset", "--color", "chain", writeFile(t, "x.pdb", pdbText))
	if code != ExitSuccess {
		t.Fatal("exit", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("wanted 4 messages, got\n%s", out)
	}
	if !strings.Contains(lines[0], `"type":"loadStructure"`) || !strings.Contains(lines[0], `"colorScheme":"chain"`) {
		t.Error(lines[0])
	}
	if !strings.Contains(lines[2], `"color":"#F8F9FA"`) || lines[3] != `{"type":"resetView"}` {
		t.Error(lines[2], lines[3])
	}
}

func TestSummaryPrompt(t *testing.T) {
	out, _, code := run(t, "summary", "--prompt", writeFile(t, "x.pdb", pdbText))
	if code != ExitSuccess || !strings.Contains(out, "Name: HYDROLASE") || !strings.Contains(out, "Description: SMALL TEST") {
		t.Errorf("code %d\n%s", code, out)
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestFetchCmd(t *testing.T) {
	const cif = "data_1ABC\nloop_\n_atom_site.id\n_atom_site.type_symbol\n" +
		"_atom_site.Cartn_x\n_atom_site.Cartn_y\n_atom_site.Cartn_z\n1 N 1.0 2.0 3.0\n"
	saved := httpClient
	defer func() { httpClient = saved }()
	httpClient = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(cif)), Header: make(http.Header)}, nil
	})}
	out, _, code := run(t, "fetch", "--site", "1", "1abc")
	if code != ExitSuccess || out != cif {
		t.Errorf("code %d out %q", code, out)
	}
	if _, _, code := run(t, "fetch", "nope"); code != ExitFailure {
		t.Error("bad code gave", code)
	}
}
