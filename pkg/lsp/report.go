package lsp

import (
	"errors"
	"fmt"

	"github.com/andrew-torda/molstruct/molfile"
	"github.com/andrew-torda/molstruct/pkg/stats"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Report is what we know about one open document.
type Report struct {
	Result *molfile.Result // nil if Err is set
	Err    error
	Stats  *stats.Stats
}

// Analyse parses content. fname is the hint for the format.
func Analyse(content, fname string) *Report {
	r, err := molfile.Parse(content, fname)
	if err != nil {
		return &Report{Err: err}
	}
	return &Report{Result: r, Stats: stats.Calc(r.Structure)}
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func diagnostic(sev protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	src := lsName
	return protocol.Diagnostic{
		Range:    protocol.Range{},
		Severity: severity(sev),
		Source:   &src,
		Message:  msg,
	}
}

// Diagnostics has one entry for each thing worth saying. An unknown
// or mismatched format is an error, a fallback or an empty structure
// is a warning. A good parse gives an information line with counts.
func (r *Report) Diagnostics() []protocol.Diagnostic {
	if r.Err != nil {
		msg := r.Err.Error()
		if errors.Is(r.Err, molfile.ErrFormatMismatch) {
			msg = "format mismatch: " + msg
		}
		return []protocol.Diagnostic{diagnostic(protocol.DiagnosticSeverityError, msg)}
	}
	d := []protocol.Diagnostic{}
	if r.Result.Warning != "" {
		d = append(d, diagnostic(protocol.DiagnosticSeverityWarning, r.Result.Warning))
	}
	if r.Result.Failure == nil {
		rec := r.Stats.Record()
		d = append(d, diagnostic(protocol.DiagnosticSeverityInformation,
			fmt.Sprintf("%s: %d chains, %d residues, %d atoms",
				r.Stats.Format.Name(), rec.NChain, rec.NResidue, rec.NAtom)))
	}
	return d
}

// Hover shows the counts, or the error if there are none.
func (r *Report) Hover() *protocol.Hover {
	text := ""
	if r.Err != nil {
		text = r.Err.Error()
	} else {
		text = r.Stats.Markdown()
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: text},
	}
}
