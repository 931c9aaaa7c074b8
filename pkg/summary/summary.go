// Package summary turns the counts for a structure into a plain
// language summary. The text comes from a language model behind some
// Summarizer. Here we build the prompt, cut the reply into sections and
// write the result out. If the model fails, we still return a summary,
// it just says that nothing is available.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrew-torda/molstruct/pkg/stats"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("molstruct.summary")

// Summary is the four sections of text for one structure.
type Summary struct {
	Name                   string `json:"name"`
	Description            string `json:"description"`
	StructuralFeatures     string `json:"structuralFeatures"`
	FunctionalRegions      string `json:"functionalRegions"`
	BiologicalSignificance string `json:"biologicalSignificance"`
}

// Summarizer is anything that can write a summary from a record.
type Summarizer interface {
	Summarize(ctx context.Context, r stats.Record) (*Summary, error)
}

// Placeholders for sections the reply did not have.
const (
	NoDescription  = "No description available"
	NoStructural   = "No structural features identified"
	NoFunctional   = "No functional regions identified"
	NoBiological   = "No biological significance information available"
	FailedText     = "Failed to generate summary"
	NotAvailable   = "Information not available"
	systemPrompt   = "You are a helpful biology educator who explains molecular structures in simple terms."
	sectionBreak   = "\n\n"
	notProvided    = "Not provided"
	unknownFormat  = "Unknown"
	genericMolType = "molecular"
)

// Prompt is the request sent to the model.
func Prompt(r stats.Record) string {
	kind, fmtName := genericMolType, unknownFormat
	if r.Format != "" {
		kind, fmtName = strings.ToUpper(r.Format), r.Format
	}
	desc := r.Description
	if desc == "" {
		desc = notProvided
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a plain-language summary of a %s structure with the following characteristics:\n", kind)
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Description: %s\n", desc)
	fmt.Fprintf(&b, "Number of chains: %d\n", r.NChain)
	fmt.Fprintf(&b, "Number of residues: %d\n", r.NResidue)
	fmt.Fprintf(&b, "Number of atoms: %d\n", r.NAtom)
	fmt.Fprintf(&b, "File format: %s\n", fmtName)
	b.WriteString("Secondary structure composition:\n")
	fmt.Fprintf(&b, "- Alpha helices: %d residues\n", r.NHelix)
	fmt.Fprintf(&b, "- Beta sheets: %d residues\n", r.NSheet)
	fmt.Fprintf(&b, "- Loops: %d residues\n", r.NLoop)
	fmt.Fprintf(&b, "Functional regions: %d residues identified as functional\n\n", r.NFunctional)
	b.WriteString(`Please provide:
1. A brief description of what this molecule is and its biological role
2. An explanation of its structural features in simple terms
3. A description of the functional regions and their importance
4. The biological significance of this molecule

Keep the language accessible to high school or undergraduate biology students.
`)
	return b.String()
}

// firstWith is the first section containing word, ignoring case.
func firstWith(sections []string, word string) (string, bool) {
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s), word) {
			return s, true
		}
	}
	return "", false
}

// FromReply cuts the model's text at blank lines. The first piece is
// the description. The others are found by the words they contain.
func FromReply(name, reply string) *Summary {
	var sections []string
	for _, s := range strings.Split(strings.ReplaceAll(reply, "\r\n", "\n"), sectionBreak) {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	sm := &Summary{
		Name:                   name,
		Description:            NoDescription,
		StructuralFeatures:     NoStructural,
		FunctionalRegions:      NoFunctional,
		BiologicalSignificance: NoBiological,
	}
	if len(sections) > 0 {
		sm.Description = sections[0]
	}
	if s, ok := firstWith(sections, "structural"); ok {
		sm.StructuralFeatures = s
	}
	if s, ok := firstWith(sections, "functional"); ok {
		sm.FunctionalRegions = s
	}
	if s, ok := firstWith(sections, "biological"); ok {
		sm.BiologicalSignificance = s
	}
	return sm
}

// Failed is the summary we give when the model could not be used.
func Failed(name string) *Summary {
	return &Summary{
		Name:                   name,
		Description:            FailedText,
		StructuralFeatures:     NotAvailable,
		FunctionalRegions:      NotAvailable,
		BiologicalSignificance: NotAvailable,
	}
}

// Generate asks sm for a summary. It does not fail. Errors are logged
// and turned into the Failed summary.
func Generate(ctx context.Context, sm Summarizer, r stats.Record) *Summary {
	s, err := sm.Summarize(ctx, r)
	if err != nil {
		log.Errorf("summarizing %s: %s", r.Name, err)
		return Failed(r.Name)
	}
	return s
}

// ExportTxt is the summary as a plain text document.
func ExportTxt(s *Summary) string {
	return fmt.Sprintf(`MOLECULAR STRUCTURE SUMMARY: %s

DESCRIPTION
%s

STRUCTURAL FEATURES
%s

FUNCTIONAL REGIONS
%s

BIOLOGICAL SIGNIFICANCE
%s`, s.Name, s.Description, s.StructuralFeatures, s.FunctionalRegions, s.BiologicalSignificance)
}
