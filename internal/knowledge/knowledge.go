// Package knowledge fetches the association's reference material (published
// documents and the public website) and caches the combined text for the
// lifetime of the process.
package knowledge

import "strings"

// Section is the labeled text of one successfully fetched source.
type Section struct {
	Label string
	Text  string
}

// Blob is the concatenated knowledge text handed to the prompt assembler.
// Once built it is never mutated.
type Blob struct {
	Sections []Section
	Text     string
}

func newBlob(sections []Section) *Blob {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, "=== "+s.Label+" ===\n"+s.Text)
	}
	return &Blob{
		Sections: sections,
		Text:     strings.Join(parts, "\n\n"),
	}
}
