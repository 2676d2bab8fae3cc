// Package housenumber derives structured house-number attributes from the
// free-text fields of HGB dossiers: a cascading classifier for the historical
// oldHousenumber field and a simpler extractor guessing the modern number
// from the dossier title.
package housenumber

import (
	"regexp"
	"slices"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

// NotProcessedNote is the diagnostic supplement set when the parsed old house
// number turns out to be the number already guessed from the title. Kept in
// German, as it ends up in the published data.
const NotProcessedNote = "Log: Alte Hausnummer wurde als neue Hausnummer detektiert. Alte Hausnummer wurde nicht aufbereitet."

var bannRe = regexp.MustCompile(`(?i)bann`)

// Parser classifies old-house-number texts with an ordered rule set
type Parser struct {
	rules []Rule
}

// NewParser creates a parser with the built-in rules in priority order
func NewParser() *Parser {
	return &Parser{
		rules: []Rule{
			&numberListRule{},
			&bannSuffixRule{},
			&numberPostfixRule{},
			&partOfRule{},
			&partOfPostfixRule{},
		},
	}
}

// Parse classifies an old-house-number text and extracts its structured
// parts. newHousenumber is the number already guessed from the dossier title;
// empty strings stand for absent values. Parse is total: any text shape
// yields a result, never an error.
func (p *Parser) Parse(oldHousenumber, newHousenumber string) model.ParsedOldHousenumber {
	if oldHousenumber == "" {
		return model.ParsedOldHousenumber{}
	}

	// The district scan is independent of the structural rules below and does
	// not short-circuit them.
	isBann := bannRe.MatchString(oldHousenumber)

	var ext Extraction
	matched := false
	for _, rule := range p.rules {
		if !rule.Match(oldHousenumber) {
			continue
		}
		e, ok := rule.Extract(oldHousenumber)
		if ok {
			ext = e
			matched = true
		}
		// First matching rule wins either way; a declined extraction stays
		// unparsed and is left to the manual correction table.
		break
	}
	if !matched {
		return model.ParsedOldHousenumber{IsBann: &isBann}
	}

	// A parsed number identical to the title-derived number means the source
	// text described the new, not the old, numbering. Discard the whole
	// structured result and leave a note.
	if newHousenumber != "" && slices.Contains(ext.Numbers, newHousenumber) {
		note := NotProcessedNote
		return model.ParsedOldHousenumber{Supplement: &note}
	}

	isPartOf := ext.IsPartOf
	return model.ParsedOldHousenumber{
		Numbers:            ext.Numbers,
		Supplement:         ext.Supplement,
		NeighbouringNumber: ext.NeighbouringNumber,
		IsPartOf:           &isPartOf,
		IsBann:             &isBann,
	}
}
