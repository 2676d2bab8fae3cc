// Package enrich derives the additional house-number attributes for dossier
// records. Each dossier is processed independently; the enricher holds no
// mutable state and is safe for concurrent use.
package enrich

import (
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/correction"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/housenumber"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

// Enricher applies the house-number parser and the correction overlay to
// dossier records
type Enricher struct {
	parser      *housenumber.Parser
	corrections *correction.Table
}

// NewEnricher creates an enricher using the given correction table
func NewEnricher(corrections *correction.Table) *Enricher {
	return &Enricher{
		parser:      housenumber.NewParser(),
		corrections: corrections,
	}
}

// EnrichDossier derives all house-number attributes for a single dossier:
// the number guessed from the title, the parsed old-house-number attributes,
// the correction overlay, and the first parsed number. The returned error is
// a data-quality fault of this dossier's correction row; the dossier itself
// is still returned and usable.
func (e *Enricher) EnrichDossier(d model.Dossier) (model.Dossier, error) {
	d.NewHousenumber = housenumber.FromTitle(d.Title)

	old := ""
	if d.OldHousenumber != nil {
		old = *d.OldHousenumber
	}
	d.ParsedOldHousenumber = e.parser.Parse(old, d.NewHousenumber)

	corrected, err := e.corrections.Apply(d.DossierID, d.ParsedOldHousenumber)
	d.ParsedOldHousenumber = corrected

	d.NumbersFirst = nil
	if len(corrected.Numbers) > 0 {
		first := corrected.Numbers[0]
		d.NumbersFirst = &first
	}
	return d, err
}
