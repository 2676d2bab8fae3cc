// Package stats summarizes an enrichment run: how many dossiers were
// processed, how the old house numbers parsed, and which records carry
// data-quality faults worth a manual look.
package stats

import (
	"fmt"
	"sort"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/housenumber"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

// Summary holds the counters of one enrichment run
type Summary struct {
	Dossiers           int // records processed
	WithOldHousenumber int // records carrying an old house number
	Parsed             int // old house numbers split into structured fields
	Unparsed           int // old house numbers no rule matched
	NumberConflicts    int // old number equals the new number from the title
	Corrected          int // records with a manual correction applied
	Bann               int // records referring to land outside the city
	Faults             []Fault
}

// Fault names a record that needs manual review
type Fault struct {
	DossierID string
	Reason    string
}

// Collector accumulates a Summary over enriched dossiers
type Collector struct {
	summary Summary
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Observe records one enriched dossier. enrichErr is the error returned by
// the enrichment step, nil when the record went through cleanly.
func (c *Collector) Observe(d model.Dossier, enrichErr error) {
	c.summary.Dossiers++

	if enrichErr != nil {
		c.summary.Faults = append(c.summary.Faults, Fault{
			DossierID: d.DossierID,
			Reason:    enrichErr.Error(),
		})
	}
	if d.IsCorrected {
		c.summary.Corrected++
	}
	if d.OldHousenumber == nil || *d.OldHousenumber == "" {
		return
	}
	c.summary.WithOldHousenumber++

	switch {
	case d.Supplement != nil && *d.Supplement == housenumber.NotProcessedNote:
		c.summary.NumberConflicts++
	case len(d.Numbers) > 0:
		c.summary.Parsed++
	default:
		c.summary.Unparsed++
		c.summary.Faults = append(c.summary.Faults, Fault{
			DossierID: d.DossierID,
			Reason:    fmt.Sprintf("old house number %q not parsed", *d.OldHousenumber),
		})
	}
	if d.IsBann != nil && *d.IsBann {
		c.summary.Bann++
	}
}

// Summary returns the accumulated counters with faults sorted by dossier id
func (c *Collector) Summary() Summary {
	s := c.summary
	sort.Slice(s.Faults, func(i, j int) bool {
		return s.Faults[i].DossierID < s.Faults[j].DossierID
	})
	return s
}
