package stats

import (
	"errors"
	"testing"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/housenumber"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCollector(t *testing.T) {
	c := NewCollector()

	// Parsed record with a Bann marker.
	c.Observe(model.Dossier{
		DossierID:      "HGB_1_014_003",
		OldHousenumber: strPtr("48 A (Bann)"),
		ParsedOldHousenumber: model.ParsedOldHousenumber{
			Numbers: []string{"48 A"},
			IsBann:  boolPtr(true),
		},
	}, nil)

	// No old house number at all.
	c.Observe(model.Dossier{DossierID: "HGB_1_014_004"}, nil)

	// Old number detected as the new number: not processed.
	c.Observe(model.Dossier{
		DossierID:      "HGB_1_014_005",
		OldHousenumber: strPtr("12"),
		ParsedOldHousenumber: model.ParsedOldHousenumber{
			Supplement: strPtr(housenumber.NotProcessedNote),
		},
	}, nil)

	// Unparsed record, plus a manual correction.
	c.Observe(model.Dossier{
		DossierID:      "HGB_1_014_006",
		OldHousenumber: strPtr("siehe Band 7"),
		ParsedOldHousenumber: model.ParsedOldHousenumber{
			IsCorrected: true,
		},
	}, nil)

	// Enrichment fault.
	c.Observe(model.Dossier{
		DossierID:      "HGB_1_014_001",
		OldHousenumber: strPtr("746 A, 747"),
		ParsedOldHousenumber: model.ParsedOldHousenumber{
			Numbers:     []string{"746 A", "747"},
			IsCorrected: true,
		},
	}, errors.New("decode corrected number list"))

	s := c.Summary()
	if s.Dossiers != 5 {
		t.Errorf("Dossiers = %d, want 5", s.Dossiers)
	}
	if s.WithOldHousenumber != 4 {
		t.Errorf("WithOldHousenumber = %d, want 4", s.WithOldHousenumber)
	}
	if s.Parsed != 2 {
		t.Errorf("Parsed = %d, want 2", s.Parsed)
	}
	if s.Unparsed != 1 {
		t.Errorf("Unparsed = %d, want 1", s.Unparsed)
	}
	if s.NumberConflicts != 1 {
		t.Errorf("NumberConflicts = %d, want 1", s.NumberConflicts)
	}
	if s.Corrected != 2 {
		t.Errorf("Corrected = %d, want 2", s.Corrected)
	}
	if s.Bann != 1 {
		t.Errorf("Bann = %d, want 1", s.Bann)
	}
	if len(s.Faults) != 2 {
		t.Fatalf("Faults = %d, want 2", len(s.Faults))
	}
	// Faults come back sorted by dossier id.
	if s.Faults[0].DossierID != "HGB_1_014_001" || s.Faults[1].DossierID != "HGB_1_014_006" {
		t.Errorf("Unexpected fault order: %+v", s.Faults)
	}
}

func TestCollector_Empty(t *testing.T) {
	s := NewCollector().Summary()
	if s.Dossiers != 0 || len(s.Faults) != 0 {
		t.Errorf("Expected zero summary, got %+v", s)
	}
}
