package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/stats"
)

// Record is one enriched dossier joined with its serie, as written to the
// run outputs.
type Record struct {
	model.Dossier
	SerieTitle string `json:"title_serie"`
	SerieLink  string `json:"link_serie"`
}

var recordHeader = []string{
	"dossierId", "serieId", "stabsId", "title",
	"houseName", "oldHousenumber", "owner1862", "descriptiveNote", "link",
	"newHousenumberFromTitle",
	"oldHousenumberNumber", "oldHousenumberNumberFirst",
	"oldHousenumberSupplement", "oldHousenumberNeighbouringNumber",
	"oldHousenumberIsPartOf", "oldHousenumberIsBann", "oldHousenumberIsCorrected",
	"title_serie", "link_serie",
}

// Renderer writes the enriched records as CSV and JSON Lines
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderCSV writes all records as one CSV table
func (r *Renderer) RenderCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.DossierID, rec.SerieID, rec.StabsID, rec.Title,
			deref(rec.HouseName), deref(rec.OldHousenumber),
			deref(rec.Owner1862), deref(rec.DescriptiveNote), rec.Link,
			rec.NewHousenumber,
			encodeNumbers(rec.Numbers), deref(rec.NumbersFirst),
			deref(rec.Supplement), deref(rec.NeighbouringNumber),
			formatBool(rec.IsPartOf), formatBool(rec.IsBann),
			formatBoolValue(rec.IsCorrected),
			rec.SerieTitle, rec.SerieLink,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", rec.DossierID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderJSONL writes all records as JSON Lines, one object per record
func (r *Renderer) RenderJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record %s: %w", rec.DossierID, err)
		}
	}
	return nil
}

// RenderSummary prints the run counters in a human-readable form
func (r *Renderer) RenderSummary(w io.Writer, s stats.Summary) {
	fmt.Fprintf(w, "Processed %d dossiers (%d with an old house number)\n",
		s.Dossiers, s.WithOldHousenumber)
	fmt.Fprintf(w, "  parsed: %d, unparsed: %d, number conflicts: %d\n",
		s.Parsed, s.Unparsed, s.NumberConflicts)
	fmt.Fprintf(w, "  corrected: %d, Bann: %d\n", s.Corrected, s.Bann)
	if len(s.Faults) > 0 {
		fmt.Fprintf(w, "%d records need manual review:\n", len(s.Faults))
		for _, f := range s.Faults {
			fmt.Fprintf(w, "  %s: %s\n", f.DossierID, f.Reason)
		}
	}
}

// encodeNumbers renders the parsed number list in the correction table's
// textual encoding, so output cells and correction cells read the same.
func encodeNumbers(numbers []string) string {
	return model.EncodeNumberList(numbers)
}

// formatBool renders an optional boolean; nil means "not determined" and
// yields an empty cell.
func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return formatBoolValue(*b)
}

func formatBoolValue(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
