// Package correction applies the manually curated override table to parsed
// old-house-number attributes. The table is maintained outside this tool and
// holds one row per dossier whose automatic parse was found wrong.
package correction

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

// Fixed phrases used when complementing the supplement. Kept in German, as
// they end up in the published data.
const (
	remarkPrefix    = "manuell erfasste Bemerkung: "
	remarkSeparator = " , zusätzliche manuell erfasste Bemerkung: "
)

var correctionHeader = []string{
	"dossierId",
	"oldHouseNumberNumberCorr",
	"oldHousenumberIsPartOfCorr",
	"oldHousenumberNeighbouringNumberCorr",
	"oldHousenumberSupplementAddition",
}

// Table is a read-only lookup of corrections keyed by dossier id. It is
// loaded once per run and shared by all workers.
type Table struct {
	rows map[string]model.Correction
}

// NewTable builds a table from correction rows
func NewTable(rows []model.Correction) *Table {
	t := &Table{rows: make(map[string]model.Correction, len(rows))}
	for _, row := range rows {
		t.rows[row.DossierID] = row
	}
	return t
}

// Load reads the correction table from a CSV file. A structurally invalid
// file (missing columns, wrong header) is a fatal error: partially corrected
// output is worse than no output.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open correction table: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("correction table %s: %w", path, err)
	}
	return NewTable(rows), nil
}

// Read parses correction rows from CSV data
func Read(r io.Reader) ([]model.Correction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(correctionHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, want := range correctionHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, header[i], want)
		}
	}

	var rows []model.Correction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := model.Correction{
			DossierID:          record[0],
			Numbers:            optional(record[1]),
			NeighbouringNumber: optional(record[3]),
			SupplementAddition: optional(record[4]),
		}
		if record[2] != "" {
			b, err := strconv.ParseBool(strings.ToLower(record[2]))
			if err != nil {
				return nil, fmt.Errorf("row %s: invalid isPartOf override %q", record[0], record[2])
			}
			row.IsPartOf = &b
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Len returns the number of correction rows
func (t *Table) Len() int { return len(t.rows) }

// Apply overlays the correction row for the given dossier id onto the parsed
// attributes. A dossier without a row is returned unchanged with
// IsCorrected=false. A malformed numbers encoding is reported as an error
// tied to this dossier and must not abort the processing of other dossiers;
// the remaining overrides of the row are still applied.
func (t *Table) Apply(dossierID string, parsed model.ParsedOldHousenumber) (model.ParsedOldHousenumber, error) {
	row, ok := t.rows[dossierID]
	if !ok {
		parsed.IsCorrected = false
		return parsed, nil
	}
	parsed.IsCorrected = true

	var fault error
	if row.Numbers != nil {
		numbers, err := model.DecodeNumberList(*row.Numbers)
		if err != nil {
			fault = fmt.Errorf("dossier %s: %w", dossierID, err)
		} else {
			parsed.Numbers = numbers
		}
	}
	if row.IsPartOf != nil {
		v := *row.IsPartOf
		parsed.IsPartOf = &v
	}
	if row.NeighbouringNumber != nil {
		v := *row.NeighbouringNumber
		parsed.NeighbouringNumber = &v
	}
	if row.SupplementAddition != nil {
		parsed.Supplement = complemented(parsed.Supplement, *row.SupplementAddition)
	}
	return parsed, fault
}

// complemented appends a manual remark to the supplement. Reapplying the same
// remark is a no-op, so running the overlay on already corrected output
// yields the same result.
func complemented(supplement *string, remark string) *string {
	if supplement == nil {
		s := remarkPrefix + remark
		return &s
	}
	if strings.Contains(*supplement, remarkPrefix+remark) {
		return supplement
	}
	s := *supplement + remarkSeparator + remark
	return &s
}
