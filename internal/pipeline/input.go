package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

var serieHeader = []string{"serieId", "stabsId", "title", "link"}

var dossierHeader = []string{
	"dossierId", "serieId", "stabsId", "title",
	"houseName", "oldHousenumber", "owner1862", "descriptiveNote", "link",
}

// checkHeader validates a CSV header against the expected columns
func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("expected column %q at position %d, got %q", want[i], i+1, got[i])
		}
	}
	return nil
}

// ReadSeries reads the series table written by a fetch run
func ReadSeries(path string) ([]model.Serie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer func() { _ = f.Close() }()

	series, err := readSeries(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return series, nil
}

func readSeries(r io.Reader) ([]model.Serie, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header, serieHeader); err != nil {
		return nil, fmt.Errorf("series header: %w", err)
	}

	var series []model.Serie
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		series = append(series, model.Serie{
			SerieID: row[0],
			StabsID: row[1],
			Title:   row[2],
			Link:    row[3],
		})
	}
	return series, nil
}

// ReadDossiers reads the dossier table written by a fetch run
func ReadDossiers(path string) ([]model.Dossier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dossiers file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dossiers, err := readDossiers(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return dossiers, nil
}

func readDossiers(r io.Reader) ([]model.Dossier, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header, dossierHeader); err != nil {
		return nil, fmt.Errorf("dossiers header: %w", err)
	}

	var dossiers []model.Dossier
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		dossiers = append(dossiers, model.Dossier{
			DossierID:       row[0],
			SerieID:         row[1],
			StabsID:         row[2],
			Title:           row[3],
			HouseName:       optional(row[4]),
			OldHousenumber:  optional(row[5]),
			Owner1862:       optional(row[6]),
			DescriptiveNote: optional(row[7]),
			Link:            row[8],
		})
	}
	return dossiers, nil
}

// WriteSeries writes the series table of a fetch run
func WriteSeries(path string, series []model.Serie) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create series file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write(serieHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range series {
		if err := cw.Write([]string{s.SerieID, s.StabsID, s.Title, s.Link}); err != nil {
			return fmt.Errorf("write serie %s: %w", s.SerieID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteDossiers writes the dossier table of a fetch run
func WriteDossiers(path string, dossiers []model.Dossier) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dossiers file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write(dossierHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, d := range dossiers {
		row := []string{
			d.DossierID, d.SerieID, d.StabsID, d.Title,
			deref(d.HouseName), deref(d.OldHousenumber),
			deref(d.Owner1862), deref(d.DescriptiveNote), d.Link,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write dossier %s: %w", d.DossierID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// optional maps an empty CSV cell to a nil pointer
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref maps a nil pointer to an empty CSV cell
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
