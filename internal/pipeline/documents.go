package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

var documentHeader = []string{"stabsId", "title", "type", "descriptiveNote", "date", "link"}

// DatedDocument is one document-level record with its resolved date
type DatedDocument struct {
	model.Document
	Date string // Expressed date of the associated-date record, "" if none
}

// WriteDocuments writes the document table of a fetch run
func WriteDocuments(path string, documents []DatedDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create documents file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write(documentHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, d := range documents {
		row := []string{
			d.StabsID, d.Title, d.Type,
			deref(d.DescriptiveNote), d.Date, d.Link,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write document %s: %w", d.StabsID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
