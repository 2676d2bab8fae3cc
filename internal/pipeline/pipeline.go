// Package pipeline orchestrates an enrichment run: it loads the fetched
// series and dossier tables plus the manual correction table, enriches every
// dossier concurrently, joins in the serie metadata and writes the dated
// output files.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/correction"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/enrich"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/stats"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/worker"
)

// nowFunc stamps the output file names (injectable for tests)
var nowFunc = time.Now

// Pipeline runs the enrichment over a fetched metadata snapshot
type Pipeline struct {
	processor *worker.BatchProcessor
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a pipeline from the already loaded correction table
func NewPipeline(cfg *model.Config, corrections *correction.Table) *Pipeline {
	enricher := enrich.NewEnricher(corrections)
	return &Pipeline{
		processor: worker.NewBatchProcessor(enricher, cfg.Concurrency.Workers),
		renderer:  NewRenderer(),
		config:    cfg,
	}
}

// RunResult names the files written by a run
type RunResult struct {
	CSVPath   string
	JSONLPath string
	Summary   stats.Summary
}

// Run enriches all dossiers and writes the dated CSV and JSONL outputs into
// the configured output directory.
func (p *Pipeline) Run(ctx context.Context, seriesPath, dossiersPath string) (*RunResult, error) {
	series, err := ReadSeries(seriesPath)
	if err != nil {
		return nil, err
	}
	dossiers, err := ReadDossiers(dossiersPath)
	if err != nil {
		return nil, err
	}

	records, summary := p.enrichAll(ctx, series, dossiers)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	if err := os.MkdirAll(p.config.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	stamp := nowFunc().Format("20060102")
	csvPath := filepath.Join(p.config.Output.Dir, stamp+"_hgb_metadaten.csv")
	jsonlPath := filepath.Join(p.config.Output.Dir, stamp+"_hgb_metadaten.jsonl")

	if err := p.writeCSV(csvPath, records); err != nil {
		return nil, err
	}
	if err := p.writeJSONL(jsonlPath, records); err != nil {
		return nil, err
	}

	return &RunResult{CSVPath: csvPath, JSONLPath: jsonlPath, Summary: summary}, nil
}

// enrichAll enriches the dossiers concurrently and joins each one with its
// serie. Dossiers whose serie is missing from the series table keep empty
// serie columns and are flagged in the summary.
func (p *Pipeline) enrichAll(ctx context.Context, series []model.Serie, dossiers []model.Dossier) ([]Record, stats.Summary) {
	serieByID := make(map[string]model.Serie, len(series))
	for _, s := range series {
		serieByID[s.SerieID] = s
	}

	results := p.processor.ProcessDossiers(ctx, dossiers)

	collector := stats.NewCollector()
	records := make([]Record, 0, len(results))
	for _, res := range results {
		d := res.Dossier
		enrichErr := res.Err
		if enrichErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: enrich %s: %v\n", d.DossierID, enrichErr)
		}
		serie, ok := serieByID[d.SerieID]
		if !ok {
			enrichErr = fmt.Errorf("serie %s not in series table", d.SerieID)
			fmt.Fprintf(os.Stderr, "Warning: dossier %s: %v\n", d.DossierID, enrichErr)
		}
		collector.Observe(d, enrichErr)
		records = append(records, Record{
			Dossier:    d,
			SerieTitle: serie.Title,
			SerieLink:  serie.Link,
		})
	}
	return records, collector.Summary()
}

func (p *Pipeline) writeCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := p.renderer.RenderCSV(f, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (p *Pipeline) writeJSONL(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := p.renderer.RenderJSONL(f, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
