package worker

import (
	"context"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
)

// DossierEnricher defines the interface for enriching a single dossier
type DossierEnricher interface {
	EnrichDossier(d model.Dossier) (model.Dossier, error)
}

// EnrichJob represents the enrichment of one dossier
type EnrichJob struct {
	Dossier  model.Dossier
	Enricher DossierEnricher
}

// Execute executes the enrichment job
func (j *EnrichJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &EnrichResult{Dossier: j.Dossier, Err: err}
	}
	d, err := j.Enricher.EnrichDossier(j.Dossier)
	return &EnrichResult{Dossier: d, Err: err}
}

// EnrichResult represents the result of an enrichment job. Err carries a
// data-quality fault of this dossier's correction row; the dossier itself is
// valid either way.
type EnrichResult struct {
	Dossier model.Dossier
	Err     error
}

// GetError returns the error from the enrichment result
func (r *EnrichResult) GetError() error { return r.Err }

// BatchProcessor enriches dossier sets concurrently. Dossiers are mutually
// independent, so the batch is a plain parallel map; the only shared state is
// the read-only correction table inside the enricher.
type BatchProcessor struct {
	enricher    DossierEnricher
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(enricher DossierEnricher, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		enricher:    enricher,
		concurrency: concurrency,
	}
}

// ProcessDossiers enriches all dossiers and returns the results in input
// order, so the written output is deterministic regardless of worker count.
func (b *BatchProcessor) ProcessDossiers(ctx context.Context, dossiers []model.Dossier) []*EnrichResult {
	if len(dossiers) == 0 {
		return []*EnrichResult{}
	}

	jobs := make([]Job, len(dossiers))
	for i, d := range dossiers {
		jobs[i] = &EnrichJob{Dossier: d, Enricher: b.enricher}
	}

	pool := NewPool(b.concurrency)
	results := pool.Run(ctx, jobs)

	enriched := make([]*EnrichResult, len(results))
	for i, result := range results {
		if result == nil {
			enriched[i] = &EnrichResult{Dossier: dossiers[i], Err: ctx.Err()}
			continue
		}
		enriched[i] = result.(*EnrichResult)
	}
	return enriched
}
