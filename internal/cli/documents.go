package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/pipeline"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/stabs"
)

var (
	documentsSeries      string
	documentsOutDir      string
	documentsTitleFilter string
	documentsTimeout     time.Duration
	documentsRPS         float64
	documentsNoCache     bool
)

// documentsCmd represents the documents command
var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Fetch document-level records of the Regesten series",
	Long: `Documents queries the document-level records below selected series and
resolves their associated dates. Unlike the house dossiers, the Regesten
series hold individual documents at arbitrary depth, each with its own
record type and date.

The series table from a fetch run selects the input; only series whose
title matches the filter are queried. The result is written as
stabs_document.csv into the output directory.

Example:
  hgb-metadata documents --series data/stabs_serie.csv
  hgb-metadata documents --title-filter Regesten --out-dir ./data`,
	RunE: runDocuments,
}

func init() {
	rootCmd.AddCommand(documentsCmd)

	documentsCmd.Flags().StringVar(&documentsSeries, "series", "data/stabs_serie.csv", "series table from a fetch run")
	documentsCmd.Flags().StringVar(&documentsTitleFilter, "title-filter", "Regesten", "only query series whose title contains this text")
	documentsCmd.Flags().StringVar(&documentsOutDir, "out-dir", "./data", "output directory for the document table")
	documentsCmd.Flags().DurationVar(&documentsTimeout, "timeout", 30*time.Second, "per-request timeout")
	documentsCmd.Flags().Float64Var(&documentsRPS, "rps", 2, "max requests per second against the endpoint")
	documentsCmd.Flags().BoolVar(&documentsNoCache, "no-cache", false, "disable the response cache (force fresh queries)")
}

func runDocuments(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := loadConfig()
	cfg.HTTP.Timeout = documentsTimeout
	cfg.HTTP.RequestsPerSecond = documentsRPS
	cfg.Output.Dir = documentsOutDir
	if documentsNoCache {
		cfg.Cache.Enabled = false
	}

	series, err := pipeline.ReadSeries(documentsSeries)
	if err != nil {
		return err
	}

	client := stabs.NewClient(cfg, newResponseCache(cfg))

	var documents []pipeline.DatedDocument
	matched := 0
	for _, serie := range series {
		if !strings.Contains(serie.Title, documentsTitleFilter) {
			continue
		}
		matched++
		if verbose {
			fmt.Fprintf(os.Stderr, "Querying documents of %s (%s)\n", serie.SerieID, serie.Title)
		}
		docs, err := client.QueryDocuments(ctx, serie)
		if err != nil {
			return fmt.Errorf("fetch documents: %w", err)
		}
		for _, doc := range docs {
			dated := pipeline.DatedDocument{Document: doc}
			if doc.DateLink != nil {
				dated.Date = client.ExpressedDate(ctx, *doc.DateLink)
			}
			documents = append(documents, dated)
		}
	}
	if matched == 0 {
		return fmt.Errorf("no serie title matches %q in %s", documentsTitleFilter, documentsSeries)
	}
	fmt.Fprintf(os.Stderr, "Found %d documents in %d series\n", len(documents), matched)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	documentsPath := filepath.Join(cfg.Output.Dir, "stabs_document.csv")
	if err := pipeline.WriteDocuments(documentsPath, documents); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote %s\n", documentsPath)
	return nil
}
