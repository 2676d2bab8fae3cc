package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/correction"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/pipeline"
)

var (
	enrichSeries      string
	enrichDossiers    string
	enrichCorrections string
	enrichOutDir      string
	enrichConcurrency int
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a fetched metadata snapshot with structured house numbers",
	Long: `Enrich reads the series and dossier tables written by the fetch command,
derives for every dossier the new house number from its title and the
structured old house number attributes from the free-text annotation,
applies the manual correction table and writes the dated result files
<YYYYMMDD>_hgb_metadaten.csv and <YYYYMMDD>_hgb_metadaten.jsonl.

Example:
  hgb-metadata enrich --series data/stabs_serie.csv --dossiers data/stabs_dossier.csv
  hgb-metadata enrich --corrections data/oldHousenumberCorrections.csv --out-dir ./data`,
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVar(&enrichSeries, "series", "data/stabs_serie.csv", "series table from a fetch run")
	enrichCmd.Flags().StringVar(&enrichDossiers, "dossiers", "data/stabs_dossier.csv", "dossier table from a fetch run")
	enrichCmd.Flags().StringVar(&enrichCorrections, "corrections", "", "manual correction table (optional)")
	enrichCmd.Flags().StringVar(&enrichOutDir, "out-dir", "./data", "output directory for the result files")
	enrichCmd.Flags().IntVar(&enrichConcurrency, "concurrency", 4, "number of enrichment workers")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cfg.Output.Dir = enrichOutDir
	cfg.Concurrency.Workers = enrichConcurrency
	cfg.Output.Verbose = verbose

	corrections := correction.NewTable(nil)
	if enrichCorrections != "" {
		var err error
		corrections, err = correction.Load(enrichCorrections)
		if err != nil {
			return fmt.Errorf("load corrections: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Loaded %d correction rows from %s\n", corrections.Len(), enrichCorrections)
		}
	}

	p := pipeline.NewPipeline(cfg, corrections)
	result, err := p.Run(cmd.Context(), enrichSeries, enrichDossiers)
	if err != nil {
		return err
	}

	pipeline.NewRenderer().RenderSummary(os.Stderr, result.Summary)
	fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", result.CSVPath, result.JSONLPath)
	return nil
}
