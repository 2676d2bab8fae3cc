package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/cache"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/model"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/pipeline"
	"github.com/history-unibas/Metadata-Historical-Land-Registry-Basel/internal/stabs"
)

var (
	fetchOutDir  string
	fetchTimeout time.Duration
	fetchRPS     float64
	fetchNoCache bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch series and dossier metadata from the archive's LOD portal",
	Long: `Fetch queries the SPARQL endpoint of the State Archives Basel-Stadt for
all series and dossiers of the Historisches Grundbuch and writes them as
stabs_serie.csv and stabs_dossier.csv into the output directory.

Series without dossiers are logged and skipped; the fetched tables are the
input of the enrich command.

Example:
  hgb-metadata fetch --out-dir ./data
  hgb-metadata fetch --rps 1 --no-cache`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchOutDir, "out-dir", "./data", "output directory for the fetched tables")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "per-request timeout")
	fetchCmd.Flags().Float64Var(&fetchRPS, "rps", 2, "max requests per second against the endpoint")
	fetchCmd.Flags().BoolVar(&fetchNoCache, "no-cache", false, "disable the response cache (force fresh queries)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := loadConfig()
	cfg.HTTP.Timeout = fetchTimeout
	cfg.HTTP.RequestsPerSecond = fetchRPS
	cfg.Output.Dir = fetchOutDir
	if fetchNoCache {
		cfg.Cache.Enabled = false
	}

	client := stabs.NewClient(cfg, newResponseCache(cfg))

	if verbose {
		fmt.Fprintf(os.Stderr, "Querying series below %s\n", cfg.Endpoint.RootRecord)
	}
	series, err := client.QuerySeries(ctx)
	if err != nil {
		return fmt.Errorf("fetch series: %w", err)
	}
	if len(series) == 0 {
		return fmt.Errorf("no series found below %s", cfg.Endpoint.RootRecord)
	}
	fmt.Fprintf(os.Stderr, "Found %d series\n", len(series))

	var dossiers []model.Dossier
	for _, serie := range series {
		if verbose {
			fmt.Fprintf(os.Stderr, "Querying dossiers of %s (%s)\n", serie.SerieID, serie.Title)
		}
		ds, err := client.QueryDossiers(ctx, serie)
		if err != nil {
			return fmt.Errorf("fetch dossiers: %w", err)
		}
		dossiers = append(dossiers, ds...)
	}
	fmt.Fprintf(os.Stderr, "Found %d dossiers\n", len(dossiers))

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	seriesPath := filepath.Join(cfg.Output.Dir, "stabs_serie.csv")
	dossiersPath := filepath.Join(cfg.Output.Dir, "stabs_dossier.csv")

	if err := pipeline.WriteSeries(seriesPath, series); err != nil {
		return err
	}
	if err := pipeline.WriteDossiers(dossiersPath, dossiers); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", seriesPath, dossiersPath)
	return nil
}

// newResponseCache builds the layered response cache, or nil when caching is
// disabled.
func newResponseCache(cfg *model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no home directory, falling back to memory cache: %v\n", err)
			return cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
		dir = filepath.Join(home, ".hgb-metadata", "cache")
	}
	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
}
