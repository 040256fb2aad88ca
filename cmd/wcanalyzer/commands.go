package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/wcanalyzer/internal/batch"
	"github.com/andresuchdata/wcanalyzer/internal/config"
	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
	"github.com/andresuchdata/wcanalyzer/internal/ingest"
	"github.com/andresuchdata/wcanalyzer/internal/report"
	"github.com/andresuchdata/wcanalyzer/internal/repository"
	"github.com/andresuchdata/wcanalyzer/internal/repository/postgres"
	"github.com/andresuchdata/wcanalyzer/internal/service"
	"github.com/andresuchdata/wcanalyzer/internal/storage"
)

// newAnalysisService builds a service that records history in postgres when
// --db-url was given and in memory otherwise.
func newAnalysisService(c *cli.Context) (*service.AnalysisService, error) {
	cfg := config.Load()

	benchmarks := engine.DefaultBenchmarks()
	if cfg.Analysis.BenchmarksFile != "" {
		loaded, err := engine.LoadBenchmarks(cfg.Analysis.BenchmarksFile)
		if err != nil {
			return nil, err
		}
		benchmarks = loaded
	}

	defaultIndustry, ok := domain.ParseIndustry(cfg.Analysis.DefaultIndustry)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownIndustry, cfg.Analysis.DefaultIndustry)
	}

	var repo repository.AnalysisRepository
	if db := dbFrom(c); db != nil {
		if err := db.Migrate(c.Context); err != nil {
			return nil, err
		}
		repo = postgres.NewAnalysisRepository(db)
	}

	return service.NewAnalysisService(benchmarks, repo, nil, nil, service.Defaults{
		Industry:     defaultIndustry,
		WACC:         cfg.Analysis.DefaultWACC,
		EBITDAMargin: cfg.Analysis.DefaultEBITDAMargin,
	}), nil
}

func loadProfiles(c *cli.Context) ([]domain.InputProfile, error) {
	file := c.String("file")
	switch {
	case c.Bool("demo") && file != "":
		return nil, errors.New("cannot specify both --demo and --file")
	case c.Bool("demo"):
		return []domain.InputProfile{engine.DemoProfile()}, nil
	case file == "":
		return nil, errors.New("either --file or --demo is required")
	}

	profiles, err := ingest.LoadFile(file)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles found in %s", file)
	}
	return profiles, nil
}

func runAnalyze(c *cli.Context) error {
	profiles, err := loadProfiles(c)
	if err != nil {
		return err
	}

	svc, err := newAnalysisService(c)
	if err != nil {
		return err
	}

	analyses := make([]*domain.Analysis, 0, len(profiles))
	for _, p := range profiles {
		if industry := c.String("industry"); industry != "" {
			p.Industry = domain.Industry(industry)
		}
		a, err := svc.Analyze(c.Context, c.String("session"), p)
		if err != nil {
			return fmt.Errorf("failed to analyze %q: %w", p.CompanyName, err)
		}
		analyses = append(analyses, a)
	}

	out := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(analyses) == 1 {
			return enc.Encode(analyses[0])
		}
		return enc.Encode(analyses)
	}

	for i, a := range analyses {
		if i > 0 {
			fmt.Fprintln(out)
		}
		renderAnalysis(out, a)
	}
	return nil
}

func floatFlag(c *cli.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float64(name)
	return &v
}

func runSimulate(c *cli.Context) error {
	profiles, err := loadProfiles(c)
	if err != nil {
		return err
	}

	svc, err := newAnalysisService(c)
	if err != nil {
		return err
	}

	analysis, err := svc.Compute(c.Context, profiles[0])
	if err != nil {
		return err
	}

	summary, in, err := svc.Simulate(c.Context, service.SimulationRequest{
		MetricsSource: service.MetricsSource{Metrics: &analysis.Metrics, Currency: analysis.Profile.Currency},
		DSO:           floatFlag(c, "dso"),
		DIO:           floatFlag(c, "dio"),
		DPO:           floatFlag(c, "dpo"),
	})
	if err != nil {
		return err
	}

	out := c.App.Writer
	renderSimulation(out, analysis.Profile.CompanyName, *summary, analysis.Profile.Currency)

	if path := c.String("csv"); path != "" {
		if err := writeFile(path, func(w io.Writer) error {
			return report.WriteSimulation(w, in, summary.SimulationResult)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "CSV written to %s\n", path)
	}

	if c.Bool("upload") {
		cfg := config.Load()
		objectStorage, err := storage.New(c.Context, cfg.Storage, cfg.App.ReportDir)
		if err != nil {
			return err
		}
		reports := service.NewReportService(objectStorage, cfg.Storage.Prefix)
		export, err := reports.SimulationCSV(c.Context, in, summary.SimulationResult, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Report archived as %s\n", export.Key)
	}
	return nil
}

func runBatch(c *cli.Context) error {
	files, err := ingest.DiscoverFiles(c.String("dir"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warn().Str("dir", c.String("dir")).Msg("no profile files found")
	}

	svc, err := newAnalysisService(c)
	if err != nil {
		return err
	}

	workers := c.Int("workers")
	if workers <= 0 {
		workers = config.Load().Analysis.BatchWorkers
	}
	runner := batch.NewRunner(svc, batch.Config{Workers: workers, Session: c.String("session")})

	results, err := runner.RunFiles(c.Context, files)
	if err != nil {
		return err
	}

	if path := c.String("out"); path != "-" {
		if err := writeFile(path, func(w io.Writer) error {
			return report.WriteBatchSummary(w, results)
		}); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Summary of %d profile(s) written to %s\n", len(results), path)
	} else if err := report.WriteBatchSummary(c.App.Writer, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d profile(s) failed", failed, len(results)), 2)
	}
	return nil
}

func runMigrate(c *cli.Context) error {
	db := dbFrom(c)
	if db == nil {
		return errors.New("database connection not found in context")
	}
	if err := db.Migrate(c.Context); err != nil {
		return err
	}
	log.Info().Int("statements", len(postgres.Statements())).Msg("migration completed")
	return nil
}

func runHistory(c *cli.Context) error {
	db := dbFrom(c)
	if db == nil {
		return errors.New("database connection not found in context")
	}

	items, err := postgres.NewAnalysisRepository(db).List(c.Context, domain.HistoryFilter{
		Session:  c.String("session"),
		Industry: strings.ToLower(c.String("industry")),
		Limit:    c.Int("limit"),
	}.Normalize())
	if err != nil {
		return err
	}

	renderHistory(c.App.Writer, items)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
