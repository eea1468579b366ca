package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bdr-au/dataquality/assess"
	"github.com/bdr-au/dataquality/config"
	"github.com/bdr-au/dataquality/export"
	"github.com/bdr-au/dataquality/geo"
	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/observation"
	"github.com/bdr-au/dataquality/report"
	"github.com/bdr-au/dataquality/scoring"
	"github.com/bdr-au/dataquality/storage"
	"github.com/bdr-au/dataquality/usecase"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

func assessCmd() *cobra.Command {
	var (
		configPath string
		outputDir  string
		format     string
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "assess <input-glob>...",
		Short: "Assess observation graphs and write results",
		Long: `Assess loads one or more RDF observation graphs (N-Triples, Turtle
subset, or JSON triple dumps), runs every data-quality dimension, and
writes the results graph, assessment matrix, and run report into the
output directory. Input paths support doublestar globs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd.Context(), args, configPath, outputDir, format, publish)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML, overrides discovery)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Results graph format: turtle, ntriples, jsonld")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish result triples to the knowledge graph via NATS")

	return cmd
}

func runAssess(ctx context.Context, patterns []string, configPath, outputDir, format string, publish bool) error {
	logger := slog.Default()

	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	exportFormat, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	inputs, err := expandInputs(patterns)
	if err != nil {
		return err
	}
	logger.Info("loading observation graphs", "files", len(inputs))

	input := graph.NewStore()
	for _, path := range inputs {
		if err := graph.LoadFile(input, path); err != nil {
			return err
		}
	}

	records := observation.Extract(input)
	if len(records) == 0 {
		return fmt.Errorf("no observations found in %d input files", len(inputs))
	}
	logger.Info("extracted observations", "count", len(records))

	var boundaries *geo.Boundaries
	if cfg.Assessment.BoundariesPath != "" {
		boundaries, err = geo.LoadBoundaries(cfg.Assessment.BoundariesPath)
		if err != nil {
			return err
		}
		logger.Info("loaded state boundaries", "regions", len(boundaries.Regions()))
	}

	now := time.Now()
	registry := dqaf.NewRegistry()
	results := graph.NewStore()
	writer := graph.NewResultWriter(results, now)

	runner := assess.NewRunner(registry, boundaries, now, cfg.Assessment.RecencyWindowYears, logger)
	run, err := runner.Run(records, writer)
	if err != nil {
		return err
	}

	var evals []usecase.Evaluation
	if cfg.Scoring.UseCasesPath != "" {
		defs, err := usecase.Load(cfg.Scoring.UseCasesPath)
		if err != nil {
			return err
		}
		evals = usecase.Evaluate(defs, registry, run.Matrix, writer, logger)
	}

	var methodRuns []scoring.MethodRun
	if cfg.Scoring.MethodsPath != "" {
		methods, err := scoring.Load(cfg.Scoring.MethodsPath)
		if err != nil {
			return err
		}
		methodRuns = scoring.Run(methods, registry, run.Matrix, writer, logger)
	}

	if err := writeOutputs(cfg.Output.Dir, exportFormat, input, results, records, run, evals, methodRuns, registry, now); err != nil {
		return err
	}

	if publish {
		record := buildRunRecord(inputs, records, results, run, evals, methodRuns, now)
		if err := publishResults(ctx, cfg, results, record, logger); err != nil {
			return err
		}
	}

	logger.Info("assessment run finished",
		"observations", len(records),
		"results", writer.Count(),
		"output_dir", cfg.Output.Dir)
	return nil
}

func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}

// expandInputs resolves doublestar globs into a sorted, de-duplicated
// file list. A pattern matching nothing is an error; a literal path is
// passed through.
func expandInputs(patterns []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				matches = []string{pattern}
			} else {
				return nil, fmt.Errorf("input pattern %q matches no files", pattern)
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}
	return inputs, nil
}

func writeOutputs(dir string, format export.Format, input, results *graph.Store,
	records []observation.Record, run *assess.Result,
	evals []usecase.Evaluation, methodRuns []scoring.MethodRun,
	registry *dqaf.Registry, now time.Time) error {

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	info, _ := export.GetFormatInfo(format)

	exporter := export.NewRDFExporter()
	exporter.AddTriples(results.Triples())
	serialized, err := exporter.Export(format)
	if err != nil {
		return err
	}
	resultsPath := filepath.Join(dir, "results"+info.Extension)
	if err := os.WriteFile(resultsPath, []byte(serialized), 0644); err != nil {
		return fmt.Errorf("write results graph: %w", err)
	}

	matrixPath := filepath.Join(dir, "matrix.csv")
	mf, err := os.Create(matrixPath)
	if err != nil {
		return fmt.Errorf("create matrix file: %w", err)
	}
	defer mf.Close()
	if err := run.Matrix.WriteCSV(mf); err != nil {
		return err
	}

	rep := &report.Report{
		RunTime:      now,
		InputProfile: input.Profile(),
		Observations: len(records),
		ResultCount:  results.Len(),
		Registry:     registry,
		Matrix:       run.Matrix,
		Skipped:      run.Skipped,
		UseCases:     evals,
		Scoring:      methodRuns,
	}
	reportPath := filepath.Join(dir, "report.txt")
	rf, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer rf.Close()
	return rep.Write(rf)
}

func buildRunRecord(inputs []string, records []observation.Record, results *graph.Store,
	run *assess.Result, evals []usecase.Evaluation, methodRuns []scoring.MethodRun,
	now time.Time) *storage.RunRecord {

	record := &storage.RunRecord{
		StartedAt:    now,
		Inputs:       inputs,
		Observations: len(records),
		Results:      results.Len(),
	}
	for _, s := range run.Skipped {
		record.Skipped = append(record.Skipped, storage.SkipRecord{
			Dimension: string(s.Dimension),
			Reason:    s.Reason,
		})
	}
	for _, eval := range evals {
		uc := storage.UseCaseRecord{Name: eval.Name, Satisfied: eval.Satisfied, Total: eval.Total}
		if eval.Err != nil {
			uc.Error = eval.Err.Error()
		}
		record.UseCases = append(record.UseCases, uc)
	}
	for _, mr := range methodRuns {
		m := storage.MethodRecord{Name: mr.Name, TierCounts: mr.TierCounts}
		if mr.Err != nil {
			m.Error = mr.Err.Error()
		}
		record.Methods = append(record.Methods, m)
	}
	return record
}

func publishResults(ctx context.Context, cfg *config.Config, results *graph.Store,
	record *storage.RunRecord, logger *slog.Logger) error {

	nc, err := connectToNATS(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer nc.Close(ctx)

	runID := uuid.NewString()
	if err := graph.PublishResults(ctx, nc, runID, results.Triples()); err != nil {
		return err
	}

	js, err := nc.JetStream()
	if err != nil {
		return fmt.Errorf("get jetstream: %w", err)
	}
	archive, err := storage.NewArchive(ctx, js)
	if err != nil {
		return err
	}
	record.ID = runID
	if err := archive.SaveRun(ctx, record); err != nil {
		return err
	}

	logger.Info("published results to knowledge graph", "run_id", runID)
	return nil
}

func connectToNATS(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*natsclient.Client, error) {
	natsURL := "nats://localhost:4222"

	// Environment variable override takes precedence
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		natsURL = envURL
	} else if cfg.NATS.URL != "" {
		natsURL = cfg.NATS.URL
	}

	logger.Info("Connecting to NATS", "url", natsURL)

	client, err := natsclient.NewClient(natsURL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", natsURL, err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", natsURL, err)
	}

	logger.Info("Connected to NATS", "url", natsURL)
	return client, nil
}

func vocabCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Export the assessment label vocabulary as SKOS",
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			serialized, err := export.ExportVocab(dqaf.NewRegistry(), exportFormat)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				fmt.Print(serialized)
				return nil
			}
			if err := os.WriteFile(output, []byte(serialized), 0644); err != nil {
				return fmt.Errorf("write vocabulary: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "turtle", "Serialization: turtle, ntriples, jsonld")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")

	return cmd
}
