package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gatekeep/internal/classifier"
	"gatekeep/internal/config"
	"gatekeep/internal/moderate"
	"gatekeep/internal/output"
	"gatekeep/internal/record"
)

// Output file names, fixed relative to the output directory.
const (
	csvFileName    = "moderated_comments.csv"
	reportFileName = "moderation_report.txt"
	chartFileName  = "offense_type_pie_chart.png"
)

func runModerate(inputFile string) {
	cfg, err := config.Load(flagConfig, buildOverrides())
	if err != nil {
		fatal(err)
		return
	}

	store, err := record.Load(inputFile)
	if err != nil {
		fatal(err)
		return
	}
	log.Info().
		Int("total", len(store.Records)).
		Str("sample", store.Records[0].Text()).
		Msg("loaded comments")

	client := classifier.NewOpenRouter(cfg.APIKey, cfg.Model, cfg.Endpoint, cfg.HTTPTimeout())
	engine := moderate.NewEngine(client, cfg.BatchSize, cfg.InterBatchDelay(), log)

	if _, err := engine.Run(context.Background(), store); err != nil {
		fatal(err)
		return
	}

	rep := moderate.Aggregate(store)
	if err := writeArtifacts(cfg.OutputDir, store, rep); err != nil {
		fatal(err)
		return
	}
}

func writeArtifacts(dir string, store *record.Store, rep *moderate.Report) error {
	csvPath := filepath.Join(dir, csvFileName)
	if err := writeFile(csvPath, func(f *os.File) error {
		return output.WriteCSV(f, store)
	}); err != nil {
		return fmt.Errorf("writing moderated CSV: %w", err)
	}
	log.Info().Str("path", csvPath).Msg("moderated comments saved")

	reportPath := filepath.Join(dir, reportFileName)
	if err := writeFile(reportPath, func(f *os.File) error {
		return output.WriteTextReport(f, rep)
	}); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Info().Str("path", reportPath).Msg("report saved")

	if len(rep.Offensive) == 0 {
		log.Info().Msg("no offensive comments, skipping pie chart")
		return nil
	}
	chartPath := filepath.Join(dir, chartFileName)
	if err := writeFile(chartPath, func(f *os.File) error {
		return output.WritePieChart(f, rep)
	}); err != nil {
		return fmt.Errorf("writing pie chart: %w", err)
	}
	log.Info().Str("path", chartPath).Msg("pie chart saved")
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = 1
}
