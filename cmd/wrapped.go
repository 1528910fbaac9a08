// Package cmd implements the clwrapped CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"clwrapped/internal/classify"
	"clwrapped/internal/cli"
	"clwrapped/internal/config"
	"clwrapped/internal/gitstats"
	"clwrapped/internal/model"
	"clwrapped/internal/pipeline"
	"clwrapped/internal/source"
	"clwrapped/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runWrapped is the default command: ingest, aggregate, correlate local
// repositories, classify, and emit the report.
func runWrapped(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	result, err := loadData(resolveClaudeDir(cfg))
	if err != nil {
		return err
	}

	metrics := pipeline.Aggregate(result, time.Now(), cfg.General.TopN)

	if !flagNoGit {
		analyzeRepos(cfg, &metrics)
	}

	classify.Apply(&metrics)

	if !flagNoHistory {
		recordRun(&metrics)
	}

	if err := writeReport(&metrics); err != nil {
		fmt.Fprintf(os.Stderr, "  Could not write report: %v\n", err)
	}

	if !flagQuiet {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, cli.RenderSummary(&metrics))
	}

	return nil
}

// analyzeRepos runs the bounded local repository scan and merges the results
// into the metrics object.
func analyzeRepos(cfg config.Config, m *model.WrappedMetrics) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning local repositories...\n")
	}

	paths := gitstats.FindRepos(cfg.Repos.BasePaths, cfg.Repos.MaxDepth, cfg.Repos.MaxRepos)
	repos := gitstats.AnalyzeAll(context.Background(), paths, cfg.Repos.MaxWorkers)

	projectNames := make([]string, 0, len(m.ProjectList))
	for _, p := range m.ProjectList {
		projectNames = append(projectNames, source.ProjectDisplayName(p))
	}
	gitstats.MatchRepos(repos, projectNames)

	pipeline.MergeRepos(m, len(paths), repos)

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Analyzed %d of %d repositories\n", len(repos), len(paths))
	}
}

// recordRun stores the run in the history database. Failures are reported
// but never fail the run.
func recordRun(m *model.WrappedMetrics) {
	db, err := store.Open(store.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "  History unavailable: %v\n", err)
		return
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveRun(m); err != nil {
		fmt.Fprintf(os.Stderr, "  Could not record run: %v\n", err)
	}
}

// writeReport serializes the metrics object to the chosen format and
// destination.
func writeReport(m *model.WrappedMetrics) error {
	var data []byte
	var err error

	switch flagFormat {
	case "yaml", "yml":
		data, err = yaml.Marshal(m)
	case "json", "":
		data, err = json.MarshalIndent(m, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", flagFormat)
	}
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if flagOutput == "" || flagOutput == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Report written to %s\n", flagOutput)
	}
	return nil
}
