package cmd

import (
	"fmt"
	"os"

	"clwrapped/internal/config"
	"clwrapped/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagClaudeDir string
	flagOutput    string
	flagFormat    string
	flagQuiet     bool
	flagNoGit     bool
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "clwrapped",
	Short: "Claude Wrapped - your year of AI-assisted coding, in review",
	Long: "Scan your local Claude Code data directory, crunch every session\n" +
		"into one big metrics object, and find out what kind of developer\n" +
		"you really are.",
	RunE: runWrapped,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagClaudeDir, "claude-dir", "d", "", "Claude data directory (default ~/.claude)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the report to a file instead of stdout")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "json", "Output format: json or yaml")
	rootCmd.Flags().BoolVar(&flagNoGit, "no-git", false, "Skip local git repository analysis")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Don't record this run in the history database")
}

// loadConfig reads the config file, falling back to defaults on error so a
// broken config never blocks a run.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// resolveClaudeDir picks the data directory: flag beats config.
func resolveClaudeDir(cfg config.Config) string {
	if flagClaudeDir != "" {
		return flagClaudeDir
	}
	return cfg.General.ClaudeDir
}

// loadData is the shared ingestion path used by all commands.
func loadData(claudeDir string) (*pipeline.LoadResult, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", claudeDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%100 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	result, err := pipeline.Load(claudeDir, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s    \n", pipeline.FormatRunSummary(result))
	}

	return result, nil
}
