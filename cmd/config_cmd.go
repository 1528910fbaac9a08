package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"clwrapped/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if _, statErr := os.Stat(config.ConfigPath()); statErr == nil {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Claude directory: %s\n", cfg.General.ClaudeDir)
	fmt.Printf("    Top N rankings:   %d\n", cfg.General.TopN)
	fmt.Println()

	fmt.Println("  [Repos]")
	fmt.Printf("    Base paths:  %s\n", strings.Join(cfg.Repos.BasePaths, ", "))
	fmt.Printf("    Max depth:   %d\n", cfg.Repos.MaxDepth)
	fmt.Printf("    Max repos:   %d\n", cfg.Repos.MaxRepos)
	fmt.Printf("    Max workers: %d\n", cfg.Repos.MaxWorkers)
	fmt.Println()

	fmt.Println("  [Pricing]")
	if len(cfg.Pricing) == 0 {
		fmt.Println("    No overrides, using built-in rates")
	} else {
		patterns := make([]string, 0, len(cfg.Pricing))
		for p := range cfg.Pricing {
			patterns = append(patterns, p)
		}
		sort.Strings(patterns)
		for _, p := range patterns {
			o := cfg.Pricing[p]
			fmt.Printf("    %-16s in $%.2f/MTok, out $%.2f/MTok\n",
				p, o.InputPerMTok, o.OutputPerMTok)
		}
	}

	return nil
}
