package cmd

import (
	"context"
	"fmt"
	"strings"

	"clwrapped/internal/cli"
	"clwrapped/internal/gitstats"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Scan local git repositories and rank them by engagement",
	RunE:  runRepos,
}

func init() {
	rootCmd.AddCommand(reposCmd)
}

func runRepos(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	paths := gitstats.FindRepos(cfg.Repos.BasePaths, cfg.Repos.MaxDepth, cfg.Repos.MaxRepos)
	if len(paths) == 0 {
		fmt.Println("  No git repositories found under the configured base paths.")
		fmt.Printf("  Base paths: %s\n", strings.Join(cfg.Repos.BasePaths, ", "))
		return nil
	}

	repos := gitstats.AnalyzeAll(context.Background(), paths, cfg.Repos.MaxWorkers)

	fmt.Println(cli.RenderTitle("LOCAL REPOSITORIES"))
	fmt.Println()
	fmt.Printf("  Found %d, analyzed %d\n\n", len(paths), len(repos))

	fmt.Printf("  %-24s %8s %8s %10s %6s  %s\n",
		"REPO", "COMMITS", "YOURS", "NET LINES", "SCORE", "LANGUAGES")
	for _, r := range repos {
		fmt.Printf("  %-24s %8s %8s %+10d %6.2f  %s\n",
			truncateName(r.Name, 24),
			cli.FormatNumber(int64(r.TotalCommits)),
			cli.FormatNumber(int64(r.UserCommits)),
			r.NetLines,
			r.EngagementScore,
			strings.Join(r.Languages, ", "),
		)
	}

	return nil
}

func truncateName(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
