// Package pipeline orchestrates ingestion of the Claude data directory and
// aggregation of the resulting sessions into the wrapped metrics object.
package pipeline

import (
	"fmt"
	"os"

	"clwrapped/internal/model"
	"clwrapped/internal/source"
)

// LoadResult holds everything ingested from one Claude data directory.
type LoadResult struct {
	Sessions     []model.SessionStats
	TotalFiles   int
	ParsedFiles  int
	ProjectCount int

	Todos   source.TodoStats
	Statsig source.StatsigStats
	History source.HistoryStats
}

// ProgressFunc is called as files are processed.
type ProgressFunc func(current, total int)

// Load ingests the Claude data directory: session files one at a time in
// discovery order, then the auxiliary sources. Individual file failures
// contribute zero data; the only error is a missing root directory.
func Load(claudeDir string, progressFn ProgressFunc) (*LoadResult, error) {
	if _, err := os.Stat(claudeDir); err != nil {
		return nil, fmt.Errorf("claude directory not found at %s", claudeDir)
	}

	files := source.ScanSessions(claudeDir)

	result := &LoadResult{
		TotalFiles:   len(files),
		ProjectCount: source.CountProjects(files),
	}

	for i, f := range files {
		records := source.ReadRecords(f.Path)
		if len(records) > 0 {
			result.ParsedFiles++
			result.Sessions = append(result.Sessions,
				source.Reconstruct(records, f.SessionID, f.Project))
		}
		if progressFn != nil {
			progressFn(i+1, len(files))
		}
	}

	result.Todos = source.ScanTodos(claudeDir)
	result.Statsig = source.ScanStatsig(claudeDir)
	result.History = source.ScanHistory(claudeDir)

	return result, nil
}
