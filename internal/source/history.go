package source

import (
	"path/filepath"
	"time"

	"clwrapped/internal/model"
)

// HistoryStats summarizes the global interaction-history file. History
// entries carry no usage data, so they feed prompt counts and command
// detection only, never token or cost aggregates.
type HistoryStats struct {
	PromptCount   int
	CommandCounts map[string]int
	HourlyPrompts map[int]int
}

// ScanHistory reads <claudeDir>/history.jsonl and runs slash-command
// detection over each entry's display text.
func ScanHistory(claudeDir string) HistoryStats {
	stats := HistoryStats{
		CommandCounts: make(map[string]int),
		HourlyPrompts: make(map[int]int),
	}

	entries := ReadHistory(filepath.Join(claudeDir, "history.jsonl"))
	for _, e := range entries {
		if e.Display == "" {
			continue
		}
		stats.PromptCount++

		if e.TimestampMs > 0 {
			ts := time.UnixMilli(e.TimestampMs)
			stats.HourlyPrompts[ts.Hour()]++
		}

		var probe model.SessionStats
		DetectInvocations(e.Display, &probe)
		for _, cmd := range probe.CommandsUsed {
			stats.CommandCounts[cmd]++
		}
	}

	return stats
}
