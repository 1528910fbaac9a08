package model

import "time"

// SessionStats holds aggregated metrics for a single reconstructed session.
// It is built in one pass over a file's records and finalized once; the
// aggregator treats it as immutable.
type SessionStats struct {
	SessionID string
	Project   string

	StartTime time.Time
	EndTime   time.Time

	MessageCount      int
	UserMessages      int
	AssistantMessages int

	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64

	CostUSD         float64
	TotalDurationMs int64

	// ToolsUsed keeps invocation order; chain detection depends on adjacency.
	ToolsUsed  []string
	ModelsUsed []string

	SidechainCount int
	SummaryCount   int
	ErrorCount     int

	// CwdChanges records working directories with consecutive repeats
	// collapsed (not globally deduplicated).
	CwdChanges []string

	AgentsUsed    []string
	SkillsUsed    []string
	CommandsUsed  []string
	SubagentTypes []string

	VersionsSeen []string
}

// DurationMs returns the wall-clock span of the session's time bounds,
// or zero when no record carried a parseable timestamp.
func (s *SessionStats) DurationMs() int64 {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Milliseconds()
}

// TotalTokens returns input plus output tokens.
func (s *SessionStats) TotalTokens() int64 {
	return s.InputTokens + s.OutputTokens
}
