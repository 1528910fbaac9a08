package source

import (
	"sort"
	"strings"
	"time"

	"clwrapped/internal/config"
	"clwrapped/internal/model"
)

// syntheticModel marks assistant records fabricated by the client on API
// errors; they carry no real model and count as errors, not usage.
const syntheticModel = "<synthetic>"

// Reconstruct folds a file's records into session statistics in a single
// pass, in file order. A record missing any field still contributes to every
// count the remaining fields allow; nothing in here returns an error.
func Reconstruct(records []model.Record, sessionID, project string) model.SessionStats {
	stats := model.SessionStats{
		SessionID: sessionID,
		Project:   project,
	}

	var timestamps []time.Time
	models := make(map[string]struct{})
	versions := make(map[string]struct{})

	for i := range records {
		rec := &records[i]
		stats.MessageCount++

		if ts, ok := ParseTimestamp(rec.Timestamp); ok {
			timestamps = append(timestamps, ts)
		}
		if rec.IsSidechain {
			stats.SidechainCount++
		}
		if rec.Version != "" {
			versions[rec.Version] = struct{}{}
		}
		if rec.Cwd != "" {
			n := len(stats.CwdChanges)
			if n == 0 || stats.CwdChanges[n-1] != rec.Cwd {
				stats.CwdChanges = append(stats.CwdChanges, rec.Cwd)
			}
		}

		switch rec.Kind() {
		case model.RecordUser:
			stats.UserMessages++
			if rec.Message != nil {
				for _, block := range rec.Message.Content {
					if block.Type == "text" && block.Text != "" {
						DetectInvocations(block.Text, &stats)
					}
				}
			}

		case model.RecordAssistant:
			stats.AssistantMessages++
			reconstructAssistant(rec, &stats, models)

		case model.RecordSummary:
			stats.SummaryCount++
		}
	}

	if len(timestamps) > 0 {
		minT, maxT := timestamps[0], timestamps[0]
		for _, ts := range timestamps[1:] {
			if ts.Before(minT) {
				minT = ts
			}
			if ts.After(maxT) {
				maxT = ts
			}
		}
		stats.StartTime = minT
		stats.EndTime = maxT
	}

	stats.ModelsUsed = setToSorted(models)
	stats.VersionsSeen = setToSorted(versions)

	return stats
}

func reconstructAssistant(rec *model.Record, stats *model.SessionStats, models map[string]struct{}) {
	msg := rec.Message

	var modelName string
	if msg != nil {
		modelName = msg.Model
		if modelName != "" && modelName != syntheticModel {
			models[modelName] = struct{}{}
		}
	}

	if rec.IsAPIError || modelName == syntheticModel {
		stats.ErrorCount++
	}
	if rec.DurationMs > 0 {
		stats.TotalDurationMs += rec.DurationMs
	}

	var in, out, cacheWrite, cacheRead int64
	if msg != nil && msg.Usage != nil {
		u := msg.Usage
		in = u.InputTokens
		out = u.OutputTokens
		cacheWrite = u.CacheWriteTokens()
		cacheRead = u.CacheReadInputTokens

		stats.InputTokens += in
		stats.OutputTokens += out
		stats.CacheCreationTokens += cacheWrite
		stats.CacheReadTokens += cacheRead
	}

	// An explicit cost on the record is authoritative; the token-based
	// estimate only applies when it is absent.
	if rec.CostUSD != 0 {
		stats.CostUSD += rec.CostUSD
	} else if modelName != "" && modelName != syntheticModel {
		stats.CostUSD += config.EstimateCost(modelName, in, out, cacheWrite, cacheRead)
	}

	if msg == nil {
		return
	}
	for _, block := range msg.Content {
		switch block.Type {
		case "tool_use":
			name := block.Name
			if name == "" {
				name = "unknown"
			}
			stats.ToolsUsed = append(stats.ToolsUsed, name)
			DetectToolInvocation(name, block.InputFields(), stats)
		case "text":
			if block.Text != "" {
				DetectInvocations(block.Text, stats)
			}
		}
	}
}

// Accepted timestamp layouts, tried in order. Fractional seconds are
// truncated to microseconds before parsing so over-long fractions still fit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp tolerating a Z suffix, a
// numeric offset, a missing offset (assumed UTC), and 0-6 fractional digits.
// Anything else reports absent rather than an error.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	s = truncateFraction(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// truncateFraction cuts fractional seconds down to six digits.
func truncateFraction(s string) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	end := dot + 1
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end-dot-1 <= 6 {
		return s
	}
	return s[:dot+7] + s[end:]
}

func setToSorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
