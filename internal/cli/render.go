package cli

import (
	"fmt"
	"sort"
	"strings"

	"clwrapped/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	costStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	verdictStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSummary renders the wrapped report card printed to the terminal
// after a run. The full detail lives in the serialized output; this is the
// headline view.
func RenderSummary(m *model.WrappedMetrics) string {
	var b strings.Builder

	b.WriteString(RenderTitle("CLAUDE WRAPPED"))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	line("Sessions", FormatNumber(int64(m.TotalSessions)))
	line("Messages", FormatNumber(int64(m.TotalMessages)))
	line("Projects", FormatNumber(int64(m.UniqueProjects)))
	line("Input tokens", FormatTokens(m.TotalInputTokens))
	line("Output tokens", FormatTokens(m.TotalOutputTokens))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", "Total cost")))
	b.WriteString(costStyle.Render(FormatCost(m.TotalCostUSD)))
	b.WriteString("\n")
	line("Longest streak", fmt.Sprintf("%d days", m.LongestStreakDays))
	line("Current streak", fmt.Sprintf("%d days", m.CurrentStreakDays))
	if m.LongestSessionDurationMs > 0 {
		line("Longest session", FormatDurationMs(m.LongestSessionDurationMs))
	}
	if m.CacheEfficiencyRatio > 0 {
		line("Cache efficiency", FormatPercent(m.CacheEfficiencyRatio))
	}

	if len(m.ToolFrequency) > 0 {
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(headerStyle.Render("Top tools"))
		b.WriteString("\n")
		for _, row := range topCounts(m.ToolFrequency, 5) {
			b.WriteString(RenderHorizontalBar(row.name, row.count, maxCount(m.ToolFrequency), 24))
			b.WriteString("\n")
		}
	}

	if m.Personality != "" {
		b.WriteString("\n  ")
		b.WriteString(verdictStyle.Render(m.Personality))
		b.WriteString("\n  ")
		b.WriteString(dimStyle.Render(m.PersonalityDescription))
		b.WriteString("\n")
	}
	if m.CodingCity != "" {
		b.WriteString("\n  ")
		b.WriteString(verdictStyle.Render("Coding city: " + m.CodingCity))
		b.WriteString("\n  ")
		b.WriteString(dimStyle.Render(m.CodingCityDescription))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHorizontalBar renders a labeled proportional bar.
func RenderHorizontalBar(label string, value, maxValue, maxWidth int) string {
	width := 0
	if maxValue > 0 {
		width = value * maxWidth / maxValue
	}
	if width < 1 && value > 0 {
		width = 1
	}
	bar := lipgloss.NewStyle().Foreground(ColorBlue).Render(strings.Repeat("█", width))
	return fmt.Sprintf("  %s %s %s",
		labelStyle.Render(fmt.Sprintf("%-16s", truncate(label, 16))),
		bar,
		dimStyle.Render(FormatNumber(int64(value))))
}

type countRow struct {
	name  string
	count int
}

func topCounts(freq map[string]int, n int) []countRow {
	rows := make([]countRow, 0, len(freq))
	for name, count := range freq {
		rows = append(rows, countRow{name, count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func maxCount(freq map[string]int) int {
	best := 0
	for _, n := range freq {
		if n > best {
			best = n
		}
	}
	return best
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
