package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"clwrapped/internal/model"
	"clwrapped/internal/source"
)

const (
	shortSessionMs    = 2 * 60 * 1000
	marathonSessionMs = 2 * 60 * 60 * 1000
	abandonedAfter    = 30 * 24 * time.Hour
	toolChainLength   = 3
	topChains         = 10
	topHighlights     = 5
)

// Aggregate folds all sessions and auxiliary sources into one metrics
// object. It is a single pass over the sessions plus sorting for rankings;
// the result is complete except for repository data (merged separately) and
// classification labels (applied by the classifier).
func Aggregate(result *LoadResult, now time.Time, topN int) model.WrappedMetrics {
	m := model.WrappedMetrics{
		GeneratedAt:          now.Format(time.RFC3339),
		HourlyDistribution:   make(map[int]int),
		WeekdayDistribution:  make(map[string]int),
		MonthlyDistribution:  make(map[string]int),
		SessionsByDate:       make(map[string]int),
		TokensByDate:         make(map[string]int64),
		CostByDate:           make(map[string]float64),
		ToolFrequency:        make(map[string]int),
		ModelFrequency:       make(map[string]int),
		AgentFrequency:       make(map[string]int),
		SkillFrequency:       make(map[string]int),
		CommandFrequency:     make(map[string]int),
		SubagentTypeCounts:   make(map[string]int),
		ProjectGroups:        make(map[string][]string),
		HistoryPromptsByHour: make(map[int]int),
	}

	sessions := result.Sessions
	m.TotalSessions = len(sessions)

	type projectAgg struct {
		sessions  int
		tokens    int64
		cost      float64
		latestEnd time.Time
	}
	projects := make(map[string]*projectAgg)

	chainCounts := make(map[string]int)
	cwdCounts := make(map[string]int)
	versions := make(map[string]struct{})

	var allTimestamps []time.Time
	var durations []int64
	var expensive, long []model.SessionRank

	for i := range sessions {
		s := &sessions[i]

		m.TotalMessages += s.MessageCount
		m.TotalUserMessages += s.UserMessages
		m.TotalAssistantMessages += s.AssistantMessages
		m.TotalInputTokens += s.InputTokens
		m.TotalOutputTokens += s.OutputTokens
		m.TotalCacheCreationTokens += s.CacheCreationTokens
		m.TotalCacheReadTokens += s.CacheReadTokens
		m.TotalCostUSD += s.CostUSD
		m.TotalAPIDurationMs += s.TotalDurationMs
		m.TotalSidechains += s.SidechainCount
		m.TotalErrors += s.ErrorCount
		m.TotalSummaries += s.SummaryCount

		for _, tool := range s.ToolsUsed {
			m.ToolFrequency[tool]++
		}
		for _, mod := range s.ModelsUsed {
			m.ModelFrequency[mod]++
		}
		for _, a := range s.AgentsUsed {
			m.AgentFrequency[a]++
		}
		for _, sk := range s.SkillsUsed {
			m.SkillFrequency[sk]++
		}
		for _, c := range s.CommandsUsed {
			m.CommandFrequency[c]++
		}
		for _, st := range s.SubagentTypes {
			m.SubagentTypeCounts[st]++
		}
		for _, v := range s.VersionsSeen {
			versions[v] = struct{}{}
		}
		countChains(s.ToolsUsed, chainCounts)

		for _, cwd := range s.CwdChanges {
			cwdCounts[cwd]++
		}
		if len(s.CwdChanges) > m.MaxCwdChangesInSession {
			m.MaxCwdChangesInSession = len(s.CwdChanges)
		}

		proj, ok := projects[s.Project]
		if !ok {
			proj = &projectAgg{}
			projects[s.Project] = proj
		}
		proj.sessions++
		proj.tokens += s.TotalTokens()
		proj.cost += s.CostUSD
		if s.EndTime.After(proj.latestEnd) {
			proj.latestEnd = s.EndTime
		}

		if !s.StartTime.IsZero() {
			allTimestamps = append(allTimestamps, s.StartTime)

			m.HourlyDistribution[s.StartTime.Hour()]++
			m.WeekdayDistribution[s.StartTime.Weekday().String()]++
			m.MonthlyDistribution[s.StartTime.Format("2006-01")]++

			date := s.StartTime.Format("2006-01-02")
			m.SessionsByDate[date]++
			m.TokensByDate[date] += s.TotalTokens()
			m.CostByDate[date] += s.CostUSD
		}
		if !s.EndTime.IsZero() {
			allTimestamps = append(allTimestamps, s.EndTime)
		}

		if dur := s.DurationMs(); dur > 0 {
			durations = append(durations, dur)
			if dur > m.LongestSessionDurationMs {
				m.LongestSessionDurationMs = dur
				m.LongestSessionID = s.SessionID
			}
			if dur < shortSessionMs {
				m.ShortSessions++
			}
			if dur > marathonSessionMs {
				m.MarathonSessions++
			}
			long = append(long, model.SessionRank{
				SessionID: s.SessionID, Project: s.Project, DurationMs: dur,
			})
		}
		if s.CostUSD > 0 {
			expensive = append(expensive, model.SessionRank{
				SessionID: s.SessionID, Project: s.Project, CostUSD: s.CostUSD,
			})
		}
	}

	if len(durations) > 0 {
		var sum int64
		for _, d := range durations {
			sum += d
		}
		m.AverageSessionDurationMs = float64(sum) / float64(len(durations))
	}

	sort.Slice(expensive, func(i, j int) bool { return expensive[i].CostUSD > expensive[j].CostUSD })
	sort.Slice(long, func(i, j int) bool { return long[i].DurationMs > long[j].DurationMs })
	m.TopExpensiveSessions = truncRanks(expensive, topHighlights)
	m.TopLongSessions = truncRanks(long, topHighlights)

	// Ratios, all zero on zero denominator.
	if m.TotalOutputTokens > 0 {
		m.UserToAssistantTokenRatio = float64(m.TotalInputTokens) / float64(m.TotalOutputTokens)
	}
	if totalCache := m.TotalCacheCreationTokens + m.TotalCacheReadTokens; totalCache > 0 {
		m.CacheEfficiencyRatio = float64(m.TotalCacheReadTokens) / float64(totalCache)
	}
	if m.TotalMessages > 0 {
		m.SidechainRatio = float64(m.TotalSidechains) / float64(m.TotalMessages)
	}
	if m.TotalAssistantMessages > 0 {
		m.ErrorRate = float64(m.TotalErrors) / float64(m.TotalAssistantMessages)
	}
	if m.TotalSessions > 0 {
		m.ContextCollapseRate = float64(m.TotalSummaries) / float64(m.TotalSessions)
	}

	// Project rankings.
	m.UniqueProjects = len(projects)
	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)
	m.ProjectList = names

	cutoff := now.Add(-abandonedAfter)
	for _, name := range names {
		p := projects[name]
		if p.sessions > m.MostActiveProjectSessions {
			m.MostActiveProjectSessions = p.sessions
			m.MostActiveProject = name
		}
		if !p.latestEnd.IsZero() && p.latestEnd.Before(cutoff) {
			m.AbandonedProjects = append(m.AbandonedProjects, name)
		}
	}

	ranks := make([]model.ProjectRank, 0, len(projects))
	for _, name := range names {
		p := projects[name]
		ranks = append(ranks, model.ProjectRank{
			Name:        source.ProjectDisplayName(name),
			Sessions:    p.sessions,
			TotalTokens: p.tokens,
			CostUSD:     p.cost,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Sessions > ranks[j].Sessions })
	if len(ranks) > topN {
		ranks = ranks[:topN]
	}
	m.TopProjects = ranks

	m.ProjectGroups = groupProjects(names)

	// Directory wandering.
	m.UniqueCwds = len(cwdCounts)
	best := 0
	cwdNames := make([]string, 0, len(cwdCounts))
	for cwd := range cwdCounts {
		cwdNames = append(cwdNames, cwd)
	}
	sort.Strings(cwdNames)
	for _, cwd := range cwdNames {
		if cwdCounts[cwd] > best {
			best = cwdCounts[cwd]
			m.MostCommonCwd = cwd
		}
	}

	m.ToolChains = topToolChains(chainCounts)
	m.VersionsUsed = sortedKeys(versions)

	applyTimeExtremes(&m, allTimestamps)
	m.LongestStreakDays, m.CurrentStreakDays = Streaks(allTimestamps, now)

	// Auxiliary sources.
	m.TotalTodosCreated = result.Todos.TotalCreated
	m.TotalTodosCompleted = result.Todos.TotalCompleted
	m.TodosInProgress = result.Todos.TotalInProgress
	m.OrphanAgentTodos = result.Todos.OrphanAgentTodos
	if result.Todos.TotalCreated > 0 {
		m.TodoCompletionRate = float64(result.Todos.TotalCompleted) / float64(result.Todos.TotalCreated)
	}

	m.FeatureFlagsExposed = result.Statsig.FeatureFlags
	m.ExperimentsParticipated = result.Statsig.Experiments
	m.StatsigStableID = result.Statsig.StableID

	m.HistoryPromptCount = result.History.PromptCount
	for cmd, n := range result.History.CommandCounts {
		m.CommandFrequency[cmd] += n
		m.HistoryCommandsFound += n
	}
	for hour, n := range result.History.HourlyPrompts {
		m.HistoryPromptsByHour[hour] += n
	}

	return m
}

// MergeRepos folds repository analysis results into the metrics object.
func MergeRepos(m *model.WrappedMetrics, reposFound int, repos []model.RepoStats) {
	m.ReposFound = reposFound
	m.ReposAnalyzed = len(repos)
	m.RepoLanguages = make(map[string]int)

	for i := range repos {
		r := &repos[i]
		m.TotalCommits += r.TotalCommits
		m.UserCommits += r.UserCommits
		m.TotalAdditions += r.TotalAdditions
		m.TotalDeletions += r.TotalDeletions
		for _, lang := range r.Languages {
			m.RepoLanguages[lang]++
		}
	}

	top := len(repos)
	if top > 25 {
		top = 25
	}
	for i := 0; i < top; i++ {
		r := &repos[i]
		rank := model.RepoRank{
			Name:            r.Name,
			Path:            r.Path,
			Commits:         r.TotalCommits,
			UserCommits:     r.UserCommits,
			NetLines:        r.NetLines,
			Languages:       r.Languages,
			EngagementScore: r.EngagementScore,
			MatchedProject:  r.MatchedProject,
		}
		if !r.LastCommit.IsZero() {
			rank.LastCommit = r.LastCommit.Format(time.RFC3339)
		}
		m.TopRepos = append(m.TopRepos, rank)
	}
}

func truncRanks(ranks []model.SessionRank, n int) []model.SessionRank {
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func countChains(tools []string, counts map[string]int) {
	if len(tools) < toolChainLength {
		return
	}
	for i := 0; i+toolChainLength <= len(tools); i++ {
		counts[strings.Join(tools[i:i+toolChainLength], "\x1f")]++
	}
}

func topToolChains(counts map[string]int) []model.ToolChain {
	chains := make([]model.ToolChain, 0, len(counts))
	for key, n := range counts {
		chains = append(chains, model.ToolChain{Tools: strings.Split(key, "\x1f"), Count: n})
	}
	sort.Slice(chains, func(i, j int) bool {
		if chains[i].Count != chains[j].Count {
			return chains[i].Count > chains[j].Count
		}
		return strings.Join(chains[i].Tools, ",") < strings.Join(chains[j].Tools, ",")
	})
	if len(chains) > topChains {
		chains = chains[:topChains]
	}
	return chains
}

// groupStoplist excludes generic first tokens from prefix grouping.
var groupStoplist = map[string]bool{
	"app": true, "api": true, "web": true, "my": true, "the": true,
	"new": true, "old": true, "test": true, "demo": true, "client": true,
	"server": true, "service": true, "project": true, "go": true,
}

// groupProjects groups project display names that share a leading name
// token. Groups with a single member are dropped from the output.
func groupProjects(projectPaths []string) map[string][]string {
	groups := make(map[string][]string)
	for _, path := range projectPaths {
		display := source.ProjectDisplayName(path)
		token := display
		if idx := strings.IndexAny(display, "-_"); idx > 0 {
			token = display[:idx]
		}
		token = strings.ToLower(token)
		if token == "" || groupStoplist[token] {
			continue
		}
		groups[token] = append(groups[token], display)
	}
	for token, members := range groups {
		if len(members) < 2 {
			delete(groups, token)
		}
	}
	return groups
}

func applyTimeExtremes(m *model.WrappedMetrics, timestamps []time.Time) {
	if len(timestamps) == 0 {
		return
	}
	sorted := append([]time.Time(nil), timestamps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	m.EarliestTimestamp = sorted[0].Format(time.RFC3339)
	m.LatestTimestamp = sorted[len(sorted)-1].Format(time.RFC3339)

	// Latest night-coding time: among activity between 22:00 and 04:59,
	// the timestamp closest to midnight.
	bestNight := -1
	for _, ts := range sorted {
		h := ts.Hour()
		if h < 22 && h > 4 {
			continue
		}
		dist := h
		if h >= 22 {
			dist = 24 - h
		}
		if bestNight == -1 || dist < bestNight {
			bestNight = dist
			m.LatestNightCoding = ts.Format("15:04")
		}
	}

	// Earliest morning time within 04:00-08:59.
	bestMorning := -1
	for _, ts := range sorted {
		h := ts.Hour()
		if h < 4 || h > 8 {
			continue
		}
		minutes := h*60 + ts.Minute()
		if bestMorning == -1 || minutes < bestMorning {
			bestMorning = minutes
			m.EarliestMorningCoding = ts.Format("15:04")
		}
	}
}

// Streaks computes the longest and current runs of consecutive calendar days
// with activity. The current streak anchors at today, or yesterday when
// today is quiet; anything older means the streak is over and reports zero.
func Streaks(timestamps []time.Time, now time.Time) (longest, current int) {
	if len(timestamps) == 0 {
		return 0, 0
	}

	seen := make(map[string]time.Time)
	for _, ts := range timestamps {
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		seen[day.Format("2006-01-02")] = day
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest = 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	last := days[len(days)-1]
	if !last.Equal(today) && !last.Equal(today.AddDate(0, 0, -1)) {
		return longest, 0
	}
	current = 1
	for i := len(days) - 2; i >= 0; i-- {
		if days[i+1].Sub(days[i]) == 24*time.Hour {
			current++
		} else {
			break
		}
	}
	return longest, current
}

// FormatRunSummary builds the short stderr progress summary for a run.
func FormatRunSummary(result *LoadResult) string {
	return fmt.Sprintf("%d sessions across %d projects (%d files)",
		len(result.Sessions), result.ProjectCount, result.TotalFiles)
}
