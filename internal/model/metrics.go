package model

// SessionRank identifies one session in a top-N ranking.
type SessionRank struct {
	SessionID  string  `json:"session_id" yaml:"session_id"`
	Project    string  `json:"project" yaml:"project"`
	CostUSD    float64 `json:"cost_usd,omitempty" yaml:"cost_usd,omitempty"`
	DurationMs int64   `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
}

// ProjectRank is one entry in the top-projects ranking.
type ProjectRank struct {
	Name        string  `json:"name" yaml:"name"`
	Sessions    int     `json:"sessions" yaml:"sessions"`
	TotalTokens int64   `json:"total_tokens" yaml:"total_tokens"`
	CostUSD     float64 `json:"cost_usd" yaml:"cost_usd"`
}

// ToolChain is a recurring adjacent tool sequence with its occurrence count.
type ToolChain struct {
	Tools []string `json:"tools" yaml:"tools"`
	Count int      `json:"count" yaml:"count"`
}

// RepoRank summarizes one analyzed repository for the output object.
type RepoRank struct {
	Name            string   `json:"name" yaml:"name"`
	Path            string   `json:"path" yaml:"path"`
	Commits         int      `json:"commits" yaml:"commits"`
	UserCommits     int      `json:"user_commits" yaml:"user_commits"`
	NetLines        int64    `json:"net_lines" yaml:"net_lines"`
	Languages       []string `json:"languages" yaml:"languages"`
	EngagementScore float64  `json:"engagement_score" yaml:"engagement_score"`
	LastCommit      string   `json:"last_commit,omitempty" yaml:"last_commit,omitempty"`
	MatchedProject  string   `json:"matched_project,omitempty" yaml:"matched_project,omitempty"`
}

// WrappedMetrics is the single aggregate object computed once per run.
// Every field is a primitive, a flat mapping, or a list of such, so the
// whole object serializes cleanly to JSON or YAML.
type WrappedMetrics struct {
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`

	// Basic stats
	TotalSessions          int `json:"total_sessions" yaml:"total_sessions"`
	TotalMessages          int `json:"total_messages" yaml:"total_messages"`
	TotalUserMessages      int `json:"total_user_messages" yaml:"total_user_messages"`
	TotalAssistantMessages int `json:"total_assistant_messages" yaml:"total_assistant_messages"`

	// Token economics
	TotalInputTokens         int64   `json:"total_input_tokens" yaml:"total_input_tokens"`
	TotalOutputTokens        int64   `json:"total_output_tokens" yaml:"total_output_tokens"`
	TotalCacheCreationTokens int64   `json:"total_cache_creation_tokens" yaml:"total_cache_creation_tokens"`
	TotalCacheReadTokens     int64   `json:"total_cache_read_tokens" yaml:"total_cache_read_tokens"`
	TotalCostUSD             float64 `json:"total_cost_usd" yaml:"total_cost_usd"`

	// Time patterns
	HourlyDistribution  map[int]int    `json:"hourly_distribution" yaml:"hourly_distribution"`
	WeekdayDistribution map[string]int `json:"weekday_distribution" yaml:"weekday_distribution"`
	MonthlyDistribution map[string]int `json:"monthly_distribution" yaml:"monthly_distribution"`

	SessionsByDate map[string]int     `json:"sessions_by_date" yaml:"sessions_by_date"`
	TokensByDate   map[string]int64   `json:"tokens_by_date" yaml:"tokens_by_date"`
	CostByDate     map[string]float64 `json:"cost_by_date" yaml:"cost_by_date"`

	// Session patterns
	LongestSessionDurationMs int64   `json:"longest_session_duration_ms" yaml:"longest_session_duration_ms"`
	TotalAPIDurationMs       int64   `json:"total_api_duration_ms" yaml:"total_api_duration_ms"`
	LongestSessionID         string  `json:"longest_session_id" yaml:"longest_session_id"`
	ShortSessions            int     `json:"short_sessions" yaml:"short_sessions"`
	MarathonSessions         int     `json:"marathon_sessions" yaml:"marathon_sessions"`
	AverageSessionDurationMs float64 `json:"average_session_duration_ms" yaml:"average_session_duration_ms"`

	// Ratios
	UserToAssistantTokenRatio float64 `json:"user_to_assistant_token_ratio" yaml:"user_to_assistant_token_ratio"`
	CacheEfficiencyRatio      float64 `json:"cache_efficiency_ratio" yaml:"cache_efficiency_ratio"`
	SidechainRatio            float64 `json:"sidechain_ratio" yaml:"sidechain_ratio"`
	ErrorRate                 float64 `json:"error_rate" yaml:"error_rate"`
	ContextCollapseRate       float64 `json:"context_collapse_rate" yaml:"context_collapse_rate"`

	TotalSidechains int `json:"total_sidechains" yaml:"total_sidechains"`
	TotalErrors     int `json:"total_errors" yaml:"total_errors"`
	TotalSummaries  int `json:"total_summaries" yaml:"total_summaries"`

	// Tool and model usage
	ToolFrequency  map[string]int `json:"tool_frequency" yaml:"tool_frequency"`
	ToolChains     []ToolChain    `json:"tool_chains" yaml:"tool_chains"`
	ModelFrequency map[string]int `json:"model_frequency" yaml:"model_frequency"`

	// Invocations
	AgentFrequency       map[string]int `json:"agent_frequency" yaml:"agent_frequency"`
	SkillFrequency       map[string]int `json:"skill_frequency" yaml:"skill_frequency"`
	CommandFrequency     map[string]int `json:"command_frequency" yaml:"command_frequency"`
	SubagentTypeCounts   map[string]int `json:"subagent_type_counts" yaml:"subagent_type_counts"`
	VersionsUsed         []string       `json:"versions_used" yaml:"versions_used"`
	HistoryPromptCount   int            `json:"history_prompt_count" yaml:"history_prompt_count"`
	HistoryCommandsFound int            `json:"history_commands_found" yaml:"history_commands_found"`
	HistoryPromptsByHour map[int]int    `json:"history_prompts_by_hour" yaml:"history_prompts_by_hour"`

	// Projects
	UniqueProjects            int                 `json:"unique_projects" yaml:"unique_projects"`
	ProjectList               []string            `json:"project_list" yaml:"project_list"`
	MostActiveProject         string              `json:"most_active_project" yaml:"most_active_project"`
	MostActiveProjectSessions int                 `json:"most_active_project_sessions" yaml:"most_active_project_sessions"`
	AbandonedProjects         []string            `json:"abandoned_projects" yaml:"abandoned_projects"`
	ProjectGroups             map[string][]string `json:"project_groups" yaml:"project_groups"`
	TopProjects               []ProjectRank       `json:"top_projects" yaml:"top_projects"`

	// Directory wandering
	UniqueCwds             int    `json:"unique_cwds" yaml:"unique_cwds"`
	MostCommonCwd          string `json:"most_common_cwd" yaml:"most_common_cwd"`
	MaxCwdChangesInSession int    `json:"max_cwd_changes_in_session" yaml:"max_cwd_changes_in_session"`

	// Time extremes
	EarliestTimestamp     string `json:"earliest_timestamp,omitempty" yaml:"earliest_timestamp,omitempty"`
	LatestTimestamp       string `json:"latest_timestamp,omitempty" yaml:"latest_timestamp,omitempty"`
	LatestNightCoding     string `json:"latest_night_coding,omitempty" yaml:"latest_night_coding,omitempty"`
	EarliestMorningCoding string `json:"earliest_morning_coding,omitempty" yaml:"earliest_morning_coding,omitempty"`

	// Streaks
	LongestStreakDays int `json:"longest_streak_days" yaml:"longest_streak_days"`
	CurrentStreakDays int `json:"current_streak_days" yaml:"current_streak_days"`

	// Highlights
	TopExpensiveSessions []SessionRank `json:"top_expensive_sessions" yaml:"top_expensive_sessions"`
	TopLongSessions      []SessionRank `json:"top_long_sessions" yaml:"top_long_sessions"`

	// Todo graveyard
	TotalTodosCreated   int     `json:"total_todos_created" yaml:"total_todos_created"`
	TotalTodosCompleted int     `json:"total_todos_completed" yaml:"total_todos_completed"`
	TodosInProgress     int     `json:"todos_in_progress" yaml:"todos_in_progress"`
	TodoCompletionRate  float64 `json:"todo_completion_rate" yaml:"todo_completion_rate"`
	OrphanAgentTodos    int     `json:"orphan_agent_todos" yaml:"orphan_agent_todos"`

	// Feature-flag exposure
	FeatureFlagsExposed      int    `json:"feature_flags_exposed" yaml:"feature_flags_exposed"`
	ExperimentsParticipated  int    `json:"experiments_participated" yaml:"experiments_participated"`
	StatsigStableID          string `json:"statsig_stable_id,omitempty" yaml:"statsig_stable_id,omitempty"`

	// Repository correlation
	ReposFound     int            `json:"repos_found" yaml:"repos_found"`
	ReposAnalyzed  int            `json:"repos_analyzed" yaml:"repos_analyzed"`
	TotalCommits   int            `json:"total_commits" yaml:"total_commits"`
	UserCommits    int            `json:"user_commits" yaml:"user_commits"`
	TotalAdditions int64          `json:"total_additions" yaml:"total_additions"`
	TotalDeletions int64          `json:"total_deletions" yaml:"total_deletions"`
	RepoLanguages  map[string]int `json:"repo_languages" yaml:"repo_languages"`
	TopRepos       []RepoRank     `json:"top_repos" yaml:"top_repos"`

	// Classification
	Personality            string `json:"developer_personality" yaml:"developer_personality"`
	PersonalityDescription string `json:"personality_description" yaml:"personality_description"`
	CodingCity             string `json:"coding_city" yaml:"coding_city"`
	CodingCityDescription  string `json:"coding_city_description" yaml:"coding_city_description"`
}
