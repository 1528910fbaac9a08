package model

import "time"

// Commit is one parsed entry from git log --numstat output.
type Commit struct {
	Hash        string
	AuthorName  string
	AuthorEmail string
	Timestamp   time.Time
	Subject     string
	Additions   int64
	Deletions   int64
	Files       []string
}

// AuthorStats accumulates per-author activity inside one repository.
type AuthorStats struct {
	Commits   int
	Additions int64
	Deletions int64
}

// RepoStats holds the analysis result for a single git repository.
type RepoStats struct {
	Path string
	Name string

	TotalCommits   int
	UserCommits    int
	TotalAdditions int64
	TotalDeletions int64
	NetLines       int64

	Authors map[string]AuthorStats

	FirstCommit time.Time
	LastCommit  time.Time

	HourlyDistribution  map[int]int
	DailyDistribution   map[string]int
	MonthlyDistribution map[string]int

	FileTypes       map[string]int
	Languages       []string
	PrimaryLanguage string

	SmallCommits  int // < 50 changed lines
	MediumCommits int // 50-200
	LargeCommits  int // > 200

	EngagementScore float64
	MatchedProject  string
}

// DurationDays returns the span between first and last commit in whole days,
// minimum one day when both bounds exist.
func (r *RepoStats) DurationDays() int {
	if r.FirstCommit.IsZero() || r.LastCommit.IsZero() {
		return 0
	}
	days := int(r.LastCommit.Sub(r.FirstCommit).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}
