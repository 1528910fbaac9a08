package gitstats

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"clwrapped/internal/model"
)

const (
	maxCommitsPerRepo = 5000
	gitLogTimeout     = 60 * time.Second
	gitConfigTimeout  = 5 * time.Second
)

// automatedAuthors are substrings marking bot commits.
var automatedAuthors = []string{
	"dependabot", "renovate", "github-actions", "bot",
	"semantic-release", "greenkeeper", "snyk-bot",
}

// languageByExt maps file extensions to display languages.
var languageByExt = map[string]string{
	".py": "Python", ".js": "JavaScript", ".ts": "TypeScript",
	".tsx": "TypeScript", ".jsx": "JavaScript", ".go": "Go",
	".rs": "Rust", ".java": "Java", ".kt": "Kotlin", ".swift": "Swift",
	".rb": "Ruby", ".php": "PHP", ".cs": "C#", ".cpp": "C++",
	".c": "C", ".h": "C/C++", ".html": "HTML", ".css": "CSS",
	".scss": "SCSS", ".vue": "Vue", ".svelte": "Svelte", ".sql": "SQL",
	".sh": "Shell", ".bash": "Shell", ".zsh": "Shell", ".md": "Markdown",
	".yaml": "YAML", ".yml": "YAML", ".json": "JSON", ".toml": "TOML",
}

// languageWeights discount config and docs relative to code when ranking.
var languageWeights = map[string]float64{
	"HTML": 0.5, "CSS": 0.5, "SCSS": 0.5, "SQL": 0.7, "Shell": 0.8,
	"JSON": 0.2, "YAML": 0.2, "TOML": 0.2, "Markdown": 0.1,
	"Vue": 0.9, "Svelte": 0.9,
}

// UserIdentifiers collects strings that may identify the current user in
// commit authorship: git config name/email, the email's local part, and the
// system username. Failures just shrink the list.
func UserIdentifiers(ctx context.Context) []string {
	var ids []string

	for _, key := range []string{"user.email", "user.name"} {
		cctx, cancel := context.WithTimeout(ctx, gitConfigTimeout)
		out, err := exec.CommandContext(cctx, "git", "config", "--global", key).Output()
		cancel()
		if err != nil {
			continue
		}
		val := strings.ToLower(strings.TrimSpace(string(out)))
		if val == "" {
			continue
		}
		ids = append(ids, val)
		if at := strings.IndexByte(val, '@'); at > 0 {
			ids = append(ids, val[:at])
		}
	}

	for _, env := range []string{"USER", "USERNAME"} {
		if v := strings.ToLower(os.Getenv(env)); v != "" {
			ids = append(ids, v)
		}
	}

	return ids
}

func isAutomated(authorName, authorEmail string) bool {
	combined := strings.ToLower(authorName + authorEmail)
	for _, bot := range automatedAuthors {
		if strings.Contains(combined, bot) {
			return true
		}
	}
	return false
}

func isUserCommit(authorName, authorEmail string, identifiers []string) bool {
	name := strings.ToLower(authorName)
	email := strings.ToLower(authorEmail)
	for _, id := range identifiers {
		if strings.Contains(email, id) || strings.Contains(name, id) {
			return true
		}
	}
	return false
}

// parseGitLog runs git log with numstat output and parses it into commits.
// The command is bounded by commit count and a timeout; any failure yields
// an empty slice.
func parseGitLog(ctx context.Context, repoPath string) []model.Commit {
	cctx, cancel := context.WithTimeout(ctx, gitLogTimeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "git", "-C", repoPath, "log",
		"-"+strconv.Itoa(maxCommitsPerRepo),
		"--numstat",
		"--format=COMMIT|%H|%an|%ae|%at|%s")
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	var commits []model.Commit
	var cur *model.Commit

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "COMMIT|") {
			if cur != nil {
				commits = append(commits, *cur)
			}
			cur = nil

			parts := strings.SplitN(line, "|", 6)
			if len(parts) < 5 {
				continue
			}
			epoch, _ := strconv.ParseInt(parts[4], 10, 64)
			c := model.Commit{
				Hash:        parts[1],
				AuthorName:  parts[2],
				AuthorEmail: parts[3],
			}
			if epoch > 0 {
				c.Timestamp = time.Unix(epoch, 0)
			}
			if len(parts) == 6 {
				c.Subject = parts[5]
			}
			cur = &c
			continue
		}

		if cur == nil || !strings.Contains(line, "\t") {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		// Binary files report "-" for both counts.
		adds, err1 := strconv.ParseInt(parts[0], 10, 64)
		dels, err2 := strconv.ParseInt(parts[1], 10, 64)
		if err1 == nil {
			cur.Additions += adds
		}
		if err2 == nil {
			cur.Deletions += dels
		}
		cur.Files = append(cur.Files, parts[2])
	}
	if cur != nil {
		commits = append(commits, *cur)
	}

	return commits
}

// AnalyzeRepo extracts commit history for one repository and computes its
// statistics. A repository with no readable commits returns ok=false.
func AnalyzeRepo(ctx context.Context, repoPath string, identifiers []string) (model.RepoStats, bool) {
	stats := model.RepoStats{
		Path:                repoPath,
		Name:                filepath.Base(repoPath),
		Authors:             make(map[string]model.AuthorStats),
		HourlyDistribution:  make(map[int]int),
		DailyDistribution:   make(map[string]int),
		MonthlyDistribution: make(map[string]int),
		FileTypes:           make(map[string]int),
	}

	commits := parseGitLog(ctx, repoPath)
	if len(commits) == 0 {
		return stats, false
	}
	stats.TotalCommits = len(commits)

	for i := range commits {
		c := &commits[i]
		if isAutomated(c.AuthorName, c.AuthorEmail) {
			continue
		}
		if isUserCommit(c.AuthorName, c.AuthorEmail, identifiers) {
			stats.UserCommits++
		}

		stats.TotalAdditions += c.Additions
		stats.TotalDeletions += c.Deletions

		a := stats.Authors[c.AuthorName]
		a.Commits++
		a.Additions += c.Additions
		a.Deletions += c.Deletions
		stats.Authors[c.AuthorName] = a

		if !c.Timestamp.IsZero() {
			stats.HourlyDistribution[c.Timestamp.Hour()]++
			stats.DailyDistribution[c.Timestamp.Weekday().String()]++
			stats.MonthlyDistribution[c.Timestamp.Format("2006-01")]++

			if stats.FirstCommit.IsZero() || c.Timestamp.Before(stats.FirstCommit) {
				stats.FirstCommit = c.Timestamp
			}
			if c.Timestamp.After(stats.LastCommit) {
				stats.LastCommit = c.Timestamp
			}
		}

		switch lines := c.Additions + c.Deletions; {
		case lines < 50:
			stats.SmallCommits++
		case lines < 200:
			stats.MediumCommits++
		default:
			stats.LargeCommits++
		}

		for _, file := range c.Files {
			if ext := strings.ToLower(filepath.Ext(file)); ext != "" {
				stats.FileTypes[ext]++
			}
		}
	}

	stats.NetLines = stats.TotalAdditions - stats.TotalDeletions
	detectLanguages(&stats)
	stats.EngagementScore = engagementScore(&stats, time.Now())

	return stats, true
}

func detectLanguages(stats *model.RepoStats) {
	scores := make(map[string]float64)
	for ext, count := range stats.FileTypes {
		lang, ok := languageByExt[ext]
		if !ok {
			continue
		}
		weight, ok := languageWeights[lang]
		if !ok {
			weight = 1.0
		}
		scores[lang] += float64(count) * weight
	}
	if len(scores) == 0 {
		return
	}

	langs := make([]string, 0, len(scores))
	for lang := range scores {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if scores[langs[i]] != scores[langs[j]] {
			return scores[langs[i]] > scores[langs[j]]
		}
		return langs[i] < langs[j]
	})
	if len(langs) > 5 {
		langs = langs[:5]
	}
	stats.Languages = langs
	stats.PrimaryLanguage = langs[0]
}

// engagementScore computes a 0-1 composite score:
// commit volume 25% (500 commits saturates), lines changed 30% (50k
// saturates), recency 25% (linear decay over 30 days), duration 20%
// (one year saturates), with small boosts for being the dominant
// contributor and for language diversity.
func engagementScore(stats *model.RepoStats, now time.Time) float64 {
	commitScore := minF(1.0, float64(stats.TotalCommits)/500)
	linesScore := minF(1.0, float64(stats.TotalAdditions+stats.TotalDeletions)/50000)

	recencyScore := 0.0
	if !stats.LastCommit.IsZero() {
		daysSince := now.Sub(stats.LastCommit).Hours() / 24
		recencyScore = maxF(0.0, 1.0-daysSince/30)
	}

	durationScore := minF(1.0, float64(stats.DurationDays())/365)

	score := 0.25*commitScore + 0.30*linesScore + 0.25*recencyScore + 0.20*durationScore

	if stats.TotalCommits > 0 {
		if float64(stats.UserCommits)/float64(stats.TotalCommits) > 0.8 {
			score *= 1.1
		}
	}
	if len(stats.Languages) > 2 {
		score *= 1.05
	}

	return minF(1.0, score)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// AnalyzeAll analyzes repositories concurrently with a bounded worker pool.
// Each repository is independent; a timeout or failure in one worker drops
// only that repository. Results are merged and sorted after all workers
// finish, highest engagement first.
func AnalyzeAll(ctx context.Context, repoPaths []string, maxWorkers int) []model.RepoStats {
	if len(repoPaths) == 0 {
		return nil
	}

	identifiers := UserIdentifiers(ctx)

	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if maxWorkers > len(repoPaths) {
		maxWorkers = len(repoPaths)
	}

	work := make(chan int, len(repoPaths))
	results := make([]model.RepoStats, len(repoPaths))
	ok := make([]bool, len(repoPaths))
	var wg sync.WaitGroup

	for i := range repoPaths {
		work <- i
	}
	close(work)

	wg.Add(maxWorkers)
	for w := 0; w < maxWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx], ok[idx] = AnalyzeRepo(ctx, repoPaths[idx], identifiers)
			}
		}()
	}
	wg.Wait()

	var stats []model.RepoStats
	for i := range results {
		if ok[i] {
			stats = append(stats, results[i])
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].EngagementScore > stats[j].EngagementScore
	})

	return stats
}
