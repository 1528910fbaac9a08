package source

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveredSession is a session JSONL file found during directory scanning.
type DiscoveredSession struct {
	Path      string
	Project   string // decoded project path (e.g., "/Users/me/projects/gitlore")
	SessionID string // file stem
}

// ScanSessions walks <claudeDir>/projects and collects every session JSONL
// file, then picks up stray root-level JSONL files (excluding history.jsonl,
// which has its own schema). Unreadable entries are skipped, never fatal.
func ScanSessions(claudeDir string) []DiscoveredSession {
	var files []DiscoveredSession

	projectsDir := filepath.Join(claudeDir, "projects")
	_ = filepath.WalkDir(projectsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}

		parent := filepath.Base(filepath.Dir(path))
		project := "root"
		if parent != "projects" {
			project = DecodeProjectPath(parent)
		}

		files = append(files, DiscoveredSession{
			Path:      path,
			Project:   project,
			SessionID: strings.TrimSuffix(d.Name(), ".jsonl"),
		})
		return nil
	})

	entries, err := os.ReadDir(claudeDir)
	if err != nil {
		return files
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".jsonl" || name == "history.jsonl" {
			continue
		}
		files = append(files, DiscoveredSession{
			Path:      filepath.Join(claudeDir, name),
			Project:   "root",
			SessionID: strings.TrimSuffix(name, ".jsonl"),
		})
	}

	return files
}

// DecodeProjectPath decodes an encoded project directory name back into a
// path. Claude Code encodes absolute paths by replacing "/" with "-", so
// "-Users-me-projects-gitlore" decodes to "/Users/me/projects/gitlore".
// Names without the leading-dash marker are returned unchanged, which makes
// the decode idempotent: decode(decode(x)) == decode(x).
func DecodeProjectPath(encoded string) string {
	if !strings.HasPrefix(encoded, "-") {
		return encoded
	}
	return strings.ReplaceAll(encoded, "-", "/")
}

// ProjectDisplayName shortens a decoded project path for rankings: the last
// path component, or the path itself when it has none.
func ProjectDisplayName(project string) string {
	if project == "" {
		return project
	}
	trimmed := strings.TrimRight(project, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 && idx+1 < len(trimmed) {
		return trimmed[idx+1:]
	}
	return trimmed
}

// CountProjects returns the number of distinct project identities.
func CountProjects(files []DiscoveredSession) int {
	seen := make(map[string]struct{})
	for _, f := range files {
		seen[f.Project] = struct{}{}
	}
	return len(seen)
}
