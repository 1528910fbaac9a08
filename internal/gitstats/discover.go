// Package gitstats discovers local git repositories, extracts commit history
// through the git CLI, and correlates the results with wrapped projects.
package gitstats

import (
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are vendor/build directories never descended into.
var skipDirs = map[string]bool{
	"node_modules": true, ".venv": true, "venv": true, "vendor": true,
	"dist": true, "build": true, "target": true, "__pycache__": true,
	"site-packages": true, ".git": true, ".cargo": true, ".npm": true,
	".cache": true, "Library": true,
}

// FindRepos walks the base directories to a bounded depth and returns paths
// of directories containing a .git entry, capped at maxRepos. Base paths
// that don't exist and unreadable subtrees are skipped silently.
func FindRepos(basePaths []string, maxDepth, maxRepos int) []string {
	var repos []string

	for _, base := range basePaths {
		base = expandHome(base)
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			continue
		}

		_ = filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable entries
			}
			if len(repos) >= maxRepos {
				return filepath.SkipAll
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if skipDirs[name] {
				return filepath.SkipDir
			}
			if depth(base, path) > maxDepth {
				return filepath.SkipDir
			}
			if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
				repos = append(repos, path)
				return filepath.SkipDir // don't descend into nested repos
			}
			return nil
		})

		if len(repos) >= maxRepos {
			break
		}
	}

	return repos
}

func depth(base, path string) int {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
