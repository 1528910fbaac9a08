package gitstats

import (
	"strings"

	"clwrapped/internal/model"
)

// MatchRepos attaches repositories to wrapped project names. For each repo,
// an exact lowercase-normalized name match wins; otherwise substring
// containment in either direction is accepted. First match in iteration
// order wins with no further resolution.
func MatchRepos(repos []model.RepoStats, projectNames []string) map[string]*model.RepoStats {
	matches := make(map[string]*model.RepoStats)

	for i := range repos {
		repo := &repos[i]
		repoName := normalizeName(repo.Name)

		for _, project := range projectNames {
			projName := normalizeName(project)
			if projName == "" {
				continue
			}

			if repoName == projName {
				matches[project] = repo
				repo.MatchedProject = project
				break
			}

			if strings.Contains(projName, repoName) || strings.Contains(repoName, projName) {
				if _, taken := matches[project]; !taken {
					matches[project] = repo
					repo.MatchedProject = project
				}
			}
		}
	}

	return matches
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
