package gitstats

import (
	"testing"

	"clwrapped/internal/model"
)

func TestMatchRepos_ExactMatch(t *testing.T) {
	repos := []model.RepoStats{{Name: "gitlore"}}
	matches := MatchRepos(repos, []string{"gitlore", "other"})

	if matches["gitlore"] == nil {
		t.Fatal("exact match missing")
	}
	if repos[0].MatchedProject != "gitlore" {
		t.Errorf("MatchedProject = %q", repos[0].MatchedProject)
	}
}

func TestMatchRepos_NormalizedMatch(t *testing.T) {
	repos := []model.RepoStats{{Name: "My_Project"}}
	matches := MatchRepos(repos, []string{"my-project"})

	if matches["my-project"] == nil {
		t.Error("underscore/dash and case differences must still match")
	}
}

func TestMatchRepos_SubstringEitherDirection(t *testing.T) {
	repos := []model.RepoStats{{Name: "gitlore"}}
	matches := MatchRepos(repos, []string{"gitlore-web"})
	if matches["gitlore-web"] == nil {
		t.Error("repo name contained in project name must match")
	}

	repos = []model.RepoStats{{Name: "gitlore-monorepo"}}
	matches = MatchRepos(repos, []string{"gitlore"})
	if matches["gitlore"] == nil {
		t.Error("project name contained in repo name must match")
	}
}

func TestMatchRepos_FirstMatchWins(t *testing.T) {
	repos := []model.RepoStats{
		{Name: "api"},
		{Name: "api-v2"},
	}
	matches := MatchRepos(repos, []string{"api"})

	if got := matches["api"]; got == nil || got.Name != "api" {
		t.Errorf("matched repo = %v, want the first exact match", got)
	}
}

func TestMatchRepos_NoMatch(t *testing.T) {
	repos := []model.RepoStats{{Name: "dotfiles"}}
	matches := MatchRepos(repos, []string{"gitlore"})
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}
