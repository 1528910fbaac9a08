package source

import (
	"reflect"
	"testing"

	"clwrapped/internal/model"
)

func TestDetectInvocations_Agents(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple mention", "ask @agent-reviewer to take a look", []string{"reviewer"}},
		{"placeholder excluded", "use @agent-name to invoke an agent", nil},
		{"mixed case lowered", "ping @agent-Code-Reviewer please", []string{"code-reviewer"}},
		{"multiple", "@agent-a1 then @agent-b2", []string{"a1", "b2"}},
		{"no mention", "email me at agent-reviewer@example.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats model.SessionStats
			DetectInvocations(tt.text, &stats)
			if !reflect.DeepEqual(stats.AgentsUsed, tt.want) {
				t.Errorf("AgentsUsed = %v, want %v", stats.AgentsUsed, tt.want)
			}
		})
	}
}

func TestDetectInvocations_Commands(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"builtin", "/compact", []string{"compact"}},
		{"builtin with args", "/model claude-opus-4-5", []string{"model"}},
		{"namespaced custom", "/project:deploy staging", []string{"project:deploy"}},
		{"rest path rejected", "/health", nil},
		{"api route rejected", "/api/users/123", nil},
		{"short unknown rejected", "/foo", nil},
		{"long unknown accepted", "/deploy-preview", []string{"deploy-preview"}},
		{"mid line ignored", "check the /etc/hosts file", nil},
		{"leading whitespace ok", "   /clear", []string{"clear"}},
		{"case lowered", "/Compact", []string{"compact"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats model.SessionStats
			DetectInvocations(tt.text, &stats)
			if !reflect.DeepEqual(stats.CommandsUsed, tt.want) {
				t.Errorf("CommandsUsed = %v, want %v", stats.CommandsUsed, tt.want)
			}
		})
	}
}

func TestDetectInvocations_Skills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"path fragment", "loading skills/pdf-tools/run.py", []string{"pdf-tools"}},
		{"quoted key", `{"skill": "web-scraper"}`, []string{"web-scraper"}},
		{"manifest reference", "see commit-helper/SKILL.md for details", []string{"commit-helper"}},
		{"prose word ignored", "that takes real skill to pull off", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats model.SessionStats
			DetectInvocations(tt.text, &stats)
			if !reflect.DeepEqual(stats.SkillsUsed, tt.want) {
				t.Errorf("SkillsUsed = %v, want %v", stats.SkillsUsed, tt.want)
			}
		})
	}
}

func TestDetectToolInvocation(t *testing.T) {
	var stats model.SessionStats

	DetectToolInvocation("Skill", map[string]any{"skill": "PDF-Tools"}, &stats)
	DetectToolInvocation("SlashCommand", map[string]any{"command": "/review HEAD~3"}, &stats)
	DetectToolInvocation("Task", map[string]any{"subagent_type": "general-purpose"}, &stats)
	DetectToolInvocation("Read", map[string]any{"file_path": "/tmp/x"}, &stats)

	if !reflect.DeepEqual(stats.SkillsUsed, []string{"pdf-tools"}) {
		t.Errorf("SkillsUsed = %v", stats.SkillsUsed)
	}
	if !reflect.DeepEqual(stats.CommandsUsed, []string{"review"}) {
		t.Errorf("CommandsUsed = %v", stats.CommandsUsed)
	}
	if !reflect.DeepEqual(stats.SubagentTypes, []string{"general-purpose"}) {
		t.Errorf("SubagentTypes = %v", stats.SubagentTypes)
	}
}

func TestDetectToolInvocation_EmptyInput(t *testing.T) {
	var stats model.SessionStats
	DetectToolInvocation("Skill", nil, &stats)
	DetectToolInvocation("SlashCommand", map[string]any{"command": "/"}, &stats)
	DetectToolInvocation("Task", map[string]any{"subagent_type": 42}, &stats)

	if len(stats.SkillsUsed)+len(stats.CommandsUsed)+len(stats.SubagentTypes) != 0 {
		t.Errorf("empty inputs must record nothing: %+v", stats)
	}
}

// FuzzDetectInvocations checks the text scanner never panics on arbitrary
// input and only ever records lowercase names.
func FuzzDetectInvocations(f *testing.F) {
	f.Add("run @agent-reviewer then /compact")
	f.Add("/project:deploy --force")
	f.Add(`{"skill": "web-scraper"} and skills/pdf/x`)
	f.Add("/health /api/v1/users")
	f.Add("")
	f.Add("@agent-")

	f.Fuzz(func(t *testing.T, text string) {
		var stats model.SessionStats
		DetectInvocations(text, &stats)

		for _, group := range [][]string{stats.AgentsUsed, stats.CommandsUsed, stats.SkillsUsed} {
			for _, name := range group {
				if name == "" {
					t.Errorf("recorded empty name from %q", text)
				}
				for _, r := range name {
					if r >= 'A' && r <= 'Z' {
						t.Errorf("recorded non-lowercase name %q from %q", name, text)
					}
				}
			}
		}
	})
}
