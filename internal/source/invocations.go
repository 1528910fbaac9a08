package source

import (
	"regexp"
	"strings"

	"clwrapped/internal/model"
)

// Invocation detection rule table.
//
// Free-form text is ambiguous: slash-prefixed tokens may be user commands or
// pasted API routes, "skill" appears constantly in ordinary prose, and docs
// quote the literal agent-mention placeholder. Each category therefore pairs
// a pattern with an explicit disambiguation condition:
//
//	agents:   "@agent-<ident>" only; the documentation placeholder
//	          "@agent-name" is excluded.
//	commands: line-start "/<name>" accepted when <name> is a known built-in,
//	          OR contains a namespace separator ":", OR is absent from the
//	          REST-path deny-list and longer than minCommandLen.
//	skills:   structural markers only — a skills/ path fragment, a quoted
//	          "skill": "<name>" pair, or a <name>/SKILL.md reference.
//
// Tool-call records name their tool directly and bypass all of the above;
// see DetectToolInvocation.
var (
	agentMentionRe = regexp.MustCompile(`@agent-([A-Za-z0-9][A-Za-z0-9_-]*)`)

	slashCommandRe = regexp.MustCompile(`(?m)^\s*/([A-Za-z0-9][A-Za-z0-9_:-]*)`)

	skillPathRe     = regexp.MustCompile(`skills/([A-Za-z0-9][A-Za-z0-9_-]*)/`)
	skillKeyRe      = regexp.MustCompile(`"skill"\s*:\s*"([A-Za-z0-9][A-Za-z0-9_-]*)"`)
	skillManifestRe = regexp.MustCompile(`([A-Za-z0-9][A-Za-z0-9_-]*)/SKILL\.md`)
)

// agentPlaceholder is the literal identifier used in documentation examples
// of the mention syntax; it never refers to a real agent.
const agentPlaceholder = "name"

// builtinCommands is the allow-list of first-party slash commands.
var builtinCommands = map[string]bool{
	"add-dir": true, "agents": true, "bug": true, "clear": true,
	"compact": true, "config": true, "context": true, "cost": true,
	"doctor": true, "exit": true, "export": true, "help": true,
	"hooks": true, "ide": true, "init": true, "install-github-app": true,
	"login": true, "logout": true, "mcp": true, "memory": true,
	"model": true, "output-style": true, "permissions": true,
	"pr-comments": true, "release-notes": true, "resume": true,
	"review": true, "rewind": true, "skills": true, "status": true,
	"statusline": true, "terminal-setup": true, "todos": true,
	"upgrade": true, "vim": true,
}

// restPathSegments deny-lists tokens that show up at the start of pasted API
// routes and would otherwise look like commands.
var restPathSegments = map[string]bool{
	"api": true, "v1": true, "v2": true, "v3": true, "auth": true,
	"health": true, "healthz": true, "ping": true, "metrics": true,
	"users": true, "user": true, "admin": true, "home": true,
	"index": true, "search": true, "posts": true, "products": true,
	"items": true, "data": true, "docs": true, "static": true,
	"assets": true, "graphql": true, "webhook": true, "webhooks": true,
	"callback": true, "oauth": true, "token": true, "refresh": true,
}

// minCommandLen is the shortest unknown, un-namespaced token accepted as a
// command; shorter ones are overwhelmingly path fragments or typos.
const minCommandLen = 3

// DetectInvocations scans a free-form text blob and appends detected agent,
// command, and skill names to the session. Names are lowercased so frequency
// counting downstream is case-insensitive.
func DetectInvocations(text string, stats *model.SessionStats) {
	for _, m := range agentMentionRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		if name == agentPlaceholder {
			continue
		}
		stats.AgentsUsed = append(stats.AgentsUsed, name)
	}

	for _, m := range slashCommandRe.FindAllStringSubmatch(text, -1) {
		name := strings.ToLower(m[1])
		if acceptCommand(name) {
			stats.CommandsUsed = append(stats.CommandsUsed, name)
		}
	}

	for _, re := range []*regexp.Regexp{skillPathRe, skillKeyRe, skillManifestRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			stats.SkillsUsed = append(stats.SkillsUsed, strings.ToLower(m[1]))
		}
	}
}

func acceptCommand(name string) bool {
	if builtinCommands[name] {
		return true
	}
	if strings.Contains(name, ":") {
		return true // custom namespaced command, e.g. /project:deploy
	}
	if restPathSegments[name] {
		return false
	}
	return len(name) > minCommandLen
}

// DetectToolInvocation records invocations carried by structured tool calls.
// The tool name identifies the category, so no text matching is involved:
// the input payload supplies the invoked name directly.
func DetectToolInvocation(toolName string, input map[string]any, stats *model.SessionStats) {
	switch toolName {
	case "Skill":
		if name := firstStringField(input, "skill", "name", "command"); name != "" {
			stats.SkillsUsed = append(stats.SkillsUsed, strings.ToLower(name))
		}
	case "SlashCommand":
		if cmd := firstStringField(input, "command"); cmd != "" {
			name := strings.TrimPrefix(cmd, "/")
			if idx := strings.IndexByte(name, ' '); idx >= 0 {
				name = name[:idx]
			}
			if name != "" {
				stats.CommandsUsed = append(stats.CommandsUsed, strings.ToLower(name))
			}
		}
	case "Task":
		if st := firstStringField(input, "subagent_type"); st != "" {
			stats.SubagentTypes = append(stats.SubagentTypes, strings.ToLower(st))
		}
	}
}

func firstStringField(input map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := input[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
