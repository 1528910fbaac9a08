// Package classify maps aggregated metrics to descriptive labels for the
// report. Each taxonomy is an ordered decision list: rules are evaluated top
// to bottom, the first matching predicate wins, and a catch-all final rule
// guarantees a result. Rule order is part of the contract — reordering
// changes classifications.
package classify

import "clwrapped/internal/model"

// rule is one entry of a decision list.
type rule struct {
	match       func(*features) bool
	label       string
	description string
}

// features holds the derived quantities the predicates test. Computing them
// once up front keeps the rules themselves to simple threshold checks.
type features struct {
	m *model.WrappedMetrics

	nightShare           float64 // activity share in 22:00-04:59
	morningShare         float64 // activity share in 05:00-08:59
	weekendShare         float64
	sessionsPerActiveDay float64
	subagentInvocations  int
	distinctTools        int
}

func deriveFeatures(m *model.WrappedMetrics) *features {
	f := &features{m: m}

	total := 0
	night := 0
	morning := 0
	for hour, n := range m.HourlyDistribution {
		total += n
		if hour >= 22 || hour <= 4 {
			night += n
		}
		if hour >= 5 && hour <= 8 {
			morning += n
		}
	}
	if total > 0 {
		f.nightShare = float64(night) / float64(total)
		f.morningShare = float64(morning) / float64(total)
	}

	weekday := 0
	weekend := 0
	for day, n := range m.WeekdayDistribution {
		if day == "Saturday" || day == "Sunday" {
			weekend += n
		} else {
			weekday += n
		}
	}
	if weekday+weekend > 0 {
		f.weekendShare = float64(weekend) / float64(weekday+weekend)
	}

	if activeDays := len(m.SessionsByDate); activeDays > 0 {
		f.sessionsPerActiveDay = float64(m.TotalSessions) / float64(activeDays)
	}

	for _, n := range m.SubagentTypeCounts {
		f.subagentInvocations += n
	}
	f.distinctTools = len(m.ToolFrequency)

	return f
}

// archetypeRules is the behavioral taxonomy.
var archetypeRules = []rule{
	{
		match: func(f *features) bool {
			return f.nightShare > 0.15 && f.m.MarathonSessions > f.m.ShortSessions
		},
		label:       "The Night Owl",
		description: "Your best work starts when everyone else logs off. Long sessions, late hours, no regrets.",
	},
	{
		match: func(f *features) bool {
			return f.m.MarathonSessions >= 10
		},
		label:       "The Marathon Runner",
		description: "Two-hour sessions are your warm-up. You settle in, lock on, and don't come up for air.",
	},
	{
		match: func(f *features) bool {
			return f.m.ShortSessions >= 10 && f.m.ShortSessions > 2*f.m.MarathonSessions
		},
		label:       "The Sprinter",
		description: "In, one question, out. You treat every session like a pit stop.",
	},
	{
		match: func(f *features) bool {
			return f.m.SidechainRatio > 0.10 || f.subagentInvocations >= 25
		},
		label:       "The Delegator",
		description: "Why do it yourself when you can spawn an agent to do it? Your sidechains have sidechains.",
	},
	{
		match: func(f *features) bool {
			return f.distinctTools >= 15
		},
		label:       "The Tool Master",
		description: "There isn't a tool you haven't invoked. Your sessions read like a command reference.",
	},
	{
		match: func(f *features) bool {
			return f.m.TotalTodosCreated >= 20 && f.m.TodoCompletionRate > 0.8
		},
		label:       "The Shipper",
		description: "Todos go in, checkmarks come out. Your task lists actually finish.",
	},
	{
		match: func(f *features) bool {
			return f.m.UniqueProjects >= 15
		},
		label:       "The Explorer",
		description: "A new directory every week. Some projects ship, some are lessons, all of them count.",
	},
	{
		match:       func(*features) bool { return true },
		label:       "The Balanced Builder",
		description: "Steady hours, steady output. You use the machine; it doesn't use you.",
	},
}

// cityRules is the geographic theme taxonomy.
var cityRules = []rule{
	{
		match: func(f *features) bool {
			return f.nightShare > 0.25
		},
		label:       "Tokyo",
		description: "Neon hours. Your commit graph glows brightest after midnight.",
	},
	{
		match: func(f *features) bool {
			return f.weekendShare > 0.30
		},
		label:       "Berlin",
		description: "Weekends are not for resting. Saturday sessions and Sunday refactors.",
	},
	{
		match: func(f *features) bool {
			return f.m.TotalCostUSD > 500 || f.m.MarathonSessions >= 5
		},
		label:       "San Francisco",
		description: "Big sessions, bigger token bills. Scale first, optimize later.",
	},
	{
		match: func(f *features) bool {
			return f.morningShare > 0.25
		},
		label:       "London",
		description: "Up with the sun and already three prompts deep before the first coffee cools.",
	},
	{
		match: func(f *features) bool {
			return f.sessionsPerActiveDay > 5
		},
		label:       "New York",
		description: "Sessions stacked back to back. The terminal that never sleeps.",
	},
	{
		match: func(f *features) bool {
			return f.m.TotalSessions >= 20 && f.m.ErrorRate < 0.01
		},
		label:       "Helsinki",
		description: "Quiet, precise, nearly error-free. Everything just works.",
	},
	{
		match:       func(*features) bool { return true },
		label:       "Amsterdam",
		description: "Balanced hours and steady rhythm, with the occasional late-night detour.",
	},
}

func classify(rules []rule, f *features) (string, string) {
	for _, r := range rules {
		if r.match(f) {
			return r.label, r.description
		}
	}
	// Unreachable: the final rule always matches.
	return "", ""
}

// Archetype returns the behavioral archetype label and description.
func Archetype(m *model.WrappedMetrics) (string, string) {
	return classify(archetypeRules, deriveFeatures(m))
}

// City returns the geographic theme label and description.
func City(m *model.WrappedMetrics) (string, string) {
	return classify(cityRules, deriveFeatures(m))
}

// Apply runs both taxonomies and writes the labels into the metrics object.
func Apply(m *model.WrappedMetrics) {
	f := deriveFeatures(m)
	m.Personality, m.PersonalityDescription = classify(archetypeRules, f)
	m.CodingCity, m.CodingCityDescription = classify(cityRules, f)
}
