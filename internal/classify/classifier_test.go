package classify

import (
	"testing"

	"clwrapped/internal/model"
)

func TestArchetype(t *testing.T) {
	tests := []struct {
		name string
		m    model.WrappedMetrics
		want string
	}{
		{
			"night owl",
			model.WrappedMetrics{
				HourlyDistribution: map[int]int{23: 8, 2: 4, 14: 10},
				MarathonSessions:   5, ShortSessions: 2,
			},
			"The Night Owl",
		},
		{
			"marathon runner",
			model.WrappedMetrics{
				HourlyDistribution: map[int]int{14: 30},
				MarathonSessions:   12, ShortSessions: 30,
			},
			"The Marathon Runner",
		},
		{
			"sprinter",
			model.WrappedMetrics{
				HourlyDistribution: map[int]int{14: 30},
				ShortSessions:      15, MarathonSessions: 2,
			},
			"The Sprinter",
		},
		{
			"delegator via sidechains",
			model.WrappedMetrics{SidechainRatio: 0.2},
			"The Delegator",
		},
		{
			"delegator via subagents",
			model.WrappedMetrics{
				SubagentTypeCounts: map[string]int{"explore": 20, "general-purpose": 10},
			},
			"The Delegator",
		},
		{
			"tool master",
			model.WrappedMetrics{
				ToolFrequency: map[string]int{
					"a": 1, "b": 1, "c": 1, "d": 1, "e": 1, "f": 1, "g": 1, "h": 1,
					"i": 1, "j": 1, "k": 1, "l": 1, "m": 1, "n": 1, "o": 1,
				},
			},
			"The Tool Master",
		},
		{
			"shipper",
			model.WrappedMetrics{TotalTodosCreated: 40, TodoCompletionRate: 0.9},
			"The Shipper",
		},
		{
			"explorer",
			model.WrappedMetrics{UniqueProjects: 18},
			"The Explorer",
		},
		{
			"catch-all",
			model.WrappedMetrics{TotalSessions: 3},
			"The Balanced Builder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, desc := Archetype(&tt.m)
			if label != tt.want {
				t.Errorf("Archetype = %q, want %q", label, tt.want)
			}
			if desc == "" {
				t.Error("description must not be empty")
			}
		})
	}
}

// Night-owl activity plus heavy marathons matches both of the first two
// rules; the earlier rule must win.
func TestArchetype_OrderMatters(t *testing.T) {
	m := model.WrappedMetrics{
		HourlyDistribution: map[int]int{23: 10, 14: 10},
		MarathonSessions:   15, ShortSessions: 1,
	}
	if label, _ := Archetype(&m); label != "The Night Owl" {
		t.Errorf("Archetype = %q, want The Night Owl (first match wins)", label)
	}
}

func TestCity(t *testing.T) {
	tests := []struct {
		name string
		m    model.WrappedMetrics
		want string
	}{
		{
			"tokyo",
			model.WrappedMetrics{HourlyDistribution: map[int]int{23: 3, 1: 3, 14: 4}},
			"Tokyo",
		},
		{
			"berlin",
			model.WrappedMetrics{WeekdayDistribution: map[string]int{"Saturday": 4, "Sunday": 3, "Monday": 10}},
			"Berlin",
		},
		{
			"san francisco by cost",
			model.WrappedMetrics{TotalCostUSD: 750},
			"San Francisco",
		},
		{
			"london",
			model.WrappedMetrics{HourlyDistribution: map[int]int{6: 4, 7: 3, 14: 10}},
			"London",
		},
		{
			"new york",
			model.WrappedMetrics{
				TotalSessions:  30,
				SessionsByDate: map[string]int{"2025-06-01": 15, "2025-06-02": 15},
			},
			"New York",
		},
		{
			"helsinki",
			model.WrappedMetrics{TotalSessions: 25, ErrorRate: 0.001},
			"Helsinki",
		},
		{
			"amsterdam catch-all",
			model.WrappedMetrics{TotalSessions: 5},
			"Amsterdam",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, _ := City(&tt.m)
			if label != tt.want {
				t.Errorf("City = %q, want %q", label, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	m := model.WrappedMetrics{TotalSessions: 3}
	Apply(&m)

	if m.Personality == "" || m.PersonalityDescription == "" {
		t.Error("Apply must always set a personality")
	}
	if m.CodingCity == "" || m.CodingCityDescription == "" {
		t.Error("Apply must always set a city")
	}
}
