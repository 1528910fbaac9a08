// Package config holds the clwrapped configuration file and the model
// pricing table used for cost estimation.
package config

import (
	"sort"
	"strings"
)

// ModelPricing holds per-million-token prices for one pricing tier.
type ModelPricing struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// pricePattern binds a model-identifier substring to a pricing tier.
type pricePattern struct {
	Substring string
	Pricing   ModelPricing
}

// pricingTable is matched top to bottom against the raw model identifier.
// Model identifiers are free-form strings without a stable schema, so
// versioned variants must appear before their unversioned family name
// (e.g. "opus-4-1" before "opus-4" before "opus"). Prices are USD per
// million tokens as of December 2025; the config file can override any
// tier by pattern.
var pricingTable = []pricePattern{
	{"opus-4-5", ModelPricing{5.00, 25.00, 6.25, 0.50}},
	{"opus-4-1", ModelPricing{15.00, 75.00, 18.75, 1.50}},
	{"opus-4", ModelPricing{15.00, 75.00, 18.75, 1.50}},
	{"opus", ModelPricing{15.00, 75.00, 18.75, 1.50}},
	{"sonnet-4-5", ModelPricing{3.00, 15.00, 3.75, 0.30}},
	{"sonnet-4", ModelPricing{3.00, 15.00, 3.75, 0.30}},
	{"sonnet-3-7", ModelPricing{3.00, 15.00, 3.75, 0.30}},
	{"sonnet", ModelPricing{3.00, 15.00, 3.75, 0.30}},
	{"haiku-4-5", ModelPricing{1.00, 5.00, 1.25, 0.10}},
	{"haiku-3-5", ModelPricing{0.80, 4.00, 1.00, 0.08}},
	{"haiku", ModelPricing{0.25, 1.25, 0.30, 0.03}},
}

// defaultPricing is the fallback tier for identifiers matching no pattern.
// Sonnet pricing is the documented default since it is the workhorse model.
var defaultPricing = ModelPricing{3.00, 15.00, 3.75, 0.30}

// LookupPricing selects the pricing tier for a model identifier by ordered
// substring match, falling back to the default tier.
func LookupPricing(modelName string) ModelPricing {
	lower := strings.ToLower(modelName)
	for _, p := range pricingTable {
		if strings.Contains(lower, p.Substring) {
			return p.Pricing
		}
	}
	return defaultPricing
}

// EstimateCost computes the USD cost of one API call from token counts.
// Callers must prefer an explicit per-record cost when the log carries one;
// this estimate only fills the gap.
func EstimateCost(modelName string, inputTokens, outputTokens, cacheWriteTokens, cacheReadTokens int64) float64 {
	p := LookupPricing(modelName)
	cost := float64(inputTokens) * p.InputPerMTok
	cost += float64(outputTokens) * p.OutputPerMTok
	cost += float64(cacheWriteTokens) * p.CacheWritePerMTok
	cost += float64(cacheReadTokens) * p.CacheReadPerMTok
	return cost / 1_000_000
}

// ApplyPricingOverrides merges user-configured tiers in front of the builtin
// table so they win the ordered match.
func ApplyPricingOverrides(overrides map[string]PricingOverride) {
	if len(overrides) == 0 {
		return
	}
	patterns := make([]string, 0, len(overrides))
	for pattern := range overrides {
		patterns = append(patterns, pattern)
	}
	// Longest pattern first so a versioned override beats its family name.
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})

	merged := make([]pricePattern, 0, len(patterns)+len(pricingTable))
	for _, pattern := range patterns {
		merged = append(merged, pricePattern{
			Substring: strings.ToLower(pattern),
			Pricing:   overrides[pattern].toPricing(),
		})
	}
	merged = append(merged, pricingTable...)
	pricingTable = merged
}
