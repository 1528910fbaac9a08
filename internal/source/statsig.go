package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// StatsigStats summarizes the feature-flag evaluation cache.
type StatsigStats struct {
	FeatureFlags int
	Experiments  int
	StableID     string
}

// ScanStatsig reads the statsig directory: cached evaluation files supply
// feature-gate and dynamic-config (experiment) counts, and the stable-ID
// file supplies the install identifier. All failures degrade to zero data.
func ScanStatsig(claudeDir string) StatsigStats {
	var stats StatsigStats
	statsigDir := filepath.Join(claudeDir, "statsig")

	evalFiles, _ := filepath.Glob(filepath.Join(statsigDir, "statsig.cached.evaluations.*"))
	for _, path := range evalFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var payload struct {
			FeatureGates   map[string]json.RawMessage `json:"feature_gates"`
			DynamicConfigs map[string]json.RawMessage `json:"dynamic_configs"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			continue
		}
		if len(payload.FeatureGates) > 0 {
			stats.FeatureFlags = len(payload.FeatureGates)
		}
		if len(payload.DynamicConfigs) > 0 {
			stats.Experiments = len(payload.DynamicConfigs)
		}
	}

	idFiles, _ := filepath.Glob(filepath.Join(statsigDir, "statsig.stable_id.*"))
	for _, path := range idFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		id := strings.Trim(strings.TrimSpace(string(data)), `"`)
		if id != "" {
			stats.StableID = id
		}
	}

	return stats
}
