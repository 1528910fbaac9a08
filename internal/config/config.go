package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all clwrapped configuration.
type Config struct {
	General GeneralConfig              `toml:"general"`
	Repos   ReposConfig                `toml:"repos"`
	Pricing map[string]PricingOverride `toml:"pricing,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ClaudeDir string `toml:"claude_dir,omitempty"`
	TopN      int    `toml:"top_n"`
}

// ReposConfig bounds the local repository scan.
type ReposConfig struct {
	BasePaths  []string `toml:"base_paths,omitempty"`
	MaxDepth   int      `toml:"max_depth"`
	MaxRepos   int      `toml:"max_repos"`
	MaxWorkers int      `toml:"max_workers"`
}

// PricingOverride is a user-supplied pricing tier keyed by model substring.
type PricingOverride struct {
	InputPerMTok      float64 `toml:"input_per_mtok"`
	OutputPerMTok     float64 `toml:"output_per_mtok"`
	CacheWritePerMTok float64 `toml:"cache_write_per_mtok"`
	CacheReadPerMTok  float64 `toml:"cache_read_per_mtok"`
}

func (o PricingOverride) toPricing() ModelPricing {
	return ModelPricing{
		InputPerMTok:      o.InputPerMTok,
		OutputPerMTok:     o.OutputPerMTok,
		CacheWritePerMTok: o.CacheWritePerMTok,
		CacheReadPerMTok:  o.CacheReadPerMTok,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		General: GeneralConfig{
			ClaudeDir: filepath.Join(home, ".claude"),
			TopN:      10,
		},
		Repos: ReposConfig{
			BasePaths: []string{
				filepath.Join(home, "projects"),
				filepath.Join(home, "repos"),
				filepath.Join(home, "code"),
				filepath.Join(home, "dev"),
				filepath.Join(home, "work"),
				filepath.Join(home, "src"),
				filepath.Join(home, "github"),
			},
			MaxDepth:   4,
			MaxRepos:   100,
			MaxWorkers: 4,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "clwrapped")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "clwrapped")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist,
// and installs any pricing overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.TopN <= 0 {
		cfg.General.TopN = 10
	}
	if cfg.Repos.MaxDepth <= 0 {
		cfg.Repos.MaxDepth = 4
	}
	if cfg.Repos.MaxRepos <= 0 {
		cfg.Repos.MaxRepos = 100
	}
	if cfg.Repos.MaxWorkers <= 0 {
		cfg.Repos.MaxWorkers = 4
	}

	ApplyPricingOverrides(cfg.Pricing)

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
