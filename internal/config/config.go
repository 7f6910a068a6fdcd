package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LLM        LLMConfig        `toml:"llm"`
	Extraction ExtractionConfig `toml:"extraction"`
	Observer   ObserverConfig   `toml:"observer"`
}

type LLMConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
	// Temperature overrides the provider default when set.
	Temperature *float64 `toml:"temperature"`
	// RPM and TPM cap requests and tokens per minute. 0 disables the cap.
	RPM int `toml:"rpm"`
	TPM int `toml:"tpm"`
}

type ExtractionConfig struct {
	Method     string `toml:"method"`
	MaxRetries int    `toml:"max_retries"`
	// Categories replaces the built-in category list when non-empty.
	Categories []string `toml:"categories"`
}

type ObserverConfig struct {
	Enabled  bool                       `toml:"enabled"`
	Endpoint string                     `toml:"endpoint"`
	Insecure bool                       `toml:"insecure"`
	Pricing  map[string]ObserverPricing `toml:"pricing"`
}

type ObserverPricing struct {
	Input  float64 `toml:"input"`
	Output float64 `toml:"output"`
}

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		LLM:        LLMConfig{BaseURL: defaultBaseURL, Model: defaultModel},
		Extraction: ExtractionConfig{Method: "table", MaxRetries: 5},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
// An empty path searches $FISCUS_CONFIG, ./fiscus.toml, then
// ~/.config/fiscus/fiscus.toml.
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = locate()
	}

	if data, err := os.ReadFile(path); err == nil {
		_ = toml.Unmarshal(data, &cfg)
	}

	// Env overrides
	if v := os.Getenv("FISCUS_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("FISCUS_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("FISCUS_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("FISCUS_OBSERVER_ENDPOINT"); v != "" {
		cfg.Observer.Endpoint = v
	}
	if os.Getenv("FISCUS_OBSERVER_ENABLED") == "true" || os.Getenv("FISCUS_OBSERVER_ENABLED") == "1" {
		cfg.Observer.Enabled = true
	}

	// Fallbacks
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = defaultBaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel
	}
	if cfg.Extraction.Method == "" {
		cfg.Extraction.Method = "table"
	}
	if cfg.Extraction.MaxRetries <= 0 {
		cfg.Extraction.MaxRetries = 5
	}

	return cfg
}

func locate() string {
	if v := os.Getenv("FISCUS_CONFIG"); v != "" {
		return v
	}
	if _, err := os.Stat("fiscus.toml"); err == nil {
		return "fiscus.toml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fiscus", "fiscus.toml")
}
