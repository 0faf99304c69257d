package model

import "time"

// Config is the complete physaudit configuration
type Config struct {
	Oracle      OracleConfig      `yaml:"oracle" json:"oracle"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Extract     ExtractConfig     `yaml:"extract" json:"extract"`
	Verify      VerifyConfig      `yaml:"verify" json:"verify"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// OracleConfig locates the remote reference-constants repository
type OracleConfig struct {
	BaseURL       string `yaml:"base_url" json:"base_url"` // Raw-file host
	Owner         string `yaml:"owner" json:"owner"`
	Repo          string `yaml:"repo" json:"repo"`
	Branch        string `yaml:"branch" json:"branch"`
	RespectRobots bool   `yaml:"respect_robots" json:"respect_robots"` // Check robots.txt before fetching
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// CacheConfig controls reference document caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"` // Disk snapshot directory ("" disables the disk layer)
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ExtractConfig selects and tunes the claim extractor
type ExtractConfig struct {
	Mode             string        `yaml:"mode" json:"mode"`                           // "stub" or "llm"
	SimulatedLatency time.Duration `yaml:"simulated_latency" json:"simulated_latency"` // Stub extractor delay
	LLM              LLMConfig     `yaml:"llm" json:"llm"`
}

// LLMConfig configures the LLM-backed extractor
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai" (only supported provider)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"` // Environment only; never serialized
	BaseURL   string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// VerifyConfig controls the comparison policy
type VerifyConfig struct {
	// Tolerance is the maximum absolute difference still counted as MATCH.
	// Explicit by design: bare float equality produces false mismatches.
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`

	// FieldMap maps claim field names to reference constant names.
	FieldMap map[string]string `yaml:"field_map" json:"field_map"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers   int     `yaml:"workers" json:"workers"`
	OracleRPS float64 `yaml:"oracle_rps" json:"oracle_rps"` // Per-host fetch rate shared across workers
	Burst     int     `yaml:"burst" json:"burst"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultFieldMap maps the stub extractor's audited field to the canonical
// reference constant.
func DefaultFieldMap() map[string]string {
	return map[string]string{
		"extracted_k_value": "methane_decay_k",
	}
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Oracle: OracleConfig{
			BaseURL:       "https://raw.githubusercontent.com",
			Owner:         "dexdogs",
			Repo:          "global-physics-standard",
			Branch:        "main",
			RespectRobots: false,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "physaudit/0.1 (+https://github.com/dexdogs/physaudit)",
			MaxBodyBytes: 1 << 20,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Extract: ExtractConfig{
			Mode:             "stub",
			SimulatedLatency: 1500 * time.Millisecond,
			LLM: LLMConfig{
				Provider:  "openai",
				Model:     "gpt-4o-mini",
				Timeout:   30,
				MaxTokens: 500,
			},
		},
		Verify: VerifyConfig{
			Tolerance: 0.001,
			FieldMap:  DefaultFieldMap(),
		},
		Concurrency: ConcurrencyConfig{
			Workers:   4,
			OracleRPS: 2,
			Burst:     4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
