package model

import "time"

// Config is the complete Veridex configuration tree. All scoring tables and
// vocabularies live here as immutable configuration injected at construction
// time; no component reads package-level mutable state.
type Config struct {
	Scoring      ScoringConfig      `yaml:"scoring" mapstructure:"scoring"`
	CounterIntel CounterIntelConfig `yaml:"counter_intel" mapstructure:"counter_intel"`
	Segment      SegmentConfig      `yaml:"segment" mapstructure:"segment"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// ScoringConfig holds the evidence classifier weight tables
type ScoringConfig struct {
	// SourceTypeWeights maps source type to its strength contribution
	SourceTypeWeights map[string]float64 `yaml:"source_type_weights" mapstructure:"source_type_weights"`

	DefaultCredibility float64 `yaml:"default_credibility" mapstructure:"default_credibility"` // When no accuracy/link data
	DefaultFreshness   float64 `yaml:"default_freshness" mapstructure:"default_freshness"`     // When publication date unknown

	// Override powers for promotional content
	PressReleasePower    float64 `yaml:"press_release_power" mapstructure:"press_release_power"`
	SelfReferentialPower float64 `yaml:"self_referential_power" mapstructure:"self_referential_power"`
}

// SourceWeight resolves a source type to its weight, degrading unknown
// types to the general_news weight rather than erroring
func (s ScoringConfig) SourceWeight(t SourceType) float64 {
	if w, ok := s.SourceTypeWeights[string(t)]; ok {
		return w
	}
	return s.SourceTypeWeights[string(SourceGeneralNews)]
}

// CounterIntelConfig holds the detector vocabularies and domain lists
type CounterIntelConfig struct {
	NewswireDomains   []string `yaml:"newswire_domains" mapstructure:"newswire_domains"`
	PressPathPatterns []string `yaml:"press_path_patterns" mapstructure:"press_path_patterns"`
	PressPhrases      []string `yaml:"press_phrases" mapstructure:"press_phrases"`

	NegativeSignals []string `yaml:"negative_signals" mapstructure:"negative_signals"`
	PositiveSignals []string `yaml:"positive_signals" mapstructure:"positive_signals"`

	SelfRefOverlapThreshold   float64 `yaml:"self_ref_overlap_threshold" mapstructure:"self_ref_overlap_threshold"`
	DefaultChannelCredibility float64 `yaml:"default_channel_credibility" mapstructure:"default_channel_credibility"`
}

// SegmentConfig holds the token-budget constants of the planner
type SegmentConfig struct {
	PromptOverheadTokens int          `yaml:"prompt_overhead_tokens" mapstructure:"prompt_overhead_tokens"`
	SafetyMarginFraction float64      `yaml:"safety_margin_fraction" mapstructure:"safety_margin_fraction"`
	Profile              ModelProfile `yaml:"profile" mapstructure:"profile"`
}

// HTTPConfig controls the evidence prober's HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ConcurrencyConfig controls worker counts and politeness limits
type ConcurrencyConfig struct {
	ClaimWorkers      int     `yaml:"claim_workers" mapstructure:"claim_workers"`
	ProbeWorkers      int     `yaml:"probe_workers" mapstructure:"probe_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls probe result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LLMConfig controls the optional narrative summarizer
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"-" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictEvidence bool   `yaml:"strict_evidence" mapstructure:"strict_evidence"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			SourceTypeWeights: map[string]float64{
				string(SourcePeerReviewed):    1.5,
				string(SourceGovernment):      1.3,
				string(SourceAcademic):        1.2,
				string(SourceEstablishedNews): 1.0,
				string(SourceGeneralNews):     0.8,
				string(SourceBlog):            0.4,
				string(SourceSocialMedia):     0.2,
				string(SourcePressRelease):    0.1,
			},
			DefaultCredibility:   0.5,
			DefaultFreshness:     0.8,
			PressReleasePower:    -0.5,
			SelfReferentialPower: -1.0,
		},
		CounterIntel: CounterIntelConfig{
			NewswireDomains: []string{
				"prnewswire.com",
				"businesswire.com",
				"globenewswire.com",
				"newswire.com",
				"prweb.com",
				"einpresswire.com",
				"accesswire.com",
				"marketwired.com",
			},
			PressPathPatterns: []string{
				"/press-release/",
				"/press-releases/",
				"/pressrelease/",
				"/newsroom/",
				"/news-release/",
				"/media-center/",
			},
			PressPhrases: []string{
				"for immediate release",
				"is pleased to announce",
				"is proud to announce",
				"today announced",
				"media contact:",
				"press contact:",
				"about the company",
				"forward-looking statements",
			},
			NegativeSignals: []string{
				"scam",
				"fake",
				"fraud",
				"doesn't work",
				"does not work",
				"debunked",
				"exposed",
				"misleading",
				"waste of money",
				"don't buy",
				"warning",
			},
			PositiveSignals: []string{
				"works",
				"effective",
				"recommend",
				"legit",
				"worth it",
				"impressed",
				"great results",
				"as advertised",
			},
			SelfRefOverlapThreshold:   0.70,
			DefaultChannelCredibility: 0.5,
		},
		Segment: SegmentConfig{
			PromptOverheadTokens: 5000,
			SafetyMarginFraction: 0.10,
			Profile:              GeminiFlashProfile(),
		},
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Veridex/0.1 (+https://github.com/avetrov/veridex)",
			MaxBodyBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers:      4,
			ProbeWorkers:      20,
			RequestsPerSecond: 2.0,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:       "", // Disabled by default
			TimeoutSeconds: 30,
			MaxTokens:      1000,
			StrictEvidence: true,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
