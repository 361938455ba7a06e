package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative for the report with strict evidence mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for narrative generation
type SummarizeRequest struct {
	// Report is the scored case report to narrate
	Report *model.CaseReport

	// EvidenceURLs is the STRICT allowlist of URLs the LLM can cite.
	// The LLM cannot reference any URL not in this list.
	EvidenceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's narrative output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	Provider       string // "openai" or "" (disabled)
	Model          string
	APIKey         string
	BaseURL        string
	Timeout        int // seconds
	StrictEvidence bool
	MaxTokens      int
}

// NewProvider creates a provider based on configuration
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		// No provider configured: narrative generation disabled
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:       modelConfig.Provider,
		Model:          modelConfig.Model,
		APIKey:         modelConfig.APIKey,
		BaseURL:        modelConfig.BaseURL,
		Timeout:        modelConfig.TimeoutSeconds,
		StrictEvidence: modelConfig.StrictEvidence,
		MaxTokens:      modelConfig.MaxTokens,
	}
}

// BuildPrompt constructs the default narration prompt with strict evidence
// constraints. The narrative describes support quality; it never overrides
// the computed verdicts.
func BuildPrompt(report *model.CaseReport, evidenceURLs []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are narrating a Veridex claim-verification report. Veridex computes
probability distributions over claim truthfulness from weighted evidence - you
describe those results, you never re-judge them.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. Never change a verdict; report the computed verdicts and probabilities as given.
4. When promotional or self-referential evidence was penalized, explain the penalty in plain language.

Case: %s
Claims assessed: %d

Verdicts:
`, joinURLs(evidenceURLs), report.Subject, len(report.Claims))

	for _, claim := range report.Claims {
		truePct, falsePct, uncertainPct := claim.Probabilities.Percentages()
		fmt.Fprintf(&b, "- %q: %s (TRUE %.1f%%, FALSE %.1f%%, UNCERTAIN %.1f%%)\n",
			claim.ClaimText, claim.Verdict, truePct, falsePct, uncertainPct)
		for _, mod := range claim.Modifications {
			fmt.Fprintf(&b, "  - %s\n", mod)
		}
	}

	b.WriteString("\nWrite a concise Markdown narrative (3-6 paragraphs) of these findings.\n")
	return b.String()
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "  (no evidence URLs)"
	}
	var b strings.Builder
	for _, u := range urls {
		fmt.Fprintf(&b, "  - %s\n", u)
	}
	return b.String()
}
