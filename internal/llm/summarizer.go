package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

var urlPattern = regexp.MustCompile(`https?://[^\s\)\]"']+`)

// Summarizer generates the optional LLM narrative for a case report.
// Narratives are produced after scoring and never feed back into any
// probability or verdict.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. A disabled
// configuration (empty provider) yields a summarizer that is not enabled.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	config := ConfigFromModel(cfg)
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces the narrative for a scored report. An
// unavailable provider yields a summary object carrying warnings instead of
// an error; narrative failures must never fail an assessment.
func (s *Summarizer) GenerateSummary(ctx context.Context, report *model.CaseReport) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s is not available (check API key and connectivity)", s.provider.Name())},
		}, nil
	}

	allowlist := collectEvidenceURLs(report)

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:       report,
		EvidenceURLs: allowlist,
		MaxTokens:    s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate narrative: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:        true,
		Provider:       s.provider.Name(),
		Model:          resp.Model,
		StrictEvidence: s.config.StrictEvidence,
		SummaryMD:      resp.Summary,
	}

	if s.config.StrictEvidence {
		summary.Warnings = detectCitationLeaks(resp.Summary, allowlist)
	}

	return summary, nil
}

// collectEvidenceURLs gathers the strict citation allowlist from every
// claim's evidence
func collectEvidenceURLs(report *model.CaseReport) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, claim := range report.Claims {
		for _, item := range claim.Evidence {
			if item.SourceURL == "" || seen[item.SourceURL] {
				continue
			}
			seen[item.SourceURL] = true
			urls = append(urls, item.SourceURL)
		}
	}
	return urls
}

// detectCitationLeaks finds URLs in the narrative that are not on the
// evidence allowlist
func detectCitationLeaks(summary string, allowlist []string) []string {
	allowed := make(map[string]bool, len(allowlist))
	for _, u := range allowlist {
		allowed[strings.TrimRight(u, "/")] = true
	}

	var warnings []string
	for _, cited := range urlPattern.FindAllString(summary, -1) {
		cited = strings.TrimRight(cited, "/.,;")
		if !allowed[cited] {
			warnings = append(warnings, fmt.Sprintf("citation leak: %s is not in the evidence allowlist", cited))
		}
	}
	return warnings
}

// RenderSeparateMarkdown renders the narrative as a standalone Markdown
// document, clearly separated from the scored report
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	var b strings.Builder

	b.WriteString("# LLM Narrative (Non-Authoritative)\n\n")
	fmt.Fprintf(&b, "Generated by %s (%s). This narrative never affects verdicts or probabilities.\n\n", summary.Provider, summary.Model)
	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
