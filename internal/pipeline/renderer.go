package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

// Renderer writes case reports to JSON, Markdown, and stdout
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.CaseReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report
func (r *Renderer) RenderMarkdown(report *model.CaseReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Veridex Report: %s\n\n", report.Subject)
	if report.SourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", report.SourceURL)
	}
	fmt.Fprintf(&b, "Assessed: %s\n\n", report.AssessedAt.Format("2006-01-02 15:04 UTC"))

	if report.Plan != nil {
		fmt.Fprintf(&b, "## Segmentation\n\n")
		fmt.Fprintf(&b, "- Video duration: %ds\n", report.Plan.VideoDurationSeconds)
		fmt.Fprintf(&b, "- Segments: %d x %ds (max %ds under %d-token budget)\n\n",
			report.Plan.SegmentCount, report.Plan.SegmentDurationSeconds,
			report.Plan.MaxSegmentSeconds, report.Plan.ModelTokenBudget)
	}

	fmt.Fprintf(&b, "## Claims (%d)\n\n", len(report.Claims))
	for i, claim := range report.Claims {
		truePct, falsePct, uncertainPct := claim.Probabilities.Percentages()
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, claim.ClaimText)
		fmt.Fprintf(&b, "**Verdict: %s** - TRUE %.1f%% / FALSE %.1f%% / UNCERTAIN %.1f%%\n\n",
			claim.Verdict, truePct, falsePct, uncertainPct)
		fmt.Fprintf(&b, "Evidence items: %d\n\n", len(claim.Evidence))
		if len(claim.Modifications) > 0 {
			fmt.Fprintf(&b, "Adjustments:\n")
			for _, mod := range claim.Modifications {
				fmt.Fprintf(&b, "- %s\n", mod)
			}
			fmt.Fprintf(&b, "\n")
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\n")
		fmt.Fprintf(&b, "Veridex evaluates how well claims are supported by available evidence. ")
		fmt.Fprintf(&b, "Verdicts are calibrated support estimates, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes the optional narrative to its own file, kept
// separate from the scored report
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write llm markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short summary to stdout
func (r *Renderer) RenderSummary(report *model.CaseReport) {
	fmt.Printf("\n%s\n", report.Subject)
	if report.Plan != nil {
		fmt.Printf("Segments: %d x %ds\n", report.Plan.SegmentCount, report.Plan.SegmentDurationSeconds)
	}
	for _, claim := range report.Claims {
		truePct, falsePct, uncertainPct := claim.Probabilities.Percentages()
		fmt.Printf("  [%s] %s (T %.1f%% / F %.1f%% / U %.1f%%)\n",
			claim.Verdict, truncate(claim.ClaimText, 70), truePct, falsePct, uncertainPct)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
