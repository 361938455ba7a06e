package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avetrov/veridex/internal/aggregate"
	"github.com/avetrov/veridex/internal/classify"
	"github.com/avetrov/veridex/internal/gather"
	"github.com/avetrov/veridex/internal/llm"
	"github.com/avetrov/veridex/internal/model"
	"github.com/avetrov/veridex/internal/segment"
	"github.com/avetrov/veridex/internal/verdict"
)

// EvidenceRecord pairs one raw evidence record with optional per-source
// metadata from the prober or the gathering collaborator
type EvidenceRecord struct {
	model.RawEvidence `yaml:",inline"`
	Meta              *model.SourceMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// CaseClaim is one claim plus the evidence gathered for it
type CaseClaim struct {
	model.ClaimContext `yaml:",inline"`
	Evidence           []EvidenceRecord `json:"evidence" yaml:"evidence"`
}

// CaseFile is the collaborator-produced input for one video case
type CaseFile struct {
	Subject              string      `json:"subject" yaml:"subject"`
	SourceURL            string      `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	VideoDurationSeconds int         `json:"video_duration_seconds,omitempty" yaml:"video_duration_seconds,omitempty"`
	Claims               []CaseClaim `json:"claims" yaml:"claims"`
}

// Assessor runs the scoring pipeline: classification, counter-intel
// detection, aggregation, and verdict mapping per claim
type Assessor struct {
	classifier *classify.Classifier
	aggregator *aggregate.Aggregator
	planner    *segment.Planner
	summarizer *llm.Summarizer // Optional; nil when disabled
	prober     *gather.Prober  // Optional; nil skips probing
	config     *model.Config
}

// NewAssessor creates an assessor from the given configuration
func NewAssessor(cfg *model.Config) *Assessor {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Printf("Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Assessor{
		classifier: classify.NewClassifier(cfg),
		aggregator: aggregate.NewAggregator(),
		planner:    segment.NewPlanner(cfg.Segment),
		summarizer: summarizer,
		config:     cfg,
	}
}

// AssessClaim scores a single claim against its evidence. Whatever evidence
// subset is available is accepted (fail-open); zero evidence degrades to the
// base prior and verdict UNCERTAIN.
func (a *Assessor) AssessClaim(claim model.ClaimContext, records []EvidenceRecord) model.ClaimAssessment {
	evidence := make([]model.EvidenceItem, 0, len(records))
	for _, rec := range records {
		evidence = append(evidence, a.classifier.Classify(rec.RawEvidence, claim, rec.Meta))
	}

	triple, mods := a.aggregator.Aggregate(evidence)

	return model.ClaimAssessment{
		ClaimText:     claim.ClaimText,
		Evidence:      evidence,
		Probabilities: triple,
		Verdict:       verdict.Map(triple),
		Modifications: mods,
	}
}

// AssessCase assesses every claim of a case concurrently and builds the
// complete report. Claims are fully independent; no claim's aggregation
// blocks another's.
func (a *Assessor) AssessCase(ctx context.Context, caseFile *CaseFile) (*model.CaseReport, error) {
	report := &model.CaseReport{
		Subject:    caseFile.Subject,
		SourceURL:  caseFile.SourceURL,
		AssessedAt: time.Now().UTC(),
	}

	if caseFile.VideoDurationSeconds > 0 {
		plan, err := a.planner.Plan(caseFile.VideoDurationSeconds, a.config.Segment.Profile)
		if err != nil {
			return nil, fmt.Errorf("segmentation plan: %w", err)
		}
		report.Plan = &plan
	}

	assessments := make([]model.ClaimAssessment, len(caseFile.Claims))

	workers := a.config.Concurrency.ClaimWorkers
	if workers <= 0 {
		workers = 4
	}
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, claim := range caseFile.Claims {
		wg.Add(1)
		go func(idx int, c CaseClaim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				// Fail open: an unassessed claim still gets a prior-based
				// UNCERTAIN result rather than a hole in the report
				assessments[idx] = a.AssessClaim(c.ClaimContext, nil)
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			assessments[idx] = a.AssessClaim(c.ClaimContext, c.Evidence)
		}(i, claim)
	}
	wg.Wait()

	report.Claims = assessments

	// Narrative generation runs after scoring and never affects it
	if a.summarizer != nil && a.summarizer.IsEnabled() {
		summary, err := a.summarizer.GenerateSummary(ctx, report)
		if err != nil {
			fmt.Printf("Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}
