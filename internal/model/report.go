package model

import "time"

// CaseReport is the complete assessment of one video case: the segmentation
// plan used for analysis plus one ClaimAssessment per extracted claim.
// Consumed by the report renderer.
type CaseReport struct {
	Subject    string            `json:"subject"`
	SourceURL  string            `json:"source_url,omitempty"`
	AssessedAt time.Time         `json:"assessed_at"`
	Plan       *SegmentationPlan `json:"segmentation_plan,omitempty"`
	Claims     []ClaimAssessment `json:"claims"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional narrative; never affects scores
}

// LLMSummary contains the optional LLM-generated narrative.
// It is generated after scoring and never feeds back into any probability.
type LLMSummary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	SummaryMD      string   `json:"summary_md,omitempty"`
	Warnings       []string `json:"warnings,omitempty"` // e.g. citation leaks detected
}
