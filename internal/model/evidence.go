package model

import "time"

// SourceType categorizes the publisher behind an evidence item
type SourceType string

const (
	SourcePeerReviewed    SourceType = "peer_reviewed"
	SourceGovernment      SourceType = "government"
	SourceEstablishedNews SourceType = "established_news"
	SourceAcademic        SourceType = "academic"
	SourceGeneralNews     SourceType = "general_news"
	SourceBlog            SourceType = "blog"
	SourceSocialMedia     SourceType = "social_media"
	SourcePressRelease    SourceType = "press_release"
)

// EvidenceKind classifies the channel the evidence arrived through
type EvidenceKind string

const (
	KindWebSearch         EvidenceKind = "web_search"          // Search snippet or article
	KindCounterIntelVideo EvidenceKind = "counter_intel_video" // Independent review/debunking video
	KindPressRelease      EvidenceKind = "press_release"       // Self-published promotional material
)

// Stance classifies what an evidence item says about the claim
type Stance string

const (
	StanceSupportsTrue      Stance = "SUPPORTS_TRUE"
	StanceSupportsFalse     Stance = "SUPPORTS_FALSE"
	StanceSupportsUncertain Stance = "SUPPORTS_UNCERTAIN"
	StanceNeutral           Stance = "NEUTRAL"
)

// Validation power bounds. Positive power is credible supporting/refuting
// strength, negative power is a promotional/self-referential penalty.
const (
	MinValidationPower = -1.5
	MaxValidationPower = 1.5
)

// EvidenceItem is one classified piece of evidence about one claim.
// Items are created fresh by the classifier and never mutated afterwards.
type EvidenceItem struct {
	SourceURL        string       `json:"source_url"`
	ContentSnippet   string       `json:"content_snippet,omitempty"`
	SourceType       SourceType   `json:"source_type"`
	EvidenceKind     EvidenceKind `json:"evidence_kind"`
	Stance           Stance       `json:"stance"`
	StanceConfidence float64      `json:"stance_confidence"`      // [0,1]
	ValidationPower  float64      `json:"validation_power"`       // [-1.5, +1.5]
	PublishedAt      *time.Time   `json:"published_at,omitempty"` // Used for freshness decay
	SelfReferential  bool         `json:"self_referential"`       // Evidence cites the assessed subject itself
	Reach            *int64       `json:"reach,omitempty"`        // View count; counter-intel weighting only
}

// RawEvidence is an unclassified evidence record from the
// evidence-gathering collaborator
type RawEvidence struct {
	URL         string       `json:"url" yaml:"url"`
	Snippet     string       `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	RetrievedAt time.Time    `json:"retrieved_at" yaml:"retrieved_at"`
	Kind        EvidenceKind `json:"kind,omitempty" yaml:"kind,omitempty"`   // Channel hint; defaults to web_search
	Reach       *int64       `json:"reach,omitempty" yaml:"reach,omitempty"` // For counter-intel videos
}

// SourceMeta is optional per-source metadata, typically filled in by the
// prober. Missing fields degrade to documented defaults, never error.
type SourceMeta struct {
	SourceType         SourceType `json:"source_type,omitempty" yaml:"source_type,omitempty"`
	HistoricalAccuracy *float64   `json:"historical_accuracy,omitempty" yaml:"historical_accuracy,omitempty"` // [0,1]
	LinkQuality        *float64   `json:"link_quality,omitempty" yaml:"link_quality,omitempty"`               // [0,1]
	PublishedAt        *time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`
	ChannelCredibility *float64   `json:"channel_credibility,omitempty" yaml:"channel_credibility,omitempty"` // [0,1]; counter-intel videos
}
