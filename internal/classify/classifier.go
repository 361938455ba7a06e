package classify

import (
	"math"
	"time"

	"github.com/avetrov/veridex/internal/counterintel"
	"github.com/avetrov/veridex/internal/model"
)

// Validation power formula weights (non-press-release path)
const (
	sourceTypeWeight  = 0.50
	credibilityWeight = 0.35
	freshnessWeight   = 0.15

	credibilityBase         = 0.5
	credibilityAccuracyCoef = 0.3
	credibilityLinkCoef     = 0.2

	freshnessDecayRate = 0.1 // Per year since publication
)

// Classifier assigns each raw evidence item a validation power from source
// type, domain credibility, and recency, and routes press-release and
// counter-intel-video evidence through their special scoring paths.
// Classification produces a new item; the raw input is never mutated.
type Classifier struct {
	scoring model.ScoringConfig
	ci      model.CounterIntelConfig

	press   *counterintel.PressReleaseDetector
	selfRef *counterintel.SelfReferenceDetector
	stance  *counterintel.StanceDetector
	sources *SourceTypeClassifier

	now func() time.Time // Injectable for deterministic freshness tests
}

// NewClassifier creates a classifier from the injected configuration
func NewClassifier(cfg *model.Config) *Classifier {
	return &Classifier{
		scoring: cfg.Scoring,
		ci:      cfg.CounterIntel,
		press:   counterintel.NewPressReleaseDetector(cfg.CounterIntel),
		selfRef: counterintel.NewSelfReferenceDetector(cfg.CounterIntel),
		stance:  counterintel.NewStanceDetector(cfg.CounterIntel),
		sources: NewSourceTypeClassifier(),
		now:     time.Now,
	}
}

// Classify turns one raw evidence record into a classified EvidenceItem.
// Missing metadata degrades to documented defaults; this never fails on
// partial input.
func (c *Classifier) Classify(raw model.RawEvidence, subject model.ClaimContext, meta *model.SourceMeta) model.EvidenceItem {
	item := model.EvidenceItem{
		SourceURL:      raw.URL,
		ContentSnippet: raw.Snippet,
		EvidenceKind:   raw.Kind,
		Reach:          raw.Reach,
	}
	if item.EvidenceKind == "" {
		item.EvidenceKind = model.KindWebSearch
	}

	item.SourceType = c.resolveSourceType(raw, meta)
	if meta != nil && meta.PublishedAt != nil {
		item.PublishedAt = meta.PublishedAt
	}

	item.SelfReferential = c.selfRef.Detect(raw.Snippet, raw.URL, subject)

	isPress, pressConf := c.press.Detect(raw.URL, raw.Snippet)
	if item.SourceType == model.SourcePressRelease || item.EvidenceKind == model.KindPressRelease {
		isPress = true
		if pressConf == 0 {
			pressConf = 1.0
		}
	}

	// Press-release / self-reference override bypasses the weighted formula
	if isPress || (item.SelfReferential && item.EvidenceKind != model.KindCounterIntelVideo) {
		item.EvidenceKind = model.KindPressRelease
		item.SourceType = model.SourcePressRelease
		item.Stance = model.StanceNeutral
		item.StanceConfidence = pressConf
		if item.SelfReferential {
			item.ValidationPower = c.scoring.SelfReferentialPower
		} else {
			item.ValidationPower = c.scoring.PressReleasePower
		}
		return item
	}

	if item.EvidenceKind == model.KindCounterIntelVideo {
		return c.classifyCounterIntel(item, raw, meta)
	}

	// Web-search path: weighted source/credibility/freshness formula
	item.Stance, item.StanceConfidence = c.stance.Detect(raw.Snippet)
	item.ValidationPower = clampPower(
		sourceTypeWeight*c.scoring.SourceWeight(item.SourceType) +
			credibilityWeight*c.credibilityScore(meta) +
			freshnessWeight*c.freshnessScore(item.PublishedAt))
	return item
}

// classifyCounterIntel scores independent review/debunking videos by
// audience reach, detected stance, and channel credibility
func (c *Classifier) classifyCounterIntel(item model.EvidenceItem, raw model.RawEvidence, meta *model.SourceMeta) model.EvidenceItem {
	item.Stance, item.StanceConfidence = c.stance.Detect(raw.Snippet)

	credibility := c.ci.DefaultChannelCredibility
	if meta != nil && meta.ChannelCredibility != nil {
		credibility = *meta.ChannelCredibility
	}

	var reach int64
	if raw.Reach != nil {
		reach = *raw.Reach
	}

	item.ValidationPower = clampPower(counterintel.ReachWeightedPower(reach, item.Stance, item.StanceConfidence, credibility))

	// A self-referential "review" is promotional material in disguise
	if item.SelfReferential {
		item.ValidationPower = c.scoring.SelfReferentialPower
	}
	return item
}

// resolveSourceType prefers the collaborator's metadata, falling back to
// URL-based inference
func (c *Classifier) resolveSourceType(raw model.RawEvidence, meta *model.SourceMeta) model.SourceType {
	if meta != nil && meta.SourceType != "" {
		return meta.SourceType
	}
	return c.sources.Classify(raw.URL)
}

// credibilityScore computes 0.5 + 0.3*historical_accuracy + 0.2*link_quality,
// degrading to the configured default when both inputs are unknown
func (c *Classifier) credibilityScore(meta *model.SourceMeta) float64 {
	if meta == nil || (meta.HistoricalAccuracy == nil && meta.LinkQuality == nil) {
		return c.scoring.DefaultCredibility
	}
	score := credibilityBase
	if meta.HistoricalAccuracy != nil {
		score += credibilityAccuracyCoef * *meta.HistoricalAccuracy
	}
	if meta.LinkQuality != nil {
		score += credibilityLinkCoef * *meta.LinkQuality
	}
	return score
}

// freshnessScore computes exp(-0.1*years_since_publication), degrading to
// the configured default when the publication date is unknown
func (c *Classifier) freshnessScore(publishedAt *time.Time) float64 {
	if publishedAt == nil {
		return c.scoring.DefaultFreshness
	}
	years := c.now().Sub(*publishedAt).Hours() / (24 * 365)
	if years < 0 {
		years = 0
	}
	return math.Exp(-freshnessDecayRate * years)
}

func clampPower(power float64) float64 {
	if power < model.MinValidationPower {
		return model.MinValidationPower
	}
	if power > model.MaxValidationPower {
		return model.MaxValidationPower
	}
	return power
}
