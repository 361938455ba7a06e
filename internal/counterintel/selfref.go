package counterintel

import (
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

// SelfReferenceDetector detects evidence that cites the same subject being
// assessed: the strongest form of promotional bias
type SelfReferenceDetector struct {
	overlapThreshold float64
}

// NewSelfReferenceDetector creates a detector with the configured keyword
// overlap threshold
func NewSelfReferenceDetector(cfg model.CounterIntelConfig) *SelfReferenceDetector {
	threshold := cfg.SelfRefOverlapThreshold
	if threshold <= 0 {
		threshold = 0.70
	}
	return &SelfReferenceDetector{overlapThreshold: threshold}
}

// Detect reports whether the evidence references the assessed subject:
// contains its title, entity, or channel name; shares its domain; or has
// keyword overlap at or above the configured threshold.
func (d *SelfReferenceDetector) Detect(text, rawURL string, subject model.ClaimContext) bool {
	lower := strings.ToLower(text)

	for _, name := range []string{subject.SubjectTitle, subject.SubjectEntity, subject.SubjectChannel} {
		name = strings.ToLower(strings.TrimSpace(name))
		if len(name) >= 3 && strings.Contains(lower, name) {
			return true
		}
	}

	if subjectDomain := subject.SubjectDomain(); subjectDomain != "" {
		if host, _, ok := splitURL(rawURL); ok {
			host = strings.TrimPrefix(host, "www.")
			if host == subjectDomain || strings.HasSuffix(host, "."+subjectDomain) {
				return true
			}
		}
	}

	return d.keywordOverlap(lower, subject.SubjectKeywords()) >= d.overlapThreshold
}

// keywordOverlap returns the fraction of subject keywords present in the
// evidence text
func (d *SelfReferenceDetector) keywordOverlap(lowerText string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}
