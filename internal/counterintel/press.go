package counterintel

import (
	"math"
	"net/url"
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

// Press-release detection confidences by matcher strength
const (
	pressDomainConfidence = 1.0
	pressPathConfidence   = 0.95
	pressPhraseCeiling    = 0.95
	pressPhraseBase       = 0.6
	pressPhraseStep       = 0.1
	pressMinPhraseHits    = 2
)

// PressReleaseDetector detects self-promotional press-release content from
// newswire domains, URL path patterns, and linguistic patterns
type PressReleaseDetector struct {
	domains      map[string]bool
	pathPatterns []string
	phrases      []string
}

// NewPressReleaseDetector creates a detector from the injected vocabulary
func NewPressReleaseDetector(cfg model.CounterIntelConfig) *PressReleaseDetector {
	domains := make(map[string]bool, len(cfg.NewswireDomains))
	for _, d := range cfg.NewswireDomains {
		domains[strings.ToLower(d)] = true
	}

	paths := make([]string, len(cfg.PressPathPatterns))
	for i, p := range cfg.PressPathPatterns {
		paths[i] = strings.ToLower(p)
	}

	phrases := make([]string, len(cfg.PressPhrases))
	for i, p := range cfg.PressPhrases {
		phrases[i] = strings.ToLower(p)
	}

	return &PressReleaseDetector{
		domains:      domains,
		pathPatterns: paths,
		phrases:      phrases,
	}
}

// Detect reports whether the evidence looks like a press release and with
// what confidence. Matchers are tried strongest-first: newswire domain, URL
// path pattern, then linguistic pattern count.
func (d *PressReleaseDetector) Detect(rawURL, text string) (bool, float64) {
	if host, path, ok := splitURL(rawURL); ok {
		if d.matchDomain(host) {
			return true, pressDomainConfidence
		}
		for _, pattern := range d.pathPatterns {
			if strings.Contains(strings.ToLower(path), pattern) {
				return true, pressPathConfidence
			}
		}
	}

	// Two distinct linguistic pattern hits are required; one phrase alone is
	// too common in ordinary coverage
	hits := 0
	lower := strings.ToLower(text)
	for _, phrase := range d.phrases {
		if strings.Contains(lower, phrase) {
			hits++
		}
	}
	if hits >= pressMinPhraseHits {
		return true, math.Min(pressPhraseCeiling, pressPhraseBase+pressPhraseStep*float64(hits))
	}

	return false, 0
}

// matchDomain matches the host against the newswire list, including
// subdomains (e.g. www.prnewswire.com)
func (d *PressReleaseDetector) matchDomain(host string) bool {
	if d.domains[host] {
		return true
	}
	for domain := range d.domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// splitURL returns the lower-cased host (without port) and path
func splitURL(rawURL string) (host, path string, ok bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", "", false
	}
	host = strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host, parsed.Path, true
}
