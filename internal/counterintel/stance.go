package counterintel

import (
	"math"
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

// Stance classification thresholds over the counter-signal ratio
const (
	counterRatioHigh   = 0.7 // Above: content contradicts the claim
	counterRatioLow    = 0.3 // Below: content supports the claim
	stanceConfBase     = 0.6
	stanceConfSlope    = 1.17
	stanceConfCeiling  = 0.95
	stanceNeutralConf  = 0.5
)

// Reach-weighted validation power components for counter-intel videos
const (
	reachViewWeight   = 0.4
	reachViewCeiling  = 2.0
	reachViewDivisor  = 10000.0
	reachStanceWeight = 0.4
	reachCredWeight   = 0.2
)

// StanceDetector classifies independent review/debunking content as
// contradicting or supporting a claim by counting fixed-vocabulary signals
type StanceDetector struct {
	negative []string
	positive []string
}

// NewStanceDetector creates a detector from the injected signal vocabularies
func NewStanceDetector(cfg model.CounterIntelConfig) *StanceDetector {
	lowered := func(terms []string) []string {
		out := make([]string, len(terms))
		for i, t := range terms {
			out[i] = strings.ToLower(t)
		}
		return out
	}
	return &StanceDetector{
		negative: lowered(cfg.NegativeSignals),
		positive: lowered(cfg.PositiveSignals),
	}
}

// Detect classifies the stance of the given text. With no signals at all
// the text is NEUTRAL at confidence 0.5.
func (d *StanceDetector) Detect(text string) (model.Stance, float64) {
	lower := strings.ToLower(text)

	counter := countSignals(lower, d.negative)
	supporting := countSignals(lower, d.positive)

	total := counter + supporting
	if total == 0 {
		return model.StanceNeutral, stanceNeutralConf
	}

	counterRatio := float64(counter) / float64(total)
	switch {
	case counterRatio > counterRatioHigh:
		conf := math.Min(stanceConfCeiling, stanceConfBase+(counterRatio-counterRatioHigh)*stanceConfSlope)
		return model.StanceSupportsFalse, conf
	case counterRatio < counterRatioLow:
		conf := math.Min(stanceConfCeiling, stanceConfBase+(counterRatioLow-counterRatio)*stanceConfSlope)
		return model.StanceSupportsTrue, conf
	default:
		return model.StanceNeutral, stanceNeutralConf
	}
}

// countSignals sums case-insensitive substring occurrences of each term
func countSignals(lowerText string, terms []string) int {
	count := 0
	for _, term := range terms {
		count += strings.Count(lowerText, term)
	}
	return count
}

// ReachWeightedPower computes validation power for a counter-intel video
// from its audience reach, stance confidence, and channel credibility. A
// SUPPORTS_TRUE stance negates the power, since it undermines the video's
// counter-intelligence role.
func ReachWeightedPower(reach int64, stance model.Stance, stanceConfidence, channelCredibility float64) float64 {
	if reach < 0 {
		reach = 0
	}
	viewComponent := reachViewWeight * math.Min(reachViewCeiling, math.Log10(1+float64(reach)/reachViewDivisor))
	power := viewComponent + reachStanceWeight*stanceConfidence + reachCredWeight*channelCredibility
	if stance == model.StanceSupportsTrue {
		power = -power
	}
	return power
}
