package aggregate

import (
	"fmt"
	"math"

	"github.com/avetrov/veridex/internal/model"
)

// Base distribution saturation constants (bounded tanh hybrid)
const (
	baseCenter        = 0.5
	baseSpread        = 0.3
	uncertainCenter   = 0.4
	uncertainSpread   = 0.4
)

// Counter-intel adjustment constants
const (
	counterImpactCap   = 0.20
	counterImpactCoef  = 0.08
	counterTrueShare   = 0.5
	counterFalseShare  = 0.4
	counterUncShare    = 0.5
)

// Press-release penalty constants
const (
	pressPenaltyCap   = 0.40
	pressPenaltyCoef  = 0.15
	pressTrueShare    = 0.6
	pressFalseShare   = 0.4
	pressUncShare     = 0.4
)

// Aggregator combines a claim's classified evidence into a three-state
// probability distribution. All operations are commutative sums, so the
// result is independent of evidence ordering and deterministic for a given
// evidence set.
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate produces the probability triple for one claim's evidence, plus
// the ordered audit trail of adjustment factors that fired. An empty
// evidence set degrades to the base prior (fail-open), never errors.
func (a *Aggregator) Aggregate(evidence []model.EvidenceItem) (model.ProbabilityTriple, []string) {
	var mods []string

	if len(evidence) == 0 {
		mods = append(mods, "Insufficient evidence: defaulting to base prior {0.33, 0.33, 0.34}")
		return normalize(model.BasePrior()), mods
	}

	web, videos, press := partition(evidence)

	// 1. Directional scores over web evidence only
	var scoreTrue, scoreFalse float64
	for _, item := range web {
		switch item.Stance {
		case model.StanceSupportsTrue:
			scoreTrue += item.ValidationPower * item.StanceConfidence
		case model.StanceSupportsFalse:
			scoreFalse += item.ValidationPower * item.StanceConfidence
		}
	}
	scoreConflict := math.Min(scoreTrue, scoreFalse)

	// 2. Base distribution via bounded saturation
	triple := normalize(model.ProbabilityTriple{
		True:      baseCenter + baseSpread*math.Tanh(scoreTrue),
		False:     baseCenter + baseSpread*math.Tanh(scoreFalse),
		Uncertain: uncertainCenter + uncertainSpread*math.Tanh(scoreConflict),
	})
	mods = append(mods, fmt.Sprintf(
		"Web evidence base: TRUE %.3f, FALSE %.3f, UNCERTAIN %.3f (score_true=%.2f, score_false=%.2f, %d items)",
		triple.True, triple.False, triple.Uncertain, scoreTrue, scoreFalse, len(web)))

	// 3. Counter-intel adjustment from independent debunking videos
	var videoPower float64
	var videoCount int
	for _, item := range videos {
		if item.Stance == model.StanceSupportsFalse {
			videoPower += item.ValidationPower * item.StanceConfidence
			videoCount++
		}
	}
	if impact := math.Min(counterImpactCap, videoPower*counterImpactCoef); impact > 0 {
		triple.True = clamp01(triple.True - counterTrueShare*impact)
		triple.False = clamp01(triple.False + counterFalseShare*impact)
		triple.Uncertain = clamp01(triple.Uncertain + counterUncShare*impact)
		mods = append(mods, fmt.Sprintf(
			"Counter-intel adjustment: -%.3f to TRUE, +%.3f to FALSE, +%.3f to UNCERTAIN (power %.2f from %d videos)",
			counterTrueShare*impact, counterFalseShare*impact, counterUncShare*impact, videoPower, videoCount))
	}

	// 4. Press-release penalty from promotional material
	var pressMagnitude float64
	for _, item := range press {
		pressMagnitude += math.Abs(item.ValidationPower)
	}
	if penalty := math.Min(pressPenaltyCap, pressMagnitude*pressPenaltyCoef); penalty > 0 {
		triple.True = clamp01(triple.True - pressTrueShare*penalty)
		triple.False = clamp01(triple.False + pressFalseShare*penalty)
		triple.Uncertain = clamp01(triple.Uncertain + pressUncShare*penalty)
		mods = append(mods, fmt.Sprintf(
			"Press release penalty: -%.3f to TRUE, +%.3f to FALSE, +%.3f to UNCERTAIN (%d items)",
			pressTrueShare*penalty, pressFalseShare*penalty, pressUncShare*penalty, len(press)))
	}

	return normalize(triple), mods
}

// partition splits evidence by kind: web search, counter-intel video,
// press release. Membership is decided upstream by the classifier.
func partition(evidence []model.EvidenceItem) (web, videos, press []model.EvidenceItem) {
	for _, item := range evidence {
		switch item.EvidenceKind {
		case model.KindCounterIntelVideo:
			videos = append(videos, item)
		case model.KindPressRelease:
			press = append(press, item)
		default:
			web = append(web, item)
		}
	}
	return web, videos, press
}

// normalize divides components by their sum and floors each at
// MinProbability. Floor deficits are paid by the largest component so the
// triple keeps summing to exactly 1 and no state ever hits zero.
func normalize(t model.ProbabilityTriple) model.ProbabilityTriple {
	t = scale(t)

	components := []*float64{&t.True, &t.False, &t.Uncertain}
	largest := components[0]
	for _, v := range components[1:] {
		if *v > *largest {
			largest = v
		}
	}
	for _, v := range components {
		if v != largest && *v < model.MinProbability {
			*largest -= model.MinProbability - *v
			*v = model.MinProbability
		}
	}
	return t
}

// scale divides all components by their sum. A degenerate all-zero triple
// scales to the uniform distribution.
func scale(t model.ProbabilityTriple) model.ProbabilityTriple {
	sum := t.Sum()
	if sum <= 0 {
		third := 1.0 / 3.0
		return model.ProbabilityTriple{True: third, False: third, Uncertain: third}
	}
	return model.ProbabilityTriple{
		True:      t.True / sum,
		False:     t.False / sum,
		Uncertain: t.Uncertain / sum,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
