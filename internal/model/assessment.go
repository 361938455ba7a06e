package model

import "math"

// MinProbability is the floor applied to each component of a triple so no
// state ever degenerates to exactly zero
const MinProbability = 0.001

// ProbabilityTriple is a three-state distribution over a claim's
// truthfulness. Components sum to 1 within floating tolerance and each lies
// in [0.001, 0.998].
type ProbabilityTriple struct {
	True      float64 `json:"true"`
	False     float64 `json:"false"`
	Uncertain float64 `json:"uncertain"`
}

// BasePrior is the distribution assigned to a claim with no usable evidence
func BasePrior() ProbabilityTriple {
	return ProbabilityTriple{True: 0.33, False: 0.33, Uncertain: 0.34}
}

// Sum returns the total probability mass
func (p ProbabilityTriple) Sum() float64 {
	return p.True + p.False + p.Uncertain
}

// Percentages returns the triple scaled to percent space, rounded to one
// decimal place (the report-facing representation)
func (p ProbabilityTriple) Percentages() (truePct, falsePct, uncertainPct float64) {
	round1 := func(v float64) float64 { return math.Round(v*1000) / 10 }
	return round1(p.True), round1(p.False), round1(p.Uncertain)
}

// Verdict is one of seven ordinal truthfulness labels
type Verdict string

const (
	VerdictHighlyLikelyTrue  Verdict = "HIGHLY_LIKELY_TRUE"
	VerdictLikelyTrue        Verdict = "LIKELY_TRUE"
	VerdictLeaningTrue       Verdict = "LEANING_TRUE"
	VerdictUncertain         Verdict = "UNCERTAIN"
	VerdictLeaningFalse      Verdict = "LEANING_FALSE"
	VerdictLikelyFalse       Verdict = "LIKELY_FALSE"
	VerdictHighlyLikelyFalse Verdict = "HIGHLY_LIKELY_FALSE"
)

// ClaimAssessment is the complete, immutable result of assessing one claim.
// Modifications is the ordered audit trail of adjustment factors that fired.
type ClaimAssessment struct {
	ClaimText     string            `json:"claim_text"`
	Evidence      []EvidenceItem    `json:"evidence"`
	Probabilities ProbabilityTriple `json:"probabilities"`
	Verdict       Verdict           `json:"verdict"`
	Modifications []string          `json:"modifications"`
}
