package verdict

import (
	"math"

	"github.com/avetrov/veridex/internal/model"
)

// Map converts a probability triple into one of seven ordinal verdict
// labels. Thresholds operate in percent space and are evaluated in order;
// the first match wins, with UNCERTAIN as the explicit fallback for any
// uncovered region. LIKELY_TRUE additionally requires a clear margin of
// TRUE over FALSE so near-uniform triples (the base prior included) fall
// through to the UNCERTAIN band instead of reading as likely true.
func Map(p model.ProbabilityTriple) model.Verdict {
	truePct := p.True * 100
	falsePct := p.False * 100
	uncertainPct := p.Uncertain * 100

	switch {
	case truePct > 70 && falsePct < 10:
		return model.VerdictHighlyLikelyTrue
	case truePct+uncertainPct > 65 && falsePct < 35 && truePct-falsePct >= 10:
		return model.VerdictLikelyTrue
	case truePct > 40 && falsePct < 35:
		return model.VerdictLeaningTrue
	case math.Abs(truePct-falsePct) < 10:
		return model.VerdictUncertain
	case falsePct > 35 && truePct < 30:
		return model.VerdictLeaningFalse
	case falsePct+uncertainPct > 65 && truePct < 35:
		return model.VerdictLikelyFalse
	case falsePct > 75:
		return model.VerdictHighlyLikelyFalse
	default:
		return model.VerdictUncertain
	}
}
