package verdict

import (
	"testing"

	"github.com/avetrov/veridex/internal/model"
)

func TestMap_Branches(t *testing.T) {
	tests := []struct {
		name   string
		triple model.ProbabilityTriple
		want   model.Verdict
	}{
		{
			name:   "highly likely true",
			triple: model.ProbabilityTriple{True: 0.80, False: 0.05, Uncertain: 0.15},
			want:   model.VerdictHighlyLikelyTrue,
		},
		{
			name:   "likely true via true+uncertain mass",
			triple: model.ProbabilityTriple{True: 0.50, False: 0.20, Uncertain: 0.30},
			want:   model.VerdictLikelyTrue,
		},
		{
			name:   "uncertain band",
			triple: model.ProbabilityTriple{True: 0.35, False: 0.30, Uncertain: 0.35},
			want:   model.VerdictUncertain,
		},
		{
			name:   "leaning false boundary",
			triple: model.ProbabilityTriple{True: 0.12, False: 0.50, Uncertain: 0.38},
			want:   model.VerdictLeaningFalse,
		},
		{
			name:   "likely false via false+uncertain mass",
			triple: model.ProbabilityTriple{True: 0.20, False: 0.34, Uncertain: 0.46},
			want:   model.VerdictLikelyFalse,
		},
		{
			name:   "base prior maps to uncertain",
			triple: model.BasePrior(),
			want:   model.VerdictUncertain,
		},
		{
			name:   "high combined mass without margin stays uncertain",
			triple: model.ProbabilityTriple{True: 0.30, False: 0.22, Uncertain: 0.48},
			want:   model.VerdictUncertain,
		},
		{
			name:   "uncovered region falls back to uncertain",
			triple: model.ProbabilityTriple{True: 0.50, False: 0.40, Uncertain: 0.10},
			want:   model.VerdictUncertain,
		},
	}

	for _, tt := range tests {
		if got := Map(tt.triple); got != tt.want {
			t.Errorf("%s: Map(%+v) = %s, want %s", tt.name, tt.triple, got, tt.want)
		}
	}
}

// Branch order matters: a heavily false triple with a non-trivial true
// component must fall through the earlier false branches before reaching
// HIGHLY_LIKELY_FALSE.
func TestMap_BranchOrdering(t *testing.T) {
	// Caught by LEANING_FALSE before HIGHLY_LIKELY_FALSE can fire
	strong := model.ProbabilityTriple{True: 0.15, False: 0.80, Uncertain: 0.05}
	if got := Map(strong); got != model.VerdictLeaningFalse {
		t.Errorf("expected LEANING_FALSE by branch order, got %s", got)
	}

	// Only a triple escaping both false branches reaches the last label
	escaped := model.ProbabilityTriple{True: 0.36, False: 0.76, Uncertain: 0.10}
	if got := Map(escaped); got != model.VerdictHighlyLikelyFalse {
		t.Errorf("expected HIGHLY_LIKELY_FALSE, got %s", got)
	}
}

func TestMap_LeaningTrue(t *testing.T) {
	triple := model.ProbabilityTriple{True: 0.45, False: 0.34, Uncertain: 0.18}
	if got := Map(triple); got != model.VerdictLeaningTrue {
		t.Errorf("expected LEANING_TRUE, got %s", got)
	}
}
