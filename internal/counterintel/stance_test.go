package counterintel

import (
	"math"
	"testing"

	"github.com/avetrov/veridex/internal/model"
)

func newTestStanceDetector() *StanceDetector {
	return NewStanceDetector(model.DefaultConfig().CounterIntel)
}

func TestStanceDetector_ContradictingContent(t *testing.T) {
	detector := newTestStanceDetector()

	stance, conf := detector.Detect("This product is a scam. Totally fake, it doesn't work and was exposed as fraud.")
	if stance != model.StanceSupportsFalse {
		t.Fatalf("expected SUPPORTS_FALSE, got %s", stance)
	}
	// counter ratio 1.0: confidence = min(0.95, 0.6 + 0.3*1.17) = 0.95
	if conf != 0.95 {
		t.Errorf("expected confidence 0.95, got %v", conf)
	}
}

func TestStanceDetector_SupportingContent(t *testing.T) {
	detector := newTestStanceDetector()

	stance, conf := detector.Detect("It works as advertised, very effective, I recommend it.")
	if stance != model.StanceSupportsTrue {
		t.Fatalf("expected SUPPORTS_TRUE, got %s", stance)
	}
	// counter ratio 0.0: confidence = min(0.95, 0.6 + 0.3*1.17) = 0.95
	if conf != 0.95 {
		t.Errorf("expected confidence 0.95, got %v", conf)
	}
}

func TestStanceDetector_MixedAndEmpty(t *testing.T) {
	detector := newTestStanceDetector()

	// One negative, one positive signal: ratio 0.5 is in the neutral band
	stance, conf := detector.Detect("some say it works, others call it a scam")
	if stance != model.StanceNeutral || conf != 0.5 {
		t.Errorf("expected NEUTRAL at 0.5, got %s at %v", stance, conf)
	}

	// No signals at all
	stance, conf = detector.Detect("a video about chargers")
	if stance != model.StanceNeutral || conf != 0.5 {
		t.Errorf("expected NEUTRAL at 0.5 for signal-free text, got %s at %v", stance, conf)
	}
}

func TestStanceDetector_ConfidenceScalesWithRatio(t *testing.T) {
	detector := newTestStanceDetector()

	// 4 negative, 1 positive: ratio 0.8, confidence = 0.6 + 0.1*1.17 = 0.717
	stance, conf := detector.Detect("scam fake fraud debunked but someone said it works")
	if stance != model.StanceSupportsFalse {
		t.Fatalf("expected SUPPORTS_FALSE, got %s", stance)
	}
	want := 0.6 + (0.8-0.7)*1.17
	if math.Abs(conf-want) > 1e-9 {
		t.Errorf("expected confidence %v, got %v", want, conf)
	}
}

func TestReachWeightedPower(t *testing.T) {
	// reach 450,000: view component = 0.4*log10(46) ~ 0.6651
	power := ReachWeightedPower(450_000, model.StanceSupportsFalse, 0.78, 0.5)
	want := 0.4*math.Log10(46) + 0.4*0.78 + 0.2*0.5
	if math.Abs(power-want) > 1e-9 {
		t.Errorf("expected power %v, got %v", want, power)
	}

	// SUPPORTS_TRUE negates: the video undermines the counter-intel role
	negated := ReachWeightedPower(450_000, model.StanceSupportsTrue, 0.78, 0.5)
	if math.Abs(negated+want) > 1e-9 {
		t.Errorf("expected negated power %v, got %v", -want, negated)
	}
}

func TestReachWeightedPower_ViewCeiling(t *testing.T) {
	// Enormous reach saturates the view component at 0.4*2.0
	power := ReachWeightedPower(10_000_000_000, model.StanceSupportsFalse, 0.5, 0.5)
	want := 0.4*2.0 + 0.4*0.5 + 0.2*0.5
	if math.Abs(power-want) > 1e-9 {
		t.Errorf("expected saturated power %v, got %v", want, power)
	}

	// Zero and negative reach degrade to a zero view component
	power = ReachWeightedPower(0, model.StanceSupportsFalse, 0.5, 0.5)
	want = 0.4*0.5 + 0.2*0.5
	if math.Abs(power-want) > 1e-9 {
		t.Errorf("expected zero-reach power %v, got %v", want, power)
	}
	if p := ReachWeightedPower(-5, model.StanceSupportsFalse, 0.5, 0.5); math.Abs(p-want) > 1e-9 {
		t.Errorf("negative reach must clamp to zero, got %v", p)
	}
}
