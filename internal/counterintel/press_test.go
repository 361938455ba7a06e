package counterintel

import (
	"testing"

	"github.com/avetrov/veridex/internal/model"
)

func newTestPressDetector() *PressReleaseDetector {
	return NewPressReleaseDetector(model.DefaultConfig().CounterIntel)
}

func TestPressReleaseDetector_NewswireDomain(t *testing.T) {
	detector := newTestPressDetector()

	tests := []struct {
		url  string
		want bool
		conf float64
	}{
		{"https://www.prnewswire.com/news/acme-launches", true, 1.0},
		{"https://prnewswire.com/releases/123", true, 1.0},
		{"https://businesswire.com/en/home", true, 1.0},
		{"https://example.com/article", false, 0},
	}

	for _, tt := range tests {
		got, conf := detector.Detect(tt.url, "ordinary article text")
		if got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.url, got, tt.want)
		}
		if tt.want && conf != tt.conf {
			t.Errorf("Detect(%q) confidence = %v, want %v", tt.url, conf, tt.conf)
		}
	}
}

func TestPressReleaseDetector_PathPattern(t *testing.T) {
	detector := newTestPressDetector()

	got, conf := detector.Detect("https://acme.example.com/newsroom/latest", "")
	if !got {
		t.Fatal("expected /newsroom/ path to match")
	}
	if conf != 0.95 {
		t.Errorf("expected confidence 0.95, got %v", conf)
	}

	got, conf = detector.Detect("https://acme.example.com/Press-Release/launch", "")
	if !got || conf != 0.95 {
		t.Errorf("expected case-insensitive path match at 0.95, got (%v, %v)", got, conf)
	}
}

func TestPressReleaseDetector_LinguisticPatterns(t *testing.T) {
	detector := newTestPressDetector()

	// A single phrase is not enough
	got, _ := detector.Detect("https://example.com/a", "For immediate release: something happened")
	if got {
		t.Error("one phrase hit must not mark a press release")
	}

	// Two distinct phrases: confidence 0.6 + 0.1*2 = 0.8
	text := "FOR IMMEDIATE RELEASE. Acme Corp is pleased to announce a new product."
	got, conf := detector.Detect("https://example.com/a", text)
	if !got {
		t.Fatal("expected two phrase hits to match")
	}
	if conf != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", conf)
	}

	// Many phrases saturate at 0.95
	text = "for immediate release is pleased to announce today announced media contact: press contact: about the company"
	_, conf = detector.Detect("https://example.com/a", text)
	if conf != 0.95 {
		t.Errorf("expected confidence ceiling 0.95, got %v", conf)
	}
}

func TestSelfReferenceDetector(t *testing.T) {
	detector := NewSelfReferenceDetector(model.DefaultConfig().CounterIntel)

	subject := model.ClaimContext{
		SubjectTitle:   "UltraCharge X9 Review",
		SubjectEntity:  "UltraCharge",
		SubjectChannel: "TechPromo",
		SubjectURL:     "https://www.ultracharge.example.com/x9",
	}

	if !detector.Detect("the ultracharge x9 is revolutionary", "https://blog.example.com/post", subject) {
		t.Error("entity name in text must be self-referential")
	}
	if !detector.Detect("an unrelated writeup", "https://shop.ultracharge.example.com/specs", subject) {
		t.Error("shared subject domain must be self-referential")
	}
	if !detector.Detect("video by techpromo covering chargers", "https://other.example.com", subject) {
		t.Error("channel name in text must be self-referential")
	}
	if detector.Detect("independent lab tests of usb chargers", "https://lab.example.org/report", subject) {
		t.Error("unrelated evidence must not be self-referential")
	}
}

func TestSelfReferenceDetector_KeywordOverlap(t *testing.T) {
	detector := NewSelfReferenceDetector(model.DefaultConfig().CounterIntel)

	subject := model.ClaimContext{SubjectTitle: "solar generator camping power station"}

	// All four subject keywords present: overlap 1.0 >= 0.70
	if !detector.Detect("this solar power station generator is great for camping", "https://x.example.com", subject) {
		t.Error("full keyword overlap must be self-referential")
	}

	// One of four keywords: overlap 0.25 < 0.70
	if detector.Detect("camping tips for beginners", "https://x.example.com", subject) {
		t.Error("low keyword overlap must not be self-referential")
	}
}
