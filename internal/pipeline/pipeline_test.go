package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avetrov/veridex/internal/model"
)

func testCaseFile() *CaseFile {
	reach := int64(250000)
	return &CaseFile{
		Subject:              "MiracleVolt Charger Review",
		SourceURL:            "https://video.example.com/watch?v=mv1",
		VideoDurationSeconds: 1998,
		Claims: []CaseClaim{
			{
				ClaimContext: model.ClaimContext{
					ClaimText:        "the MiracleVolt charger doubles battery lifespan",
					TimestampSeconds: 120,
					SubjectTitle:     "MiracleVolt Charger",
				},
				Evidence: []EvidenceRecord{
					{
						RawEvidence: model.RawEvidence{
							URL:     "https://www.reuters.com/tech/charger-claims",
							Snippet: "Independent testing found the charger misleading and its lifespan claims debunked.",
							Kind:    model.KindWebSearch,
						},
					},
					{
						RawEvidence: model.RawEvidence{
							URL:     "https://www.prnewswire.com/releases/miraclevolt-launch",
							Snippet: "MiracleVolt announces its revolutionary breakthrough charger.",
							Kind:    model.KindWebSearch,
						},
					},
					{
						RawEvidence: model.RawEvidence{
							URL:     "https://video.example.com/watch?v=expose1",
							Snippet: "This charger is a scam, it doesn't work, total waste of money.",
							Kind:    model.KindCounterIntelVideo,
							Reach:   &reach,
						},
					},
				},
			},
			{
				ClaimContext: model.ClaimContext{
					ClaimText: "the charger ships with a braided cable",
				},
				Evidence: nil, // Collaborator found nothing
			},
		},
	}
}

func TestAssessCase_EndToEnd(t *testing.T) {
	assessor := NewAssessor(model.DefaultConfig())

	report, err := assessor.AssessCase(context.Background(), testCaseFile())
	if err != nil {
		t.Fatalf("AssessCase failed: %v", err)
	}

	if report.Subject != "MiracleVolt Charger Review" {
		t.Errorf("unexpected subject %q", report.Subject)
	}
	if len(report.Claims) != 2 {
		t.Fatalf("expected 2 claim assessments, got %d", len(report.Claims))
	}

	// Segmentation plan is present because a duration was given
	if report.Plan == nil {
		t.Fatal("expected segmentation plan for a case with video duration")
	}
	if report.Plan.SegmentCount != 1 {
		t.Errorf("expected 1 segment for 1998s video, got %d", report.Plan.SegmentCount)
	}
	if report.Plan.MaxSegmentSeconds != 2860 {
		t.Errorf("expected max segment 2860s, got %d", report.Plan.MaxSegmentSeconds)
	}

	// First claim carries hostile evidence: press release + debunking
	// coverage + a counter-intel video. FALSE must dominate.
	first := report.Claims[0]
	if len(first.Evidence) != 3 {
		t.Errorf("expected 3 classified evidence items, got %d", len(first.Evidence))
	}
	if first.Probabilities.False <= first.Probabilities.True {
		t.Errorf("expected FALSE to dominate TRUE, got %+v", first.Probabilities)
	}
	if sum := first.Probabilities.Sum(); sum < 0.999 || sum > 1.001 {
		t.Errorf("probabilities must sum to 1, got %f", sum)
	}
	if len(first.Modifications) == 0 {
		t.Error("expected adjustment notes for press release and counter-intel evidence")
	}

	// Second claim has no evidence: base prior and UNCERTAIN
	second := report.Claims[1]
	if second.Verdict != model.VerdictUncertain {
		t.Errorf("expected UNCERTAIN for evidence-free claim, got %s", second.Verdict)
	}
	if second.Probabilities != model.BasePrior() {
		t.Errorf("expected base prior, got %+v", second.Probabilities)
	}
	foundInsufficient := false
	for _, mod := range second.Modifications {
		if strings.Contains(mod, "Insufficient evidence") {
			foundInsufficient = true
		}
	}
	if !foundInsufficient {
		t.Errorf("expected insufficient-evidence note, got %v", second.Modifications)
	}
}

func TestAssessClaim_NoEvidence(t *testing.T) {
	assessor := NewAssessor(model.DefaultConfig())

	assessment := assessor.AssessClaim(model.ClaimContext{ClaimText: "the charger is waterproof"}, nil)

	if assessment.Probabilities != model.BasePrior() {
		t.Errorf("expected base prior, got %+v", assessment.Probabilities)
	}
	if assessment.Verdict != model.VerdictUncertain {
		t.Errorf("expected UNCERTAIN for a claim with no evidence, got %s", assessment.Verdict)
	}
	found := false
	for _, mod := range assessment.Modifications {
		if strings.Contains(mod, "Insufficient evidence") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected insufficient-evidence note, got %v", assessment.Modifications)
	}
}

func TestAssessCase_NoDurationSkipsPlan(t *testing.T) {
	assessor := NewAssessor(model.DefaultConfig())

	caseFile := testCaseFile()
	caseFile.VideoDurationSeconds = 0

	report, err := assessor.AssessCase(context.Background(), caseFile)
	if err != nil {
		t.Fatalf("AssessCase failed: %v", err)
	}
	if report.Plan != nil {
		t.Error("expected no segmentation plan without a video duration")
	}
}

func TestAssessClaim_OrderIndependentOfConcurrency(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Concurrency.ClaimWorkers = 1
	sequential := NewAssessor(cfg)

	cfg2 := model.DefaultConfig()
	cfg2.Concurrency.ClaimWorkers = 8
	concurrent := NewAssessor(cfg2)

	ctx := context.Background()
	r1, err := sequential.AssessCase(ctx, testCaseFile())
	if err != nil {
		t.Fatal(err)
	}
	r2, err := concurrent.AssessCase(ctx, testCaseFile())
	if err != nil {
		t.Fatal(err)
	}

	for i := range r1.Claims {
		if r1.Claims[i].ClaimText != r2.Claims[i].ClaimText {
			t.Errorf("claim order must match input order at index %d", i)
		}
		if r1.Claims[i].Probabilities != r2.Claims[i].Probabilities {
			t.Errorf("probabilities must not depend on worker count: %+v vs %+v",
				r1.Claims[i].Probabilities, r2.Claims[i].Probabilities)
		}
	}
}

func TestLoadCaseFile_JSON(t *testing.T) {
	caseFile := testCaseFile()
	data, err := json.Marshal(caseFile)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "case.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCaseFile(path)
	if err != nil {
		t.Fatalf("LoadCaseFile failed: %v", err)
	}
	if loaded.Subject != caseFile.Subject {
		t.Errorf("expected subject %q, got %q", caseFile.Subject, loaded.Subject)
	}
	if len(loaded.Claims) != len(caseFile.Claims) {
		t.Errorf("expected %d claims, got %d", len(caseFile.Claims), len(loaded.Claims))
	}
}

func TestLoadCaseFile_DefaultsSubjectFromFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miraclevolt-review.json")
	if err := os.WriteFile(path, []byte(`{"claims": []}`), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCaseFile(path)
	if err != nil {
		t.Fatalf("LoadCaseFile failed: %v", err)
	}
	if loaded.Subject != "miraclevolt-review" {
		t.Errorf("expected subject from filename, got %q", loaded.Subject)
	}
}

func TestLoadCaseFile_Missing(t *testing.T) {
	if _, err := LoadCaseFile("no_such_case.json"); err == nil {
		t.Error("expected error for missing case file")
	}
}

func TestRenderer_MarkdownAndJSON(t *testing.T) {
	assessor := NewAssessor(model.DefaultConfig())
	report, err := assessor.AssessCase(context.Background(), testCaseFile())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	renderer := NewRenderer(true)

	jsonPath := filepath.Join(dir, "report.json")
	if err := renderer.RenderJSON(report, jsonPath); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	var decoded model.CaseReport
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report JSON must round-trip: %v", err)
	}
	if decoded.Subject != report.Subject {
		t.Errorf("expected subject %q, got %q", report.Subject, decoded.Subject)
	}

	mdPath := filepath.Join(dir, "report.md")
	if err := renderer.RenderMarkdown(report, mdPath); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(md)
	if !strings.Contains(text, "MiracleVolt Charger Review") {
		t.Error("markdown must contain the subject")
	}
	if !strings.Contains(text, "## Segmentation") {
		t.Error("markdown must contain the segmentation section")
	}
	if !strings.Contains(text, string(model.VerdictUncertain)) {
		t.Error("markdown must contain verdicts")
	}
}
