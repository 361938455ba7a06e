package segment

import (
	"math"

	"github.com/avetrov/veridex/internal/model"
)

// Planner computes segmentation plans for bounded-context video analysis
type Planner struct {
	promptOverhead int
	safetyMargin   float64
}

// NewPlanner creates a planner with the given token-budget constants
func NewPlanner(cfg model.SegmentConfig) *Planner {
	overhead := cfg.PromptOverheadTokens
	if overhead <= 0 {
		overhead = 5000
	}
	margin := cfg.SafetyMarginFraction
	if margin <= 0 {
		margin = 0.10
	}
	return &Planner{
		promptOverhead: overhead,
		safetyMargin:   margin,
	}
}

// Plan computes how a video of the given duration must be split so that no
// single analysis request exceeds the model's available token budget. The
// plan minimizes segment count subject to that constraint and distributes
// the duration evenly across segments.
func (p *Planner) Plan(videoDurationSeconds int, profile model.ModelProfile) (model.SegmentationPlan, error) {
	if videoDurationSeconds <= 0 {
		return model.SegmentationPlan{}, model.NewInvalidInput("video_duration_seconds", videoDurationSeconds, "must be positive")
	}

	consumptionRate := profile.ConsumptionRate()
	if consumptionRate <= 0 {
		return model.SegmentationPlan{}, model.NewInvalidInput("consumption_rate", consumptionRate, "profile consumes no tokens per second")
	}

	safetyTokens := float64(profile.ContextWindow) * p.safetyMargin
	availableTokens := float64(profile.ContextWindow) - float64(profile.MaxOutputTokens) - float64(p.promptOverhead) - safetyTokens
	if availableTokens <= 0 {
		return model.SegmentationPlan{}, model.NewInvalidInput("context_window", profile.ContextWindow, "no tokens left after output budget and overheads")
	}

	maxSegmentSeconds := int(math.Floor(availableTokens / consumptionRate))
	if maxSegmentSeconds < 1 {
		maxSegmentSeconds = 1
	}

	segmentCount := int(math.Ceil(float64(videoDurationSeconds) / float64(maxSegmentSeconds)))
	if segmentCount < 1 {
		segmentCount = 1
	}

	// Distribute evenly so the last segment is not a tiny remainder
	segmentSeconds := int(math.Ceil(float64(videoDurationSeconds) / float64(segmentCount)))
	if segmentSeconds > maxSegmentSeconds {
		segmentSeconds = maxSegmentSeconds
	}

	return model.SegmentationPlan{
		VideoDurationSeconds:   videoDurationSeconds,
		ModelTokenBudget:       profile.ContextWindow,
		MaxOutputTokens:        profile.MaxOutputTokens,
		PromptOverhead:         p.promptOverhead,
		SafetyMarginFraction:   p.safetyMargin,
		ConsumptionRate:        consumptionRate,
		MaxSegmentSeconds:      maxSegmentSeconds,
		SegmentDurationSeconds: segmentSeconds,
		SegmentCount:           segmentCount,
	}, nil
}
