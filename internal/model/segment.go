package model

// ModelProfile describes the token economics of a multimodal analysis model
type ModelProfile struct {
	Name                 string  `json:"name" yaml:"name" mapstructure:"name"`
	ContextWindow        int     `json:"context_window" yaml:"context_window" mapstructure:"context_window"`
	MaxOutputTokens      int     `json:"max_output_tokens" yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
	TokensPerFrame       int     `json:"tokens_per_frame" yaml:"tokens_per_frame" mapstructure:"tokens_per_frame"`
	AudioTokensPerSecond int     `json:"audio_tokens_per_second" yaml:"audio_tokens_per_second" mapstructure:"audio_tokens_per_second"`
	SamplingFPS          float64 `json:"sampling_fps" yaml:"sampling_fps" mapstructure:"sampling_fps"`
}

// ConsumptionRate returns projected token consumption per second of video
func (m ModelProfile) ConsumptionRate() float64 {
	return float64(m.TokensPerFrame)*m.SamplingFPS + float64(m.AudioTokensPerSecond)
}

// GeminiFlashProfile is the reference profile for Gemini 2.5 Flash
func GeminiFlashProfile() ModelProfile {
	return ModelProfile{
		Name:                 "gemini-2.5-flash",
		ContextWindow:        1_000_000,
		MaxOutputTokens:      65_536,
		TokensPerFrame:       258,
		AudioTokensPerSecond: 32,
		SamplingFPS:          1.0,
	}
}

// SegmentationPlan is the chunking schedule for one video. Created once,
// read-only thereafter.
type SegmentationPlan struct {
	VideoDurationSeconds   int     `json:"video_duration_seconds"`
	ModelTokenBudget       int     `json:"model_token_budget"`
	MaxOutputTokens        int     `json:"max_output_tokens"`
	PromptOverhead         int     `json:"prompt_overhead"`
	SafetyMarginFraction   float64 `json:"safety_margin_fraction"`
	ConsumptionRate        float64 `json:"consumption_rate_tokens_per_second"`
	MaxSegmentSeconds      int     `json:"max_segment_seconds"`      // Token-budget bound
	SegmentDurationSeconds int     `json:"segment_duration_seconds"` // Even distribution, <= max
	SegmentCount           int     `json:"segment_count"`
}

// SegmentWindow is one {start,end} analysis window handed to the external
// video-analysis service
type SegmentWindow struct {
	StartSeconds int `json:"segment_start"`
	EndSeconds   int `json:"segment_end"`
}

// Windows expands the plan into concrete analysis windows covering the
// whole video
func (p SegmentationPlan) Windows() []SegmentWindow {
	windows := make([]SegmentWindow, 0, p.SegmentCount)
	for start := 0; start < p.VideoDurationSeconds; start += p.SegmentDurationSeconds {
		end := start + p.SegmentDurationSeconds
		if end > p.VideoDurationSeconds {
			end = p.VideoDurationSeconds
		}
		windows = append(windows, SegmentWindow{StartSeconds: start, EndSeconds: end})
	}
	return windows
}
