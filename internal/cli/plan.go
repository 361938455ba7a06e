package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/avetrov/veridex/internal/model"
	"github.com/avetrov/veridex/internal/segment"
)

var (
	planJSON       bool
	promptOverhead int
	safetyMargin   float64
	samplingFPS    float64
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <duration-seconds>",
	Short: "Plan video segmentation for a multimodal model's token budget",
	Long: `Plan computes how a video of the given duration must be split so each
segment fits the analysis model's context window after prompt overhead
and a safety margin. Segments are distributed evenly: a video slightly
over the maximum yields two half-length segments, not one full and one
sliver.

Example:
  veridex plan 1998
  veridex plan 7200 --fps 0.5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the plan as JSON")
	planCmd.Flags().IntVar(&promptOverhead, "prompt-overhead", 5000, "tokens reserved for the prompt")
	planCmd.Flags().Float64Var(&safetyMargin, "safety-margin", 0.10, "fraction of the context window held back")
	planCmd.Flags().Float64Var(&samplingFPS, "fps", 1.0, "video frame sampling rate")
}

func runPlan(cmd *cobra.Command, args []string) error {
	duration, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[0], err)
	}

	profile := model.GeminiFlashProfile()
	profile.SamplingFPS = samplingFPS

	planner := segment.NewPlanner(model.SegmentConfig{
		PromptOverheadTokens: promptOverhead,
		SafetyMarginFraction: safetyMargin,
		Profile:              profile,
	})

	plan, err := planner.Plan(duration, profile)
	if err != nil {
		return err
	}

	if planJSON {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Model:            %s\n", profile.Name)
	fmt.Printf("Video duration:   %ds\n", plan.VideoDurationSeconds)
	fmt.Printf("Token budget:     %d (overhead %d, margin %.0f%%)\n",
		plan.ModelTokenBudget, plan.PromptOverhead, plan.SafetyMarginFraction*100)
	fmt.Printf("Consumption rate: %.0f tokens/s\n", plan.ConsumptionRate)
	fmt.Printf("Max segment:      %ds\n", plan.MaxSegmentSeconds)
	fmt.Printf("Segments:         %d x %ds\n", plan.SegmentCount, plan.SegmentDurationSeconds)

	if verbose {
		for i, w := range plan.Windows() {
			fmt.Fprintf(os.Stderr, "  segment %d: %ds - %ds\n", i+1, w.StartSeconds, w.EndSeconds)
		}
	}

	return nil
}
