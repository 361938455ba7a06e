package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avetrov/veridex/internal/cache"
	"github.com/avetrov/veridex/internal/gather"
	"github.com/avetrov/veridex/internal/llm"
	"github.com/avetrov/veridex/internal/model"
	"github.com/avetrov/veridex/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	outLLMMD    string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	probe       bool
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess <case-file>",
	Short: "Assess a case file and produce per-claim verdicts",
	Long: `Assess scores every claim in a case file against its gathered evidence:
- Classify evidence sources and compute per-item validation power
- Detect press releases, self-referential sources, and counter-intel stance
- Aggregate evidence into TRUE/FALSE/UNCERTAIN probabilities
- Map probabilities to a seven-level verdict per claim
- Plan video segmentation when a duration is present

Example:
  veridex assess case.json
  veridex assess case.json --json report.json --md report.md
  veridex assess case.yaml --probe --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	// Output flags
	assessCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	assessCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	assessCmd.Flags().StringVar(&outLLMMD, "llm-md", "", "output path for the LLM narrative (optional)")

	// HTTP flags
	assessCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall assessment timeout (increase for cases with many evidence links)")
	assessCmd.Flags().StringVar(&userAgent, "ua", "Veridex/0.1 (+https://github.com/avetrov/veridex)", "HTTP User-Agent")
	assessCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	assessCmd.Flags().BoolVar(&probe, "probe", false, "probe evidence URLs for accessibility and freshness metadata")
	assessCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable probe cache (force fresh probes)")
	assessCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	assessCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	assessCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	assessCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	assessCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	assessCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	assessCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAssess(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Assessing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Probe: %v\n", probe)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	assessor := pipeline.NewAssessor(cfg)
	if probe {
		prober := gather.NewProber(cfg.HTTP, cfg.Concurrency, cache.FromConfig(cfg.Cache))
		assessor = assessor.WithProber(prober)
	}

	report, err := assessor.AssessFile(ctx, path)
	if err != nil {
		return fmt.Errorf("assess failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Assessed %d claims\n", len(report.Claims))
		if report.Plan != nil {
			fmt.Fprintf(os.Stderr, "✓ Planned %d segments of %ds\n", report.Plan.SegmentCount, report.Plan.SegmentDurationSeconds)
		}
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM narrative using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if err := renderer.RenderJSON(report, outJSON); err != nil {
		return fmt.Errorf("render JSON: %w", err)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
	}
	if outLLMMD != "" && report.LLM != nil && report.LLM.Enabled {
		if err := renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), outLLMMD); err != nil {
			return fmt.Errorf("render LLM Markdown: %w", err)
		}
	}

	renderer.RenderSummary(report)

	return nil
}

// buildConfig assembles the effective configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictEvidence = true // Always enforce

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
			if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		default:
			return nil, fmt.Errorf("unsupported LLM provider: %s", llmProvider)
		}
	}

	return cfg, nil
}
