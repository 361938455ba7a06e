package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

// CaseAssessor assesses a single case file and produces a report
type CaseAssessor interface {
	AssessFile(ctx context.Context, path string) (*model.CaseReport, error)
}

// AssessJob assesses one case file
type AssessJob struct {
	Path     string
	Assessor CaseAssessor
}

// Execute runs the assessment
func (j *AssessJob) Execute(ctx context.Context) Result {
	report, err := j.Assessor.AssessFile(ctx, j.Path)
	if err != nil {
		return &AssessResult{Path: j.Path, Error: err}
	}
	return &AssessResult{Path: j.Path, Report: report}
}

// AssessResult is the outcome of assessing one case file
type AssessResult struct {
	Path   string
	Report *model.CaseReport
	Error  error
}

// GetError returns the assessment error, if any
func (r *AssessResult) GetError() error {
	return r.Error
}

// BatchProcessor assesses multiple case files concurrently
type BatchProcessor struct {
	assessor    CaseAssessor
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(assessor CaseAssessor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		assessor:    assessor,
		concurrency: concurrency,
	}
}

// ProcessFiles assesses all case files concurrently. Per-file failures are
// carried in the results, never aborting the batch.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AssessResult {
	if len(paths) == 0 {
		return []*AssessResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AssessJob{Path: path, Assessor: b.assessor})
	}

	results := pool.Wait()

	assessResults := make([]*AssessResult, len(results))
	for i, result := range results {
		assessResults[i] = result.(*AssessResult)
	}

	return assessResults
}

// ProcessManifest reads case file paths from a manifest and assesses them
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*AssessResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads one path per line, skipping blank lines and
// #-comments, deduplicating while preserving order
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
