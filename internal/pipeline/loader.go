package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avetrov/veridex/internal/gather"
	"github.com/avetrov/veridex/internal/model"
)

// LoadCaseFile reads a case file from disk. YAML and JSON are both
// accepted; the extension decides the decoder.
func LoadCaseFile(path string) (*CaseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}

	var caseFile CaseFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &caseFile); err != nil {
			return nil, fmt.Errorf("parse case file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &caseFile); err != nil {
			return nil, fmt.Errorf("parse case file: %w", err)
		}
	}

	if caseFile.Subject == "" {
		caseFile.Subject = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &caseFile, nil
}

// WithProber attaches a prober that enriches evidence lacking source
// metadata before classification
func (a *Assessor) WithProber(p *gather.Prober) *Assessor {
	a.prober = p
	return a
}

// AssessFile loads a case file, optionally probes its evidence URLs, and
// assesses every claim
func (a *Assessor) AssessFile(ctx context.Context, path string) (*model.CaseReport, error) {
	caseFile, err := LoadCaseFile(path)
	if err != nil {
		return nil, err
	}

	if a.prober != nil {
		a.enrich(ctx, caseFile)
	}

	return a.AssessCase(ctx, caseFile)
}

// enrich probes evidence URLs that arrived without metadata and attaches
// the probe results. Evidence that already carries metadata is left alone.
func (a *Assessor) enrich(ctx context.Context, caseFile *CaseFile) {
	seen := make(map[string]bool)
	var urls []string
	for _, claim := range caseFile.Claims {
		for _, rec := range claim.Evidence {
			if rec.Meta != nil || rec.URL == "" || seen[rec.URL] {
				continue
			}
			seen[rec.URL] = true
			urls = append(urls, rec.URL)
		}
	}
	if len(urls) == 0 {
		return
	}

	meta := a.prober.Probe(ctx, urls)

	for ci := range caseFile.Claims {
		for ei := range caseFile.Claims[ci].Evidence {
			rec := &caseFile.Claims[ci].Evidence[ei]
			if rec.Meta == nil {
				rec.Meta = meta[rec.URL]
			}
		}
	}
}
