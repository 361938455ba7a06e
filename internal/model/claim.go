package model

import (
	"net/url"
	"strings"
)

// ClaimContext is one candidate claim from the claim-extraction
// collaborator, plus the subject context used for self-reference matching
type ClaimContext struct {
	ClaimText        string `json:"claim_text" yaml:"claim_text"`
	TimestampSeconds int    `json:"timestamp_seconds,omitempty" yaml:"timestamp_seconds,omitempty"` // Position in the source video
	Speaker          string `json:"speaker,omitempty" yaml:"speaker,omitempty"`
	SourceTypeHint   string `json:"source_type_hint,omitempty" yaml:"source_type_hint,omitempty"`

	// Subject being assessed (video title, entity/brand, channel)
	SubjectTitle   string `json:"subject_title,omitempty" yaml:"subject_title,omitempty"`
	SubjectEntity  string `json:"subject_entity,omitempty" yaml:"subject_entity,omitempty"`
	SubjectChannel string `json:"subject_channel,omitempty" yaml:"subject_channel,omitempty"`
	SubjectURL     string `json:"subject_url,omitempty" yaml:"subject_url,omitempty"`
}

// SubjectDomain returns the host of the subject URL, without port
func (c ClaimContext) SubjectDomain() string {
	if c.SubjectURL == "" {
		return ""
	}
	parsed, err := url.Parse(c.SubjectURL)
	if err != nil {
		return ""
	}
	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return strings.TrimPrefix(host, "www.")
}

// SubjectKeywords returns the lower-cased keyword set derived from the
// subject title and entity, with short stop-tokens removed
func (c ClaimContext) SubjectKeywords() []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, source := range []string{c.SubjectTitle, c.SubjectEntity} {
		for _, tok := range strings.Fields(strings.ToLower(source)) {
			tok = strings.Trim(tok, ".,:;!?\"'()[]")
			if len(tok) < 3 || seen[tok] {
				continue
			}
			seen[tok] = true
			keywords = append(keywords, tok)
		}
	}
	return keywords
}
