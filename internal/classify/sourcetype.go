package classify

import (
	"net/url"
	"strings"

	"github.com/avetrov/veridex/internal/model"
)

// SourceTypeClassifier infers a source type from a URL when the
// evidence-gathering collaborator provides no hint
type SourceTypeClassifier struct {
	domainMap map[string]model.SourceType
}

// NewSourceTypeClassifier creates a classifier with the built-in domain map
func NewSourceTypeClassifier() *SourceTypeClassifier {
	return &SourceTypeClassifier{
		domainMap: map[string]model.SourceType{
			// Peer-reviewed publishers
			"nature.com":            model.SourcePeerReviewed,
			"sciencedirect.com":     model.SourcePeerReviewed,
			"nejm.org":              model.SourcePeerReviewed,
			"thelancet.com":         model.SourcePeerReviewed,
			"pubmed.ncbi.nlm.nih.gov": model.SourcePeerReviewed,
			"springer.com":          model.SourcePeerReviewed,

			// Academic
			"arxiv.org":       model.SourceAcademic,
			"scholar.google.com": model.SourceAcademic,
			"jstor.org":       model.SourceAcademic,

			// Established news
			"reuters.com":     model.SourceEstablishedNews,
			"apnews.com":      model.SourceEstablishedNews,
			"bbc.com":         model.SourceEstablishedNews,
			"bbc.co.uk":       model.SourceEstablishedNews,
			"nytimes.com":     model.SourceEstablishedNews,
			"wsj.com":         model.SourceEstablishedNews,
			"theguardian.com": model.SourceEstablishedNews,
			"washingtonpost.com": model.SourceEstablishedNews,

			// Social media
			"twitter.com":   model.SourceSocialMedia,
			"x.com":         model.SourceSocialMedia,
			"facebook.com":  model.SourceSocialMedia,
			"reddit.com":    model.SourceSocialMedia,
			"tiktok.com":    model.SourceSocialMedia,
			"instagram.com": model.SourceSocialMedia,

			// Blog platforms
			"medium.com":    model.SourceBlog,
			"substack.com":  model.SourceBlog,
			"blogspot.com":  model.SourceBlog,
			"wordpress.com": model.SourceBlog,

			// Newswires
			"prnewswire.com":   model.SourcePressRelease,
			"businesswire.com": model.SourcePressRelease,
			"globenewswire.com": model.SourcePressRelease,
		},
	}
}

// Classify infers the source type of a URL. Unknown hosts degrade to
// general_news rather than erroring.
func (s *SourceTypeClassifier) Classify(rawURL string) model.SourceType {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.SourceGeneralNews
	}

	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if t, ok := s.domainMap[host]; ok {
		return t
	}
	for domain, t := range s.domainMap {
		if strings.HasSuffix(host, "."+domain) {
			return t
		}
	}

	// TLD heuristics
	if strings.HasSuffix(host, ".gov") || strings.Contains(host, ".gov.") {
		return model.SourceGovernment
	}
	if strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.SourceAcademic
	}

	// Path heuristics
	lowerPath := strings.ToLower(parsed.Path)
	if strings.Contains(lowerPath, "/blog/") {
		return model.SourceBlog
	}
	if strings.Contains(lowerPath, "/press-release") || strings.Contains(lowerPath, "/newsroom/") {
		return model.SourcePressRelease
	}

	return model.SourceGeneralNews
}
