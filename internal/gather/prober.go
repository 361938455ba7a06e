package gather

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avetrov/veridex/internal/cache"
	"github.com/avetrov/veridex/internal/model"
	"github.com/avetrov/veridex/internal/util"
	"github.com/avetrov/veridex/internal/worker"
)

const probeMaxRetries = 3

// probeSleepFunc is the sleep function used between retries (injectable for tests)
var probeSleepFunc = time.Sleep

// Prober collects per-source metadata for evidence URLs: accessibility
// (feeds link quality) and Last-Modified (feeds freshness decay). The core
// scoring pipeline works without it; probing only enriches classification.
type Prober struct {
	httpClient *http.Client
	userAgent  string
	maxWorkers int
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	store      cache.Cache // nil disables caching
}

// probeResult is the cached outcome of one URL probe
type probeResult struct {
	StatusCode   int        `json:"status_code"`
	Accessible   bool       `json:"accessible"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	Disallowed   bool       `json:"disallowed,omitempty"` // robots.txt refused
}

// NewProber creates a prober from HTTP and concurrency configuration
func NewProber(httpCfg model.HTTPConfig, conc model.ConcurrencyConfig, store cache.Cache) *Prober {
	maxWorkers := conc.ProbeWorkers
	if maxWorkers <= 0 {
		maxWorkers = 20
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
	}
	if httpCfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Prober{
		httpClient: &http.Client{
			Timeout:   httpCfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  httpCfg.UserAgent,
		maxWorkers: maxWorkers,
		robots:     util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:    worker.NewLimiter(conc.RequestsPerSecond, conc.Burst),
		store:      store,
	}
}

// WithCache attaches a probe-result cache
func (p *Prober) WithCache(store cache.Cache) *Prober {
	p.store = store
	return p
}

// Probe probes all URLs concurrently and returns metadata keyed by URL.
// Failures yield degraded metadata (zero link quality), never errors:
// evidence gathering is fail-open by design.
func (p *Prober) Probe(ctx context.Context, urls []string) map[string]*model.SourceMeta {
	results := make([]*model.SourceMeta, len(urls))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, p.maxWorkers)

	for i, u := range urls {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = degradedMeta()
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = p.probeWithRetry(ctx, rawURL)
		}(i, u)
	}
	wg.Wait()

	meta := make(map[string]*model.SourceMeta, len(urls))
	for i, u := range urls {
		meta[u] = results[i]
	}
	return meta
}

// probeWithRetry retries transient failures with exponential backoff
func (p *Prober) probeWithRetry(ctx context.Context, rawURL string) *model.SourceMeta {
	if cached, ok := p.cachedResult(rawURL); ok {
		return metaFromResult(cached)
	}

	var result probeResult
	for attempt := 0; attempt < probeMaxRetries; attempt++ {
		var retryable bool
		result, retryable = p.probeOnce(ctx, rawURL)
		if !retryable {
			break
		}
		if attempt < probeMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			probeSleepFunc(backoff)
		}
	}

	p.cacheResult(rawURL, result)
	return metaFromResult(result)
}

// probeOnce performs a single HEAD probe. The second return value reports
// whether the failure is worth retrying.
func (p *Prober) probeOnce(ctx context.Context, rawURL string) (probeResult, bool) {
	allowed, crawlDelay, _ := p.robots.CanFetch(ctx, rawURL)
	if !allowed {
		return probeResult{Disallowed: true}, false
	}

	if err := p.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return probeResult{}, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return probeResult{}, false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return probeResult{}, isRetryableNetworkError(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	result := probeResult{StatusCode: resp.StatusCode}
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Accessible = true
	}

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := time.Parse(time.RFC1123, lastModified); err == nil {
			result.LastModified = &t
		}
	}

	retryable := resp.StatusCode == 429 || (resp.StatusCode >= 500 && resp.StatusCode < 600)
	return result, retryable
}

// metaFromResult converts a probe result into classifier metadata
func metaFromResult(result probeResult) *model.SourceMeta {
	linkQuality := 0.0
	if result.Accessible {
		linkQuality = 1.0
	}
	return &model.SourceMeta{
		LinkQuality: &linkQuality,
		PublishedAt: result.LastModified,
	}
}

// degradedMeta is the metadata for a URL that could not be probed at all
func degradedMeta() *model.SourceMeta {
	zero := 0.0
	return &model.SourceMeta{LinkQuality: &zero}
}

func (p *Prober) cachedResult(rawURL string) (probeResult, bool) {
	if p.store == nil {
		return probeResult{}, false
	}
	data, ok := p.store.Get(cache.Key(rawURL))
	if !ok {
		return probeResult{}, false
	}
	var result probeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return probeResult{}, false
	}
	return result, true
}

func (p *Prober) cacheResult(rawURL string, result probeResult) {
	if p.store == nil {
		return
	}
	if data, err := json.Marshal(result); err == nil {
		_ = p.store.Set(cache.Key(rawURL), data, 0)
	}
}

// isRetryableNetworkError checks error strings for transient network failures
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
