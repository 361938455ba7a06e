package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestRobotsChecker_DisallowAndCrawlDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\nCrawl-delay: 2\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("Veridex/0.1 (+https://example.com)", 5*time.Second)
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/public/page")
	if err != nil {
		t.Fatalf("CanFetch failed: %v", err)
	}
	if !allowed {
		t.Error("expected /public/page to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("expected 2s crawl delay, got %v", delay)
	}

	if checker.IsAllowed(ctx, server.URL+"/private/page") {
		t.Error("expected /private/page to be disallowed")
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("Veridex/0.1", 5*time.Second)
	if !checker.IsAllowed(context.Background(), server.URL+"/anything") {
		t.Error("missing robots.txt must allow fetching")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	if got := NormalizeUserAgent("Veridex/0.1 (+https://example.com)"); got != "Veridex" {
		t.Errorf("expected Veridex, got %s", got)
	}
	if got := NormalizeUserAgent(""); got != "" {
		t.Errorf("expected empty token, got %s", got)
	}
}

func TestNewProxyFunc_Bypass(t *testing.T) {
	proxyFunc := NewProxyFunc("http://proxy.internal:3128", "", "example.com, .trusted.org")

	req := &http.Request{URL: mustParse(t, "http://example.com/page")}
	if u, _ := proxyFunc(req); u != nil {
		t.Errorf("expected direct connection for bypassed host, got %v", u)
	}

	req = &http.Request{URL: mustParse(t, "http://sub.trusted.org/page")}
	if u, _ := proxyFunc(req); u != nil {
		t.Errorf("expected direct connection for bypassed subdomain, got %v", u)
	}

	req = &http.Request{URL: mustParse(t, "http://other.net/page")}
	u, err := proxyFunc(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "proxy.internal:3128" {
		t.Errorf("expected configured proxy, got %v", u)
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}
