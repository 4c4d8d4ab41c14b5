package config

import "testing"

func TestCrawlPolicyNormalize(t *testing.T) {
	cfg := CrawlPolicyConfig{
		Allow:    []string{"Example.com", "https://news.example.com"},
		Disallow: []string{"www.Example.com", "bad.com"},
		Paywall:  []string{"Paywall.com", "PAYWALL.COM"},
	}

	norm := cfg.Normalize()
	if len(norm.Allow) != 2 || norm.Allow[0] != "example.com" {
		t.Fatalf("unexpected allow list: %#v", norm.Allow)
	}
	if len(norm.Disallow) != 2 || norm.Disallow[0] != "bad.com" {
		t.Fatalf("unexpected disallow list: %#v", norm.Disallow)
	}
	if len(norm.Paywall) != 1 || norm.Paywall[0] != "paywall.com" {
		t.Fatalf("unexpected paywall list: %#v", norm.Paywall)
	}
}

func TestCrawlPolicyValidate(t *testing.T) {
	valid := CrawlPolicyConfig{
		Allow:    []string{"example.com"},
		Disallow: []string{"blocked.com"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	conflict := CrawlPolicyConfig{
		Allow:    []string{"example.com"},
		Disallow: []string{"example.com"},
	}
	if err := conflict.Validate(); err == nil {
		t.Fatalf("expected conflict validation error")
	}

	paywallConflict := CrawlPolicyConfig{
		Disallow: []string{"paywall.com"},
		Paywall:  []string{"paywall.com"},
	}
	if err := paywallConflict.Validate(); err == nil {
		t.Fatalf("expected paywall/disallow conflict error")
	}
}

func TestCrawlPolicyPermits(t *testing.T) {
	open := CrawlPolicyConfig{Disallow: []string{"blocked.com"}}.Normalize()
	closed := CrawlPolicyConfig{Allow: []string{"bbc.com"}}.Normalize()

	tests := []struct {
		name   string
		policy CrawlPolicyConfig
		host   string
		want   bool
	}{
		{"open policy allows unknown", open, "reuters.com", true},
		{"disallow exact", open, "blocked.com", false},
		{"disallow subdomain", open, "news.blocked.com", false},
		{"allow list subdomain", closed, "www.bbc.com", true},
		{"allow list rejects others", closed, "cnn.com", false},
		{"suffix is not a subdomain", open, "notblocked.com", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.policy.Permits(tt.host); got != tt.want {
				t.Fatalf("Permits(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}

	paywall := CrawlPolicyConfig{Paywall: []string{"wsj.com"}}.Normalize()
	if !paywall.IsPaywalled("www.wsj.com") {
		t.Fatalf("expected wsj.com to be paywalled")
	}
}
