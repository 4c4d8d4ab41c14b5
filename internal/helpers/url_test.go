package helpers

import (
	"net/url"
	"strings"
	"testing"
)

func TestCanonicalURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "defaults https and cleans path",
			in:   "Example.com/news/../world/latest",
			want: "https://example.com/world/latest",
		},
		{
			name: "removes default port and tracking params",
			in:   "http://news.example.com:80/story?id=123&utm_source=rss#comments",
			want: "http://news.example.com/story?id=123",
		},
		{
			name: "keeps custom port",
			in:   "https://example.com:8443/a",
			want: "https://example.com:8443/a",
		},
		{
			name: "sorts query parameters and preserves trailing slash",
			in:   "https://example.com/path/?b=2&a=1&fbclid=xyz",
			want: "https://example.com/path/?a=1&b=2",
		},
		{
			name: "handles protocol-relative url",
			in:   "//feeds.example.com/world/42?utm_medium=email",
			want: "https://feeds.example.com/world/42",
		},
		{
			name: "collapses repeated slashes",
			in:   "https://example.com//a//b///c",
			want: "https://example.com/a/b/c",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CanonicalURL(tt.in)
			if err != nil {
				t.Fatalf("CanonicalURL() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("CanonicalURL() got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalURLErrors(t *testing.T) {
	t.Parallel()
	if _, err := CanonicalURL(""); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := CanonicalURL("https://"); err == nil {
		t.Fatalf("expected error for url without host")
	}
}

func TestArticleIDStable(t *testing.T) {
	t.Parallel()
	a := ArticleID("https://Example.com/Story?utm_campaign=foo&a=1")
	b := ArticleID(strings.ToUpper("https://") + "example.com/Story?a=1")
	if len(a) != 16 {
		t.Fatalf("expected 16 char id, got %q", a)
	}
	if a != b {
		t.Fatalf("expected same id for equivalent links, got %s vs %s", a, b)
	}
	if ArticleID("") == ArticleID("") {
		t.Fatalf("expected random ids for empty links")
	}
}

func TestParseHTTPURL(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"https://bbc.com/news", " http://example.com "} {
		if _, err := ParseHTTPURL(ok); err != nil {
			t.Fatalf("ParseHTTPURL(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "ftp://example.com", "not a url", "/relative/path", "mailto:a@b.c"} {
		if _, err := ParseHTTPURL(bad); err == nil {
			t.Fatalf("ParseHTTPURL(%q) expected error", bad)
		}
	}
}

func TestHost(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"https://www.BBC.com/news":        "bbc.com",
		"https://reuters.com.:443/x":      "reuters.com",
		"http://news.example.org:8080/a":  "news.example.org",
		"not a url":                       "not a url",
		"https://evil.com/reuters.com":    "evil.com",
	}
	for in, want := range tests {
		if got := Host(in); got != want {
			t.Fatalf("Host(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveImageURL(t *testing.T) {
	t.Parallel()
	base, _ := url.Parse("https://news.example.com/world/story.html")
	tests := []struct {
		src  string
		want string
	}{
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"//cdn.example.com/b.jpg", "https://cdn.example.com/b.jpg"},
		{"/img/c.jpg", "https://news.example.com/img/c.jpg"},
		{"d.jpg", "https://news.example.com/world/d.jpg"},
		{"data:image/png;base64,AAAA", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := ResolveImageURL(base, tt.src); got != tt.want {
			t.Fatalf("ResolveImageURL(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
	if got := ResolveImageURL(nil, "/x.jpg"); got != "" {
		t.Fatalf("expected empty result without base, got %q", got)
	}
}
