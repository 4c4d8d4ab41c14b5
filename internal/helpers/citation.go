package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/mohammad-safakhou/factlens/models"
)

// Citation is a compact reference to a collected article.
type Citation struct {
	Source      string
	Title       string
	URL         string
	Snippet     string
	Published   time.Time
	Credibility int
}

type citationConfig struct {
	maxSnippet int
}

// CitationOption configures citation formatting.
type CitationOption func(*citationConfig)

// WithMaxSnippetLength truncates snippets to n runes (default 180).
func WithMaxSnippetLength(n int) CitationOption {
	return func(cfg *citationConfig) {
		if n > 0 {
			cfg.maxSnippet = n
		}
	}
}

// CitationFromArticle builds a citation from an aggregated article.
func CitationFromArticle(a models.NewsArticle) Citation {
	snippet := a.Description
	if snippet == models.DefaultDescription {
		snippet = ""
	}
	return Citation{
		Source:      a.Source,
		Title:       a.Title,
		URL:         a.URL,
		Snippet:     snippet,
		Published:   a.PublishedAt,
		Credibility: a.Credibility,
	}
}

// FormatCitation renders one line:
// [Source] Title - "Snippet" (domain, YYYY-MM-DD, credibility N) <URL>
func FormatCitation(c Citation, opts ...CitationOption) string {
	cfg := citationConfig{maxSnippet: 180}
	for _, opt := range opts {
		opt(&cfg)
	}

	source := strings.TrimSpace(c.Source)
	if source == "" {
		source = "source"
	}
	parts := []string{"[" + source + "]"}

	if title := strings.TrimSpace(c.Title); title != "" {
		parts = append(parts, title)
	}
	if snippet := formatSnippet(c.Snippet, cfg.maxSnippet); snippet != "" {
		parts = append(parts, "- "+snippet)
	}

	var meta []string
	if domain := Host(c.URL); domain != "" && domain != strings.ToLower(strings.TrimSpace(c.URL)) {
		meta = append(meta, domain)
	}
	if !c.Published.IsZero() {
		meta = append(meta, c.Published.UTC().Format("2006-01-02"))
	}
	if c.Credibility > 0 {
		meta = append(meta, fmt.Sprintf("credibility %d", c.Credibility))
	}
	if len(meta) > 0 {
		parts = append(parts, "("+strings.Join(meta, ", ")+")")
	}

	if link := strings.TrimSpace(c.URL); link != "" {
		parts = append(parts, "<"+link+">")
	}
	return strings.Join(parts, " ")
}

// FormatCitations renders a collection of citations.
func FormatCitations(citations []Citation, opts ...CitationOption) []string {
	if len(citations) == 0 {
		return nil
	}
	out := make([]string, 0, len(citations))
	for _, c := range citations {
		out = append(out, FormatCitation(c, opts...))
	}
	return out
}

func formatSnippet(snippet string, limit int) string {
	snippet = strings.Join(strings.Fields(snippet), " ")
	if snippet == "" {
		return ""
	}
	if limit > 0 && models.TextLength(snippet) > limit {
		snippet = models.Truncate(snippet, limit) + "…"
	}
	return `"` + strings.Trim(snippet, `"`) + `"`
}
