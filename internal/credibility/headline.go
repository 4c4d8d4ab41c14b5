package credibility

import (
	"net/url"
	"strings"

	"github.com/mohammad-safakhou/factlens/models"
)

var reputableDomains = []string{
	"reuters.com", "apnews.com", "bbc.com", "theguardian.com",
	"nytimes.com", "wsj.com", "bloomberg.com", "aljazeera.com",
}

var clickbaitPhrases = []string{
	"you won't believe", "shocking", "mind-blowing",
	"amazing", "incredible", "unbelievable", "...", "!!",
}

const (
	headlineBase    = 70
	headlineUnknown = 50
)

// Headline is the little we know about an aggregated article.
type Headline struct {
	Title    string
	Content  string
	URL      string
	Keywords []string
}

// HeadlineScore is a rough 0-100 rating for listings, where no article body
// has been fetched. A URL without a host scores 50.
func HeadlineScore(h Headline) int {
	u, err := url.Parse(strings.TrimSpace(h.URL))
	if err != nil || u.Hostname() == "" {
		return headlineUnknown
	}
	host := strings.ToLower(u.Hostname())

	score := headlineBase
	for _, d := range reputableDomains {
		if strings.Contains(host, d) {
			score += 15
			break
		}
	}

	if h.Content != "" {
		n := models.TextLength(h.Content)
		if n > 2000 {
			score += 5
		}
		if n > 4000 {
			score += 5
		}
		if n < 500 {
			score -= 10
		}
		if n < 200 {
			score -= 10
		}
	}

	title := strings.ToLower(h.Title)
	for _, p := range clickbaitPhrases {
		if title != "" && strings.Contains(title, p) {
			score -= 15
			break
		}
	}

	if len(h.Keywords) >= 5 {
		score += 5
	}
	return max(0, min(100, score))
}
