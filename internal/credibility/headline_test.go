package credibility

import (
	"strings"
	"testing"
)

func TestHeadlineScore(t *testing.T) {
	t.Parallel()
	five := []string{"election", "results", "council", "budget", "vote"}
	tests := []struct {
		name string
		in   Headline
		want int
	}{
		{"invalid url", Headline{URL: "::bad"}, 50},
		{"empty url", Headline{}, 50},
		{"base", Headline{URL: "https://example.net/a"}, 70},
		{"reputable subdomain", Headline{URL: "https://www.bbc.com/news/1"}, 85},
		{"short content", Headline{URL: "https://example.net/a", Content: "tiny"}, 50},
		{"medium content", Headline{URL: "https://example.net/a", Content: strings.Repeat("x", 300)}, 60},
		{"long content", Headline{URL: "https://example.net/a", Content: strings.Repeat("x", 4001)}, 80},
		{"clickbait", Headline{URL: "https://example.net/a", Title: "You Won't Believe This"}, 55},
		{"clickbait counted once", Headline{URL: "https://example.net/a", Title: "Shocking and amazing!!"}, 55},
		{"keywords", Headline{URL: "https://example.net/a", Keywords: five}, 75},
		{"clamped high", Headline{URL: "https://reuters.com/x", Content: strings.Repeat("x", 5000), Keywords: five}, 100},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HeadlineScore(tt.in); got != tt.want {
				t.Fatalf("HeadlineScore() = %d, want %d", got, tt.want)
			}
		})
	}
}
