package credibility

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mohammad-safakhou/factlens/models"
)

const workedExample = "According to the Guardian, data shows 50% of Example County voted in 2023 study."

func TestScoreWorkedExample(t *testing.T) {
	t.Parallel()
	got := NewScorer().Score("https://example.gov", workedExample)
	want := models.CredibilityScore{
		Total:     50,
		Breakdown: models.Breakdown{Source: 25, Content: 15, Citations: 5, Factual: 5},
	}
	if got != want {
		t.Fatalf("Score() = %+v, want %+v", got, want)
	}
	insights := Insights(got)
	wantInsights := []string{InsightHighSource, InsightLimited}
	if !reflect.DeepEqual(insights, wantInsights) {
		t.Fatalf("Insights() = %#v, want %#v", insights, wantInsights)
	}
}

func TestScoreMaximum(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	for phrase := range DefaultCitationPhrases {
		b.WriteString(phrase + ". ")
	}
	for phrase := range DefaultFactualPhrases {
		b.WriteString(strings.ToUpper(phrase) + ". ")
	}
	b.WriteString("Jane Smith said turnout rose 12% in 2024. ")
	b.WriteString(strings.Repeat("filler text ", 150))

	score := NewScorer().Score("https://data.census.gov/table", b.String())
	if score.Breakdown.Citations != MaxCitations {
		t.Fatalf("citations should cap at %d, got %d", MaxCitations, score.Breakdown.Citations)
	}
	if score.Breakdown.Factual != MaxFactual {
		t.Fatalf("factual should be %d, got %d", MaxFactual, score.Breakdown.Factual)
	}
	if score.Breakdown.Content != 25 || score.Breakdown.Source != 25 {
		t.Fatalf("unexpected breakdown %+v", score.Breakdown)
	}
	if score.Total != 100 {
		t.Fatalf("expected total 100, got %d", score.Total)
	}
	want := []string{InsightHighSource, InsightDetailed, InsightManyCitations, InsightStrongFactual, InsightHighOverall}
	if got := Insights(score); !reflect.DeepEqual(got, want) {
		t.Fatalf("Insights() = %#v, want %#v", got, want)
	}
}

func TestScorePhrasePresenceCountsOnce(t *testing.T) {
	t.Parallel()
	content := strings.Repeat("according to officials ", 10)
	score := NewScorer().Score("http://example.net", content)
	if score.Breakdown.Citations != 5 {
		t.Fatalf("repeated phrase should score once, got %d", score.Breakdown.Citations)
	}
}

func TestScoreCustomTables(t *testing.T) {
	t.Parallel()
	s := NewScorer(
		WithCitationPhrases(PhraseTable{"per the filing": 30}),
		WithFactualPhrases(nil),
	)
	score := s.Score("ftp://files.example.org", "Per the filing, data shows growth.")
	if score.Breakdown.Citations != MaxCitations {
		t.Fatalf("custom citation weight should be capped, got %d", score.Breakdown.Citations)
	}
	if score.Breakdown.Factual != 5 {
		t.Fatalf("empty factual table should keep defaults, got %d", score.Breakdown.Factual)
	}
	if score.Breakdown.Source != 10 {
		t.Fatalf("expected .org without https to score 10, got %d", score.Breakdown.Source)
	}
}

func TestScoreEmptyContent(t *testing.T) {
	t.Parallel()
	score := NewScorer().Score("https://example.com", "")
	if score.Total != 15 || score.Breakdown.Content != 0 {
		t.Fatalf("unexpected score for empty content: %+v", score)
	}
	if got := Insights(score); len(got) != 2 || got[len(got)-1] != InsightLimited {
		t.Fatalf("unexpected insights %#v", got)
	}
}

func TestSourceScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		url  string
		want int
	}{
		{"https://example.gov", 25},
		{"https://www.stanford.edu/news", 25},
		{"http://example.gov", 20},
		{"https://example.com", 15},
		{"http://wikipedia.org/wiki/Go", 10},
		{"https://example.co.uk", 5},
		{"https://example.gov.:443/path", 25},
		{"https://evil.example/x.gov", 5},
		{"http://example.net", 0},
		{"not a url https .com", 15},
		{"", 0},
	}
	for _, tt := range tests {
		if got := SourceScore(tt.url); got != tt.want {
			t.Fatalf("SourceScore(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestContentScore(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"nothing", "plain lowercase words", 0},
		{"year only", "back in 1999", 5},
		{"proper name only", "spoke to New York", 5},
		{"percentage only", "rose 7% overall", 5},
		{"long text", strings.Repeat("a", 1501), 10},
		{"exactly threshold", strings.Repeat("a", 1500), 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ContentScore(tt.content); got != tt.want {
				t.Fatalf("ContentScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()
	s := NewScorer()
	first := s.Score("https://example.gov", workedExample)
	for i := 0; i < 20; i++ {
		if got := s.Score("https://example.gov", workedExample); got != first {
			t.Fatalf("score changed between runs: %+v vs %+v", got, first)
		}
	}
}
