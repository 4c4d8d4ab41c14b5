package analysis

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/mohammad-safakhou/factlens/internal/credibility"
	"github.com/mohammad-safakhou/factlens/internal/fetch"
	"github.com/mohammad-safakhou/factlens/internal/qa"
	"github.com/mohammad-safakhou/factlens/models"
)

const claim = "According to the Guardian, data shows 50% of Example County voted in 2023 study."

type pageFetcher struct {
	body string
	err  error
	hits int
}

func (f *pageFetcher) Fetch(_ context.Context, rawURL string) (fetch.Page, error) {
	f.hits++
	if f.err != nil {
		return fetch.Page{}, f.err
	}
	return fetch.Page{URL: rawURL, FinalURL: rawURL, Status: 200, Body: f.body}, nil
}

func newTestService(f fetch.Fetcher) *Service {
	return NewService(f, nil, nil, nil, log.New(io.Discard, "", 0))
}

func TestCheckURLScoresExtractedText(t *testing.T) {
	f := &pageFetcher{body: `<html><head><title>County vote</title></head><body>
		<nav>Home News Sport</nav><div><p>` + claim + `</p></div></body></html>`}
	s := newTestService(f)

	report, err := s.CheckURL(context.Background(), " https://example.gov/story ")
	if err != nil {
		t.Fatalf("CheckURL: %v", err)
	}
	if report.URL != "https://example.gov/story" || report.Title != "County vote" {
		t.Fatalf("unexpected url/title: %q %q", report.URL, report.Title)
	}
	if report.Content != claim || report.ContentPreview != claim {
		t.Fatalf("content = %q", report.Content)
	}
	want := models.Breakdown{Source: 25, Content: 15, Citations: 5, Factual: 5}
	if report.Breakdown != want || report.Score != 50 {
		t.Fatalf("score = %d %+v, want 50 %+v", report.Score, report.Breakdown, want)
	}
	if !reflect.DeepEqual(report.Insights, []string{credibility.InsightHighSource, credibility.InsightLimited}) {
		t.Fatalf("insights = %#v", report.Insights)
	}
	if report.AnalyzedAt.IsZero() {
		t.Fatalf("analysis date not set")
	}
}

func TestCheckURLTruncatesButScoresFullText(t *testing.T) {
	long := strings.Repeat("Officials said the bridge opened on schedule. ", 200)
	f := &pageFetcher{body: "<article>" + long + "</article>"}
	report, err := newTestService(f).CheckURL(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("CheckURL: %v", err)
	}
	if n := models.TextLength(report.ContentPreview); n != models.PreviewLimit {
		t.Fatalf("preview length = %d", n)
	}
	if n := models.TextLength(report.Content); n != models.ExcerptLimit {
		t.Fatalf("content length = %d", n)
	}
}

func TestCheckURLValidation(t *testing.T) {
	f := &pageFetcher{}
	s := newTestService(f)
	for _, raw := range []string{"", "   "} {
		_, err := s.CheckURL(context.Background(), raw)
		var v *models.ValidationError
		if !errors.As(err, &v) || v.Code != "URL is required" {
			t.Fatalf("CheckURL(%q) err = %v", raw, err)
		}
	}
	for _, raw := range []string{"not a url", "ftp://example.com/file"} {
		_, err := s.CheckURL(context.Background(), raw)
		if models.IsValidation(err) || !models.IsFetch(err) {
			t.Fatalf("CheckURL(%q) should fail as an analysis error, got %v", raw, err)
		}
	}
	if f.hits != 0 {
		t.Fatalf("invalid urls must not be fetched")
	}
}

func TestCheckURLFetchFailure(t *testing.T) {
	f := &pageFetcher{err: &models.FetchError{URL: "https://example.com", Status: 404}}
	_, err := newTestService(f).CheckURL(context.Background(), "https://example.com")
	if !models.IsFetch(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestAsk(t *testing.T) {
	s := newTestService(&pageFetcher{})
	content := "The council approved the new budget on Monday. Critics said the plan ignores transit funding entirely."
	answer, err := s.Ask("What did the council approve?", content)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Type != models.QuestionWhat {
		t.Fatalf("type = %q", answer.Type)
	}
	if !strings.Contains(answer.Answer, "council approved") {
		t.Fatalf("answer = %q", answer.Answer)
	}

	_, err = s.Ask("  ", content)
	if !models.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if answer.Answer == qa.NoAnswer {
		t.Fatalf("expected an answer")
	}
}
