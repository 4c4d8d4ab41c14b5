// Package analysis ties fetching, extraction, scoring and question answering
// together for single articles.
package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mohammad-safakhou/factlens/internal/credibility"
	"github.com/mohammad-safakhou/factlens/internal/extract"
	"github.com/mohammad-safakhou/factlens/internal/fetch"
	"github.com/mohammad-safakhou/factlens/internal/helpers"
	"github.com/mohammad-safakhou/factlens/internal/metrics"
	"github.com/mohammad-safakhou/factlens/internal/qa"
	"github.com/mohammad-safakhou/factlens/models"
)

// Report is the result of checking one URL.
type Report struct {
	URL            string           `json:"url"`
	Title          string           `json:"title,omitempty"`
	Byline         string           `json:"byline,omitempty"`
	SiteName       string           `json:"siteName,omitempty"`
	ContentPreview string           `json:"contentPreview"`
	Content        string           `json:"content"`
	Score          int              `json:"credibilityScore"`
	Breakdown      models.Breakdown `json:"credibilityBreakdown"`
	Insights       []string         `json:"insights"`
	AnalyzedAt     time.Time        `json:"analysisDate"`
}

type Service struct {
	fetcher   fetch.Fetcher
	extractor *extract.Extractor
	scorer    *credibility.Scorer
	engine    *qa.Engine
	logger    *log.Logger
}

func NewService(f fetch.Fetcher, x *extract.Extractor, s *credibility.Scorer, e *qa.Engine, logger *log.Logger) *Service {
	if x == nil {
		x = extract.New(nil)
	}
	if s == nil {
		s = credibility.NewScorer()
	}
	if e == nil {
		e = qa.NewEngine()
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[ANALYSIS] ", log.LstdFlags)
	}
	return &Service{fetcher: f, extractor: x, scorer: s, engine: e, logger: logger}
}

// CheckURL downloads rawURL, extracts its article text and scores it.
// The score is computed on the full text; the report carries truncated copies.
func (s *Service) CheckURL(ctx context.Context, rawURL string) (Report, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Report{}, &models.ValidationError{Code: "URL is required", Message: "Please provide a valid URL"}
	}
	// a present but unusable URL is a failed analysis, not a missing field
	if _, err := helpers.ParseHTTPURL(rawURL); err != nil {
		return Report{}, fmt.Errorf("check %s: %w", rawURL, &models.FetchError{URL: rawURL, Err: err})
	}

	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return Report{}, fmt.Errorf("check %s: %w", rawURL, err)
	}
	content, err := s.extractor.Extract(page.Body, rawURL)
	if err != nil {
		return Report{}, fmt.Errorf("check %s: %w", rawURL, err)
	}

	score := s.scorer.Score(rawURL, content.Text)
	metrics.CredibilityScores.Observe(float64(score.Total))
	s.logger.Printf("checked %s: credibility %d", rawURL, score.Total)

	return Report{
		URL:            rawURL,
		Title:          content.Title,
		Byline:         content.Byline,
		SiteName:       content.SiteName,
		ContentPreview: content.Preview(),
		Content:        content.Excerpt(),
		Score:          score.Total,
		Breakdown:      score.Breakdown,
		Insights:       credibility.Insights(score),
		AnalyzedAt:     time.Now().UTC(),
	}, nil
}

// Ask answers question from content alone; nothing is fetched.
func (s *Service) Ask(question, content string) (models.QuestionAnswer, error) {
	answer, err := s.engine.Answer(question, content)
	if err != nil {
		return models.QuestionAnswer{}, err
	}
	metrics.QuestionsAnswered.WithLabelValues(string(answer.Type)).Inc()
	return answer, nil
}
