// Package credibility scores article text with deterministic heuristics.
package credibility

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mohammad-safakhou/factlens/models"
)

// PhraseTable maps a lowercase phrase to the points it earns when present.
// Presence counts once regardless of how often the phrase occurs.
type PhraseTable map[string]int

// DefaultCitationPhrases signal attribution to other sources.
var DefaultCitationPhrases = PhraseTable{
	"according to":       5,
	"cited by":           5,
	"reported by":        5,
	"study shows":        5,
	"research indicates": 5,
	"experts say":        5,
	"sources confirm":    5,
}

// DefaultFactualPhrases signal data-backed claims.
var DefaultFactualPhrases = PhraseTable{
	"data shows":          5,
	"statistics indicate": 5,
	"survey results":      5,
	"evidence suggests":   5,
	"analysis reveals":    5,
}

const (
	MaxCitations = 25
	MaxFactual   = 25
	MaxTotal     = 100

	longContentThreshold = 1500
)

var (
	yearPattern       = regexp.MustCompile(`\d{4}`)
	properNamePattern = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)
	percentPattern    = regexp.MustCompile(`\d+%`)
)

type Option func(*Scorer)

// WithCitationPhrases replaces the citation table. An empty table is ignored.
func WithCitationPhrases(t PhraseTable) Option {
	return func(s *Scorer) {
		if len(t) > 0 {
			s.citations = t
		}
	}
}

// WithFactualPhrases replaces the factual-indicator table. An empty table is ignored.
func WithFactualPhrases(t PhraseTable) Option {
	return func(s *Scorer) {
		if len(t) > 0 {
			s.factual = t
		}
	}
}

// Scorer is safe for concurrent use; it holds only read-only tables.
type Scorer struct {
	citations PhraseTable
	factual   PhraseTable
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{citations: DefaultCitationPhrases, factual: DefaultFactualPhrases}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the four sub-scores for content fetched from rawURL.
func (s *Scorer) Score(rawURL, content string) models.CredibilityScore {
	lower := strings.ToLower(content)
	b := models.Breakdown{
		Source:    SourceScore(rawURL),
		Content:   ContentScore(content),
		Citations: min(MaxCitations, s.citations.points(lower)),
		Factual:   min(MaxFactual, s.factual.points(lower)),
	}
	return models.CredibilityScore{Total: min(MaxTotal, b.Sum()), Breakdown: b}
}

func (t PhraseTable) points(lowerContent string) int {
	total := 0
	for phrase, weight := range t {
		if strings.Contains(lowerContent, phrase) {
			total += weight
		}
	}
	return total
}

// SourceScore rates the URL: 5 for https, then 20 for .gov/.edu hosts or 10
// for .org/.com hosts. When the URL does not parse, the raw string is tested.
func SourceScore(rawURL string) int {
	secure := false
	target := rawURL
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil && u.Hostname() != "" {
		secure = u.Scheme == "https"
		target = strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	} else {
		secure = strings.Contains(rawURL, "https")
	}

	score := 0
	if secure {
		score += 5
	}
	switch {
	case strings.HasSuffix(target, ".gov"), strings.HasSuffix(target, ".edu"):
		score += 20
	case strings.HasSuffix(target, ".org"), strings.HasSuffix(target, ".com"):
		score += 10
	}
	return score
}

// ContentScore rewards length, years, proper names and percentages.
func ContentScore(content string) int {
	score := 0
	if models.TextLength(content) > longContentThreshold {
		score += 10
	}
	if yearPattern.MatchString(content) {
		score += 5
	}
	if properNamePattern.MatchString(content) {
		score += 5
	}
	if percentPattern.MatchString(content) {
		score += 5
	}
	return score
}
