package models

import (
	"time"
	"unicode/utf8"
)

const (
	// PreviewLimit bounds ArticleContent.Preview.
	PreviewLimit = 2000
	// ExcerptLimit bounds ArticleContent.Excerpt, the text handed back for follow-up questions.
	ExcerptLimit = 5000
)

// Placeholders used when a feed item or scraped block lacks a field.
const (
	DefaultDescription = "Click to read more..."
	DefaultCategory    = "General"
	DefaultAuthor      = "Unknown"
)

// NewsSource is one entry of the aggregation source table.
type NewsSource struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
	RSS  string `json:"rss" yaml:"rss"`
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// NewsArticle is an aggregated headline produced by a feed or a homepage scrape.
type NewsArticle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Images      []Image   `json:"images"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	Credibility int       `json:"credibility"`
}

// ArticleContent is the cleaned text extracted from a fetched page.
// Text is kept whole for scoring; Preview and Excerpt are the transport views.
type ArticleContent struct {
	URL         string    `json:"url"`
	Text        string    `json:"text"`
	Title       string    `json:"title,omitempty"`
	Byline      string    `json:"byline,omitempty"`
	SiteName    string    `json:"siteName,omitempty"`
	ExtractedAt time.Time `json:"extractedAt"`
}

func (a ArticleContent) Preview() string { return Truncate(a.Text, PreviewLimit) }

func (a ArticleContent) Excerpt() string { return Truncate(a.Text, ExcerptLimit) }

// Truncate returns at most n characters of s without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// TextLength reports the character length used by the length heuristics.
func TextLength(s string) int { return utf8.RuneCountInString(s) }

// Breakdown holds the four credibility sub-scores.
type Breakdown struct {
	Source    int `json:"source"`
	Content   int `json:"content"`
	Citations int `json:"citations"`
	Factual   int `json:"factual"`
}

func (b Breakdown) Sum() int { return b.Source + b.Content + b.Citations + b.Factual }

// CredibilityScore is the breakdown plus its capped total.
type CredibilityScore struct {
	Total     int       `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

type QuestionType string

const (
	QuestionWhat    QuestionType = "what"
	QuestionWho     QuestionType = "who"
	QuestionWhen    QuestionType = "when"
	QuestionWhere   QuestionType = "where"
	QuestionWhy     QuestionType = "why"
	QuestionHow     QuestionType = "how"
	QuestionGeneral QuestionType = "general"
)

// QuestionAnswer is the result of answering one question against article text.
type QuestionAnswer struct {
	Question         string       `json:"question"`
	Type             QuestionType `json:"questionType"`
	Answer           string       `json:"answer"`
	Confidence       int          `json:"confidence"`
	RelevantExcerpts []string     `json:"relevantExcerpts"`
	Keywords         []string     `json:"keywordsFound"`
	AnalyzedAt       time.Time    `json:"analysisDate"`
}
