// Package extract isolates the main article text of a news page.
package extract

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/mohammad-safakhou/factlens/models"
)

// Page chrome removed before any text is read.
const chromeSelector = "script, style, iframe, .ad, .advertisement, .social-share, .related-posts, #sidebar, .sidebar, .comments, .footer, nav, header"

// contentSelectors are tried in order; the first whose text is long enough wins.
var contentSelectors = []string{
	"article",
	`[role="article"]`,
	".article-content",
	".post-content",
	".entry-content",
	".story-content",
	".article-body",
	"main p",
	".main-content",
}

const (
	minSelectorLength  = 200
	minParagraphLength = 50
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{FEFF}\x{0B}]+`)
	bracketed     = regexp.MustCompile(`\[.*?\]`)
	advertisement = regexp.MustCompile(`(?i)advertisement`)
)

type Extractor struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(log.Writer(), "[EXTRACT] ", log.LstdFlags)
	}
	return &Extractor{logger: logger}
}

// Extract returns the cleaned article text of html along with title, byline
// and site name when they can be determined.
func (e *Extractor) Extract(html, sourceURL string) (models.ArticleContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.ArticleContent{}, &models.FetchError{URL: sourceURL, Err: fmt.Errorf("parse html: %w", err)}
	}

	content := models.ArticleContent{
		URL:         sourceURL,
		ExtractedAt: time.Now().UTC(),
	}
	e.fillMetadata(&content, html, sourceURL)
	if content.Title == "" {
		content.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(chromeSelector).Remove()
	content.Text = Clean(mainText(doc))
	return content, nil
}

func mainText(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		text := strings.TrimSpace(doc.Find(sel).Text())
		if models.TextLength(text) > minSelectorLength {
			return text
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if models.TextLength(text) > minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, " ")
}

// Clean collapses whitespace, drops bracketed fragments such as "[1]" or
// "[Photo]" and removes the word "advertisement" in any case.
func Clean(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	// a removal can join its neighbours into a new match
	for {
		next := advertisement.ReplaceAllString(bracketed.ReplaceAllString(text, ""), "")
		if next == text {
			break
		}
		text = next
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// fillMetadata runs readability over the untouched page. Failure only
// costs the metadata.
func (e *Extractor) fillMetadata(content *models.ArticleContent, html, sourceURL string) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		u = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		e.logger.Printf("readability metadata for %s: %v", sourceURL, err)
		return
	}
	content.Title = strings.TrimSpace(article.Title)
	content.Byline = strings.TrimSpace(article.Byline)
	content.SiteName = strings.TrimSpace(article.SiteName)
}
