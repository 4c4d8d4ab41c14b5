package feeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mohammad-safakhou/factlens/internal/helpers"
	"github.com/mohammad-safakhou/factlens/models"
)

const (
	containerSelector   = "article, .article, .story, .news-item, .post, .item, .entry"
	titleSelector       = "h1, h2, h3, .title, .headline"
	descriptionSelector = "p, .description, .summary, .excerpt"
	categorySelector    = ".category, .tag, .section"
	authorSelector      = ".author, .byline"
)

// Scrape reads headline blocks from the source homepage. Blocks without a
// title or link are skipped. Scraped items carry the collection time.
func (c *Collector) Scrape(ctx context.Context, source models.NewsSource) ([]models.NewsArticle, error) {
	if strings.TrimSpace(source.URL) == "" {
		return nil, nil
	}
	page, err := c.get(ctx, "page", source.URL, c.opts.PageTimeout)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, &models.FetchError{URL: source.URL, Err: fmt.Errorf("parse html: %w", err)}
	}

	base := parseBase(source.URL)
	collected := c.now().UTC()
	articles := []models.NewsArticle{}
	doc.Find(containerSelector).Each(func(_ int, block *goquery.Selection) {
		title := firstText(block, titleSelector)
		href, _ := block.Find("a").First().Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return
		}
		link := resolveLink(source.URL, href)
		if link == "" {
			return
		}

		articles = append(articles, models.NewsArticle{
			ID:          helpers.ArticleID(link),
			Title:       title,
			Description: orDefault(firstText(block, descriptionSelector), models.DefaultDescription),
			URL:         link,
			Source:      source.Name,
			PublishedAt: collected,
			Images:      collectImages(block.Find("img"), base),
			Category:    orDefault(firstText(block, categorySelector), models.DefaultCategory),
			Author:      orDefault(firstText(block, authorSelector), models.DefaultAuthor),
		})
	})
	return articles, nil
}

func firstText(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// resolveLink makes href absolute against the homepage it was found on.
func resolveLink(pageURL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	base := parseBase(pageURL)
	if base == nil {
		return ""
	}
	ref := parseBase(href)
	if ref == nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
