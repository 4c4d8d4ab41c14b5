package feeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"golang.org/x/sync/errgroup"

	"github.com/mohammad-safakhou/factlens/internal/helpers"
	"github.com/mohammad-safakhou/factlens/models"
)

const rssImageAlt = "RSS image"

// FromRSS downloads and parses the source feed. Each item may be enriched
// with images found on its article page.
func (c *Collector) FromRSS(ctx context.Context, source models.NewsSource) ([]models.NewsArticle, error) {
	if strings.TrimSpace(source.RSS) == "" {
		return nil, nil
	}
	page, err := c.get(ctx, "feed", source.RSS, c.opts.FeedTimeout)
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().ParseString(page.Body)
	if err != nil {
		return nil, &models.FetchError{URL: source.RSS, Err: fmt.Errorf("parse feed: %w", err)}
	}

	articles := make([]models.NewsArticle, len(feed.Items))
	for i, item := range feed.Items {
		articles[i] = c.itemToArticle(item, source)
	}

	if c.opts.ExtractImages {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(imageLookupConcurrency)
		for i := range articles {
			i := i
			if articles[i].URL == "" {
				continue
			}
			g.Go(func() error {
				articles[i].Images = append(articles[i].Images, c.PageImages(gctx, articles[i].URL)...)
				return nil
			})
		}
		_ = g.Wait()
	}
	return articles, nil
}

func (c *Collector) itemToArticle(item *gofeed.Item, source models.NewsSource) models.NewsArticle {
	description := helpers.PlainText(item.Description)
	if description == "" {
		description = helpers.PlainText(item.Content)
	}
	if description == "" {
		description = models.DefaultDescription
	}

	published := c.now().UTC()
	switch {
	case item.PublishedParsed != nil:
		published = item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		published = item.UpdatedParsed.UTC()
	}

	category := models.DefaultCategory
	if len(item.Categories) > 0 && strings.TrimSpace(item.Categories[0]) != "" {
		category = strings.TrimSpace(item.Categories[0])
	}

	link := strings.TrimSpace(item.Link)
	images := []models.Image{}
	if img := feedImage(item); img != "" {
		images = append(images, models.Image{URL: img, Alt: rssImageAlt})
	}

	return models.NewsArticle{
		ID:          helpers.ArticleID(link),
		Title:       strings.TrimSpace(item.Title),
		Description: description,
		URL:         link,
		Source:      source.Name,
		PublishedAt: published,
		Images:      images,
		Category:    category,
		Author:      itemAuthor(item),
	}
}

// feedImage picks the first image carried by the item itself: media
// content, media thumbnail, an enclosure, then the parser's own image.
func feedImage(item *gofeed.Item) string {
	if u := mediaURL(item.Extensions, "content"); u != "" {
		return u
	}
	if u := mediaURL(item.Extensions, "thumbnail"); u != "" {
		return u
	}
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && (enc.Type == "" || strings.HasPrefix(enc.Type, "image/")) {
			return enc.URL
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	return ""
}

func mediaURL(extensions ext.Extensions, name string) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}
	for _, e := range media[name] {
		if u := strings.TrimSpace(e.Attrs["url"]); u != "" {
			return u
		}
	}
	// media:group wraps content elements in some feeds
	for _, group := range media["group"] {
		for _, e := range group.Children[name] {
			if u := strings.TrimSpace(e.Attrs["url"]); u != "" {
				return u
			}
		}
	}
	return ""
}

func itemAuthor(item *gofeed.Item) string {
	for _, p := range item.Authors {
		if p != nil && strings.TrimSpace(p.Name) != "" {
			return strings.TrimSpace(p.Name)
		}
	}
	if item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			if strings.TrimSpace(creator) != "" {
				return strings.TrimSpace(creator)
			}
		}
	}
	return models.DefaultAuthor
}
