package feeds

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mohammad-safakhou/factlens/internal/helpers"
	"github.com/mohammad-safakhou/factlens/models"
)

const (
	articleImageSelector = "article img, .article-content img, .story-content img, .main-content img"

	pageImageAlt     = "Article image"
	featuredImageAlt = "Featured image"
)

// PageImages fetches an article page and lists its body images followed by
// the og:image. Failures are logged and yield no images.
func (c *Collector) PageImages(ctx context.Context, link string) []models.Image {
	page, err := c.get(ctx, "image", link, c.opts.FeedTimeout)
	if err != nil {
		c.logger.Printf("images from %s: %v", link, err)
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		c.logger.Printf("images from %s: parse: %v", link, err)
		return nil
	}

	base := parseBase(link)
	images := collectImages(doc.Find(articleImageSelector), base)
	if og, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if u := helpers.ResolveImageURL(base, og); u != "" {
			images = append(images, models.Image{URL: u, Alt: featuredImageAlt})
		}
	}
	return images
}

// collectImages reads src (or data-src) from each img, skipping icons and logos.
func collectImages(sel *goquery.Selection, base *url.URL) []models.Image {
	images := []models.Image{}
	sel.Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(img.AttrOr("data-src", ""))
		}
		if src == "" || strings.Contains(src, "icon") || strings.Contains(src, "logo") {
			return
		}
		u := helpers.ResolveImageURL(base, src)
		if u == "" {
			return
		}
		alt := strings.TrimSpace(img.AttrOr("alt", ""))
		if alt == "" {
			alt = pageImageAlt
		}
		images = append(images, models.Image{URL: u, Alt: alt})
	})
	return images
}

func parseBase(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}
