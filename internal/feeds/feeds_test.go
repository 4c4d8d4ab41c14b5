package feeds

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mohammad-safakhou/factlens/internal/fetch"
	"github.com/mohammad-safakhou/factlens/models"
)

var fixedNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
  <title>Test Feed</title>
  <item>
    <title>First story</title>
    <link>{{BASE}}/story/1</link>
    <description>&lt;p&gt;Markup &amp;amp; text&lt;/p&gt;</description>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    <category>World</category>
    <dc:creator>Jane Doe</dc:creator>
    <media:content url="https://cdn.example.com/1.jpg" medium="image"/>
  </item>
  <item>
    <title>Second story</title>
    <link>{{BASE}}/story/2</link>
  </item>
</channel>
</rss>`

const storyPage = `<html><head><meta property="og:image" content="//cdn.example.com/og.jpg"></head>
<body><article>
<img src="/img/a.jpg" alt="Scene">
<img src="/img/site-logo.png">
<img data-src="https://cdn.example.com/lazy.jpg">
</article></body></html>`

const homePage = `<html><body>
<div class="story">
  <h2> Local election results </h2>
  <a href="/news/election">Read</a>
  <p>Turnout was high.</p>
  <span class="category">Politics</span>
  <span class="byline">By Sam Lee</span>
  <img src="//cdn.example.com/e.jpg">
  <img src="/static/icon-share.png">
</div>
<article><h3>No link here</h3></article>
<div class="post"><a href="https://other.example.com/x">x</a></div>
<div class="item"><h1>Absolute link</h1><a href="https://other.example.com/y">y</a></div>
</body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = io.WriteString(w, strings.ReplaceAll(feedTemplate, "{{BASE}}", srv.URL))
		case "/bad-feed":
			_, _ = io.WriteString(w, "this is not a feed")
		case "/story/1":
			_, _ = io.WriteString(w, storyPage)
		case "/":
			_, _ = io.WriteString(w, homePage)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCollector(extractImages bool) *Collector {
	quiet := log.New(io.Discard, "", 0)
	f := fetch.NewHTTP(fetch.Options{Logger: quiet})
	c := NewCollector(f, Options{ExtractImages: extractImages, Logger: quiet})
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestFromRSS(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	source := models.NewsSource{Name: "Test", URL: srv.URL + "/", RSS: srv.URL + "/feed"}

	articles, err := newTestCollector(true).FromRSS(context.Background(), source)
	if err != nil {
		t.Fatalf("FromRSS: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "First story" || first.URL != srv.URL+"/story/1" || first.Source != "Test" {
		t.Fatalf("unexpected first article %+v", first)
	}
	if first.Description != "Markup & text" {
		t.Fatalf("description = %q", first.Description)
	}
	if first.Category != "World" || first.Author != "Jane Doe" {
		t.Fatalf("category/author = %q/%q", first.Category, first.Author)
	}
	if !first.PublishedAt.Equal(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)) {
		t.Fatalf("published = %v", first.PublishedAt)
	}
	wantImages := []models.Image{
		{URL: "https://cdn.example.com/1.jpg", Alt: "RSS image"},
		{URL: srv.URL + "/img/a.jpg", Alt: "Scene"},
		{URL: "https://cdn.example.com/lazy.jpg", Alt: "Article image"},
		{URL: "https://cdn.example.com/og.jpg", Alt: "Featured image"},
	}
	if !reflect.DeepEqual(first.Images, wantImages) {
		t.Fatalf("images = %#v", first.Images)
	}
	if len(first.ID) != 16 {
		t.Fatalf("expected fingerprint id, got %q", first.ID)
	}

	second := articles[1]
	if second.Description != models.DefaultDescription || second.Category != models.DefaultCategory || second.Author != models.DefaultAuthor {
		t.Fatalf("expected defaults, got %+v", second)
	}
	if !second.PublishedAt.Equal(fixedNow) {
		t.Fatalf("undated item should use collection time, got %v", second.PublishedAt)
	}
	if len(second.Images) != 0 {
		t.Fatalf("missing article page should add no images, got %#v", second.Images)
	}
}

func TestFromRSSWithoutImageLookup(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	source := models.NewsSource{Name: "Test", RSS: srv.URL + "/feed"}

	articles, err := newTestCollector(false).FromRSS(context.Background(), source)
	if err != nil {
		t.Fatalf("FromRSS: %v", err)
	}
	if len(articles[0].Images) != 1 {
		t.Fatalf("expected only the feed image, got %#v", articles[0].Images)
	}
}

func TestFromRSSErrors(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	c := newTestCollector(false)

	if _, err := c.FromRSS(context.Background(), models.NewsSource{Name: "Bad", RSS: srv.URL + "/bad-feed"}); !models.IsFetch(err) {
		t.Fatalf("expected FetchError for unparsable feed, got %v", err)
	}
	if _, err := c.FromRSS(context.Background(), models.NewsSource{Name: "Gone", RSS: srv.URL + "/missing"}); !models.IsFetch(err) {
		t.Fatalf("expected FetchError for 404 feed, got %v", err)
	}
	got, err := c.FromRSS(context.Background(), models.NewsSource{Name: "NoFeed"})
	if err != nil || got != nil {
		t.Fatalf("source without feed should yield nothing, got %v, %v", got, err)
	}
}

func TestScrape(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	source := models.NewsSource{Name: "Home", URL: srv.URL + "/"}

	articles, err := newTestCollector(false).Scrape(context.Background(), source)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 scraped articles, got %d: %+v", len(articles), articles)
	}

	story := articles[0]
	want := models.NewsArticle{
		ID:          story.ID,
		Title:       "Local election results",
		Description: "Turnout was high.",
		URL:         srv.URL + "/news/election",
		Source:      "Home",
		PublishedAt: fixedNow,
		Images:      []models.Image{{URL: "https://cdn.example.com/e.jpg", Alt: "Article image"}},
		Category:    "Politics",
		Author:      "By Sam Lee",
	}
	if !reflect.DeepEqual(story, want) {
		t.Fatalf("story = %+v\nwant    %+v", story, want)
	}

	abs := articles[1]
	if abs.URL != "https://other.example.com/y" || abs.Description != models.DefaultDescription ||
		abs.Category != models.DefaultCategory || abs.Author != models.DefaultAuthor {
		t.Fatalf("unexpected defaults %+v", abs)
	}
	if abs.Images == nil || len(abs.Images) != 0 {
		t.Fatalf("expected empty image list, got %#v", abs.Images)
	}
}

func TestScrapeFetchFailure(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	_, err := newTestCollector(false).Scrape(context.Background(), models.NewsSource{Name: "X", URL: srv.URL + "/missing"})
	if !models.IsFetch(err) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestResolveLink(t *testing.T) {
	t.Parallel()
	tests := []struct {
		page, href, want string
	}{
		{"https://news.example.com/world", "/a/b", "https://news.example.com/a/b"},
		{"https://news.example.com/world/", "c", "https://news.example.com/world/c"},
		{"https://news.example.com/", "https://x.example.com/d", "https://x.example.com/d"},
	}
	for _, tt := range tests {
		if got := resolveLink(tt.page, tt.href); got != tt.want {
			t.Fatalf("resolveLink(%q, %q) = %q, want %q", tt.page, tt.href, got, tt.want)
		}
	}
}
