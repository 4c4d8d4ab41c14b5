// Package feeds turns news sources into article listings, from RSS feeds and
// from homepage markup.
package feeds

import (
	"context"
	"log"
	"time"

	"github.com/mohammad-safakhou/factlens/internal/fetch"
	"github.com/mohammad-safakhou/factlens/internal/metrics"
)

const (
	DefaultFeedTimeout = 5 * time.Second
	DefaultPageTimeout = 10 * time.Second

	imageLookupConcurrency = 4
)

type Options struct {
	// FeedTimeout bounds feed downloads and article image lookups.
	FeedTimeout time.Duration
	// PageTimeout bounds homepage downloads for scraping.
	PageTimeout   time.Duration
	ExtractImages bool
	Logger        *log.Logger
}

// Collector fetches and parses one source at a time. It is safe for
// concurrent use when the underlying fetcher is.
type Collector struct {
	fetcher fetch.Fetcher
	opts    Options
	logger  *log.Logger
	now     func() time.Time
}

func NewCollector(f fetch.Fetcher, opts Options) *Collector {
	if opts.FeedTimeout <= 0 {
		opts.FeedTimeout = DefaultFeedTimeout
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = DefaultPageTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[FEEDS] ", log.LstdFlags)
	}
	return &Collector{fetcher: f, opts: opts, logger: logger, now: time.Now}
}

func (c *Collector) get(ctx context.Context, kind, rawURL string, timeout time.Duration) (fetch.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	started := time.Now()
	page, err := c.fetcher.Fetch(ctx, rawURL)
	metrics.ObserveFetch(kind, err, started)
	return page, err
}
