// Package aggregate collects articles from every configured source in
// parallel and merges them into one listing.
package aggregate

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/mohammad-safakhou/factlens/internal/cache"
	"github.com/mohammad-safakhou/factlens/internal/credibility"
	"github.com/mohammad-safakhou/factlens/internal/metrics"
	"github.com/mohammad-safakhou/factlens/internal/qa"
	"github.com/mohammad-safakhou/factlens/models"
)

const (
	DefaultMaxConcurrency = 16
	DefaultCacheTTL       = 5 * time.Minute
	DefaultCollectTimeout = time.Minute

	trendingKey = "trending"
)

// SourceCollector reads one source. Errors are isolated per source.
type SourceCollector interface {
	FromRSS(ctx context.Context, source models.NewsSource) ([]models.NewsArticle, error)
	Scrape(ctx context.Context, source models.NewsSource) ([]models.NewsArticle, error)
}

type Options struct {
	MaxConcurrency int
	Cache          cache.Store
	CacheTTL       time.Duration
	// CollectTimeout bounds a trending collection shared by concurrent callers.
	CollectTimeout time.Duration
	Logger         *log.Logger
}

// Orchestrator owns a read-only source table.
type Orchestrator struct {
	sources   []models.NewsSource
	collector SourceCollector
	opts      Options
	logger    *log.Logger
	group     singleflight.Group
}

func New(sources []models.NewsSource, collector SourceCollector, opts Options) *Orchestrator {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = DefaultMaxConcurrency
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CollectTimeout <= 0 {
		opts.CollectTimeout = DefaultCollectTimeout
	}
	if opts.Cache == nil {
		opts.Cache = cache.Noop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[AGG] ", log.LstdFlags)
	}
	return &Orchestrator{
		sources:   append([]models.NewsSource(nil), sources...),
		collector: collector,
		opts:      opts,
		logger:    logger,
	}
}

// Sources returns a copy of the source table.
func (o *Orchestrator) Sources() []models.NewsSource {
	return append([]models.NewsSource(nil), o.sources...)
}

// Trending returns every article from every source's feed and homepage,
// newest first. A cached listing is served while fresh. Concurrent misses
// share one collection, which a cancelled caller does not abort.
func (o *Orchestrator) Trending(ctx context.Context) ([]models.NewsArticle, error) {
	cached, ok, err := o.opts.Cache.Get(ctx, trendingKey)
	if err != nil {
		o.logger.Printf("trending cache read: %v", err)
	}
	if ok {
		return cached, nil
	}

	// the collection outlives any single caller; each caller only stops waiting
	ch := o.group.DoChan(trendingKey, func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.opts.CollectTimeout)
		defer cancel()
		return o.Refresh(rctx)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("trending: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.NewsArticle), nil
	}
}

// Refresh collects a fresh trending listing and stores it in the cache.
func (o *Orchestrator) Refresh(ctx context.Context) ([]models.NewsArticle, error) {
	started := time.Now()
	articles, err := o.collect(ctx, true)
	if err != nil {
		return nil, err
	}
	o.logger.Printf("collected %d articles from %d sources in %s", len(articles), len(o.sources), time.Since(started).Round(time.Millisecond))
	if err := o.opts.Cache.Set(ctx, trendingKey, articles, o.opts.CacheTTL); err != nil {
		o.logger.Printf("trending cache write: %v", err)
	}
	return articles, nil
}

// Filter narrows a search. Every non-empty field must match as a
// case-insensitive substring.
type Filter struct {
	Query    string
	Source   string
	Category string
}

func (f Filter) Empty() bool {
	return f.Query == "" && f.Source == "" && f.Category == ""
}

func (f Filter) Match(a models.NewsArticle) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(a.Title), q) && !strings.Contains(strings.ToLower(a.Description), q) {
			return false
		}
	}
	if s := strings.ToLower(f.Source); s != "" && !strings.Contains(strings.ToLower(a.Source), s) {
		return false
	}
	if c := strings.ToLower(f.Category); c != "" && !strings.Contains(strings.ToLower(a.Category), c) {
		return false
	}
	return true
}

// Search scrapes every homepage and keeps the articles matching f.
func (o *Orchestrator) Search(ctx context.Context, f Filter) ([]models.NewsArticle, error) {
	if f.Empty() {
		return nil, &models.ValidationError{Code: "Search parameters required", Message: "Provide at least one of q, source or category"}
	}
	articles, err := o.collect(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]models.NewsArticle, 0, len(articles))
	for _, a := range articles {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// collect runs the per-source tasks and merges them in source-table order,
// RSS before scrape, then sorts newest first. Sources never fail the batch.
func (o *Orchestrator) collect(ctx context.Context, withRSS bool) ([]models.NewsArticle, error) {
	perSource := 1
	if withRSS {
		perSource = 2
	}
	slots := make([][]models.NewsArticle, len(o.sources)*perSource)

	var g errgroup.Group
	g.SetLimit(o.opts.MaxConcurrency)
	for i, source := range o.sources {
		i, source := i, source
		if withRSS {
			g.Go(func() error {
				slots[i*perSource] = o.run(ctx, source, "rss", o.collector.FromRSS)
				return nil
			})
		}
		g.Go(func() error {
			slots[i*perSource+perSource-1] = o.run(ctx, source, "scrape", o.collector.Scrape)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collect articles: %w", err)
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	merged := make([]models.NewsArticle, 0, total)
	for _, s := range slots {
		merged = append(merged, s...)
	}
	SortNewestFirst(merged)
	return merged, nil
}

type collectFunc func(context.Context, models.NewsSource) ([]models.NewsArticle, error)

func (o *Orchestrator) run(ctx context.Context, source models.NewsSource, method string, fn collectFunc) []models.NewsArticle {
	articles, err := fn(ctx, source)
	if err != nil {
		metrics.SourceFailures.WithLabelValues(source.Name, method).Inc()
		o.logger.Printf("%s %s: %v", method, source.Name, err)
		return nil
	}
	metrics.ArticlesCollected.WithLabelValues(source.Name, method).Add(float64(len(articles)))
	for i := range articles {
		articles[i].Credibility = headlineScore(articles[i])
	}
	return articles
}

func headlineScore(a models.NewsArticle) int {
	content := a.Description
	if content == models.DefaultDescription {
		content = ""
	}
	return credibility.HeadlineScore(credibility.Headline{
		Title:    a.Title,
		Content:  content,
		URL:      a.URL,
		Keywords: qa.Keywords(a.Title),
	})
}

// SortNewestFirst orders by PublishedAt descending, keeping merge order for ties.
func SortNewestFirst(articles []models.NewsArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
