package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mohammad-safakhou/factlens/config"
	"github.com/mohammad-safakhou/factlens/internal/aggregate"
	"github.com/mohammad-safakhou/factlens/internal/analysis"
	"github.com/mohammad-safakhou/factlens/internal/cache"
	"github.com/mohammad-safakhou/factlens/internal/credibility"
	"github.com/mohammad-safakhou/factlens/internal/extract"
	"github.com/mohammad-safakhou/factlens/internal/feeds"
	"github.com/mohammad-safakhou/factlens/internal/fetch"
	"github.com/mohammad-safakhou/factlens/internal/qa"
)

// app holds the shared dependencies every subcommand draws from.
type app struct {
	cfg      *config.Config
	analysis *analysis.Service
	news     *aggregate.Orchestrator
	cache    cache.Store
}

func newApp(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	fetchOpts := fetch.OptionsFromConfig(cfg.Fetch)
	fetchOpts.Logger = log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	fetcher, err := fetch.New(fetch.Type(cfg.Fetch.Fetcher), fetchOpts)
	if err != nil {
		return nil, err
	}

	scorer := credibility.NewScorer(
		credibility.WithCitationPhrases(credibility.PhraseTable(cfg.Scoring.CitationPhrases)),
		credibility.WithFactualPhrases(credibility.PhraseTable(cfg.Scoring.FactualPhrases)),
	)
	svc := analysis.NewService(fetcher, extract.New(nil), scorer, qa.NewEngine(), nil)

	sources := config.DefaultSources()
	if cfg.Aggregate.SourcesFile != "" {
		if sources, err = config.LoadSources(cfg.Aggregate.SourcesFile); err != nil {
			return nil, err
		}
	}

	store, err := cache.New(ctx, cfg.Cache, nil)
	if err != nil {
		return nil, err
	}
	store = cache.Instrument(store, cfg.Cache.Driver)

	collector := feeds.NewCollector(fetcher, feeds.Options{
		FeedTimeout:   cfg.Fetch.FeedTimeout,
		PageTimeout:   cfg.Fetch.Timeout,
		ExtractImages: cfg.Aggregate.ExtractImages,
	})
	orch := aggregate.New(sources, collector, aggregate.Options{
		MaxConcurrency: cfg.Aggregate.MaxConcurrency,
		Cache:          store,
		CacheTTL:       cfg.Cache.TTL,
		CollectTimeout: cfg.Aggregate.CollectTimeout,
	})

	return &app{cfg: cfg, analysis: svc, news: orch, cache: store}, nil
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		log.Printf("close cache: %v", err)
	}
}

func (a *app) refresher() (*aggregate.Refresher, error) {
	if a.cfg.Aggregate.RefreshCron == "" {
		return nil, nil
	}
	r, err := aggregate.NewRefresher(a.news, a.cfg.Aggregate.RefreshCron, a.cache, nil)
	if err != nil {
		return nil, fmt.Errorf("aggregate.refresh_cron: %w", err)
	}
	return r, nil
}
