package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/mohammad-safakhou/factlens/models"
)

// ChromedpFetcher renders pages in headless Chrome, for sites that build
// their article body with JavaScript.
type ChromedpFetcher struct {
	opts  Options
	guard guard
}

func NewChromedp(opts Options) *ChromedpFetcher {
	opts = opts.withDefaults()
	return &ChromedpFetcher{opts: opts, guard: newGuard(opts)}
}

func (f *ChromedpFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if err := f.guard.admit(ctx, rawURL); err != nil {
		return Page{URL: rawURL}, err
	}
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	html, finalURL, err := f.render(ctx, rawURL)
	if err != nil {
		return Page{URL: rawURL}, &models.FetchError{URL: rawURL, Err: err}
	}
	if f.opts.MaxBodyBytes > 0 && int64(len(html)) > f.opts.MaxBodyBytes {
		html = models.Truncate(html, int(f.opts.MaxBodyBytes))
	}
	return Page{
		URL:       rawURL,
		FinalURL:  finalURL,
		Status:    200,
		Body:      html,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (f *ChromedpFetcher) render(ctx context.Context, rawURL string) (string, string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent(f.opts.UserAgent),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html, location string
	err := chromedp.Run(bctx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if location == "" {
		location = rawURL
	}
	return html, location, err
}
