package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mohammad-safakhou/factlens/internal/helpers"
	"github.com/mohammad-safakhou/factlens/models"
)

// HTTPFetcher downloads pages with net/http using browser-like headers.
type HTTPFetcher struct {
	client *http.Client
	opts   Options
	guard  guard
}

func NewHTTP(opts Options) *HTTPFetcher {
	opts = opts.withDefaults()
	return &HTTPFetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
		guard:  newGuard(opts),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if err := f.guard.admit(ctx, rawURL); err != nil {
		return Page{URL: rawURL}, err
	}
	// one budget for every attempt and the backoff between them
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, f.opts.Backoff*time.Duration(attempt)); err != nil {
				return Page{URL: rawURL}, &models.FetchError{URL: rawURL, Err: err}
			}
		}
		page, err := f.do(ctx, rawURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
		f.opts.Logger.Printf("attempt %d for %s failed: %v", attempt+1, rawURL, err)
	}
	return Page{URL: rawURL}, lastErr
}

func (f *HTTPFetcher) do(ctx context.Context, rawURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, &models.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, &models.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, &models.FetchError{URL: rawURL, Status: resp.StatusCode}
	}
	body, err := helpers.ReadLimited(resp.Body, f.opts.MaxBodyBytes)
	if err != nil {
		return Page{}, &models.FetchError{URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	return Page{
		URL:       rawURL,
		FinalURL:  resp.Request.URL.String(),
		Status:    resp.StatusCode,
		Body:      string(body),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// retryable reports whether a failed attempt is worth repeating: transport
// errors and 5xx/429 responses are, policy and client errors are not.
func retryable(err error) bool {
	var fe *models.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	if errors.Is(fe.Err, context.Canceled) || errors.Is(fe.Err, context.DeadlineExceeded) {
		return false
	}
	if fe.Status == 0 {
		return fe.Err != nil
	}
	return fe.Status >= 500 || fe.Status == http.StatusTooManyRequests
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
