package fetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mohammad-safakhou/factlens/config"
	"github.com/mohammad-safakhou/factlens/internal/helpers"
	"github.com/mohammad-safakhou/factlens/models"
)

// Page is a downloaded document.
type Page struct {
	URL       string
	FinalURL  string
	Status    int
	Body      string
	FetchedAt time.Time
}

// Fetcher downloads a URL and returns its body as text.
// Failures are reported as *models.FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

type Type string

const (
	HTTPType     Type = "http"
	ChromedpType Type = "chromedp"
)

// ErrDisallowed marks a URL rejected by the crawl policy.
var ErrDisallowed = errors.New("host disallowed by crawl policy")

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 10 << 20
)

// Options configures a Fetcher.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	RatePerHost  float64
	Burst        int
	Retries      int
	Backoff      time.Duration
	Policy       config.CrawlPolicyConfig
	Logger       *log.Logger
}

// OptionsFromConfig maps the fetch config section to Options.
func OptionsFromConfig(cfg config.FetchConfig) Options {
	return Options{
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
		MaxBodyBytes: cfg.MaxBodyBytes,
		RatePerHost:  cfg.RatePerHost,
		Burst:        cfg.Burst,
		Retries:      cfg.Retries,
		Backoff:      cfg.Backoff,
		Policy:       cfg.CrawlPolicy.Normalize(),
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = config.DefaultUserAgent
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.Logger == nil {
		o.Logger = log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	}
	return o
}

// New builds a fetcher of the given type.
func New(t Type, opts Options) (Fetcher, error) {
	opts = opts.withDefaults()
	switch t {
	case HTTPType, "":
		return NewHTTP(opts), nil
	case ChromedpType:
		return NewChromedp(opts), nil
	default:
		return nil, fmt.Errorf("unsupported fetcher type %q", t)
	}
}

// guard shares URL validation, crawl policy and rate limiting between fetchers.
type guard struct {
	policy  config.CrawlPolicyConfig
	limiter *hostLimiter
	logger  *log.Logger
}

func newGuard(opts Options) guard {
	return guard{
		policy:  opts.Policy,
		limiter: newHostLimiter(opts.RatePerHost, opts.Burst),
		logger:  opts.Logger,
	}
}

func (g guard) admit(ctx context.Context, rawURL string) error {
	u, err := helpers.ParseHTTPURL(rawURL)
	if err != nil {
		return &models.FetchError{URL: rawURL, Err: err}
	}
	host := u.Hostname()
	if !g.policy.Permits(host) {
		return &models.FetchError{URL: rawURL, Err: ErrDisallowed}
	}
	if g.policy.IsPaywalled(host) {
		g.logger.Printf("fetching paywalled host %s, content may be partial", host)
	}
	if err := g.limiter.Wait(ctx, host); err != nil {
		return &models.FetchError{URL: rawURL, Err: err}
	}
	return nil
}
