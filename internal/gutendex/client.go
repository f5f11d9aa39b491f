package gutendex

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/metrics"
)

// BookFetcher defines the catalog operations folio needs.
// This interface is implemented by *Client and can be used for testing.
type BookFetcher interface {
	FetchBooks(ctx context.Context, query Query) (Listing, error)
}

// Ensure Client implements BookFetcher at compile time.
var _ BookFetcher = (*Client)(nil)

// Query selects a listing page. PageURL, when set, is an API-provided
// next/previous link and takes precedence over Search and Languages.
type Query struct {
	Search    string
	Languages string
	PageURL   string

	// Fresh skips the cache lookup. A successful response still replaces
	// the cached listing.
	Fresh bool
}

// Client talks to the Gutendex HTTP API.
type Client struct {
	baseURL *url.URL
	http    *resty.Client
	limiter *rate.Limiter
	cache   *expirable.LRU[string, Listing]
}

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	RateLimit float64 // requests per second; zero disables throttling
	RateBurst int
	CacheTTL  time.Duration // zero disables caching
	CacheSize int
}

const (
	DefaultBaseURL   = "https://gutendex.com/books/"
	defaultUserAgent = "folio/0.1"
	defaultTimeout   = 15 * time.Second
	defaultCacheSize = 64
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		baseURL: base,
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", userAgent),
	}

	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = defaultCacheSize
		}
		c.cache = expirable.NewLRU[string, Listing](size, nil, opts.CacheTTL)
	}

	return c, nil
}

// BaseURL returns the catalog endpoint the client queries.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchBooks retrieves one listing page for query.
func (c *Client) FetchBooks(ctx context.Context, query Query) (Listing, error) {
	if c == nil {
		return Listing{}, fmt.Errorf("client is nil")
	}
	reqURL, err := BuildURL(c.baseURL, query)
	if err != nil {
		return Listing{}, err
	}
	log := logging.For(ctx).WithField("url", reqURL)

	if c.cache != nil && !query.Fresh {
		if listing, ok := c.cache.Get(reqURL); ok {
			metrics.CacheHitsTotal.Inc()
			log.WithField("books", len(listing.Results)).Debug("catalog cache hit")
			return listing, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Listing{}, &NetworkError{URL: reqURL, Err: err}
		}
	}

	defer logging.Track(ctx, "catalog fetch")()
	start := time.Now()
	listing, outcome, err := c.get(ctx, reqURL)
	metrics.ObserveFetch(outcome, time.Since(start))
	if err != nil {
		log.WithError(err).WithField("outcome", outcome).Warn("catalog fetch failed")
		return Listing{}, err
	}
	log.WithFields(logrus.Fields{
		"books": len(listing.Results),
		"count": listing.Count,
	}).Info("catalog fetch succeeded")

	if c.cache != nil {
		c.cache.Add(reqURL, listing)
	}
	return listing, nil
}

func (c *Client) get(ctx context.Context, reqURL string) (Listing, string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(reqURL)
	if err != nil {
		return Listing{}, metrics.OutcomeNetwork, &NetworkError{URL: reqURL, Err: unwrapURLError(err)}
	}
	if !resp.IsSuccess() {
		return Listing{}, metrics.OutcomeHTTPError, &StatusError{URL: reqURL, Code: resp.StatusCode()}
	}
	listing, err := DecodeListing(resp.Body())
	if err != nil {
		return Listing{}, metrics.OutcomeMalformed, err
	}
	return listing, metrics.OutcomeSuccess, nil
}

// BuildURL constructs the request URL for query against base. Empty filter
// values are omitted; with neither set the unfiltered listing is requested.
func BuildURL(base *url.URL, query Query) (string, error) {
	if page := strings.TrimSpace(query.PageURL); page != "" {
		u, err := url.Parse(page)
		if err != nil {
			return "", fmt.Errorf("parse page url %q: %w", page, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", fmt.Errorf("page url %q is not absolute", page)
		}
		return u.String(), nil
	}
	if base == nil {
		return "", fmt.Errorf("base url is nil")
	}

	values := url.Values{}
	if search := strings.TrimSpace(query.Search); search != "" {
		values.Set("search", search)
	}
	if lang := strings.TrimSpace(query.Languages); lang != "" {
		values.Set("languages", lang)
	}

	u := *base
	u.RawQuery = ""
	if len(values) > 0 {
		// Percent-encode spaces the way browsers do for query components.
		u.RawQuery = strings.ReplaceAll(values.Encode(), "+", "%20")
	}
	return u.String(), nil
}

// unwrapURLError drops the net/url wrapper so messages read "dial tcp ..."
// instead of repeating the method and URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
