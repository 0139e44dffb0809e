// Package opendata is a tolerant client for the NYC Open Data (Socrata)
// resource API. Every failure is carried in a Result instead of an error
// return, and callers unwrap it to an empty row set.
package opendata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"buildinghealth_backend/platform/cache"
	"buildinghealth_backend/platform/config"
	"buildinghealth_backend/platform/logger"
)

const maxBodyBytes = 32 << 20

// ErrUnknownDataset is returned for names missing from the catalog.
var ErrUnknownDataset = errors.New("unknown dataset")

// HTTPDoer is the subset of *http.Client used by the client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is the outcome of one dataset fetch.
type Result struct {
	Records []Record
	Err     error
}

// Rows returns the records, or an empty slice when the fetch failed.
func (r Result) Rows() []Record {
	if r.Err != nil || r.Records == nil {
		return []Record{}
	}
	return r.Records
}

// Failed builds a failed result.
func Failed(err error) Result { return Result{Err: err} }

// Client fetches dataset rows.
type Client struct {
	http     HTTPDoer
	baseURL  string
	appToken string
	timeout  time.Duration
	catalog  Catalog
	cache    cache.Store
	cacheTTL time.Duration
	log      *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.http = doer }
}

// WithCache caches successful response bodies for ttl.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		c.cacheTTL = ttl
	}
}

// New creates a client for the configured host and catalog.
func New(cfg config.OpenDataConfig, catalog Catalog, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{},
		baseURL:  cfg.GetOpenDataBaseURL(),
		appToken: cfg.GetOpenDataAppToken(),
		timeout:  cfg.GetOpenDataTimeout(),
		catalog:  catalog,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DatasetID resolves a dataset name through the catalog.
func (c *Client) DatasetID(name string) (string, bool) {
	return c.catalog.ID(name)
}

// Fetch runs q against the named dataset. A timeout <= 0 uses the default;
// it bounds the cache read and the upstream request together.
// It never panics and never returns a partially decoded row set.
func (c *Client) Fetch(ctx context.Context, dataset string, q *Query, timeout time.Duration) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failed(fmt.Errorf("fetch %s: panic: %v", dataset, r))
		}
		if res.Err != nil {
			c.log.WithContext(ctx).UpstreamFailure(dataset, res.Err)
		}
	}()

	id, ok := c.catalog.ID(dataset)
	if !ok {
		return Failed(fmt.Errorf("%w: %s", ErrUnknownDataset, dataset))
	}
	reqURL := fmt.Sprintf("%s/resource/%s.json?%s", c.baseURL, id, q.Encode())

	if timeout <= 0 {
		timeout = c.timeout
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if body, ok := c.cached(fctx, reqURL); ok {
		if records, err := decode(body); err == nil {
			return Result{Records: records}
		}
	}

	body, err := c.get(fctx, reqURL)
	if err != nil {
		return Failed(fmt.Errorf("fetch %s: %w", dataset, err))
	}
	records, err := decode(body)
	if err != nil {
		return Failed(fmt.Errorf("decode %s: %w", dataset, err))
	}

	c.store(ctx, reqURL, body)
	return Result{Records: records}
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func decode(body []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.log.WithContext(ctx).Warn("open data cache read failed", "error", err)
		}
		return nil, false
	}
	return body, true
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.log.WithContext(ctx).Warn("open data cache write failed", "error", err)
	}
}
