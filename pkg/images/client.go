package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tileboard/pkg/cache"
	"github.com/matzehuels/tileboard/pkg/errors"
	"github.com/matzehuels/tileboard/pkg/observability"
)

const (
	defaultTimeout = 10 * time.Second
	cacheNamespace = "images"

	// maxBodySize bounds the response body; the jsonplaceholder list is ~1MB.
	maxBodySize = 16 << 20
)

// Photo is one entry of the image list. Only URL is required.
type Photo struct {
	ID           int    `json:"id,omitempty"`
	AlbumID      int    `json:"albumId,omitempty"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Options configures a [Client].
type Options struct {
	// URL of the image list. Required.
	URL string

	// Timeout bounds each request. Defaults to 10s.
	Timeout time.Duration

	// Cache stores the raw list. Defaults to no caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	// Refresh skips cache reads; fresh responses are still written.
	Refresh bool

	Logger     *log.Logger
	Rand       *rand.Rand
	HTTPClient *http.Client
}

// Client fetches and caches the image list. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	url     string
	cache   cache.Cache
	ttl     time.Duration
	refresh bool
	logger  *log.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	c := &Client{
		http:    opts.HTTPClient,
		url:     opts.URL,
		cache:   opts.Cache,
		ttl:     opts.CacheTTL,
		refresh: opts.Refresh,
		logger:  opts.Logger,
		rnd:     opts.Rand,
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// URL returns the provider URL.
func (c *Client) URL() string { return c.url }

// RandomImage returns the URL of a uniformly random entry of the list.
func (c *Client) RandomImage(ctx context.Context) (string, error) {
	photos, err := c.List(ctx)
	if err != nil {
		return "", err
	}
	return photos[c.intN(len(photos))].URL, nil
}

func (c *Client) intN(n int) int {
	if c.rnd == nil {
		return rand.IntN(n)
	}
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.rnd.IntN(n)
}

// List returns the entries of the image list that have a URL. The list is
// never empty when err is nil.
func (c *Client) List(ctx context.Context) ([]Photo, error) {
	key := cache.HTTPKey(cacheNamespace, c.url)

	if !c.refresh {
		if photos, ok := c.cached(ctx, key); ok {
			return photos, nil
		}
	}

	body, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	photos, err := decode(body)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("cache image list", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheNamespace, len(body))
	}
	return photos, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]Photo, bool) {
	data, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("read image list cache", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheNamespace)
		return nil, false
	}
	photos, err := decode(data)
	if err != nil {
		c.logger.Debug("discarding cached image list", "err", err)
		_ = c.cache.Delete(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheNamespace)
	c.logger.Debug("image list from cache", "entries", len(photos))
	return photos, true
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", c.url)
	}
	req.Header.Set("Accept", "application/json")

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		return nil, classify(err, c.url)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, c.url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, classify(err, c.url)
	}
	c.logger.Debug("fetched image list", "url", c.url, "bytes", len(body), "elapsed", time.Since(start).Round(time.Millisecond))
	return body, nil
}

func classify(err error, rawURL string) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
}

func checkStatus(code int, rawURL string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "image list not found at %s", rawURL)
	default:
		return errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", rawURL, code)
	}
}

func decode(data []byte) ([]Photo, error) {
	var raw []Photo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode image list")
	}
	photos := raw[:0]
	for _, p := range raw {
		if p.URL != "" {
			photos = append(photos, p)
		}
	}
	if len(photos) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyImageList, "image list has no entries with a url")
	}
	return photos, nil
}

// String describes the client for logs.
func (c *Client) String() string {
	return fmt.Sprintf("images(%s)", c.url)
}
