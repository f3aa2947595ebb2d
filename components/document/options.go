package document

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultAccept           = "text/html,application/xhtml+xml,application/xml;"
	DefaultTimeout          = 30 * time.Second
	DefaultMaxContentLength = 1_000_000
	DefaultConcurrency      = 4
)

type ScraperConfig struct {
	// userAgent User agent string to use for requests.
	userAgent string
	// timeout for HTTP requests
	timeout time.Duration
	// maxContentLength Maximum content length in bytes to process.
	maxContentLength int64
	// concurrency is the number of pages FetchAll downloads at once
	concurrency int
	httpClient  *http.Client
	logger      *zap.Logger
}

type ScraperOption func(*ScraperConfig)

func WithUserAgent(ua string) ScraperOption {
	return func(c *ScraperConfig) {
		c.userAgent = ua
	}
}

func WithTimeout(timeout time.Duration) ScraperOption {
	return func(c *ScraperConfig) {
		c.timeout = timeout
	}
}

func WithMaxContentLength(l int64) ScraperOption {
	return func(c *ScraperConfig) {
		c.maxContentLength = l
	}
}

func WithConcurrency(n int) ScraperOption {
	return func(c *ScraperConfig) {
		c.concurrency = n
	}
}

func WithHttpClient(clt *http.Client) ScraperOption {
	return func(c *ScraperConfig) {
		c.httpClient = clt
	}
}

func WithScraperLogger(logger *zap.Logger) ScraperOption {
	return func(c *ScraperConfig) {
		c.logger = logger
	}
}
