package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"web-groq/internal/config"
	"web-groq/internal/log"
)

// maxBodySize bounds how much of a page is read before parsing.
const maxBodySize = 5 * 1024 * 1024

// Page is the outcome of extracting a single URL. A failed fetch has Err set
// and empty Text; a successful fetch may still have empty Text.
type Page struct {
	URL      string
	Title    string
	Text     string
	Err      error
	Duration time.Duration
}

// OK reports whether the page was fetched and parsed.
func (p Page) OK() bool {
	return p.Err == nil
}

// Crawler fetches web pages and reduces them to bounded plain text
type Crawler struct {
	httpClient *http.Client
	maxChars   int
	userAgent  string
	mode       string
	logger     log.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMode selects config.ExtractText or config.ExtractReadability.
func WithMode(mode string) Option {
	return func(c *Crawler) { c.mode = mode }
}

// WithLogger sets the crawler's logger.
func WithLogger(l log.Logger) Option {
	return func(c *Crawler) { c.logger = l }
}

// NewCrawler creates a new crawler instance
func NewCrawler(timeout time.Duration, maxChars int, userAgent string, opts ...Option) *Crawler {
	c := &Crawler{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		maxChars:  maxChars,
		userAgent: userAgent,
		mode:      config.ExtractText,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Text returns the extracted text of urlStr, or "" if the page could not be
// fetched or had no visible text.
func (c *Crawler) Text(ctx context.Context, urlStr string) string {
	return c.Extract(ctx, urlStr).Text
}

// Extract fetches urlStr and returns its visible text, truncated to the
// configured number of characters. Failures are reported through Page.Err.
func (c *Crawler) Extract(ctx context.Context, urlStr string) (page Page) {
	start := time.Now()
	page.URL = urlStr

	defer func() {
		if r := recover(); r != nil {
			page = Page{URL: urlStr, Err: fmt.Errorf("extraction panicked: %v", r)}
		}
		page.Duration = time.Since(start)
		if page.Err != nil {
			c.logger.Info("page skipped", "url", urlStr, "error", page.Err)
		} else {
			c.logger.Debug("page extracted", "url", urlStr, "chars", len([]rune(page.Text)), "duration", page.Duration)
		}
	}()

	body, err := c.fetch(ctx, urlStr)
	if err != nil {
		page.Err = err
		return page
	}

	title, text, err := c.extract(body, urlStr)
	if err != nil {
		page.Err = fmt.Errorf("failed to extract text: %w", err)
		return page
	}

	page.Title = title
	page.Text = truncateRunes(text, c.maxChars)
	return page
}

func (c *Crawler) fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, fmt.Errorf("non-HTML content type: %s", contentType)
	}

	body, err := ReadLimitedBody(resp.Body, maxBodySize)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

func (c *Crawler) extract(body []byte, urlStr string) (string, string, error) {
	if c.mode == config.ExtractReadability {
		if title, text, ok := extractReadable(body, urlStr); ok {
			return title, text, nil
		}
		c.logger.Debug("readability found no article, using plain text", "url", urlStr)
	}
	return ExtractText(body)
}

// extractReadable runs go-readability over the page. ok is false when no
// article text was found.
func extractReadable(body []byte, urlStr string) (title, text string, ok bool) {
	pageURL, err := url.Parse(urlStr)
	if err != nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", "", false
	}
	text = cleanText(article.TextContent)
	if text == "" {
		return "", "", false
	}
	return strings.TrimSpace(article.Title), text, true
}

// ReadLimitedBody reads up to maxBytes from a reader
func ReadLimitedBody(body io.Reader, maxBytes int64) ([]byte, error) {
	limited := io.LimitReader(body, maxBytes)
	return io.ReadAll(limited)
}
