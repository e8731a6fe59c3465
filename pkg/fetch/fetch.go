// Package fetch downloads a web page and extracts the narrative it carries.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxBodyBytes  = 10 * 1024 * 1024
	DefaultRetryAttempts = 3
)

// Narrative is the readable text extracted from a page.
type Narrative struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Byline   string `json:"byline,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Text     string `json:"text"`
}

// Config tunes a Fetcher. Zero values fall back to the defaults.
type Config struct {
	Timeout       time.Duration
	MaxBodyBytes  int64
	RetryAttempts uint
	RetryDelay    time.Duration
}

// Fetcher downloads pages with browser-like headers and extracts their
// main text.
type Fetcher struct {
	client   *resty.Client
	maxBody  int64
	attempts uint
	delay    time.Duration
	logger   *zap.Logger
}

// browserHeaders keeps sites that block unknown clients from answering 403.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9,ja;q=0.8",
	"Referer":                   "https://www.google.com/",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "cross-site",
	"Upgrade-Insecure-Requests": "1",
}

func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeaders(browserHeaders)
	return &Fetcher{
		client:   client,
		maxBody:  cfg.MaxBodyBytes,
		attempts: cfg.RetryAttempts,
		delay:    cfg.RetryDelay,
		logger:   logger,
	}
}

// StatusError reports a non-200 response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

func (e *StatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// ErrTooLarge is returned when a page exceeds the configured body limit.
var ErrTooLarge = errors.New("response body exceeds size limit")

// Fetch downloads rawURL and extracts its narrative. Network failures,
// 5xx and 429 responses are retried with backoff.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Narrative, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return Narrative{}, fmt.Errorf("invalid url %q", rawURL)
	}

	var body []byte
	err = retry.Do(
		func() error {
			b, err := f.download(ctx, rawURL)
			if err != nil {
				var se *StatusError
				if errors.Is(err, ErrTooLarge) || (errors.As(err, &se) && !se.retryable()) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("fetch failed, retrying",
				zap.String("url", rawURL), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return Narrative{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	article, err := readability.FromReader(bytes.NewReader(SanitizeRuby(body)), pageURL)
	if err != nil {
		return Narrative{}, fmt.Errorf("extract article: %w", err)
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return Narrative{}, fmt.Errorf("extract article: no readable text at %s", rawURL)
	}

	f.logger.Debug("fetched narrative",
		zap.String("url", rawURL), zap.String("title", article.Title), zap.Int("chars", len(text)))
	return Narrative{
		URL:      rawURL,
		Title:    strings.TrimSpace(article.Title),
		Byline:   article.Byline,
		SiteName: article.SiteName,
		Text:     text,
	}, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, err
	}
	raw := resp.RawBody()
	defer raw.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode()}
	}
	if resp.RawResponse.ContentLength > f.maxBody {
		return nil, ErrTooLarge
	}

	// Read one byte past the limit to tell a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(raw, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, ErrTooLarge
	}
	return body, nil
}

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby strips ruby annotations (<rt> and <rp>) so extracted text
// does not repeat readings after their kanji.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, nil)
	return reRP.ReplaceAll(cleaned, nil)
}
