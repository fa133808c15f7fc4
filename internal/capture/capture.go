package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// maxMetadataBody limits how much of the target page is read during the
// metadata fetch. The title and meta tags live in <head>, so 1MB is plenty
// while preventing memory exhaustion on unexpectedly large responses.
const maxMetadataBody = 1 * 1024 * 1024

// userAgent identifies the analyzer in metadata fetch requests.
const userAgent = "lpanalyzer/1.0 (+https://github.com/onitasu/lp-ai-analyzer)"

// ErrNoScreenshot is returned when neither a screenshot file nor image
// bytes are available for the target.
var ErrNoScreenshot = errors.New("no screenshot available: provide one with --screenshot")

// Capturer builds CapturedPage values from a screenshot file and a
// best-effort metadata fetch of the target URL.
type Capturer struct {
	// httpClient performs the metadata fetch.
	httpClient *http.Client

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithHTTPClient sets a custom HTTP client for the metadata fetch.
// Tests use this to point the capturer at a local fixture server.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Capturer) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capturer) {
		c.logger = logger
	}
}

// New creates a Capturer. The timeout applies to the metadata fetch only;
// screenshot loading is local file I/O.
func New(fetchTimeout time.Duration, opts ...Option) *Capturer {
	c := &Capturer{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Capture assembles a CapturedPage for the target URL.
//
// The screenshot file is required: analysis quality collapses without an
// image, and the provider request would waste quota. The metadata fetch is
// best-effort; fetch failures degrade the prompt but never fail the capture,
// mirroring how a dead page should still be analyzable from its screenshot.
func (c *Capturer) Capture(ctx context.Context, target, screenshotPath string) (*model.CapturedPage, error) {
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, fmt.Errorf("invalid target URL %q: %w", target, err)
	}

	if screenshotPath == "" {
		return nil, ErrNoScreenshot
	}

	image, mimeType, metadata, err := LoadScreenshot(screenshotPath)
	if err != nil {
		return nil, err
	}

	page := &model.CapturedPage{
		Image:      image,
		MIMEType:   mimeType,
		URL:        target,
		CapturedAt: time.Now(),
		Metadata:   metadata,
	}

	meta, err := c.fetchMetadata(ctx, target)
	if err != nil {
		c.logger.Warn("page metadata fetch failed, analyzing screenshot only",
			"url", target,
			"error", err,
		)
		return page, nil
	}

	page.Title = meta.Title
	if meta.Description != "" {
		page.Metadata["description"] = meta.Description
	}
	if meta.FinalURL != "" && meta.FinalURL != target {
		page.Metadata["final_url"] = meta.FinalURL
	}

	return page, nil
}

// LoadScreenshot reads a screenshot file, sniffs its media type, and
// extracts EXIF metadata when the format carries any. PNG screenshots
// usually have no EXIF block; that is not an error.
func LoadScreenshot(path string) ([]byte, string, map[string]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided screenshot path is intentional
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to read screenshot %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, "", nil, fmt.Errorf("screenshot %s is empty", path)
	}

	mimeType := http.DetectContentType(data)

	metadata := extractEXIF(data)
	if metadata == nil {
		metadata = make(map[string]string)
	}

	return data, mimeType, metadata, nil
}

// pageMetadata holds the fields recovered by the metadata fetch.
type pageMetadata struct {
	Title       string
	Description string
	FinalURL    string
}

// fetchMetadata performs one GET against the target and parses title and
// meta description from the response body.
func (c *Capturer) fetchMetadata(ctx context.Context, target string) (*pageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, target)
	}

	title, description, err := parseHead(limitReader(resp.Body))
	if err != nil {
		return nil, err
	}

	meta := &pageMetadata{
		Title:       title,
		Description: description,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		meta.FinalURL = resp.Request.URL.String()
	}
	return meta, nil
}
