package nvd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DeafMist/cve-radar/internal/models"
	"github.com/DeafMist/cve-radar/internal/processing"
)

const (
	userAgent = "cve-radar/1.0"

	// maxBodyBytes bounds how much of a response is read into memory.
	maxBodyBytes = 8 << 20
	// logBodyRunes limits the body preview in debug logs.
	logBodyRunes = 512
)

// Client queries the NVD CVE API.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	apiKey  string
	log     *slog.Logger
}

// New instantiates the NVD client.
func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse nvd url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("nvd url %q must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("nvd url %q has no host", baseURL)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: u,
		apiKey:  apiKey,
		log:     logger,
	}, nil
}

// Search performs a single GET for req. An empty, non-nil slice means the
// upstream answered with no matches; any failure is an *UpstreamError.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]models.Advisory, error) {
	u := *c.baseURL
	u.RawQuery = req.Params().Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &UpstreamError{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		httpReq.Header.Set("apiKey", c.apiKey)
	}

	c.log.Debug("nvd search", slog.String("url", u.String()))

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Kind: KindTransport, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, &UpstreamError{Kind: KindTransport, StatusCode: res.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	c.log.Debug("nvd response",
		slog.Int("status", res.StatusCode),
		slog.Int("bytes", len(body)),
		slog.String("body", processing.Truncate(string(body), logBodyRunes)),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := strings.TrimSpace(res.Header.Get("message"))
		if msg == "" {
			msg = strings.TrimSpace(processing.Truncate(string(body), logBodyRunes))
		}
		if msg == "" {
			msg = res.Status
		}
		return nil, &UpstreamError{Kind: KindStatus, StatusCode: res.StatusCode, Err: errors.New(msg)}
	}

	items, err := Decode(body)
	if err != nil {
		return nil, &UpstreamError{Kind: KindDecode, StatusCode: res.StatusCode, Err: err}
	}

	return items, nil
}
