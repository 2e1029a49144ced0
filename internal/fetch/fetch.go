// Package fetch retrieves a page and distills it into title, excerpt,
// and plain text using readability extraction.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	neturl "net/url"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/starford/bindrune/internal/apperr"
)

// Page is the distilled result of fetching a URL.
type Page struct {
	Title       string
	Excerpt     string
	TextContent string
}

// Extractor turns a URL into distilled page content.
type Extractor interface {
	Extract(ctx context.Context, url string) (*Page, error)
}

// HTTP fetches pages over the network with a fixed timeout.
type HTTP struct {
	client    *http.Client
	userAgent string
}

// Verify HTTP satisfies Extractor at compile time.
var _ Extractor = (*HTTP)(nil)

// NewHTTP creates an extractor with the given timeout and User-Agent.
func NewHTTP(timeout time.Duration, userAgent string) *HTTP {
	return &HTTP{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Extract validates the URL scheme, fetches the page, and runs
// readability extraction. Only http and https schemes are accepted.
func (h *HTTP) Extract(ctx context.Context, rawURL string) (*Page, error) {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid URL", apperr.ErrValidation, rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: non-web URL scheme %q", apperr.ErrValidation, u.Scheme)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrFetch, rawURL, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrFetch, rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", apperr.ErrFetch, rawURL, resp.StatusCode)
	}
	article, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrFetch, rawURL, err)
	}
	return &Page{
		Title:       article.Title,
		Excerpt:     article.Excerpt,
		TextContent: article.TextContent,
	}, nil
}
