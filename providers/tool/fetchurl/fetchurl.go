// Package fetchurl provides the fetch_url tool. Pages are retrieved over
// HTTP and HTML bodies are converted to Markdown so the model sees readable
// text instead of markup.
package fetchurl

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/leofalp/reagent/internal/utils"
	"github.com/leofalp/reagent/providers/tool"
)

const (
	// DefaultTimeout is the per-request timeout when the model does not
	// override it.
	DefaultTimeout = 20 * time.Second
	// MaxBodySize caps the response body read (10MB).
	MaxBodySize = 10 * 1024 * 1024
	// MaxPreviewLength caps the content preview returned to the model.
	MaxPreviewLength = 4000
	// MaxRedirects bounds the redirect chain.
	MaxRedirects = 10

	userAgent = "reagent-fetch-url/1.0"
)

// Input is the argument struct for fetch_url.
type Input struct {
	URL string `json:"url" jsonschema:"description=The URL to fetch (a bare host like 'example.com' gets an https:// prefix),required"`

	TimeoutSeconds int `json:"timeout_seconds,omitempty" jsonschema:"description=Request timeout in seconds (default 20)"`
}

// Output carries the fetch result. A non-200 status is a normal outcome
// reported in StatusCode, not an error.
type Output struct {
	URL         string `json:"url" jsonschema:"description=The final URL after redirects"`
	StatusCode  int    `json:"status_code" jsonschema:"description=HTTP status code of the final response"`
	ContentType string `json:"content_type" jsonschema:"description=Content-Type of the response"`
	Preview     string `json:"preview" jsonschema:"description=Page content (HTML converted to Markdown) truncated to a preview"`
}

// New returns the fetch_url tool.
func New() *tool.Tool[Input, Output] {
	return tool.NewTool("fetch_url", Fetch,
		tool.WithDescription("Fetches a web page and returns a Markdown preview of its content along with the HTTP status code and content type. Partial URLs get an https:// prefix; redirects are followed."))
}

// Fetch retrieves the page at input.URL. Connection failures, timeouts, and
// oversized bodies fail the call; HTTP error statuses come back as data so
// the model can react to a 404 without the step counting as a tool failure.
func Fetch(ctx context.Context, input Input) (Output, error) {
	pageURL := strings.TrimSpace(input.URL)
	if pageURL == "" {
		return Output{}, fmt.Errorf("url cannot be empty")
	}
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		pageURL = "https://" + pageURL
	}

	timeout := DefaultTimeout
	if input.TimeoutSeconds > 0 {
		timeout = time.Duration(input.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Output{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("too many redirects (>%d)", MaxRedirects)
			}
			return nil
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Output{}, fmt.Errorf("request timed out or canceled: %w", err)
		}
		return Output{}, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return Output{}, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) == MaxBodySize {
		return Output{}, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	contentType := resp.Header.Get("Content-Type")
	content := string(body)
	if strings.Contains(contentType, "text/html") {
		markdown, err := htmltomarkdown.ConvertString(content)
		if err != nil {
			return Output{}, fmt.Errorf("converting HTML to Markdown: %w", err)
		}
		content = markdown
	}

	return Output{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Preview:     utils.Truncate(content, MaxPreviewLength),
	}, nil
}
