// Package openrouter implements the automatic model transport against the
// OpenRouter chat-completions API (an OpenAI-compatible endpoint). One
// Submit call is one HTTP round-trip; there is no retry policy, a transport
// failure aborts the run.
package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/leofalp/reagent/internal/utils"
	"github.com/leofalp/reagent/providers/ai"
	"github.com/leofalp/reagent/providers/observability"
)

const (
	defaultBaseURL          = "https://openrouter.ai/api/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is used when the caller does not set Request.Model.
	DefaultModel = "deepseek/deepseek-chat-v3.1"

	// DefaultTimeout bounds one chat-completion round-trip. The transport
	// fails rather than hang indefinitely on a stalled endpoint.
	DefaultTimeout = 120 * time.Second
)

// Transport implements ai.Transport against the OpenRouter API.
type Transport struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates an OpenRouter transport configured from the environment:
// OPENROUTER_API_KEY for the credential and OPENROUTER_BASE_URL to override
// the default endpoint.
func New() *Transport {
	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Transport{
		apiKey:  os.Getenv("OPENROUTER_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// Ensure Transport implements ai.Transport at compile time.
var _ ai.Transport = (*Transport)(nil)

// WithAPIKey sets the API key used for authenticating requests.
func (t *Transport) WithAPIKey(apiKey string) *Transport {
	t.apiKey = apiKey
	return t
}

// WithBaseURL overrides the default base URL for API requests.
func (t *Transport) WithBaseURL(baseURL string) *Transport {
	t.baseURL = baseURL
	return t
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (t *Transport) WithHTTPClient(client *http.Client) *Transport {
	t.client = client
	return t
}

// Mode reports the transport variant.
func (t *Transport) Mode() string {
	return ai.ModeAutomatic
}

// Submit sends the conversation as a chat-completions request and returns
// the assistant reply text. All failures are wrapped in *ai.TransportError:
// missing credential, HTTP or network errors, non-2xx statuses, undecodable
// bodies, and replies with no content.
func (t *Transport) Submit(ctx context.Context, request ai.Request) (string, error) {
	if t.apiKey == "" {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "chat completion", Err: fmt.Errorf("API key is not set")}
	}

	if request.Model == "" {
		request.Model = DefaultModel
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventModelSubmit,
			observability.String(observability.AttrTransportMode, t.Mode()),
			observability.String(observability.AttrModel, request.Model),
			observability.String(observability.AttrEndpoint, t.baseURL+chatCompletionsEndpoint),
		)
	}

	httpResponse, resp, err := utils.DoPostSync[chatCompletionsResponse](ctx, t.client, t.baseURL+chatCompletionsEndpoint, t.apiKey, requestToWire(request))
	if err != nil {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "chat completion", Err: err}
	}

	if resp == nil {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "chat completion", Err: fmt.Errorf("empty response body: %s", httpResponse.Status)}
	}
	if resp.Error != nil {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "chat completion", Err: fmt.Errorf("API error %d: %s", resp.Error.Code, resp.Error.Message)}
	}
	if len(resp.Choices) == 0 {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "chat completion", Err: fmt.Errorf("no choices in response")}
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &ai.TransportError{Mode: t.Mode(), Op: "chat completion", Err: fmt.Errorf("empty assistant reply (finish_reason=%s)", resp.Choices[0].FinishReason)}
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventModelReply,
			observability.Int(observability.AttrReplyLength, len(content)),
		)
	}

	return content, nil
}
