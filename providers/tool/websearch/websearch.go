// Package websearch provides the web_search tool backed by the DuckDuckGo
// instant answer API. The API is free and keyless, which keeps the default
// tool set usable without any search provider credentials.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leofalp/reagent/internal/utils"
	"github.com/leofalp/reagent/providers/tool"
)

const (
	defaultBaseURL    = "https://api.duckduckgo.com"
	defaultMaxResults = 5
	defaultTimeout    = 15 * time.Second
)

// Input is the argument struct for web_search.
type Input struct {
	Query      string `json:"query" jsonschema:"description=The search query to look up,required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"description=Maximum number of results to return (default 5)"`
	Site       string `json:"site,omitempty" jsonschema:"description=Restrict results to a single site (e.g. wikipedia.org)"`
}

// SearchResult is one entry in the result list.
type SearchResult struct {
	Title   string `json:"title" jsonschema:"description=Result title or topic heading"`
	URL     string `json:"url" jsonschema:"description=URL of the result"`
	Snippet string `json:"snippet" jsonschema:"description=Plain text summary of the result"`
}

// Output carries the search results plus the instant answer when the API
// provides one.
type Output struct {
	Query   string         `json:"query" jsonschema:"description=The query as sent to the search engine"`
	Answer  string         `json:"answer,omitempty" jsonschema:"description=Instant answer when available (calculations conversions etc)"`
	Results []SearchResult `json:"results" jsonschema:"description=Search results ordered by relevance"`
}

// Options configures the search tool.
type Options struct {
	// BaseURL overrides the DuckDuckGo API endpoint. Used by tests.
	BaseURL string

	// Client overrides the HTTP client. Nil means a client with a 15s timeout.
	Client *http.Client
}

// ddgResponse mirrors the subset of the instant answer payload we consume.
type ddgResponse struct {
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	Heading       string     `json:"Heading"`
	Answer        string     `json:"Answer"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
	Results       []ddgTopic `json:"Results"`
}

type ddgTopic struct {
	FirstURL string     `json:"FirstURL"`
	Text     string     `json:"Text"`
	Topics   []ddgTopic `json:"Topics"`
}

// New returns the web_search tool.
func New(opts Options) *tool.Tool[Input, Output] {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return tool.NewTool("web_search", func(ctx context.Context, input Input) (Output, error) {
		query := strings.TrimSpace(input.Query)
		if input.Site != "" {
			query = fmt.Sprintf("site:%s %s", input.Site, query)
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = defaultMaxResults
		}

		resp, err := fetch(ctx, client, baseURL, query)
		if err != nil {
			return Output{}, err
		}

		out := Output{
			Query:   query,
			Answer:  resp.Answer,
			Results: collectResults(resp, maxResults),
		}
		if out.Answer == "" && len(out.Results) == 0 {
			return Output{}, fmt.Errorf("no results found for query %q", query)
		}
		return out, nil
	}, tool.WithDescription("Searches the web via the DuckDuckGo instant answer API and returns a list of results with titles, URLs, and snippets. Use the site argument to restrict results to one domain."))
}

func fetch(ctx context.Context, client *http.Client, baseURL, query string) (*ddgResponse, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("no_html", "1")
	params.Add("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("User-Agent", "reagent-web-search/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	var parsed ddgResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return &parsed, nil
}

// collectResults flattens the abstract, direct results, and related topics
// into a single list, most relevant first, capped at maxResults.
func collectResults(resp *ddgResponse, maxResults int) []SearchResult {
	var results []SearchResult

	if resp.AbstractText != "" {
		results = append(results, SearchResult{
			Title:   resp.Heading,
			URL:     resp.AbstractURL,
			Snippet: resp.AbstractText,
		})
	}

	appendTopics(&results, resp.Results, maxResults)
	appendTopics(&results, resp.RelatedTopics, maxResults)

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// appendTopics walks a topic list, descending into nested category groups.
func appendTopics(results *[]SearchResult, topics []ddgTopic, maxResults int) {
	for _, topic := range topics {
		if len(*results) >= maxResults {
			return
		}
		if len(topic.Topics) > 0 {
			appendTopics(results, topic.Topics, maxResults)
			continue
		}
		if topic.Text == "" {
			continue
		}
		*results = append(*results, SearchResult{
			Title:   topicTitle(topic.Text),
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}
}

// topicTitle takes the leading clause of a topic text as its title. The
// instant answer API formats topics as "Title - description".
func topicTitle(text string) string {
	if title, _, found := strings.Cut(text, " - "); found {
		return title
	}
	return text
}
