// Package sentences fetches example sentences from a Tatoeba-compatible
// corpus API.
package sentences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Example is one corpus sentence with its translation.
type Example struct {
	Text        string
	Translation string
}

// Display renders the example in the "sentence → translation" form study
// decks use.
func (e Example) Display() string {
	if e.Translation == "" {
		return e.Text
	}
	return e.Text + " → " + e.Translation
}

type searchResponse struct {
	Results []struct {
		Text         string `json:"text"`
		Translations [][]struct {
			Text string `json:"text"`
		} `json:"translations"`
	} `json:"results"`
}

// Client provides access to the sentence corpus API.
type Client struct {
	baseURL    string
	from       string
	to         string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a corpus client searching from one language into another,
// using ISO 639-3 codes as the corpus expects.
func New(baseURL, from, to string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("sentences base url required")
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, errors.New("sentence language pair required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		from:       from,
		to:         to,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search finds up to limit example sentences containing query. Sentences
// without a translation are skipped.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Example, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if limit <= 0 {
		limit = 2
	}

	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse sentences url: %w", err)
	}
	params := url.Values{}
	params.Set("from", c.from)
	params.Set("to", c.to)
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sentence search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode sentence response: %w", err)
	}

	var examples []Example
	for _, result := range payload.Results {
		if len(examples) == limit {
			break
		}
		if result.Text == "" {
			continue
		}
		translation := ""
		if len(result.Translations) > 0 && len(result.Translations[0]) > 0 {
			translation = result.Translations[0][0].Text
		}
		if translation == "" {
			continue
		}
		examples = append(examples, Example{Text: result.Text, Translation: translation})
	}
	return examples, nil
}

// SearchVariants searches query plus derived forms: the stem of する
// compounds and the hiragana form of katakana loanwords. The first variant
// with results wins.
func (c *Client) SearchVariants(ctx context.Context, variants []string, limit int) ([]Example, error) {
	var lastErr error
	for _, variant := range variants {
		if strings.TrimSpace(variant) == "" {
			continue
		}
		examples, err := c.Search(ctx, variant, limit)
		if err != nil {
			lastErr = err
			continue
		}
		if len(examples) > 0 {
			return examples, nil
		}
	}
	return nil, lastErr
}
