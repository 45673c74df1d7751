// Package kanjidata looks up per-character kanji metadata: readings, meanings
// and structural decomposition.
package kanjidata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"kotoba/internal/services"
)

// Info is the per-kanji metadata payload.
type Info struct {
	Kanji       string   `json:"kanji"`
	Grade       int      `json:"grade"`
	StrokeCount int      `json:"stroke_count"`
	Meanings    []string `json:"meanings"`
	KunReadings []string `json:"kun_readings"`
	OnReadings  []string `json:"on_readings"`
	JLPT        int      `json:"jlpt"`
	Unicode     string   `json:"unicode"`
}

type decompositionResponse struct {
	Kanji      string   `json:"kanji"`
	Components []string `json:"components"`
}

// Client provides access to the kanji metadata API.
type Client struct {
	baseURL    string
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

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a kanji metadata client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("kanji base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func validateKanji(kanji string) error {
	if utf8.RuneCountInString(kanji) != 1 {
		return services.Wrap(services.ErrValidation, "kanji", "lookup",
			fmt.Sprintf("expected a single character, got %q", kanji), nil)
	}
	return nil
}

// Lookup fetches the metadata for a single kanji character.
func (c *Client) Lookup(ctx context.Context, kanji string) (*Info, error) {
	if err := validateKanji(kanji); err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/kanji/" + url.PathEscape(kanji)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kanji lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Info
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode kanji response: %w", err)
	}
	return &payload, nil
}

// Components fetches the structural component list for a single kanji.
func (c *Client) Components(ctx context.Context, kanji string) ([]string, error) {
	if err := validateKanji(kanji); err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/decomposition/" + url.PathEscape(kanji)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("decomposition lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload decompositionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode decomposition response: %w", err)
	}
	return payload.Components, nil
}
