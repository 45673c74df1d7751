// Package strokes fetches stroke-order diagrams from a KanjiVG-compatible
// asset host.
package strokes

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"kotoba/internal/services"
)

// Client fetches stroke-order SVG assets.
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

// New creates a stroke diagram client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("strokes base url required")
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

// AssetPath returns the repository-relative filename for a kanji's diagram:
// the code point, zero padded to five hex digits.
func AssetPath(kanji rune) string {
	return fmt.Sprintf("%05x.svg", kanji)
}

// Diagram fetches the stroke-order SVG for a single kanji and returns it
// wrapped for inline embedding. A missing asset returns an empty string with
// no error.
func (c *Client) Diagram(ctx context.Context, kanji string) (string, error) {
	if utf8.RuneCountInString(kanji) != 1 {
		return "", services.Wrap(services.ErrValidation, "strokes", "diagram",
			fmt.Sprintf("expected a single character, got %q", kanji), nil)
	}
	r, _ := utf8.DecodeRuneInString(kanji)
	endpoint := c.baseURL + "/" + AssetPath(r)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return "", fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stroke diagram fetch returned %d (latency=%v)", resp.StatusCode, latency)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read diagram body: %w", err)
	}
	return Wrap(string(body)), nil
}

// Wrap prepares a raw diagram for inline embedding. The vendor markup is
// opaque: a token scan locates the root svg element, the prolog around it
// (declaration, comments, doctype) is dropped, and the element itself passes
// through unmodified inside a container span that styling hooks onto.
// Documents without an svg root yield "".
func Wrap(svg string) string {
	dec := xml.NewDecoder(strings.NewReader(svg))
	var start int64
	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "svg" {
			return ""
		}
		start = offset
		break
	}
	return `<span class="stroke-diagram">` + strings.TrimSpace(svg[start:]) + `</span>`
}
