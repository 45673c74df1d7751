// Package dictionary looks up words against a Jisho-compatible dictionary
// API.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// JapaneseForm is one written/spoken pairing of an entry.
type JapaneseForm struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
}

// Sense is one meaning cluster of an entry.
type Sense struct {
	EnglishDefinitions []string `json:"english_definitions"`
	PartsOfSpeech      []string `json:"parts_of_speech"`
	SeeAlso            []string `json:"see_also"`
	Antonyms           []string `json:"antonyms"`
}

// Entry is a dictionary result for one word.
type Entry struct {
	Slug     string         `json:"slug"`
	IsCommon bool           `json:"is_common"`
	Tags     []string       `json:"tags"`
	JLPT     []string       `json:"jlpt"`
	Japanese []JapaneseForm `json:"japanese"`
	Senses   []Sense        `json:"senses"`
}

type searchResponse struct {
	Data []Entry `json:"data"`
}

// Client provides access to the dictionary API.
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

// New creates a dictionary client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("dictionary base url required")
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

// Lookup searches for word and returns the exact-match entry, or nil when the
// dictionary has no exact match. Partial matches are discarded because they
// produce wrong meanings.
func (c *Client) Lookup(ctx context.Context, word string) (*Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, errors.New("word must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/words")
	if err != nil {
		return nil, fmt.Errorf("parse dictionary url: %w", err)
	}
	params := url.Values{}
	params.Set("keyword", word)
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
		return nil, fmt.Errorf("dictionary search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode dictionary response: %w", err)
	}

	for i := range payload.Data {
		if payload.Data[i].Matches(word) {
			return &payload.Data[i], nil
		}
	}
	return nil, nil
}

// Matches reports whether the entry is an exact match for word, by written
// form, reading, or slug.
func (e *Entry) Matches(word string) bool {
	for _, jp := range e.Japanese {
		if jp.Word == word || jp.Reading == word {
			return true
		}
	}
	return e.Slug == word
}

// Meaning flattens the entry's first senses into one display string: up to
// three definitions each from the first two senses.
func (e *Entry) Meaning() string {
	if e == nil {
		return ""
	}
	var defs []string
	for i, sense := range e.Senses {
		if i >= 2 {
			break
		}
		n := len(sense.EnglishDefinitions)
		if n > 3 {
			n = 3
		}
		defs = append(defs, sense.EnglishDefinitions[:n]...)
	}
	return strings.Join(defs, "; ")
}

// ReadingFor returns the reading paired with word, falling back to the
// entry's first reading.
func (e *Entry) ReadingFor(word string) string {
	if e == nil {
		return ""
	}
	for _, jp := range e.Japanese {
		if jp.Word == word || jp.Reading == word {
			return jp.Reading
		}
	}
	if len(e.Japanese) > 0 {
		return e.Japanese[0].Reading
	}
	return ""
}

// PartOfSpeech joins the entry's unique part-of-speech labels from its first
// two senses, capped at three.
func (e *Entry) PartOfSpeech() string {
	if e == nil {
		return ""
	}
	seen := make(map[string]bool)
	var labels []string
	for i, sense := range e.Senses {
		if i >= 2 {
			break
		}
		for _, pos := range sense.PartsOfSpeech {
			if pos == "" || seen[pos] {
				continue
			}
			seen[pos] = true
			labels = append(labels, pos)
			if len(labels) == 3 {
				return strings.Join(labels, " • ")
			}
		}
	}
	return strings.Join(labels, " • ")
}

// Related collects cross-referenced similar words and antonyms, each capped
// at four.
func (e *Entry) Related() (synonyms, antonyms []string) {
	if e == nil {
		return nil, nil
	}
	for _, sense := range e.Senses {
		for _, s := range sense.SeeAlso {
			if len(synonyms) < 4 {
				synonyms = append(synonyms, s)
			}
		}
		for _, a := range sense.Antonyms {
			if len(antonyms) < 4 {
				antonyms = append(antonyms, a)
			}
		}
	}
	return synonyms, antonyms
}
