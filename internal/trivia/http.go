package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// maxResponseBytes bounds a question payload.
const maxResponseBytes = 64 << 10

// HTTPSource fetches questions from a JSON endpoint.
//
// The request is GET <url>?category=<c>&size=<n>; the response body is a
// single Question encoded as JSON.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for rawURL. A nil client uses http.DefaultClient;
// the gate bounds each call with its own timeout.
func NewHTTPSource(rawURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("trivia: invalid source url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("trivia: unsupported source scheme %q", u.Scheme)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: u.String(), client: client}, nil
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, req Request) (Question, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return Question{}, fmt.Errorf("trivia: invalid source url: %w", err)
	}
	query := u.Query()
	if req.Category != "" {
		query.Set("category", req.Category)
	}
	query.Set("size", strconv.Itoa(req.ClusterSize))
	u.RawQuery = query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Question{}, fmt.Errorf("trivia: failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Question{}, fmt.Errorf("trivia: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Question{}, fmt.Errorf("trivia: unexpected status %d", resp.StatusCode)
	}

	var q Question
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&q); err != nil {
		return Question{}, fmt.Errorf("trivia: failed to decode question: %w", err)
	}
	if !q.Valid() {
		return Question{}, fmt.Errorf("trivia: question %q has no prompt or answers", q.ID)
	}
	return q, nil
}
