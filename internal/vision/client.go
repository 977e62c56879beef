package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// requestTimeout bounds each API call. Multimodal inference is slow, so the
// timeout is deliberately generous. There is no retry: a failed attempt is
// surfaced immediately and any retry policy belongs to the caller.
const requestTimeout = 3 * time.Minute

// TransportError wraps a network-level failure (unreachable host, connection
// reset, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("vision: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response from the API. The body is captured for
// diagnostics.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("vision: API returned status %d: %s", e.StatusCode, e.Body)
}

// EmptyResponseError is a 2xx response with no body.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "vision: empty response from API"
}

// Client calls the remote vision API.
type Client struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewClient creates a vision API client. The HTTP client applies the request
// timeout uniformly across connect, write and read.
func NewClient(apiKey, apiURL string) *Client {
	return &Client{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Complete serializes the request, posts it to the API and returns the raw
// response body. Failures are returned as *TransportError, *HTTPError or
// *EmptyResponseError; no retries are performed.
func (c *Client) Complete(ctx context.Context, request Request) ([]byte, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if len(body) == 0 {
		return nil, &EmptyResponseError{}
	}

	return body, nil
}
