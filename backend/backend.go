package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client represents a client to communicate with the backend API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient creates a new Client with the specified base URL. A zero
// timeout means no client-side limit.
func NewBackendClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the address every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Forward sends the HTTP request to the backend server and returns the response.
func (c *Client) Forward(ctx context.Context, method, path string, headers http.Header, body io.Reader) (*http.Response, error) {
	// Construct the full URL.
	url := fmt.Sprintf("%s%s", c.baseURL, path)

	// Create a new HTTP request with context.
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	// Copy headers.
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// Send the request to the backend.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Do sends payload as a JSON body (none when payload is nil) and reads the whole
// response. Non-2xx statuses are returned as a normal Response.
func (c *Client) Do(ctx context.Context, method, path string, payload any) (*Response, error) {
	headers := http.Header{}
	headers.Set("Accept", "application/json")

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		headers.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.Forward(ctx, method, path, headers, body)
	if err != nil {
		log.Debugf("%s %s failed after %s: %v", method, path, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	log.Debugf("%s %s -- %d -- %s", method, path, resp.StatusCode, time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
