package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// httpClient wraps http.Client with the server base URL.
type httpClient struct {
	client  *http.Client
	baseURL string
}

// response is a drained HTTP answer.
type response struct {
	status int
	header http.Header
	body   []byte
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *httpClient) do(ctx context.Context, method, path string, body any, header http.Header) (*response, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// get performs a GET request.
func (c *httpClient) get(ctx context.Context, path string) (*response, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// post performs a POST request with a JSON body.
func (c *httpClient) post(ctx context.Context, path string, body any, header http.Header) (*response, error) {
	return c.do(ctx, http.MethodPost, path, body, header)
}

// delete performs a DELETE request.
func (c *httpClient) delete(ctx context.Context, path string) (*response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// decode unmarshals the body when the status matches want.
func (r *response) decode(want int, v any) error {
	if r.status != want {
		return fmt.Errorf("%w: got %d want %d: %s", ErrUnexpectedStatus, r.status, want, strings.TrimSpace(string(r.body)))
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func itemPath(id string) string {
	return "/hackathons/" + url.PathEscape(id)
}
