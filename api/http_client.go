package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned when the upstream answers outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with the given request timeout
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Request sends body as JSON and decodes a JSON response into response when it is non-nil.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}, response interface{}) error {
	resBody, err := c.Do(ctx, method, endpoint, headers, body)
	if err != nil {
		return err
	}
	if response != nil {
		if err := json.Unmarshal(resBody, response); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}

// Do sends the request and returns the raw response body.
func (c *HTTPClient) Do(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}) ([]byte, error) {
	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, requestBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status, Body: string(resBody)}
	}
	return resBody, nil
}
