package api

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

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/gravitrone/pagelist/internal/logging"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultRetryMax = 3
)

// Client wraps HTTP calls to the item REST API.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	retryMax   int
	log        zerolog.Logger
	httpClient *http.Client
}

// NewClient creates a new API client. Requests are retried on connection errors and 5xx
// responses.
func NewClient(baseURL, apiKey string, timeout ...time.Duration) *Client {
	httpTimeout := defaultTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		timeout:  httpTimeout,
		retryMax: defaultRetryMax,
		log:      zerolog.Nop(),
	}
	c.httpClient = c.newHTTPClient()
	return c
}

func (c *Client) newHTTPClient() *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{Timeout: c.timeout}
	retryClient.RetryMax = c.retryMax
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = logging.RetryLogger{Log: c.log}
	// hand the last response back so its error body can be decoded
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return retryClient.StandardClient()
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return NewClient(c.baseURL, c.apiKey, timeout).WithLogger(c.log).WithRetryMax(c.retryMax)
}

// WithLogger returns a copy of the client that logs retries to log.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	cp := *c
	cp.log = log.With().Str("component", "api").Logger()
	cp.httpClient = cp.newHTTPClient()
	return &cp
}

// WithRetryMax returns a copy of the client with a different retry budget. Zero disables retries.
func (c *Client) WithRetryMax(n int) *Client {
	if n < 0 {
		n = 0
	}
	cp := *c
	cp.retryMax = n
	cp.httpClient = cp.newHTTPClient()
	return &cp
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET request and returns the raw response body. Responses with a status
// of 400 or above are turned into errors carrying the API's message when it sent one.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if msg, ok := extractAPIErrorBody(body); ok {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// decodeList decodes a list API response. A bare JSON array is accepted as well as the
// {"data": [...]} envelope.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return out, nil
	}

	var resp apiResponse[[]T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Error != nil {
		if msg, ok := formatAPIError(resp.Error.Code, resp.Error.Message); ok {
			return nil, fmt.Errorf("%s", msg)
		}
	}
	return resp.Data, nil
}

// buildQuery appends query params to a path.
func buildQuery(path string, params QueryParams) string {
	if len(params) == 0 {
		return path
	}
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

func extractAPIErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var envelope apiResponse[any]
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return formatAPIError(envelope.Error.Code, envelope.Error.Message)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["detail"]); ok {
		return msg, true
	}
	return "", false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case map[string]any:
		if nested, ok := parseErrorValue(value["error"]); ok {
			return nested, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		return formatAPIError(code, message)
	}
	return "", false
}

func formatAPIError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
