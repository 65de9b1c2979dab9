package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "pl_testkey")
	return srv, client
}

func jsonResponse(data any) []byte {
	b, _ := json.Marshal(map[string]any{"data": data})
	return b
}

func TestHealth(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/health", r.URL.Path)
		assert.Equal(t, "Bearer pl_testkey", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Content-Type"), "reads carry no body")
		w.Write([]byte(`{"status":"ok"}`))
	})

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
}

func TestHTTPError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		b, _ := json.Marshal(map[string]any{
			"error": map[string]any{
				"code":    "NOT_FOUND",
				"message": "endpoint not found",
			},
		})
		w.Write(b)
	})

	_, err := client.Health(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestHTTPErrorDetailString(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"bad token"}`))
	})

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, "bad token", err.Error())
}

func TestHTTPErrorPlainBody(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("nope\n"))
	})

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP 400: nope", err.Error())
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})

	status, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetriesExhaustedReturnsErrorBody(t *testing.T) {
	var calls atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"database down"}`))
	})

	_, err := client.WithRetryMax(1).Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, "database down", err.Error())
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestContextCancelStopsRequest(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Health(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientHandlesMalformedJSON(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	_, err := client.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestBuildQuery(t *testing.T) {
	result := buildQuery("/api/items", QueryParams{"page_number": "1", "search_text": "a b"})
	assert.Contains(t, result, "/api/items?")
	assert.Contains(t, result, "page_number=1")
	assert.Contains(t, result, "search_text=a+b")
}

func TestBuildQueryEmpty(t *testing.T) {
	assert.Equal(t, "/api/items", buildQuery("/api/items", nil))
	assert.Equal(t, "/api/items", buildQuery("/api/items", QueryParams{"search_text": ""}))
}

func TestBuildQueryExistingParams(t *testing.T) {
	result := buildQuery("/api/items?kind=a", QueryParams{"page_size": "5"})
	assert.Equal(t, "/api/items?kind=a&page_size=5", result)
}

func TestNewClientCustomTimeout(t *testing.T) {
	client := NewClient("http://example.com/", "pl_testkey", 5*time.Second)
	assert.Equal(t, 5*time.Second, client.timeout)
	assert.Equal(t, "http://example.com", client.BaseURL())
	assert.Equal(t, 2*time.Second, client.WithTimeout(2*time.Second).timeout)
}

func TestNewDefaultClientUsesDefaultBaseURL(t *testing.T) {
	var gotURL string
	client := NewDefaultClient("pl_testkey")
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"status":"ok"}`)),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotURL, DefaultBaseURL))
}
